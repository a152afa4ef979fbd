package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

var (
	operationWait     bool
	operationJSON     bool
	operationInterval = 2 * time.Second
	operationTimeout  = 10 * time.Minute
)

var operationCmd = &cobra.Command{
	Use:   "operation [name]",
	Short: "Show the status of an ingestion operation",
	Long: `Fetches a fresh snapshot of an upload or import operation.

Use --wait to poll until the operation is done.`,
	Args: cobra.ExactArgs(1),
	RunE: runOperation,
}

func init() {
	operationCmd.Flags().BoolVarP(&operationWait, "wait", "w", false, "poll until the operation is done")
	operationCmd.Flags().BoolVar(&operationJSON, "json", false, "output as JSON")
	operationCmd.Flags().DurationVar(&operationInterval, "interval", operationInterval, "polling interval with --wait")
	operationCmd.Flags().DurationVar(&operationTimeout, "timeout", operationTimeout, "maximum time to wait with --wait")
	rootCmd.AddCommand(operationCmd)
}

func runOperation(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}

	var (
		op  *domain.Operation
		err error
	)
	if operationWait {
		op, err = waitForOperation(cmd, args[0], operationInterval, operationTimeout)
	} else {
		op, err = mediaService.GetOperation(cmd.Context(), args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get operation: %w", err)
	}

	if operationJSON {
		return printJSON(cmd, op)
	}
	printOperation(cmd, op)
	return nil
}

// waitForOperation polls an operation until it is done, the timeout passes
// or the command is cancelled.
func waitForOperation(cmd *cobra.Command, name string, interval, timeout time.Duration) (*domain.Operation, error) {
	ctx := cmd.Context()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		op, err := mediaService.GetOperation(ctx, name)
		if err != nil {
			return nil, err
		}
		if op.Done {
			return op, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, fmt.Errorf("operation %s not done after %s", name, timeout)
		case <-ticker.C:
		}
	}
}

func printOperation(cmd *cobra.Command, op *domain.Operation) {
	cmd.Printf("Operation: %s\n", op.Name)
	switch {
	case op.Failed():
		cmd.Printf("  Status: failed (%s)\n", op.Error.Message)
	case op.Done:
		cmd.Println("  Status: done")
	default:
		cmd.Println("  Status: in progress")
	}
}
