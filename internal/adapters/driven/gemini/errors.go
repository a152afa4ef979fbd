package gemini

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

// checkResponse converts a non-2xx response into an ErrUpstreamHTTP error.
// The upstream error envelope {"error": {...}} is decoded when present.
func checkResponse(op string, resp *http.Response) error {
	err := googleapi.CheckResponse(resp)
	if err == nil {
		return nil
	}

	ue := &domain.UpstreamError{
		Kind:       domain.ErrUpstreamHTTP,
		Op:         op,
		StatusCode: resp.StatusCode,
		Err:        err,
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		ue.Message = gerr.Message
		ue.Body = truncate(gerr.Body)
		if len(gerr.Errors) > 0 {
			ue.Reason = gerr.Errors[0].Reason
		}
	}
	if ue.Message == "" {
		ue.Message = http.StatusText(resp.StatusCode)
	}
	return ue
}
