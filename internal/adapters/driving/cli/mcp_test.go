package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_HasServe(t *testing.T) {
	cmd, _, err := mcpCmd.Find([]string{"serve"})

	require.NoError(t, err)
	assert.Equal(t, "serve", cmd.Name())
}

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")

	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPPorts(t *testing.T) {
	ts := setupTestServices(t)

	ports := mcpPorts()

	assert.Same(t, ts.search, ports.Search)
	assert.Same(t, ts.stores, ports.Stores)
	assert.NoError(t, ports.Validate())
}
