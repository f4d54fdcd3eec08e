package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tea-network/sbtmarket/types"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, path := range [][]string{
		{"api"},
		{"catalog"},
		{"owned"},
		{"claim"},
		{"admin", "types"},
		{"admin", "templates"},
		{"admin", "preview"},
		{"admin", "create"},
		{"admin", "activate"},
		{"admin", "deactivate"},
		{"admin", "burn"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestClaimCmd_Flags(t *testing.T) {
	cmd := claimCmd()
	flag := cmd.Flags().Lookup("accept-policy")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestParseTypeId(t *testing.T) {
	id, err := parseTypeId("3")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		_, err := parseTypeId(raw)
		assert.True(t, types.IsErrorType(err, types.ErrTypeInvalidValue), raw)
	}
}
