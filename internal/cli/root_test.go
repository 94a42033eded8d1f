package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "rdflit", cmd.Use)
	assert.Contains(t, cmd.Long, "xsd:time")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"canonicalize"},
		{"validate"},
		{"equal"},
		{"store"},
		{"store", "put"},
		{"store", "find"},
		{"store", "show"},
		{"store", "replay"},
		{"test"},
		{"script"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestDatatypeFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, path := range [][]string{{"canonicalize"}, {"validate"}, {"store", "put"}, {"store", "find"}} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err)
		flag := sub.Flags().Lookup("datatype")
		require.NotNil(t, flag, "%v should have --datatype", path)
		assert.Equal(t, "d", flag.Shorthand)
		assert.Equal(t, "time", flag.DefValue)
	}

	equalCmd, _, err := cmd.Find([]string{"equal"})
	require.NoError(t, err)
	assert.NotNil(t, equalCmd.Flags().Lookup("datatype-a"))
	assert.NotNil(t, equalCmd.Flags().Lookup("datatype-b"))
}

func TestStoreCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	storeCmd, _, err := cmd.Find([]string{"store"})
	require.NoError(t, err)

	dbFlag := storeCmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	// --db is required, so default is empty
	assert.Equal(t, "", dbFlag.DefValue)

	showCmd, _, err := cmd.Find([]string{"store", "show"})
	require.NoError(t, err)
	assert.NotNil(t, showCmd.Flags().Lookup("batch"))
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	updateFlag := testCmd.Flags().Lookup("update")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)

	filterFlag := testCmd.Flags().Lookup("filter")
	require.NotNil(t, filterFlag)
}

func TestFormatValidation(t *testing.T) {
	// Test valid formats
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	// Test invalid formats
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "invalid", "canonicalize", "10:00:00Z"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootInstallsLogger(t *testing.T) {
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{"--verbose", "canonicalize", "not a time"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, errBuf.String(), "canonicalize failed")
	assert.Contains(t, errBuf.String(), "level=DEBUG")
}

func TestRootOptionsLoggerDefault(t *testing.T) {
	opts := &RootOptions{}
	require.NotNil(t, opts.logger())
	assert.False(t, opts.logger().Enabled(context.Background(), 0))
}

func TestBuildLiteral(t *testing.T) {
	tests := []struct {
		value    string
		datatype string
		kind     string
		valid    bool
	}{
		{"19:30:00Z", "time", "time", true},
		{"10:00", "time", "time", false},
		{"2024-01-01", "date", "date", true},
		{"2024-01-01T10:00:00Z", "dateTime", "dateTime", true},
		{"anything", "string", "other", true},
		{"10:00:00Z", "http://example.org/clock", "time", true},
	}

	for _, tt := range tests {
		t.Run(tt.value+"/"+tt.datatype, func(t *testing.T) {
			lit := buildLiteral(tt.value, tt.datatype)
			assert.Equal(t, tt.kind, lit.Kind().String())
			assert.Equal(t, tt.valid, lit.Valid())
		})
	}
}
