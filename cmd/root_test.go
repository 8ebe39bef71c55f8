package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "faultline", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Equal(t, rootLongDescription, cmd.Long)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "Supports go test package patterns")
}

func TestInit(t *testing.T) {
	// Test that init() created all the necessary instances
	assert.NotNil(t, ui)
	assert.NotNil(t, goFileAdapter)
	assert.NotNil(t, fsAdapter)
	assert.NotNil(t, reportStore)
	assert.NotNil(t, testAdapter)
	assert.NotNil(t, coverageAdapter)
	assert.NotNil(t, orchestrator)
	assert.NotNil(t, workflow)
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"run", "view", "init", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{outputFlagName, excludeFlagName, "log-file", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	assert.Equal(t, "o", cmd.PersistentFlags().Lookup(outputFlagName).Shorthand)
	assert.Equal(t, "x", cmd.PersistentFlags().Lookup(excludeFlagName).Shorthand)
}

// executeSubprocessEnv selects the stub command run by a re-executed test
// binary.
const executeSubprocessEnv = "FAULTLINE_EXECUTE_STUB"

func TestExecute(t *testing.T) {
	if stub := os.Getenv(executeSubprocessEnv); stub != "" {
		rootCmd = &cobra.Command{
			Use: "stub",
			RunE: func(cmd *cobra.Command, _ []string) error {
				if stub == "fail" {
					fmt.Fprintln(os.Stderr, "localization failed")
					return fmt.Errorf("stub failed")
				}

				fmt.Fprintln(cmd.OutOrStdout(), "localization done")
				return nil
			},
		}
		rootCmd.SetOut(os.Stdout)
		rootCmd.SetErr(os.Stderr)

		Execute()
		return
	}

	tests := []struct {
		name     string
		stub     string
		wantCode int
		wantOut  string
	}{
		{name: "success", stub: "ok", wantCode: 0, wantOut: "localization done"},
		{name: "failure exits 1", stub: "fail", wantCode: 1, wantOut: "localization failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestExecute$")
			cmd.Env = append(os.Environ(), executeSubprocessEnv+"="+tt.stub)
			output, err := cmd.CombinedOutput()

			code := 0
			if exitErr, ok := err.(*exec.ExitError); ok {
				code = exitErr.ExitCode()
			} else {
				require.NoError(t, err, "output: %s", output)
			}

			assert.Equal(t, tt.wantCode, code, "output: %s", output)
			assert.Contains(t, string(output), tt.wantOut)
		})
	}
}
