// Package cmd provides the root command and CLI setup for faultline.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gooze.dev/pkg/faultline/internal/adapter"
	"gooze.dev/pkg/faultline/internal/controller"
	"gooze.dev/pkg/faultline/internal/domain"
)

var goFileAdapter adapter.GoFileAdapter
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var testAdapter adapter.TestRunnerAdapter
var coverageAdapter adapter.CoverageAdapter
var orchestrator domain.Orchestrator
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var logFileFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, useTUI(viper.GetString(tuiKey), controller.IsTTY(os.Stdout)))
	goFileAdapter = adapter.NewLocalGoFileAdapter(viper.GetBool(parseCommentsKey))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewLocalReportStore(fsAdapter)
	testAdapter = adapter.NewLocalTestRunnerAdapter(defaultRunTimeout)
	coverageAdapter = adapter.NewLocalCoverageAdapter(testAdapter, fsAdapter, goFileAdapter)
	orchestrator = domain.NewOrchestrator(fsAdapter, testAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		goFileAdapter,
		coverageAdapter,
		reportStore,
		ui,
		orchestrator,
	)
}

const packagePatternsHelp = `Supports go test package patterns:
  - ./...          every package of the module (default)
  - ./pkg/...      packages below pkg
  - ./cmd ./pkg    several packages`

const rootLongDescription = `Faultline localizes faults in Go programs. It runs the test suite, mutates
the statements covered by failing tests, and ranks every location by how much
its mutations move the failing tests toward passing.

` + packagePatternsHelp

const runLongDescription = `Run fault localization for the module in the current directory.

The named packages form the initial test run (default: every package).
Reports and solutions are written to the output directory.

` + packagePatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "faultline",
		Short: "Mutation based fault localization for Go",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a root command with its persistent flags; tests attach
// subcommands to it.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for fault localization reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, "log-file", viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("log-file"), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
