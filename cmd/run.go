package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/faultline/internal/domain"
	"gooze.dev/pkg/faultline/internal/domain/mutagens"
	m "gooze.dev/pkg/faultline/internal/model"
)

var runParallelFlag int
var runTimeoutFlag time.Duration
var inPlaceFlag bool
var retryTimeoutsFlag bool
var maxDurationFlag time.Duration
var maxMutationsFlag int
var stopOnSolutionFlag bool
var batchSizeFlag int
var staleStreakFlag int
var operatorsFlag []string
var formatFlag string
var coordinatesFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [packages...]",
		Short: "Localize the faults behind failing tests",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := buildCatalog(viper.GetStringSlice(operatorsKey))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			_, err = workflow.Localize(ctx, domain.LocalizeArgs{
				Root:     m.Path(configFolderPath),
				Packages: args,
				Output:   m.Path(viper.GetString(outputFlagName)),
				InPlace:  viper.GetBool(inPlaceKey),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				Parallel: viper.GetInt(runParallelConfigKey),
				Timeout:  viper.GetDuration(runTimeoutKey),

				BatchSize:     viper.GetInt(batchSizeKey),
				RetryTimeouts: viper.GetBool(retryTimeoutsKey),
				Finish: domain.FinishConfig{
					StopOnSolution: viper.GetBool(stopOnSolutionKey),
					MaxDuration:    viper.GetDuration(maxDurationKey),
					MaxMutations:   viper.GetInt(maxMutationsKey),
					StaleStreak:    viper.GetInt(staleStreakKey),
				},
				ReportFormat:        viper.GetString(reportFormatKey),
				CoverageCoordinates: viper.GetBool(coverageCoordinatesKey),
				Catalog:             catalog,
			})

			return err
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "parallel workers for coverage collection (0: one per CPU)")
	bindFlagToConfig(flags.Lookup(runParallelFlagName), runParallelConfigKey)

	flags.DurationVarP(&runTimeoutFlag, runTimeoutFlagName, "t", viper.GetDuration(runTimeoutKey), "timeout of a single test run")
	bindFlagToConfig(flags.Lookup(runTimeoutFlagName), runTimeoutKey)

	flags.BoolVar(&inPlaceFlag, inPlaceFlagName, viper.GetBool(inPlaceKey), "mutate the module in place instead of a scratch copy")
	bindFlagToConfig(flags.Lookup(inPlaceFlagName), inPlaceKey)

	flags.BoolVar(&retryTimeoutsFlag, retryTimeoutsFlagName, viper.GetBool(retryTimeoutsKey), "rerun a timed out mutation once before counting it as a crash")
	bindFlagToConfig(flags.Lookup(retryTimeoutsFlagName), retryTimeoutsKey)

	flags.DurationVar(&maxDurationFlag, maxDurationFlagName, viper.GetDuration(maxDurationKey), "stop the search after this long (0: no limit)")
	bindFlagToConfig(flags.Lookup(maxDurationFlagName), maxDurationKey)

	flags.IntVar(&maxMutationsFlag, maxMutationsFlagName, viper.GetInt(maxMutationsKey), "stop the search after this many mutations (0: no limit)")
	bindFlagToConfig(flags.Lookup(maxMutationsFlagName), maxMutationsKey)

	flags.BoolVar(&stopOnSolutionFlag, stopOnSolutionFlagName, viper.GetBool(stopOnSolutionKey), "stop when a mutation makes every failing test pass")
	bindFlagToConfig(flags.Lookup(stopOnSolutionFlagName), stopOnSolutionKey)

	flags.IntVar(&batchSizeFlag, batchSizeFlagName, viper.GetInt(batchSizeKey), "apply up to this many conflict-free mutations per run")
	bindFlagToConfig(flags.Lookup(batchSizeFlagName), batchSizeKey)

	flags.IntVar(&staleStreakFlag, staleStreakFlagName, viper.GetInt(staleStreakKey), "stop after this many checks without promising mutations")
	bindFlagToConfig(flags.Lookup(staleStreakFlagName), staleStreakKey)

	flags.StringSliceVar(&operatorsFlag, operatorsFlagName, viper.GetStringSlice(operatorsKey), "mutation operators to use (default: all)")
	bindFlagToConfig(flags.Lookup(operatorsFlagName), operatorsKey)

	flags.StringVarP(&formatFlag, formatFlagName, "f", viper.GetString(reportFormatKey), "report format (json or yaml)")
	bindFlagToConfig(flags.Lookup(formatFlagName), reportFormatKey)

	flags.BoolVar(&coordinatesFlag, coordinatesFlagName, viper.GetBool(coverageCoordinatesKey), "rank coverage coordinates instead of suspiciousness")
	bindFlagToConfig(flags.Lookup(coordinatesFlagName), coverageCoordinatesKey)
}

// buildCatalog selects operators by type name. An empty selection keeps
// every built-in operator.
func buildCatalog(names []string) (*mutagens.Catalog, error) {
	if len(names) == 0 {
		return mutagens.NewCatalog(), nil
	}

	all := mutagens.NewCatalog()
	operators := make([]mutagens.Operator, 0, len(names))

	for _, name := range names {
		op, ok := all.Operator(mutagens.Type(strings.TrimSpace(name)))
		if !ok {
			return nil, fmt.Errorf("unknown mutation operator %q", name)
		}

		operators = append(operators, *op)
	}

	return mutagens.NewCatalog(operators...), nil
}
