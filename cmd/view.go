package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gooze.dev/pkg/faultline/internal/domain"
	m "gooze.dev/pkg/faultline/internal/model"
)

var viewLimitFlag int

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously generated fault report",
		Long:  "View the ranked fault locations and solutions stored in a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.View(cmd.Context(), domain.ViewArgs{Reports: reportsPath, Limit: viewLimitFlag})
		},
	}

	cmd.Flags().IntVarP(&viewLimitFlag, limitFlagName, "n", 0, "show at most this many locations (0: all)")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
