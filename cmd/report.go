package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"covagg.dev/pkg/covagg/internal/controller"
	"covagg.dev/pkg/covagg/internal/domain"
	m "covagg.dev/pkg/covagg/internal/model"
)

var reportFormatFlag string
var reportColorFlag string
var reportShowUncoveredFlag bool
var reportOnlySummaryFlag bool

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a coverage snapshot",
		Long:  "Render the coverage snapshot in the output directory as a text table or YAML.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.Report(cmd.Context(), domain.ReportArgs{Reports: reportsPath})
		},
	}

	configureReportFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func configureReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&reportFormatFlag, formatFlagName, "f", viper.GetString(reportFormatKey), "output format ("+controller.FormatText+"|"+controller.FormatYAML+")")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), reportFormatKey)

	cmd.Flags().StringVar(&reportColorFlag, colorFlagName, viper.GetString(reportColorKey), "colorize output (auto|on|off)")
	bindFlagToConfig(cmd.Flags().Lookup(colorFlagName), reportColorKey)

	cmd.Flags().BoolVar(&reportShowUncoveredFlag, showUncoveredFlag, viper.GetBool(reportShowUncoveredKey), "list files without any executed line")
	bindFlagToConfig(cmd.Flags().Lookup(showUncoveredFlag), reportShowUncoveredKey)

	cmd.Flags().BoolVar(&reportOnlySummaryFlag, onlySummaryFlag, viper.GetBool(reportOnlySummaryKey), "print the summary only")
	bindFlagToConfig(cmd.Flags().Lookup(onlySummaryFlag), reportOnlySummaryKey)
}
