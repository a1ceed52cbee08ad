package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"covagg.dev/pkg/covagg/internal/domain"
	m "covagg.dev/pkg/covagg/internal/model"
)

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge sharded snapshots into a single snapshot",
		Long:  "Merge coverage snapshots from shard_* subdirectories into the output directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.Merge(cmd.Context(), domain.MergeArgs{Reports: reportsPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
