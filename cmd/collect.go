package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"covagg.dev/pkg/covagg/internal/domain"
	m "covagg.dev/pkg/covagg/internal/model"
)

var collectParallelFlag int
var collectShardFlag string
var collectExpectationsFlag string
var collectBaselineFlag string

// collectCmd represents the collect command.
var collectCmd = newCollectCmd()

func newCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect [profiles...]",
		Short: "Collect coverage from Go cover profiles",
		Long:  collectLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			shardIndex, totalShards := parseShardFlag(collectShardFlag)

			if len(args) == 0 {
				args = []string{"."}
			}

			profiles, err := findProfiles(parsePaths(args), viper.GetString(profileSuffixKey))
			if err != nil {
				return err
			}

			return workflow.Collect(cmd.Context(), domain.CollectArgs{
				Profiles:        profiles,
				Reports:         m.Path(viper.GetString(outputFlagName)),
				Expectations:    m.Path(viper.GetString(expectationsConfigKey)),
				Threads:         viper.GetInt(parallelConfigKey),
				ShardIndex:      shardIndex,
				TotalShardCount: totalShards,
			})
		},
	}

	configureCollectFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func configureCollectFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&collectParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of parallel workers folding profiles")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().StringVarP(&collectExpectationsFlag, expectationsFlagName, "e", viper.GetString(expectationsConfigKey), "YAML file declaring the code each test covers")
	bindFlagToConfig(cmd.Flags().Lookup(expectationsFlagName), expectationsConfigKey)

	cmd.Flags().StringVarP(&collectBaselineFlag, baselineFlagName, "b", viper.GetString(baselineConfigKey), "profile of the whole suite used to process uncovered files")
	bindFlagToConfig(cmd.Flags().Lookup(baselineFlagName), baselineConfigKey)

	cmd.Flags().StringVarP(&collectShardFlag, shardFlagName, "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}

// findProfiles expands directories into the profiles they contain. Files are
// taken as given.
func findProfiles(paths []m.Path, suffix string) ([]m.Path, error) {
	var profiles []m.Path

	for _, path := range paths {
		info, err := fsAdapter.FileInfo(path)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", path, err)
		}

		if !info.IsDir() {
			profiles = append(profiles, path)
			continue
		}

		err = fsAdapter.Walk(path, true, func(name string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !fi.IsDir() && strings.HasSuffix(name, suffix) {
				profiles = append(profiles, m.Path(name))
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("find profiles in %s: %w", path, err)
		}
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i] < profiles[j] })

	return profiles, nil
}
