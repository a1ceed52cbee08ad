package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"covagg.dev/pkg/covagg/internal/adapter"
	"covagg.dev/pkg/covagg/internal/controller"
	"covagg.dev/pkg/covagg/internal/domain"
	m "covagg.dev/pkg/covagg/internal/model"
)

const testsBlacklistGroup = "tests"

// newWorkflow assembles the workflow from the current configuration. The
// source index is shared by every store so files are parsed once.
func newWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	colors := useColors(viper.GetString(reportColorKey), controller.IsTTY(cmd.OutOrStdout()))
	ui = controller.NewUI(cmd, viper.GetString(reportFormatKey), colors, reportConfig())

	sources := domain.NewSourceIndex(fsAdapter, goFileAdapter)
	resolver := domain.NewIgnoredLinesResolver(sources,
		domain.WithIgnoreDeprecated(viper.GetBool(ignoreDeprecatedKey)),
		domain.WithDisableIgnoredLines(viper.GetBool(disableIgnoredLinesKey)),
		domain.WithCacheDisabled(viper.GetBool(cacheDisabledKey)),
	)
	lookup := domain.NewUnitLookup(sources)

	return domain.NewWorkflow(fsAdapter, reportStore, ui, newDriverFactory(), newStoreFactory(resolver, lookup)), nil
}

func newDriverFactory() domain.DriverFactory {
	return func() (adapter.QueueDriver, error) {
		root, err := fsAdapter.FindProjectRoot(".")
		if err != nil {
			return nil, err
		}

		resolver, err := adapter.NewModuleResolver(fsAdapter, root)
		if err != nil {
			return nil, err
		}

		opts := []adapter.ProfileDriverOption{adapter.WithModuleResolver(resolver)}
		if baseline := viper.GetString(baselineConfigKey); baseline != "" {
			opts = append(opts, adapter.WithBaselineProfile(m.Path(baseline)))
		}

		return adapter.NewProfileDriver(fsAdapter, opts...), nil
	}
}

func newStoreFactory(resolver *domain.IgnoredLinesResolver, lookup *domain.UnitLookup) domain.StoreFactory {
	return func(driver adapter.Driver) (*domain.CoverageStore, error) {
		filter, err := newFilter()
		if err != nil {
			return nil, err
		}

		return domain.NewCoverageStore(driver, filter, resolver, lookup,
			domain.WithForceCovers(viper.GetBool(forceCoversKey)),
			domain.WithCheckMissingCovers(viper.GetBool(missingCoversKey)),
			domain.WithCheckUnintentionallyCovered(viper.GetBool(unintentionalKey)),
			domain.WithCheckUnexecuted(viper.GetBool(unexecutedKey)),
			domain.WithAddUncoveredFiles(viper.GetBool(addUncoveredKey)),
			domain.WithProcessUncoveredFiles(viper.GetBool(processUncoveredKey)),
			domain.WithBranchCoverage(viper.GetBool(branchCoverageKey)),
			domain.WithAllowedAncestors(viper.GetStringMapStringSlice(ancestorsKey), viper.GetStringSlice(allowedAncestorsKey)...),
		)
	}
}

// newFilter whitelists the included paths and blacklists the excluded ones.
// Test files are blacklisted in their own group unless configured otherwise.
func newFilter() (*domain.Filter, error) {
	filter := domain.NewFilter(fsAdapter)
	suffix := viper.GetString(suffixConfigKey)

	for _, include := range viper.GetStringSlice(includeConfigKey) {
		if err := addPath(include, func(dir m.Path) error {
			return filter.AddDirectoryToWhitelist(dir, suffix, "")
		}, filter.AddFileToWhitelist); err != nil {
			return nil, fmt.Errorf("include %s: %w", include, err)
		}

		if viper.GetBool(excludeTestsConfigKey) {
			if err := addPath(include, func(dir m.Path) error {
				return filter.AddDirectoryToBlacklist(dir, "_test"+suffix, "", testsBlacklistGroup)
			}, func(m.Path) error { return nil }); err != nil {
				return nil, fmt.Errorf("exclude tests of %s: %w", include, err)
			}
		}
	}

	for _, exclude := range viper.GetStringSlice(excludeConfigKey) {
		if err := addPath(exclude, func(dir m.Path) error {
			return filter.AddDirectoryToBlacklist(dir, suffix, "")
		}, func(path m.Path) error {
			return filter.AddFileToBlacklist(path)
		}); err != nil {
			return nil, fmt.Errorf("exclude %s: %w", exclude, err)
		}
	}

	slog.Debug("Configured coverage filter", "whitelist", len(filter.Whitelist()))

	return filter, nil
}

func addPath(path string, addDir, addFile func(m.Path) error) error {
	info, err := fsAdapter.FileInfo(m.Path(path))
	if err != nil {
		return err
	}

	if info.IsDir() {
		return addDir(m.Path(path))
	}

	return addFile(m.Path(path))
}
