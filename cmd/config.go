package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"covagg.dev/pkg/covagg/internal/controller"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "covagg"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName       = "output"
	excludeFlagName      = "exclude"
	includeFlagName      = "include"
	parallelFlagName     = "parallel"
	shardFlagName        = "shard"
	expectationsFlagName = "expectations"
	baselineFlagName     = "baseline"
	formatFlagName       = "format"
	colorFlagName        = "color"
	showUncoveredFlag    = "show-uncovered"
	onlySummaryFlag      = "only-summary"
	logFileFlagName      = "log-file"
	verboseFlagName      = "verbose"

	includeConfigKey      = "paths.include"
	excludeConfigKey      = "paths.exclude"
	excludeTestsConfigKey = "paths.exclude_tests"
	suffixConfigKey       = "paths.suffix"

	parallelConfigKey      = "collect.parallel"
	profileSuffixKey       = "collect.profile_suffix"
	expectationsConfigKey  = "collect.expectations"
	baselineConfigKey      = "collect.baseline_profile"
	forceCoversKey         = "checks.force_covers"
	missingCoversKey       = "checks.missing_covers"
	unintentionalKey       = "checks.unintentionally_covered"
	unexecutedKey          = "checks.unexecuted"
	allowedAncestorsKey    = "checks.allowed_ancestors"
	ancestorsKey           = "checks.ancestors"
	addUncoveredKey        = "coverage.add_uncovered_files"
	processUncoveredKey    = "coverage.process_uncovered_files"
	branchCoverageKey      = "coverage.branches"
	ignoreDeprecatedKey    = "coverage.ignore_deprecated"
	disableIgnoredLinesKey = "coverage.disable_ignored_lines"
	cacheDisabledKey       = "coverage.cache_disabled"

	reportFormatKey        = "report.format"
	reportColorKey         = "report.color"
	reportLowBoundKey      = "report.low_upper_bound"
	reportHighBoundKey     = "report.high_lower_bound"
	reportShowUncoveredKey = "report.show_uncovered_files"
	reportOnlySummaryKey   = "report.only_summary"

	defaultReportsDir    = ".covagg"
	defaultParallel      = 1
	defaultSuffix        = ".go"
	defaultProfileSuffix = ".out"
	defaultColor         = "auto"

	envPrefix = "COVAGG"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".covagg.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func setDefaults() {
	report := controller.DefaultReportConfig()

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)

	viper.SetDefault(includeConfigKey, []string{"."})
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(excludeTestsConfigKey, true)
	viper.SetDefault(suffixConfigKey, defaultSuffix)

	viper.SetDefault(parallelConfigKey, defaultParallel)
	viper.SetDefault(profileSuffixKey, defaultProfileSuffix)
	viper.SetDefault(expectationsConfigKey, "")
	viper.SetDefault(baselineConfigKey, "")

	viper.SetDefault(forceCoversKey, false)
	viper.SetDefault(missingCoversKey, false)
	viper.SetDefault(unintentionalKey, false)
	viper.SetDefault(unexecutedKey, false)
	viper.SetDefault(allowedAncestorsKey, []string{})
	viper.SetDefault(ancestorsKey, map[string][]string{})

	viper.SetDefault(addUncoveredKey, true)
	viper.SetDefault(processUncoveredKey, false)
	viper.SetDefault(branchCoverageKey, false)
	viper.SetDefault(ignoreDeprecatedKey, false)
	viper.SetDefault(disableIgnoredLinesKey, false)
	viper.SetDefault(cacheDisabledKey, false)

	viper.SetDefault(reportFormatKey, controller.FormatText)
	viper.SetDefault(reportColorKey, defaultColor)
	viper.SetDefault(reportLowBoundKey, report.LowUpperBound)
	viper.SetDefault(reportHighBoundKey, report.HighLowerBound)
	viper.SetDefault(reportShowUncoveredKey, report.ShowUncoveredFiles)
	viper.SetDefault(reportOnlySummaryKey, report.OnlySummary)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

func reportConfig() controller.ReportConfig {
	return controller.ReportConfig{
		LowUpperBound:      viper.GetFloat64(reportLowBoundKey),
		HighLowerBound:     viper.GetFloat64(reportHighBoundKey),
		ShowUncoveredFiles: viper.GetBool(reportShowUncoveredKey),
		OnlySummary:        viper.GetBool(reportOnlySummaryKey),
	}
}

// useColors resolves the color setting: "on" and "off" force it, anything
// else follows whether out is a terminal.
func useColors(setting string, isTTY bool) bool {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case "on", "always", "true":
		return true
	case "off", "never", "false":
		return false
	default:
		return isTTY
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
