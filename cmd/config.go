package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "faultline"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName         = "output"
	excludeFlagName        = "exclude"
	runParallelFlagName    = "parallel"
	runTimeoutFlagName     = "timeout"
	inPlaceFlagName        = "in-place"
	retryTimeoutsFlagName  = "retry-timeouts"
	maxDurationFlagName    = "max-duration"
	maxMutationsFlagName   = "max-mutations"
	stopOnSolutionFlagName = "stop-on-solution"
	batchSizeFlagName      = "batch-size"
	staleStreakFlagName    = "stale-streak"
	operatorsFlagName      = "operators"
	formatFlagName         = "format"
	coordinatesFlagName    = "coordinates"
	limitFlagName          = "limit"

	excludeConfigKey       = "paths.exclude"
	runParallelConfigKey   = "run.parallel"
	runTimeoutKey          = "run.timeout"
	inPlaceKey             = "run.in_place"
	retryTimeoutsKey       = "run.retry_timeouts"
	maxDurationKey         = "search.max_duration"
	maxMutationsKey        = "search.max_mutations"
	stopOnSolutionKey      = "search.stop_on_solution"
	batchSizeKey           = "search.batch_size"
	staleStreakKey         = "search.stale_streak"
	operatorsKey           = "search.operators"
	reportFormatKey        = "report.format"
	coverageCoordinatesKey = "report.coverage_coordinates"
	parseCommentsKey       = "parse.comments"
	tuiKey                 = "ui.tui"

	defaultReportsDir     = ".faultline"
	defaultRunParallel    = 0
	defaultRunTimeout     = 5 * time.Minute
	defaultInPlace        = false
	defaultRetryTimeouts  = true
	defaultMaxDuration    = time.Duration(0)
	defaultMaxMutations   = 0
	defaultStopOnSolution = true
	defaultBatchSize      = 1
	defaultStaleStreak    = 3
	defaultReportFormat   = "json"
	defaultCoverageCoords = false
	defaultParseComments  = false
	defaultTUI            = "auto"

	envPrefix = "FAULTLINE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".faultline.log"
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

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(runTimeoutKey, defaultRunTimeout.String())
	viper.SetDefault(inPlaceKey, defaultInPlace)
	viper.SetDefault(retryTimeoutsKey, defaultRetryTimeouts)
	viper.SetDefault(maxDurationKey, defaultMaxDuration.String())
	viper.SetDefault(maxMutationsKey, defaultMaxMutations)
	viper.SetDefault(stopOnSolutionKey, defaultStopOnSolution)
	viper.SetDefault(batchSizeKey, defaultBatchSize)
	viper.SetDefault(staleStreakKey, defaultStaleStreak)
	viper.SetDefault(operatorsKey, []string{})
	viper.SetDefault(reportFormatKey, defaultReportFormat)
	viper.SetDefault(coverageCoordinatesKey, defaultCoverageCoords)
	viper.SetDefault(parseCommentsKey, defaultParseComments)
	viper.SetDefault(tuiKey, defaultTUI)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
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

// useTUI resolves the ui.tui setting: "always", "never", or "auto" which
// follows whether stdout is a terminal.
func useTUI(value string, tty bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "always", "true", "on":
		return true
	case "never", "false", "off":
		return false
	}

	return tty
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
	if verbose {
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
