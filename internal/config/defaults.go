package config

const (
	defaultStatusFileName    = ".media_sort_status.json"
	defaultNewYearCutoffHour = 14
	defaultMaxRetryAttempts  = 3
	defaultRetryDelaySeconds = 1
	defaultSaveBatchSize     = 100
	defaultLogLevel          = "info"
	defaultLogFormat         = "console"
	defaultOutputDirSuffix   = "_sorted"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		StatusFile:        defaultStatusFileName,
		NewYearCutoffHour: defaultNewYearCutoffHour,
		MaxRetryAttempts:  defaultMaxRetryAttempts,
		RetryDelaySeconds: defaultRetryDelaySeconds,
		SaveBatchSize:     defaultSaveBatchSize,
		LogLevel:          defaultLogLevel,
		LogFormat:         defaultLogFormat,
	}
}
