package config

const (
	defaultArchiveBaseURL   = "https://livetiming.formula1.com/static"
	defaultArchiveMirrorURL = "https://livetiming-mirror.fastf1.dev/static"
	defaultRequestDelayMS   = 200
	defaultMaxRetries       = 3
	defaultRetryBaseMS      = 1000
	defaultRequestTimeout   = 30
	defaultWarehousePath    = "~/.local/share/pitwall/warehouse.db"
	defaultInsertBatchSize  = 500
	defaultFirstSeason      = 2018
	defaultLastSeason       = 2026
	defaultLogFormat        = "auto"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Archive: Archive{
			BaseURL:        defaultArchiveBaseURL,
			MirrorURL:      defaultArchiveMirrorURL,
			RequestDelayMS: defaultRequestDelayMS,
			MaxRetries:     defaultMaxRetries,
			RetryBaseMS:    defaultRetryBaseMS,
			RequestTimeout: defaultRequestTimeout,
		},
		Warehouse: Warehouse{
			Path:            defaultWarehousePath,
			InsertBatchSize: defaultInsertBatchSize,
		},
		Seasons: Seasons{
			First: defaultFirstSeason,
			Last:  defaultLastSeason,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
