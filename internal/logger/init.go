package logger

import (
	"github.com/Backland-Labs/quack/internal/config"
)

// InitializeFromConfig sets up the global logger. QUACK_LOG_LEVEL wins over
// the configured verbosity.
func InitializeFromConfig(cfg *config.Config) {
	logCfg := ConfigFromEnv()
	if !logCfg.LevelSet {
		switch {
		case cfg.IsDebug():
			logCfg.Level = DebugLevel
		case cfg.IsVerbose():
			logCfg.Level = InfoLevel
		default:
			logCfg.Level = ErrorLevel
		}
	}

	if zapLogger, err := NewZapLoggerFromConfig(logCfg); err == nil {
		SetLogger(&Logger{zap: zapLogger})
		return
	}
	SetLogger(New(logCfg.Level))
}

// WithField is a convenience function that returns a logger with a field
func WithField(key string, value interface{}) *Logger {
	return GetLogger().WithField(key, value)
}

// WithFields is a convenience function that returns a logger with fields
func WithFields(fields map[string]interface{}) *Logger {
	return GetLogger().WithFields(fields)
}
