// File: pkg/logging/logging.go
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance
var Logger *zap.Logger = zap.NewNop()

// New builds a console logger writing to stderr. Verbose uses the development
// config at debug level; otherwise only warnings and errors are shown.
func New(verbose bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.InitialFields = map[string]interface{}{
			"appName":    appName,
			"appVersion": appVersion,
		}
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.DisableCaller = true
		cfg.EncoderConfig.TimeKey = ""
		cfg.EncoderConfig.NameKey = ""
	}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return cfg.Build()
}

// Setup builds the logger with New and installs it as the package and zap global.
func Setup(verbose bool, appName, appVersion string) error {
	logger, err := New(verbose, appName, appVersion)
	if err != nil {
		Logger = zap.NewExample()
		return err
	}
	Logger = logger
	zap.ReplaceGlobals(Logger)
	return nil
}
