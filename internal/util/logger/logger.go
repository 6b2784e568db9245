package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log = zap.NewNop()

// Init builds the process logger for level (debug|info|warn|error) and installs it as zap's global.
func Init(level string) error {
	l, err := New(level)
	if err != nil {
		return err
	}

	Log = l
	zap.ReplaceGlobals(l)
	return nil
}

func New(level string) (*zap.Logger, error) {
	logLevel := zapcore.DebugLevel
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	config := zap.NewDevelopmentConfig()
	if logLevel > zapcore.DebugLevel {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(logLevel)
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	return config.Build()
}

func Sync() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}
