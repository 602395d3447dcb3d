package logging

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap logger from the given config. Logs go to the
// lumberjack-rotated file named by the config and, unless console output is
// disabled, to stdout as well.
func NewLogger(config *Config) (*zap.Logger, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging config: %w", err)
	}

	encoder, level, err := constructEncoderAndLevel(config)
	if err != nil {
		return nil, fmt.Errorf("constructing log encoder and level: %w", err)
	}

	logFile := zapcore.AddSync(&config.Logger)
	logCore := zapcore.NewCore(encoder, logFile, level)

	var core zapcore.Core
	if config.DisableConsoleOutput {
		core = logCore
	} else {
		console := zapcore.Lock(os.Stdout)
		consoleCore := zapcore.NewCore(encoder, console, level)
		core = zapcore.NewTee(logCore, consoleCore)
	}

	// Skip one frame so call sites show up instead of the Interface wrappers.
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

func constructEncoderAndLevel(config *Config) (zapcore.Encoder, zapcore.Level, error) {
	zapLevel, err := config.toZapCoreLevel()
	if err != nil {
		return nil, zapLevel, err
	}

	// Note that lumberjack writes to a temp file when no filename is
	// configured, so even debug runs silently produce a log file somewhere.
	encoderConfig := getZapEncoderConfig(config)
	if config.Debug {
		return zapcore.NewConsoleEncoder(encoderConfig), zapLevel, nil
	}

	return zapcore.NewJSONEncoder(encoderConfig), zapLevel, nil
}

func getZapEncoderConfig(config *Config) zapcore.EncoderConfig {
	encoderConfig := zap.NewProductionEncoderConfig()
	if config.Debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	if config.EncodeTimeAsRFC3339Nano {
		encoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	}

	return encoderConfig
}

// NewTestLogger returns a logger suitable for unit tests.
func NewTestLogger() Interface {
	return ForLogrus(logrus.NewEntry(logrus.New()))
}
