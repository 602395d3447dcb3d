package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level is the logging level as it appears in configuration files.
// The empty value is treated as INFO.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var zapLevels = map[Level]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

// ParseLevel parses a level from its string form, case-insensitively.
func ParseLevel(level string) (Level, error) {
	if level == "" {
		return LevelInfo, nil
	}

	l := Level(strings.ToUpper(level))
	if _, ok := zapLevels[l]; !ok {
		return "", fmt.Errorf("unknown log level: %s", level)
	}
	return l, nil
}

// Validate validates whether this Level is valid.
func (l Level) Validate() error {
	_, err := ParseLevel(string(l))
	return err
}

// String implements fmt.Stringer.
func (l Level) String() string { return strings.ToUpper(string(l)) }

func (l Level) toZapCoreLevel() (zapcore.Level, error) {
	parsed, err := ParseLevel(string(l))
	if err != nil {
		return zapcore.InfoLevel, err
	}
	return zapLevels[parsed], nil
}

func (c *Config) toZapCoreLevel() (zapcore.Level, error) {
	if c.Debug {
		return zapcore.DebugLevel, nil
	}
	return c.Level.toZapCoreLevel()
}
