package internal

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LevelSet map[zapcore.Level]bool

func (ls LevelSet) Enabled(l zapcore.Level) bool {
	return ls[l]
}

// ConsoleLevels returns the stdout levels for a run. Debug output is opt-in.
func ConsoleLevels(debug bool) LevelSet {
	levels := LevelSet{zapcore.InfoLevel: true}
	if debug {
		levels[zapcore.DebugLevel] = true
	}
	return levels
}

// InitLogger installs the global console logger: allowed levels go to stdout,
// WARN and above always go to stderr. Messages are printed bare.
func InitLogger(levels LevelSet) *zap.Logger {
	logger := NewConsoleLogger(os.Stdout, os.Stderr, levels)
	zap.ReplaceGlobals(logger)
	return logger
}

func NewConsoleLogger(stdout, stderr io.Writer, levels LevelSet) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:   "msg",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	stdoutCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(stdout), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l < zapcore.WarnLevel && levels.Enabled(l)
	}))

	stderrCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(stderr), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	}))

	return zap.New(zapcore.NewTee(stdoutCore, stderrCore))
}
