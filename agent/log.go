package agent

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mimosa-flytrap/flytrap/internal"
)

type Logs struct {
	Dir       string
	HumanPath string
	DebugPath string

	HumanLogger *zap.SugaredLogger
	DebugLogger *zap.SugaredLogger

	humanZap  *zap.Logger
	debugZap  *zap.Logger
	humanFile *os.File
	debugFile *os.File
}

func (l *Logs) Close() {
	if l.humanZap != nil {
		_ = l.humanZap.Sync()
	}
	if l.debugZap != nil {
		_ = l.debugZap.Sync()
	}
	if l.humanFile != nil {
		_ = l.humanFile.Close()
	}
	if l.debugFile != nil {
		_ = l.debugFile.Close()
	}
}

// NewLogs opens the transcript and debug logs under the cache home. Both
// files are truncated on every run.
func NewLogs() (*Logs, error) {
	cacheHome, err := internal.GetCacheHome()
	if err != nil {
		return nil, err
	}
	return NewLogsIn(filepath.Join(cacheHome, "agent"))
}

func NewLogsIn(dir string) (*Logs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	humanPath := filepath.Join(dir, "agent.transcript.log")
	debugPath := filepath.Join(dir, "agent.debug.jsonl")

	humanZap, humanFile, err := newFileLogger(humanPath, zapcore.InfoLevel, false)
	if err != nil {
		return nil, err
	}

	debugZap, debugFile, err := newFileLogger(debugPath, zapcore.DebugLevel, true)
	if err != nil {
		_ = humanZap.Sync()
		_ = humanFile.Close()
		return nil, err
	}

	return &Logs{
		Dir:         dir,
		HumanPath:   humanPath,
		DebugPath:   debugPath,
		HumanLogger: humanZap.Sugar(),
		DebugLogger: debugZap.Sugar(),
		humanZap:    humanZap,
		debugZap:    debugZap,
		humanFile:   humanFile,
		debugFile:   debugFile,
	}, nil
}

func newFileLogger(path string, level zapcore.Level, json bool) (*zap.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if json {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(f), level)), f, nil
}
