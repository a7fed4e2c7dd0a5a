// Copyright 2022 AxionDB Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig drives the engine logger. Zero values fall back to a console
// logger on stderr at info level.
type LogConfig struct {
	// Level is a zapcore level name: debug, info, warn, error, fatal.
	Level string `toml:"level"`
	// Format is console or json.
	Format string `toml:"format"`
	// Filename enables rotated file output when non-empty.
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max-size"`
	MaxDays    int    `toml:"max-days"`
	MaxBackups int    `toml:"max-backups"`
}

func (cfg *LogConfig) getLevel() zap.AtomicLevel {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	return zap.NewAtomicLevelAt(level)
}

func (cfg *LogConfig) getEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if cfg.Format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func (cfg *LogConfig) getSinks() []zapcore.WriteSyncer {
	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}
	if cfg.Filename != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxDays,
			MaxBackups: cfg.MaxBackups,
		}))
	}
	return sinks
}

func (cfg *LogConfig) getOptions() []zap.Option {
	return []zap.Option{zap.AddStacktrace(zapcore.FatalLevel), zap.AddCaller()}
}

var (
	mux          sync.Mutex
	globalLogger *zap.Logger
)

// SetupAxLogger replaces the global logger with one built from cfg.
func SetupAxLogger(cfg *LogConfig) {
	core := zapcore.NewCore(
		cfg.getEncoder(),
		zapcore.NewMultiWriteSyncer(cfg.getSinks()...),
		cfg.getLevel(),
	)
	logger := zap.New(core, cfg.getOptions()...)

	mux.Lock()
	defer mux.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the process logger, building the default console
// logger on first use.
func GetGlobalLogger() *zap.Logger {
	mux.Lock()
	defer mux.Unlock()
	if globalLogger == nil {
		cfg := &LogConfig{Level: "info", Format: "console"}
		core := zapcore.NewCore(
			cfg.getEncoder(),
			zapcore.NewMultiWriteSyncer(cfg.getSinks()...),
			cfg.getLevel(),
		)
		globalLogger = zap.New(core, cfg.getOptions()...)
	}
	return globalLogger
}
