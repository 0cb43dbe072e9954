package main

import (
	"io"

	"github.com/itsatony/go-liquidsim"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// engineConfig holds the flags shared by commands that build an engine
type engineConfig struct {
	configPath  string
	snippetsDir string
	verbose     bool
}

// newLogger returns a console logger on stderr when verbose, else a no-op.
func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(stderr), zapcore.DebugLevel)
	return zap.New(core)
}

// buildEngine creates an engine with the render and capture tags. A
// snippets directory on the command line overrides the config file's.
// The returned closer is never nil.
func buildEngine(cfg engineConfig, logger *zap.Logger) (*liquidsim.Engine, func() error, error) {
	fileConfig := &liquidsim.Config{}
	if cfg.configPath != "" {
		loaded, err := liquidsim.LoadConfig(cfg.configPath)
		if err != nil {
			return nil, func() error { return nil }, err
		}
		fileConfig = loaded
	}
	if cfg.snippetsDir != "" {
		fileConfig.Postgres = liquidsim.PostgresConfig{}
		fileConfig.Snippets.Dir = cfg.snippetsDir
	}

	opts, closer, err := fileConfig.Options(logger)
	if err != nil {
		return nil, closer, err
	}

	engine, err := liquidsim.New(opts...)
	if err != nil {
		return nil, closer, err
	}
	if err := liquidsim.RegisterShopify(engine); err != nil {
		return nil, closer, err
	}
	return engine, closer, nil
}
