package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath string
	dataJSON     string
	dataFilePath string
	outputPath   string
	engine       engineConfig
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	data, err := loadData(cfg.dataJSON, cfg.dataFilePath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidJSON, err)
		return ExitCodeInputError
	}

	logger := newLogger(cfg.engine.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	engine, closer, err := buildEngine(cfg.engine, logger)
	defer func() { _ = closer() }()
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgEngineFailed, err)
		return ExitCodeError
	}

	result, err := engine.Render(context.Background(), string(templateSource), data)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := pflag.NewFlagSet(CmdNameRender, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &renderConfig{}

	fs.StringVarP(&cfg.templatePath, FlagTemplate, FlagTemplateShort, "", "")
	fs.StringVarP(&cfg.dataJSON, FlagData, FlagDataShort, "", "")
	fs.StringVarP(&cfg.dataFilePath, FlagDataFile, FlagDataFileShort, "", "")
	fs.StringVarP(&cfg.engine.snippetsDir, FlagSnippets, FlagSnippetsShort, "", "")
	fs.StringVarP(&cfg.engine.configPath, FlagConfig, FlagConfigShort, "", "")
	fs.StringVarP(&cfg.outputPath, FlagOutput, FlagOutputShort, FlagDefaultOutput, "")
	fs.BoolVarP(&cfg.engine.verbose, FlagVerbose, FlagVerboseShort, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}
