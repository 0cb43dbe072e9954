package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-liquidsim"
	"github.com/spf13/pflag"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	templatePath string
	format       string
}

// validationOutput represents JSON output for validation
type validationOutput struct {
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	Tag    string `json:"tag,omitempty"`
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	engine := liquidsim.MustNew()
	liquidsim.MustRegisterShopify(engine)

	output := validationOutput{Valid: true}
	if _, err := engine.Parse(string(templateSource)); err != nil {
		output = describeParseError(err)
	}

	if cfg.format == OutputFormatJSON {
		jsonBytes, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(jsonBytes))
	} else {
		outputValidationText(output, stdout)
	}

	if !output.Valid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := pflag.NewFlagSet(CmdNameValidate, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &validateConfig{}

	fs.StringVarP(&cfg.templatePath, FlagTemplate, FlagTemplateShort, "", "")
	fs.StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// describeParseError flattens a syntax error's metadata for display
func describeParseError(err error) validationOutput {
	output := validationOutput{Valid: false, Error: err.Error()}

	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return output
	}
	if line, ok := customErr.GetMetadata(liquidsim.MetaKeyLine); ok {
		output.Line, _ = strconv.Atoi(line)
	}
	if column, ok := customErr.GetMetadata(liquidsim.MetaKeyColumn); ok {
		output.Column, _ = strconv.Atoi(column)
	}
	if tag, ok := customErr.GetMetadata(liquidsim.MetaKeyTag); ok {
		output.Tag = tag
	}
	return output
}

func outputValidationText(output validationOutput, stdout io.Writer) {
	if output.Valid {
		fmt.Fprintln(stdout, ValidationTextSuccess)
		return
	}

	fmt.Fprintf(stdout, ValidationTextFailure,
		output.Error, strconv.Itoa(output.Line), strconv.Itoa(output.Column))
	if output.Tag != "" {
		fmt.Fprintf(stdout, ValidationTextTag, output.Tag)
	}
	fmt.Fprint(stdout, FmtNewline)
}
