package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/tidwall/jsonc"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// loadData decodes render data from a file or an inline string. Files may
// use JSONC comments and trailing commas.
func loadData(jsonStr, filePath string) (map[string]any, error) {
	var jsonData []byte

	switch {
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		jsonData = jsonc.ToJSON(data)
	case jsonStr != "":
		jsonData = []byte(jsonStr)
	default:
		return make(map[string]any), nil
	}

	var result map[string]any
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.New(ErrMsgDataNotObject)
	}

	return result, nil
}
