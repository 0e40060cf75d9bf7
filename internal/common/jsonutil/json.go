package jsonutil

import (
	"encoding/json"
	"fmt"

	"github.com/deploymenttheory/go-journey-composer/internal/common/errors"
	"github.com/deploymenttheory/go-journey-composer/internal/common/fsutil"
)

// ReadJSONFile reads a JSON file and returns its raw contents after a
// well-formedness check
func ReadJSONFile(path string) ([]byte, error) {
	if !fsutil.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", errors.ErrFileNotFound, path)
	}

	data, err := fsutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrFileReadError, err.Error())
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFile, path)
	}
	return data, nil
}

// WriteJSONFile marshals a value to a JSON file with indentation
func WriteJSONFile(path string, value interface{}) error {
	if !fsutil.DirExists(fsutil.GetDir(path)) {
		return fmt.Errorf("%w: %s", errors.ErrDirNotFound, path)
	}

	jsonData, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s", errors.ErrFileWriteError, err.Error())
	}

	return fsutil.WriteFile(path, append(jsonData, '\n'), 0644)
}
