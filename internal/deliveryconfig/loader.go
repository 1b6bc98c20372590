package deliveryconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the delivery table stored at path. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON. Every failure matches
// ErrConfigLoad.
func Load(path string) (Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Reason: reasonNotExist}
		}
		return nil, &LoadError{Path: path, Reason: reasonNotRegular, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{Path: path, Reason: reasonNotRegular}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: reasonNotRegular, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: reasonIO, Err: err}
	}

	var table Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		table, err = decodeYAML(data)
	default:
		table, err = decodeJSON(data)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Reason: reasonMalformed, Err: err}
	}

	return table, nil
}

func decodeJSON(data []byte) (Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var table Table
	if err := dec.Decode(&table); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after top-level object")
	}
	if table == nil {
		return nil, errors.New("expected an object of product names")
	}
	return table, nil
}

func decodeYAML(data []byte) (Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, errors.New("expected a mapping of product names")
	}
	return table, nil
}
