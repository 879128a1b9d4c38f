package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ironsheep/scan-diagrams/internal/errors"
)

// LoadProject reads a project from a .toml or .json file.
func LoadProject(path string) (*Project, error) {
	var p Project
	if err := decodeFile(path, &p); err != nil {
		return nil, err
	}
	p.normalize()
	return &p, nil
}

// LoadRuleSet reads rules and groups from a .toml or .json file.
func LoadRuleSet(path string) (*RuleSet, error) {
	var rs RuleSet
	if err := decodeFile(path, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// DecodeProject parses a project from JSON bytes.
func DecodeProject(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse project")
	}
	p.normalize()
	return &p, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to read %s", path)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to read %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse %s", path)
		}
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse %s", path)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported file type %q (want .toml or .json)", ext)
	}
	return nil
}
