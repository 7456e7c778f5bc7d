package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, result RunResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, result.RunID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *JSONPersister) Load(ctx context.Context, runID string) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	fn := filepath.Join(p.dir, runID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RunResult{}, fmt.Errorf("run %q: %w", runID, os.ErrNotExist)
		}
		return RunResult{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var result RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return RunResult{}, fmt.Errorf("json unmarshal: %w", err)
	}
	result.RunID = runID
	if err := result.Scenario.Validate(); err != nil {
		return RunResult{}, fmt.Errorf("scenario validation after load: %w", err)
	}
	return result, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, result RunResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, result.RunID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *YAMLPersister) Load(ctx context.Context, runID string) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	fn := filepath.Join(p.dir, runID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RunResult{}, fmt.Errorf("run %q: %w", runID, os.ErrNotExist)
		}
		return RunResult{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var result RunResult
	if err := yaml.Unmarshal(data, &result); err != nil {
		return RunResult{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	result.RunID = runID
	if err := result.Scenario.Validate(); err != nil {
		return RunResult{}, fmt.Errorf("scenario validation after load: %w", err)
	}
	return result, nil
}
