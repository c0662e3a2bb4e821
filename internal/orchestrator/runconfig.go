package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finbooks/reportctl/internal/fileutil"
)

// RunConfig is the per-run configuration document written before each
// execution. Notebook jobs that have no direct parameter-injection
// channel read their parameters from this file instead.
type RunConfig struct {
	Year           string `json:"year"`
	Month          string `json:"month"`
	DataPath       string `json:"data_path"`
	OutputBasePath string `json:"output_base_path"`
}

// WriteRunConfig writes the run configuration as JSON to the given path.
func WriteRunConfig(path string, cfg RunConfig) error {
	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run config: %w", err)
	}
	return nil
}
