package registry

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"

	"github.com/finbooks/reportctl/internal/logger"
)

// Errors raised while building the report catalog. These are
// configuration errors: a single bad entry fails the whole load so that
// a typo cannot silently drop a report.
var (
	ErrEmptyReportID       = errors.New("report id must not be empty")
	ErrDuplicateReportID   = errors.New("duplicate report id")
	ErrEmptyEntryPoint     = errors.New("entry point must not be empty")
	ErrInvalidExecutorType = errors.New("invalid executor type")
	ErrInvalidStatus       = errors.New("invalid status")
)

// definition is the raw shape of the registry document.
type definition struct {
	Reports []reportDef `mapstructure:"reports"`
}

type reportDef struct {
	ID                string            `mapstructure:"id"`
	Name              string            `mapstructure:"name"`
	Category          string            `mapstructure:"category"`
	Executor          string            `mapstructure:"executor"`
	EntryPoint        string            `mapstructure:"entryPoint"`
	Args              []string          `mapstructure:"args"`
	Dependencies      []string          `mapstructure:"dependencies"`
	DefaultParameters map[string]string `mapstructure:"defaultParameters"`
	Status            string            `mapstructure:"status"`
}

// Load reads the report registry from the given YAML file. A missing or
// malformed file yields an empty catalog with a logged warning rather
// than an error, since the host application must still start and show
// "no reports available".
func Load(ctx context.Context, path string) *Registry {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn(ctx, "Registry file not readable, using empty catalog", "path", path, "err", err)
		return New(nil)
	}
	reg, err := LoadYAML(ctx, data)
	if err != nil {
		logger.Warn(ctx, "Registry file malformed, using empty catalog", "path", path, "err", err)
		return New(nil)
	}
	return reg
}

// LoadYAML builds a registry from raw YAML data. Unlike Load it returns
// errors, so callers that want strict validation (and tests) can use it
// directly.
func LoadYAML(_ context.Context, data []byte) (*Registry, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}

	def, err := decode(raw)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(def.Reports))
	seen := make(map[string]struct{}, len(def.Reports))
	for _, rd := range def.Reports {
		report, err := buildReport(rd)
		if err != nil {
			return nil, fmt.Errorf("report %q: %w", rd.ID, err)
		}
		if _, ok := seen[report.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReportID, report.ID)
		}
		seen[report.ID] = struct{}{}
		reports = append(reports, report)
	}
	return New(reports), nil
}

// decode decodes the raw map into the definition struct. Unknown keys
// are an error to catch typos in the registry file early.
func decode(raw map[string]any) (*definition, error) {
	var def definition
	md, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &def,
	})
	if err != nil {
		return nil, err
	}
	if err := md.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}
	return &def, nil
}

func buildReport(rd reportDef) (Report, error) {
	if rd.ID == "" {
		return Report{}, ErrEmptyReportID
	}
	if rd.EntryPoint == "" {
		return Report{}, ErrEmptyEntryPoint
	}

	executorType := ExecutorType(rd.Executor)
	if rd.Executor == "" {
		executorType = ExecutorTypeJobScript
	}
	if !executorType.IsValid() {
		return Report{}, fmt.Errorf("%w: %s", ErrInvalidExecutorType, rd.Executor)
	}

	status := Status(rd.Status)
	if rd.Status == "" {
		status = StatusActive
	}
	if !status.IsValid() {
		return Report{}, fmt.Errorf("%w: %s", ErrInvalidStatus, rd.Status)
	}

	name := rd.Name
	if name == "" {
		name = rd.ID
	}

	return Report{
		ID:                rd.ID,
		Name:              name,
		Category:          rd.Category,
		ExecutorType:      executorType,
		EntryPoint:        rd.EntryPoint,
		Args:              rd.Args,
		Dependencies:      rd.Dependencies,
		DefaultParameters: rd.DefaultParameters,
		Status:            status,
	}, nil
}
