package orchestrator

import (
	"fmt"
	"strconv"
	"time"

	"dario.cat/mergo"
)

// MergeParams merges override parameters over defaults; the override
// wins on key collision. Neither input map is mutated.
func MergeParams(defaults, overrides map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(defaults)+len(overrides))
	if err := mergo.Merge(&merged, defaults); err != nil {
		return nil, fmt.Errorf("failed to merge default parameters: %w", err)
	}
	if err := mergo.Merge(&merged, overrides, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge override parameters: %w", err)
	}
	return merged, nil
}

// ResolveAutoParams replaces the sentinel value "auto" for the year and
// month parameters with the calendar year and English month name at the
// given time. Only unresolved values are touched, so an explicit
// override always wins.
func ResolveAutoParams(params map[string]string, now time.Time) map[string]string {
	resolved := make(map[string]string, len(params))
	for k, v := range params {
		resolved[k] = v
	}
	if resolved["year"] == "auto" {
		resolved["year"] = strconv.Itoa(now.Year())
	}
	if resolved["month"] == "auto" {
		resolved["month"] = now.Month().String()
	}
	return resolved
}
