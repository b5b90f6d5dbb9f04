package domain

import (
	"fmt"
	"strings"
	"time"
)

// ValidationResult is the outcome of validating a single record. Errors are
// ordered by field declaration order and phrased for direct display to the
// caller; a failed validation is data, never a fault.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

func validation(errs []string) ValidationResult {
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func requireText(errs []string, field, value string) []string {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, fmt.Sprintf("%s is required", field))
	}
	return errs
}

func requireNonNegative(errs []string, field string, value float64) []string {
	if value < 0 {
		errs = append(errs, fmt.Sprintf("%s must be a non-negative number", field))
	}
	return errs
}

func requireRange(errs []string, field string, value, min, max float64) []string {
	if value < min || value > max {
		errs = append(errs, fmt.Sprintf("%s must be between %g and %g", field, min, max))
	}
	return errs
}

func requireOneOf[T ~string](errs []string, field string, value T, allowed []T) []string {
	for _, candidate := range allowed {
		if value == candidate {
			return errs
		}
	}
	names := make([]string, 0, len(allowed))
	for _, candidate := range allowed {
		names = append(names, string(candidate))
	}
	return append(errs, fmt.Sprintf("%s must be one of: %s", field, strings.Join(names, ", ")))
}

func contains[T ~string](allowed []T, value T) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
