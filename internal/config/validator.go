package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ValidationResult contains the results of configuration validation.
// Separates errors (blocking issues) from warnings (non-blocking issues).
type ValidationResult struct {
	// Errors contains validation failures that should block operations
	Errors []string

	// Warnings contains validation issues that should be logged but not block operations
	Warnings []string
}

// IsValid returns true if there are no validation errors.
// Warnings do not affect validity.
func (vr ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// HasWarnings returns true if there are any validation warnings.
func (vr ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// AddError adds an error message to the validation result.
func (vr *ValidationResult) AddError(msg string) {
	vr.Errors = append(vr.Errors, msg)
}

// AddWarning adds a warning message to the validation result.
func (vr *ValidationResult) AddWarning(msg string) {
	vr.Warnings = append(vr.Warnings, msg)
}

// Merge combines multiple validation results into a single result.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Errors = append(vr.Errors, other.Errors...)
	vr.Warnings = append(vr.Warnings, other.Warnings...)
}

// ValidateHour validates that an update hour is within 0-23.
func ValidateHour(hour int) ValidationResult {
	result := ValidationResult{}

	if hour < 0 || hour > 23 {
		result.AddError(fmt.Sprintf("update hour %d is out of range: must be between 0 and 23 (default: %d)", hour, DefaultHour))
	}

	return result
}

// ValidateTimezone validates that a timezone is a known IANA zone name.
// Uses the system tzdata; unknown names are errors because the value ends
// up verbatim inside the watchtower container environment.
func ValidateTimezone(tz string) ValidationResult {
	result := ValidationResult{}

	if tz == "" {
		result.AddError("timezone cannot be empty (default: " + DefaultTimezone + ")")
		return result
	}

	if _, err := time.LoadLocation(tz); err != nil {
		result.AddError(fmt.Sprintf("unknown timezone %q: %v", tz, err))
	}

	return result
}

// ValidateComposeFile validates that a file contains valid YAML syntax.
// Does not validate Docker Compose schema, only YAML parsing.
// Returns errors for invalid YAML, warnings for missing files.
func ValidateComposeFile(filePath string) ValidationResult {
	result := ValidationResult{}

	if filePath == "" {
		result.AddWarning("compose file path is empty")
		return result
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			result.AddWarning(fmt.Sprintf("compose file does not exist: %s", filePath))
		} else {
			result.AddError(fmt.Sprintf("failed to read compose file %s: %v", filePath, err))
		}
		return result
	}

	var content interface{}
	if err := yaml.Unmarshal(data, &content); err != nil {
		result.AddError(fmt.Sprintf("invalid YAML syntax in compose file %s: %v", filePath, err))
		return result
	}

	return result
}

// ValidatePath validates that a path exists and is a directory.
// Returns warnings (not errors) for inaccessible paths; the storage layer
// creates missing directories on demand.
func ValidatePath(path string) ValidationResult {
	result := ValidationResult{}

	if path == "" {
		result.AddWarning("path is empty")
		return result
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			result.AddWarning(fmt.Sprintf("path does not exist: %s", path))
		} else if os.IsPermission(err) {
			result.AddWarning(fmt.Sprintf("path is not readable: %s", path))
		} else {
			result.AddWarning(fmt.Sprintf("cannot access path %s: %v", path, err))
		}
		return result
	}

	if !info.IsDir() {
		result.AddWarning(fmt.Sprintf("path is not a directory: %s", path))
	}

	return result
}

// ValidateYAML checks that a document parses as YAML without touching the
// filesystem. Used as the in-process half of post-merge validation.
func ValidateYAML(document string) ValidationResult {
	result := ValidationResult{}

	var content interface{}
	if err := yaml.Unmarshal([]byte(document), &content); err != nil {
		result.AddError(fmt.Sprintf("merged document is not valid YAML: %v", err))
	}

	return result
}
