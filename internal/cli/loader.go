package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jammie/rdf/internal/harness"
)

// LoadMode controls how errors are handled during scenario loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadedScenario pairs a scenario with the file it came from.
type LoadedScenario struct {
	Path     string
	Scenario *harness.Scenario
}

// LoadError represents an error that occurred during scenario loading.
type LoadError struct {
	Code    string
	Message string
	Path    string
	Pos     string // file:line:col from the schema, if available
}

func (e *LoadError) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadScenarios loads every scenario named by paths. A path may be a file or
// a directory, which is searched recursively for .yaml, .yml and .cue files.
// filter, if set, is a glob matched against the file name without extension.
func LoadScenarios(paths []string, filter string, mode LoadMode) ([]LoadedScenario, []error) {
	var errs []error

	files, err := FindScenarioFiles(paths, filter)
	if err != nil {
		return nil, []error{err}
	}
	if len(files) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no scenario files found in %s", strings.Join(paths, ", "))}}
	}

	loaded := make([]LoadedScenario, 0, len(files))
	for _, path := range files {
		scenario, err := harness.LoadScenario(path)
		if err != nil {
			errs = append(errs, convertScenarioError(err, path))
			if mode == LoadModeFailFast {
				return loaded, errs
			}
			continue
		}
		loaded = append(loaded, LoadedScenario{Path: path, Scenario: scenario})
	}

	return loaded, errs
}

// FindScenarioFiles expands paths into a sorted list of scenario files.
func FindScenarioFiles(paths []string, filter string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", root)}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing %s: %v", root, err)}
		}

		if !info.IsDir() {
			ok, err := matchScenario(root, filter)
			if err != nil {
				return nil, err
			}
			if ok {
				files = append(files, root)
			}
			continue
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			ok, err := matchScenario(path, filter)
			if ok {
				files = append(files, path)
			}
			return err
		})
		if err != nil {
			var loadErr *LoadError
			if errors.As(err, &loadErr) {
				return nil, loadErr
			}
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning %s: %v", root, err)}
		}
	}

	sort.Strings(files)
	return files, nil
}

func matchScenario(path, filter string) (bool, error) {
	ext := filepath.Ext(path)
	switch ext {
	case ".yaml", ".yml", ".cue":
	default:
		return false, nil
	}
	if filter == "" {
		return true, nil
	}
	name := strings.TrimSuffix(filepath.Base(path), ext)
	matched, err := filepath.Match(filter, name)
	if err != nil {
		return false, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("invalid filter pattern: %v", err)}
	}
	return matched, nil
}

// convertScenarioError converts a harness error to a LoadError with position info.
func convertScenarioError(err error, path string) *LoadError {
	var schemaErr *harness.SchemaError
	if errors.As(err, &schemaErr) {
		return &LoadError{
			Code:    ErrCodeSchema,
			Message: schemaErr.Message,
			Path:    path,
			Pos:     schemaErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeLoadFailed,
		Message: err.Error(),
		Path:    path,
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No scenario files found
	ErrCodeLoadFailed  = "E004" // Scenario read or parse failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeSchema      = "E006" // Scenario does not satisfy the schema
	ErrCodeWriteFailed = "E007" // File write error

	// Literal errors
	ErrCodeInvalidLiteral = "E101" // Literal is not valid for its datatype
	ErrCodeNoValue        = "E102" // Literal has no value to canonicalize
	ErrCodeNotEqual       = "E103" // Literals are not equal

	// Store errors
	ErrCodeStore = "E201" // Store operation failed
	ErrCodeDrift = "E202" // Replay found drift

	ErrCodeTestFailed = "E301" // One or more scenarios failed
)
