package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/entail/internal/compiler"
	"github.com/roach88/entail/internal/program"
)

// LoadMode controls how errors are handled during definition loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading program definitions.
type LoadResult struct {
	Program   *program.Program
	FileCount int // Number of CUE files found
}

// LoadError represents an error that occurred during definition loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeScanError  = "E002" // Directory scan error
	ErrCodeNoFiles    = "E003" // No CUE files found
	ErrCodeLoadFailed = "E004" // CUE load/build failed
	ErrCodeNotFound   = "E005" // Path not found
	ErrCodeBadScenario = "E006" // Scenario file invalid

	// Item validation errors
	ErrCodeMissingKind   = "E101" // Item declared without a kind
	ErrCodeInvalidKind   = "E102" // Invalid item kind
	ErrCodeBadRegistry   = "E103" // Registry invariant broken (duplicates etc.)

	// Rendering errors
	ErrCodeBadTerm       = "E110" // Term encoding invalid
	ErrCodeExpectFailed  = "E111" // Rendering did not match expectation
)

// LoadPrograms loads and compiles CUE program definitions from a directory.
// If mode is LoadModeFailFast, the directory is compiled as one instance
// and the first error is returned. If mode is LoadModeCollectAll, files
// are compiled individually so every broken file is reported.
func LoadPrograms(dir string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definitions directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing definitions directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := compiler.FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	result := &LoadResult{FileCount: len(cueFiles)}

	if mode == LoadModeFailFast {
		prog, err := compiler.LoadPath(dir)
		if err != nil {
			return result, []error{convertCompileError(err)}
		}
		result.Program = prog
		return result, nil
	}

	// Collect-all: compile each file on its own so one broken file does
	// not hide errors in the others, then merge the survivors.
	var errs []error
	var progs []*program.Program
	for _, file := range cueFiles {
		prog, err := compiler.LoadPath(file)
		if err != nil {
			errs = append(errs, convertCompileError(err))
			continue
		}
		progs = append(progs, prog)
	}
	merged, err := compiler.Merge(progs...)
	if err != nil {
		errs = append(errs, convertCompileError(err))
		merged = &program.Program{}
	}
	result.Program = merged
	return result, errs
}

// convertCompileError converts a compiler error to a LoadError with
// position info and a stable code.
func convertCompileError(err error) error {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    mapCompileErrorCode(compileErr),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}

func mapCompileErrorCode(err *compiler.CompileError) string {
	switch {
	case err.Message == "kind is required":
		return ErrCodeMissingKind
	case err.Field == "cue":
		return ErrCodeLoadFailed
	case err.Field == "item":
		return ErrCodeBadRegistry
	default:
		return ErrCodeInvalidKind
	}
}
