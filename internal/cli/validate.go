package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cuelang.org/go/cue/token"

	"github.com/roach88/entail/internal/program"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool              `json:"valid"`
	FileCount int               `json:"file_count"`
	Items     []ItemSummary     `json:"items,omitempty"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

// ItemSummary describes one registry item for validation reports.
type ItemSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ValidationError is one reportable problem in a definitions directory.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	CollectAll bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <defs-dir>",
		Short: "Validate program definitions",
		Long: `Validate CUE program definitions without rendering anything.

Checks syntax, the required kind field of every item, and registry
consistency (no duplicate names). With --collect-all, every file is
compiled individually so one broken file does not hide the rest.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.CollectAll, "collect-all", false, "report every error instead of stopping at the first")

	return cmd
}

func runValidate(opts *ValidateOptions, defsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	mode := LoadModeFailFast
	if opts.CollectAll {
		mode = LoadModeCollectAll
	}

	loadResult, loadErrors := LoadPrograms(defsDir, mode)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message)
		}
		return outputValidateError(formatter, ErrCodeGeneric, loadErrors[0].Error())
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, defsDir)

	var validationErrors []ValidationError
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			validationErrors = append(validationErrors, ValidationError{
				Code:    loadErr.Code,
				Message: loadErr.Message,
				File:    fileFromPos(loadErr.Pos),
				Line:    lineFromPos(loadErr.Pos),
			})
			continue
		}
		validationErrors = append(validationErrors, ValidationError{
			Code:    ErrCodeGeneric,
			Message: err.Error(),
		})
	}

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, loadResult, validationErrors)
	}

	return outputValidateSuccess(formatter, loadResult)
}

// fileFromPos extracts the filename from a token.Pos.
func fileFromPos(pos token.Pos) string {
	if pos.IsValid() {
		return pos.Filename()
	}
	return ""
}

// lineFromPos extracts the line number from a token.Pos.
func lineFromPos(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}

// itemSummaries flattens a registry for reports, in id order.
func itemSummaries(prog *program.Program) []ItemSummary {
	if prog == nil {
		return nil
	}
	items := make([]ItemSummary, 0, len(prog.Items))
	for id, item := range prog.Items {
		items = append(items, ItemSummary{ID: id, Name: item.Name, Kind: string(item.Kind)})
	}
	return items
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, loadResult *LoadResult) error {
	items := itemSummaries(loadResult.Program)

	if formatter.Format == "json" {
		result := ValidationResult{Valid: true, FileCount: loadResult.FileCount, Items: items}
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d item(s) valid across %d file(s)\n", len(items), loadResult.FileCount)
	for _, item := range items {
		fmt.Fprintf(formatter.Writer, "  %d  %s (%s)\n", item.ID, item.Name, item.Kind)
	}
	return nil
}

// outputValidateError outputs a single command-level error (exit code 2).
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs validation errors (exit code 1).
func outputValidationErrors(formatter *OutputFormatter, loadResult *LoadResult, errs []ValidationError) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:     false,
			FileCount: loadResult.FileCount,
			Items:     itemSummaries(loadResult.Program),
			Errors:    errs,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		if err := encodeJSON(formatter.Writer, response); err != nil {
			return err
		}

		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.File != "" {
			fmt.Fprintf(formatter.Writer, "%s:%d\n", err.File, err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
