package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/entail/internal/harness"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions

	// Tokens allows overriding the session token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens harness.TokenGenerator
}

// RenderResult is the render command's JSON payload.
type RenderResult struct {
	Scenario   string              `json:"scenario"`
	Pass       bool                `json:"pass"`
	Renderings []harness.Rendering `json:"renderings"`
	Errors     []string            `json:"errors,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <scenario.yaml>",
		Short: "Render a scenario's terms as canonical text",
		Long: `Render every term in a scenario file and check inline expectations.

Program definitions referenced by the scenario are compiled from CUE and
bound for the duration of the run, so item ids resolve to their names.
Cases whose rendering differs from their expectation fail the run.

Example:
  entail render scenarios/canonical_forms.yaml
  entail render scenarios/canonical_forms.yaml --format json -v`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	return cmd
}

func runRender(opts *RenderOptions, scenarioPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	scenario, err := harness.LoadScenario(scenarioPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return outputRenderError(formatter, ErrCodeNotFound, err.Error())
		}
		return outputRenderError(formatter, ErrCodeBadScenario, err.Error())
	}
	formatter.VerboseLog("Loaded scenario %q with %d term case(s)", scenario.Name, len(scenario.Terms))

	h := harness.New()
	if opts.Tokens != nil {
		h.Tokens = opts.Tokens
	}
	if opts.Verbose {
		h.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	result, err := h.Run(scenario)
	if err != nil {
		var decodeErr *harness.DecodeError
		if errors.As(err, &decodeErr) {
			return outputRenderError(formatter, ErrCodeBadTerm, err.Error())
		}
		return outputRenderError(formatter, ErrCodeLoadFailed, err.Error())
	}

	return outputRenderResult(formatter, scenario.Name, result)
}

// outputRenderError reports a command-level failure (exit code 2).
func outputRenderError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputRenderResult writes the renderings and translates expectation
// mismatches into exit code 1.
func outputRenderResult(formatter *OutputFormatter, name string, result *harness.Result) error {
	if formatter.Format == "json" {
		payload := RenderResult{
			Scenario:   name,
			Pass:       result.Pass,
			Renderings: result.Renderings,
			Errors:     result.Errors,
		}
		if err := encodeJSON(formatter.Writer, CLIResponse{
			Status:       statusOf(result.Pass),
			Data:         payload,
			SessionToken: result.SessionToken,
		}); err != nil {
			return err
		}
	} else {
		if _, err := formatter.Writer.Write(result.ReportBytes()); err != nil {
			return err
		}
		for _, msg := range result.Errors {
			fmt.Fprintf(formatter.Writer, "FAIL %s\n", msg)
		}
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario failed with %d mismatch(es)", len(result.Errors)))
	}
	return nil
}

func statusOf(pass bool) string {
	if pass {
		return "ok"
	}
	return "error"
}
