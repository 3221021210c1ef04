package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/entail/internal/compiler"
	"github.com/roach88/entail/internal/ir"
	"github.com/roach88/entail/internal/program"
)

// Harness executes rendering scenarios.
type Harness struct {
	// Tokens stamps each run with a session token for report correlation.
	Tokens TokenGenerator

	// Logger receives per-case diagnostics. Defaults to discard.
	Logger *slog.Logger
}

// New returns a Harness with production defaults: UUIDv7 session tokens and
// no logging.
func New() *Harness {
	return &Harness{
		Tokens: UUIDv7Generator{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Rendering is the outcome of one term case.
type Rendering struct {
	Label  string `json:"label"`
	Text   string `json:"text"`
	Expect string `json:"expect,omitempty"`
	Pass   bool   `json:"pass"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every case with an expectation matched.
	Pass bool `json:"pass"`

	// SessionToken correlates this run in reports. It is excluded from
	// golden bytes: tokens are per-run, renderings are not.
	SessionToken string `json:"session_token"`

	// Renderings holds every case outcome in scenario order.
	Renderings []Rendering `json:"renderings"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// ReportBytes renders the deterministic report used for golden comparison:
// one `label: rendering` line per case, scenario order, no session token.
func (r *Result) ReportBytes() []byte {
	var sb strings.Builder
	for _, rend := range r.Renderings {
		sb.WriteString(rend.Label)
		sb.WriteString(": ")
		sb.WriteString(rend.Text)
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}

// Run executes a scenario with default settings.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run builds the scenario registry, renders every term case under it, and
// checks inline expectations. A malformed scenario (bad registry, bad term
// encoding) is an error; an expectation mismatch is a failed Result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	reg, err := buildRegistry(scenario)
	if err != nil {
		return nil, err
	}

	result := &Result{Pass: true, SessionToken: h.Tokens.Generate()}
	ctx := ir.WithResolver(context.Background(), reg)

	for i, tc := range scenario.Terms {
		term, err := tc.Term.build(reg, fmt.Sprintf("terms[%d]", i))
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		text := ir.Sprint(ctx, term)
		rend := Rendering{Label: tc.Label, Text: text, Expect: tc.Expect, Pass: true}
		if tc.Expect != "" && tc.Expect != text {
			rend.Pass = false
			result.AddError(fmt.Sprintf("%s: expected %q, got %q", tc.Label, tc.Expect, text))
		}
		h.Logger.Info("rendered term",
			"scenario", scenario.Name,
			"label", tc.Label,
			"text", text,
			"pass", rend.Pass,
		)
		result.Renderings = append(result.Renderings, rend)
	}
	return result, nil
}

// buildRegistry compiles the scenario's CUE definitions and appends its
// inline items, sharing one id space in declaration order.
func buildRegistry(scenario *Scenario) (*program.Program, error) {
	progs := make([]*program.Program, 0, len(scenario.Programs)+1)
	for _, path := range scenario.Programs {
		prog, err := compiler.LoadPath(path)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: loading %s: %w", scenario.Name, path, err)
		}
		progs = append(progs, prog)
	}
	if len(scenario.Items) > 0 {
		inline := &program.Program{}
		for _, decl := range scenario.Items {
			inline.Add(decl.Name, program.Kind(decl.Kind))
		}
		progs = append(progs, inline)
	}
	reg, err := compiler.Merge(progs...)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return reg, nil
}
