package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicScenario() *Scenario {
	return &Scenario{
		Name:        "basic",
		Description: "inline registry rendering",
		Items: []ItemDecl{
			{Name: "Vec", Kind: "struct"},
			{Name: "Iterator", Kind: "trait"},
		},
		Terms: []TermCase{
			{
				Label:  "vec_of_var",
				Term:   TermSpec{Apply: &ApplySpec{Name: NameSpec{Item: "Vec"}, Params: []ParamSpec{{Ty: &TermSpec{Var: uptr(0)}}}}},
				Expect: "Vec<?0>",
			},
			{
				Label: "bare_trait",
				Term:  TermSpec{Name: &NameSpec{Item: "Iterator"}},
			},
		},
	}
}

func uptr(v uint32) *uint32 { return &v }

func TestRunPasses(t *testing.T) {
	result, err := Run(basicScenario())
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Renderings, 2)
	assert.Equal(t, "Vec<?0>", result.Renderings[0].Text)
	assert.Equal(t, "Iterator", result.Renderings[1].Text)
	assert.NotEmpty(t, result.SessionToken)
}

func TestRunExpectationMismatch(t *testing.T) {
	scenario := basicScenario()
	scenario.Terms[0].Expect = "Vec<?1>"

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "vec_of_var")
	assert.False(t, result.Renderings[0].Pass)
	// The mismatching case is still reported with its actual rendering.
	assert.Equal(t, "Vec<?0>", result.Renderings[0].Text)
}

func TestRunBadTermIsAnError(t *testing.T) {
	scenario := basicScenario()
	scenario.Terms = append(scenario.Terms, TermCase{
		Label: "missing_item",
		Term:  TermSpec{Name: &NameSpec{Item: "Missing"}},
	})

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terms[2]")
	assert.Contains(t, err.Error(), "not declared")
}

func TestRunDuplicateRegistryItems(t *testing.T) {
	scenario := basicScenario()
	scenario.Items = append(scenario.Items, ItemDecl{Name: "Vec", Kind: "struct"})

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestFixedSessionToken(t *testing.T) {
	h := New()
	h.Tokens = FixedGenerator{Token: "session-1"}
	result, err := h.Run(basicScenario())
	require.NoError(t, err)
	assert.Equal(t, "session-1", result.SessionToken)
}

func TestUUIDv7TokensAreUnique(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestReportBytes(t *testing.T) {
	result := &Result{
		Pass:         true,
		SessionToken: "ignored-in-report",
		Renderings: []Rendering{
			{Label: "a", Text: "?0", Pass: true},
			{Label: "b", Text: "Vec as Iterator", Pass: true},
		},
	}
	want := "a: ?0\nb: Vec as Iterator\n"
	assert.Equal(t, want, string(result.ReportBytes()))
	assert.NotContains(t, string(result.ReportBytes()), "ignored-in-report")
}
