package check_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-evalcheck"
	"github.com/ahrav/go-evalcheck/check"
	"github.com/ahrav/go-evalcheck/operator"
	"github.com/ahrav/go-evalcheck/plot"
	"github.com/ahrav/go-evalcheck/table"
)

// scoringStub serves canned per-metric results keyed by metric name and
// records every metric it was asked for.
func scoringStub(t *testing.T, results map[string][]map[string]any, metrics *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/evaluate", r.URL.Path)

		var req struct {
			Metric string           `json:"metric"`
			Data   []map[string]any `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*metrics = append(*metrics, req.Metric)

		res, ok := results[req.Metric]
		require.True(t, ok, "unexpected metric %q", req.Metric)
		require.Len(t, req.Data, len(res))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"results": res}))
	}))
}

func testSettings(endpoint string) *evalcheck.Settings {
	s := evalcheck.DefaultSettings()
	s.Endpoint = endpoint
	return s
}

func TestCheckRun_SingleOperator(t *testing.T) {
	var metrics []string
	srv := scoringStub(t, map[string][]map[string]any{
		"context_relevance": {
			{"score_context_relevance": 1.0},
			{"score_context_relevance": 0.0},
		},
	}, &metrics)
	defer srv.Close()

	bound, err := check.ContextRelevance().Bind(testSettings(srv.URL))
	require.NoError(t, err)
	defer func() { _ = bound.Close() }()

	tbl, err := table.FromColumns(
		table.Column{Name: "question", Values: []any{"what is go", "what is rust"}},
		table.Column{Name: "context", Values: []any{"go is a language", "cooking recipes"}},
	)
	require.NoError(t, err)

	out, err := bound.Run(context.Background(), tbl)
	require.NoError(t, err)

	scores, err := out.Column("score_context_relevance")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 0.0}, scores)
	assert.Equal(t, []string{"context_relevance"}, metrics)

	// Input table is untouched.
	assert.False(t, tbl.HasColumn("score_context_relevance"))
}

func TestCheckRun_OperatorsRunInOrder(t *testing.T) {
	var metrics []string
	srv := scoringStub(t, map[string][]map[string]any{
		"context_relevance": {{"score_context_relevance": 0.8}},
		"factual_accuracy":  {{"score_factual_accuracy": 0.6}},
	}, &metrics)
	defer srv.Close()

	c := check.New("rag_quality",
		[]operator.Operator{
			operator.NewContextRelevance(),
			operator.NewFactualAccuracy(),
		},
		[]plot.Spec{
			plot.Histogram(operator.ScoreContextRelevance),
			plot.Histogram(operator.ScoreFactualAccuracy),
		},
	)

	bound, err := c.Bind(testSettings(srv.URL))
	require.NoError(t, err)
	defer func() { _ = bound.Close() }()

	tbl, err := table.FromColumns(
		table.Column{Name: "question", Values: []any{"q"}},
		table.Column{Name: "context", Values: []any{"c"}},
		table.Column{Name: "response", Values: []any{"r"}},
	)
	require.NoError(t, err)

	out, err := bound.Run(context.Background(), tbl)
	require.NoError(t, err)

	assert.Equal(t, []string{"context_relevance", "factual_accuracy"}, metrics)
	assert.True(t, out.HasColumn(operator.ScoreContextRelevance))
	assert.True(t, out.HasColumn(operator.ScoreFactualAccuracy))
	assert.Equal(t, 1, out.Len())
}

func TestCheckRun_FirstFailureAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad metric","code":"invalid_metric"}}`))
	}))
	defer srv.Close()

	bound, err := check.ResponseFacts().Bind(testSettings(srv.URL))
	require.NoError(t, err)
	defer func() { _ = bound.Close() }()

	tbl, err := table.FromColumns(
		table.Column{Name: "question", Values: []any{"q"}},
		table.Column{Name: "context", Values: []any{"c"}},
		table.Column{Name: "response", Values: []any{"r"}},
	)
	require.NoError(t, err)

	_, err = bound.Run(context.Background(), tbl)
	require.Error(t, err)

	var evalErr *operator.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "factual_accuracy", evalErr.Op)
	assert.Contains(t, err.Error(), `check "score_factual_accuracy"`)
}

func TestCheckBind_FailFastNamesOperator(t *testing.T) {
	op := operator.NewResponseMatching()
	op.Method = "bleu"
	c := check.New("matching", []operator.Operator{op}, nil)

	_, err := c.Bind(testSettings("https://scoring.example.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, operator.ErrInvalidConfig)
	assert.Contains(t, err.Error(), `bind operator "response_matching"`)
}

func TestCheckBind_EmptyName(t *testing.T) {
	c := check.New("", []operator.Operator{operator.NewValidResponse()}, nil)
	_, err := c.Bind(testSettings("https://scoring.example.com"))
	assert.ErrorIs(t, err, check.ErrEmptyName)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	op := operator.NewContextRelevance()
	op.QuestionColumn = "user_query"
	op.OutputColumn = "relevance"
	original := check.New("custom_relevance",
		[]operator.Operator{op},
		[]plot.Spec{plot.Histogram("relevance")},
	)

	data, err := original.Encode()
	require.NoError(t, err)

	decoded, err := check.Decode(operator.Builtins(), data)
	require.NoError(t, err)

	assert.Equal(t, original.Name, decoded.Name)
	assert.Equal(t, original.Plots, decoded.Plots)
	require.Len(t, decoded.Operators, 1)

	got, ok := decoded.Operators[0].(*operator.ContextRelevance)
	require.True(t, ok)
	assert.Equal(t, "user_query", got.QuestionColumn)
	assert.Equal(t, "context", got.ContextColumn)
	assert.Equal(t, "relevance", got.OutputColumn)
}

func TestDecode_UnknownOperator(t *testing.T) {
	data := []byte(`{"name":"x","operators":[{"name":"no_such_operator","config":{}}]}`)
	_, err := check.Decode(operator.Builtins(), data)
	require.Error(t, err)
	assert.ErrorIs(t, err, operator.ErrUnknownOperator)
}

func TestBuiltins_PlotsReferenceOutputColumns(t *testing.T) {
	for name, c := range check.Builtins() {
		emitted := make(map[string]bool)
		for _, col := range c.OutputColumns() {
			emitted[col] = true
		}
		for _, p := range c.Plots {
			assert.True(t, emitted[p.Column],
				"check %s plots column %q no operator emits", name, p.Column)
		}
	}
}

func TestResponseMatching_MethodNamesColumn(t *testing.T) {
	c := check.ResponseMatching("rouge")
	assert.Equal(t, "rouge_score", c.Name)
	assert.Equal(t, []string{"rouge_score"}, c.OutputColumns())
}

func TestGuidelineAdherence_NamedGuideline(t *testing.T) {
	c := check.GuidelineAdherence("Always answer in English.", "english", "")
	assert.Equal(t, "english_adherence_score", c.Name)
	assert.Equal(t, []string{"score_english_adherence"}, c.OutputColumns())
	require.Len(t, c.Plots, 1)
	assert.Equal(t, "score_english_adherence", c.Plots[0].Column)
}

type stubBound struct {
	closed *bool
}

func (s stubBound) Run(_ context.Context, t table.Table) (table.Table, error) { return t, nil }

func (s stubBound) Close() error {
	*s.closed = true
	return nil
}

type stubOperator struct {
	name    string
	bindErr error
	closed  *bool
}

func (s stubOperator) Name() string            { return s.name }
func (s stubOperator) OutputColumns() []string { return nil }

func (s stubOperator) Bind(*evalcheck.Settings) (operator.Bound, error) {
	if s.bindErr != nil {
		return nil, s.bindErr
	}
	return stubBound{closed: s.closed}, nil
}

func TestBoundCheckClose_ClosesEveryOperator(t *testing.T) {
	var first, second bool
	c := check.New("closing", []operator.Operator{
		stubOperator{name: "first", closed: &first},
		stubOperator{name: "second", closed: &second},
	}, nil)

	bound, err := c.Bind(testSettings("https://scoring.example.com"))
	require.NoError(t, err)

	require.NoError(t, bound.Close())
	assert.True(t, first)
	assert.True(t, second)
}

func TestCheckBind_FailureReleasesEarlierOperators(t *testing.T) {
	var first bool
	c := check.New("partial", []operator.Operator{
		stubOperator{name: "first", closed: &first},
		stubOperator{name: "second", bindErr: errors.New("no client")},
	}, nil)

	_, err := c.Bind(testSettings("https://scoring.example.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `bind operator "second"`)
	assert.True(t, first, "operators bound before the failure must be released")
}
