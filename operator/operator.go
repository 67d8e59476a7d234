// Package operator provides the column-operator contract and the built-in
// operators that score LLM interaction records through the remote scoring
// service.
//
// An operator value is pure configuration: which table columns it reads,
// which column(s) it writes, and the metric-specific parameters it forwards.
// Bind is the single side-effecting step; it validates the configuration,
// requires settings, and acquires an exclusively owned remote client. The
// resulting Bound value can run any number of times on different tables,
// each invocation independent of the last, and must be closed when no
// longer needed to release the client.
//
// Run never mutates its input table. It projects the declared input columns
// into flat records under the metric's canonical field names, submits them
// to the scoring service, and merges the returned score column(s) onto the
// original table atomically: either every output column is attached or the
// call fails and the input table is untouched.
package operator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-evalcheck"
	"github.com/ahrav/go-evalcheck/internal/remote"
	"github.com/ahrav/go-evalcheck/table"
)

// validate is the package-level validator instance used for operator
// configuration validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Operator is a configured but unbound column operator. Implementations are
// plain structs with defaults supplied by their NewXxx constructors;
// constructing one has no side effects.
type Operator interface {
	// Name returns the operator's stable registry identifier.
	Name() string

	// OutputColumns returns the column names Run will add to the table,
	// given the current configuration.
	OutputColumns() []string

	// Bind validates the configuration and acquires a remote scoring
	// client scoped to the given settings. It fails with a *ConfigError
	// when settings is nil or the configuration is invalid.
	Bind(settings *evalcheck.Settings) (Bound, error)
}

// Bound is an operator bound to a remote scoring client, ready to run.
// The caller owns the bound operator and must Close it to release the
// client's resources.
type Bound interface {
	// Run scores the table and returns it with the operator's output
	// column(s) attached. The input table is never modified; row count and
	// row order are preserved. Failures return a *EvalError and leave the
	// caller's table untouched.
	Run(ctx context.Context, t table.Table) (table.Table, error)

	// Close releases the remote scoring client acquired at Bind.
	Close() error
}

// evaluator is the slice of the remote client the bound operator needs.
// Narrowed to an interface so tests can substitute a stub service.
type evaluator interface {
	Evaluate(ctx context.Context, metric string, records []map[string]any, params map[string]any) ([]map[string]any, error)
}

// binding describes how one operator maps between table columns and the
// metric's canonical wire fields.
type binding struct {
	// metric is the remote metric identifier.
	metric string

	// inputs maps each canonical request field to the configured source
	// column it is read from.
	inputs map[string]string

	// outputs maps each canonical result field to the configured column it
	// is written to.
	outputs map[string]string

	// params carries metric-specific parameters sent with every request.
	params map[string]any
}

// bound is the shared Bound implementation behind every built-in operator.
type bound struct {
	op     string
	client evaluator
	closer io.Closer
	logger *slog.Logger
	binding
}

// bind validates the operator's configuration and constructs its bound form.
// Configuration errors surface here, before any network interaction.
func bind(op Operator, settings *evalcheck.Settings, b binding) (Bound, error) {
	if err := validate.Struct(op); err != nil {
		return nil, &ConfigError{Op: op.Name(), Err: fmt.Errorf("%w: %w", ErrInvalidConfig, err)}
	}
	if settings == nil {
		return nil, &ConfigError{Op: op.Name(), Err: ErrNilSettings}
	}
	if err := settings.Validate(); err != nil {
		return nil, &ConfigError{Op: op.Name(), Err: fmt.Errorf("%w: %w", ErrInvalidSettings, err)}
	}

	client, err := remote.NewFromSettings(settings)
	if err != nil {
		return nil, &ConfigError{Op: op.Name(), Err: err}
	}

	logger := settings.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &bound{op: op.Name(), client: client, closer: client, logger: logger, binding: b}, nil
}

// Close releases the remote client acquired at bind time.
func (b *bound) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// Run implements the reshape/evaluate/merge protocol shared by every
// built-in operator.
func (b *bound) Run(ctx context.Context, t table.Table) (table.Table, error) {
	records, err := t.Project(b.inputs)
	if err != nil {
		return table.Table{}, b.fail(fmt.Errorf("project input records: %w", err))
	}

	results, err := b.client.Evaluate(ctx, b.metric, records, b.params)
	if err != nil {
		return table.Table{}, b.fail(err)
	}

	// The merge trusts nothing: positional alignment is re-checked here
	// even though the remote client already rejects mismatched batches.
	if len(results) != len(records) {
		return table.Table{}, b.fail(fmt.Errorf("%w: sent %d records, received %d results",
			ErrMisalignedResults, len(records), len(results)))
	}

	cols := make([]table.Column, 0, len(b.outputs))
	for _, field := range sortedFields(b.outputs) {
		values := make([]any, len(results))
		for i, res := range results {
			v, ok := res[field]
			if !ok {
				return table.Table{}, b.fail(fmt.Errorf("%w: %q absent from result %d",
					ErrMissingScoreField, field, i))
			}
			values[i] = v
		}
		cols = append(cols, table.Column{Name: b.outputs[field], Values: values})
	}

	out, err := t.WithColumns(cols...)
	if err != nil {
		return table.Table{}, b.fail(fmt.Errorf("merge score columns: %w", err))
	}
	return out, nil
}

// fail logs the failure with operator and metric context and wraps it in
// the typed run-time error.
func (b *bound) fail(err error) error {
	b.logger.Error("operator evaluation failed",
		"operator", b.op,
		"metric", b.metric,
		"error", err,
	)
	return &EvalError{Op: b.op, Metric: b.metric, Err: err}
}

// sortedFields returns the canonical output field names in a deterministic
// order so merged column order is stable across runs.
func sortedFields(outputs map[string]string) []string {
	fields := make([]string, 0, len(outputs))
	for field := range outputs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
