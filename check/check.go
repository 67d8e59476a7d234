// Package check composes column operators and plot specs into named,
// reusable evaluation units. A Check is pure configuration; Bind turns it
// into a BoundCheck holding one bound operator per configured operator, and
// Run threads a table through them in declared order.
package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahrav/go-evalcheck"
	"github.com/ahrav/go-evalcheck/operator"
	"github.com/ahrav/go-evalcheck/plot"
	"github.com/ahrav/go-evalcheck/table"
)

// ErrEmptyName indicates a check was constructed without a name.
var ErrEmptyName = errors.New("check name must not be empty")

// Check is a named bundle of operators and plot specs. Construction is pure
// aggregation; nothing is validated or connected until Bind.
type Check struct {
	// Name identifies the check in results and serialized form.
	Name string

	// Operators run in declared order, each seeing the previous one's
	// output table.
	Operators []operator.Operator

	// Plots describe how score columns should be visualized. Rendering is
	// out of scope; specs ride along with the check.
	Plots []plot.Spec
}

// New builds a check over the given operators and plots.
func New(name string, operators []operator.Operator, plots []plot.Spec) Check {
	return Check{Name: name, Operators: operators, Plots: plots}
}

// OutputColumns returns every column the check's operators will add, in
// operator order.
func (c Check) OutputColumns() []string {
	var cols []string
	for _, op := range c.Operators {
		cols = append(cols, op.OutputColumns()...)
	}
	return cols
}

// Bind binds every operator against the settings. The first operator that
// fails to bind aborts the whole check, releasing every operator already
// bound; the error names the failing operator.
func (c Check) Bind(settings *evalcheck.Settings) (*BoundCheck, error) {
	if c.Name == "" {
		return nil, ErrEmptyName
	}

	bound := make([]operator.Bound, 0, len(c.Operators))
	for _, op := range c.Operators {
		b, err := op.Bind(settings)
		if err != nil {
			closeAll(bound)
			return nil, fmt.Errorf("check %q: bind operator %q: %w", c.Name, op.Name(), err)
		}
		bound = append(bound, b)
	}

	logger := slog.Default()
	if settings != nil && settings.Logger != nil {
		logger = settings.Logger
	}

	return &BoundCheck{name: c.Name, operators: bound, logger: logger.With("check", c.Name)}, nil
}

// BoundCheck is a check whose operators are bound and ready to run.
type BoundCheck struct {
	name      string
	operators []operator.Bound
	logger    *slog.Logger
}

// Name returns the check's name.
func (b *BoundCheck) Name() string { return b.name }

// Close releases every bound operator's remote client. Safe to call after a
// failed Run.
func (b *BoundCheck) Close() error {
	var errs []error
	for _, op := range b.operators {
		if err := op.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// closeAll releases already-bound operators when a later bind fails.
func closeAll(bound []operator.Bound) {
	for _, b := range bound {
		_ = b.Close()
	}
}

// Run threads the table through every bound operator in order and returns
// the final table with all score columns attached. The input table is never
// modified. The first failing operator aborts the run; no partial table is
// returned.
func (b *BoundCheck) Run(ctx context.Context, t table.Table) (table.Table, error) {
	b.logger.Info("check run started", "rows", t.Len(), "operators", len(b.operators))

	out := t
	for i, op := range b.operators {
		next, err := op.Run(ctx, out)
		if err != nil {
			return table.Table{}, fmt.Errorf("check %q: operator %d: %w", b.name, i, err)
		}
		out = next
	}

	b.logger.Info("check run completed", "rows", out.Len(), "columns", len(out.ColumnNames()))
	return out, nil
}
