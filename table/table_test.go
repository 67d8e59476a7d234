package table_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-evalcheck/table"
)

func TestFromColumns(t *testing.T) {
	tbl, err := table.FromColumns(
		table.Column{Name: "question", Values: []any{"q1", "q2"}},
		table.Column{Name: "response", Values: []any{"r1", "r2"}},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"question", "response"}, tbl.ColumnNames())
}

func TestFromColumns_LengthMismatch(t *testing.T) {
	_, err := table.FromColumns(
		table.Column{Name: "a", Values: []any{1, 2}},
		table.Column{Name: "b", Values: []any{1}},
	)
	assert.ErrorIs(t, err, table.ErrLengthMismatch)
}

func TestFromRecords_OrderAndMissingValues(t *testing.T) {
	tbl := table.FromRecords([]map[string]any{
		{"question": "q1", "response": "r1"},
		{"question": "q2", "context": "c2"},
	})

	assert.Equal(t, 2, tbl.Len())
	// First-seen order, alphabetical within a record.
	assert.Equal(t, []string{"question", "response", "context"}, tbl.ColumnNames())

	ctx, err := tbl.Column("context")
	require.NoError(t, err)
	assert.Equal(t, []any{nil, "c2"}, ctx)
}

func TestColumn_NotFound(t *testing.T) {
	tbl := table.FromRecords([]map[string]any{{"a": 1}})

	_, err := tbl.Column("missing")
	assert.ErrorIs(t, err, table.ErrColumnNotFound)
}

func TestProject_RenamesWithoutTouchingSource(t *testing.T) {
	tbl := table.FromRecords([]map[string]any{
		{"id": 1, "conversation_log": "hi there"},
		{"id": 2, "conversation_log": "bye now"},
	})

	records, err := tbl.Project(map[string]string{"conversation": "conversation_log"})
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, map[string]any{"conversation": "hi there"}, records[0])
	assert.Equal(t, map[string]any{"conversation": "bye now"}, records[1])

	// Source table naming is untouched.
	assert.True(t, tbl.HasColumn("conversation_log"))
	assert.False(t, tbl.HasColumn("conversation"))
}

func TestProject_MissingColumn(t *testing.T) {
	tbl := table.FromRecords([]map[string]any{{"question": "q"}})

	_, err := tbl.Project(map[string]string{"context": "context"})
	assert.ErrorIs(t, err, table.ErrColumnNotFound)
}

func TestWithColumn_AppendsWithoutMutatingReceiver(t *testing.T) {
	tbl := table.FromRecords([]map[string]any{
		{"id": 1}, {"id": 2}, {"id": 3},
	})

	out, err := tbl.WithColumn("score", []any{0.1, 0.2, 0.3})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "score"}, out.ColumnNames())
	assert.Equal(t, 3, out.Len())

	// Receiver is unchanged.
	assert.Equal(t, []string{"id"}, tbl.ColumnNames())
	assert.False(t, tbl.HasColumn("score"))
}

func TestWithColumn_ReplacesOnNameCollision(t *testing.T) {
	tbl := table.FromRecords([]map[string]any{
		{"id": 1, "score": 0.0},
		{"id": 2, "score": 0.0},
	})

	out, err := tbl.WithColumn("score", []any{0.8, 0.9})
	require.NoError(t, err)

	// Same column set, same order, new values.
	assert.Equal(t, []string{"id", "score"}, out.ColumnNames())
	values, err := out.Column("score")
	require.NoError(t, err)
	assert.Equal(t, []any{0.8, 0.9}, values)
}

func TestWithColumn_LengthMismatch(t *testing.T) {
	tbl := table.FromRecords([]map[string]any{{"id": 1}, {"id": 2}})

	_, err := tbl.WithColumn("score", []any{0.5})
	assert.ErrorIs(t, err, table.ErrLengthMismatch)
}

func TestWithColumn_ColumnlessRowsKeepRowCount(t *testing.T) {
	// Records with no fields still count as rows.
	tbl := table.FromRecords([]map[string]any{{}, {}})
	require.Equal(t, 2, tbl.Len())

	_, err := tbl.WithColumn("score", []any{0.5})
	assert.ErrorIs(t, err, table.ErrLengthMismatch)

	out, err := tbl.WithColumn("score", []any{0.5, 0.7})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
}

func TestWithColumn_EmptyTableAdoptsLength(t *testing.T) {
	var tbl table.Table

	out, err := tbl.WithColumn("score", []any{0.5, 0.7, 0.9})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())
	assert.Equal(t, []string{"score"}, out.ColumnNames())
}

func TestWithColumns_Atomic(t *testing.T) {
	tbl := table.FromRecords([]map[string]any{{"id": 1}, {"id": 2}})

	_, err := tbl.WithColumns(
		table.Column{Name: "a", Values: []any{1, 2}},
		table.Column{Name: "b", Values: []any{1}},
	)
	require.ErrorIs(t, err, table.ErrLengthMismatch)

	// Nothing was attached to the receiver.
	assert.Equal(t, []string{"id"}, tbl.ColumnNames())
}

func TestWithColumn_CopiesCallerValues(t *testing.T) {
	tbl := table.FromRecords([]map[string]any{{"id": 1}})

	values := []any{0.5}
	out, err := tbl.WithColumn("score", values)
	require.NoError(t, err)

	values[0] = 0.9

	got, err := out.Column("score")
	require.NoError(t, err)
	assert.Equal(t, []any{0.5}, got)
}

func TestRecords_RowOrder(t *testing.T) {
	tbl := table.FromRecords([]map[string]any{
		{"id": "a"}, {"id": "b"}, {"id": "c"},
	})

	records := tbl.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0]["id"])
	assert.Equal(t, "b", records[1]["id"])
	assert.Equal(t, "c", records[2]["id"])
}

func TestJSONL_RoundTrip(t *testing.T) {
	in := strings.Join([]string{
		`{"question":"q1","response":"r1"}`,
		``,
		`{"question":"q2","response":"r2"}`,
	}, "\n")

	tbl, err := table.ReadJSONL(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	var buf bytes.Buffer
	require.NoError(t, table.WriteJSONL(&buf, tbl))

	back, err := table.ReadJSONL(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl.Records(), back.Records())
}

func TestReadJSONL_InvalidLine(t *testing.T) {
	_, err := table.ReadJSONL(strings.NewReader(`{"ok":1}` + "\n" + `{broken`))
	assert.Error(t, err)
}
