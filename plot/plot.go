// Package plot defines declarative visualization specs for check results.
// A spec binds a score column produced by an operator to a chart kind;
// rendering is someone else's job. The only obligation on producers is that
// a spec's column name matches a column its check's operators actually emit.
package plot

// Kind identifies a chart type.
type Kind string

// KindHistogram is a histogram over a single score column.
const KindHistogram Kind = "histogram"

// Spec is a declarative binding of a table column to a chart kind.
type Spec struct {
	// Kind selects the chart type.
	Kind Kind `json:"kind"`

	// Column names the table column the chart visualizes.
	Column string `json:"column"`

	// Title optionally overrides the rendered chart title.
	Title string `json:"title,omitempty"`
}

// Histogram returns a histogram spec over the given score column.
func Histogram(column string) Spec {
	return Spec{Kind: KindHistogram, Column: column}
}
