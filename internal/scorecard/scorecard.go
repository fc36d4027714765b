// Package scorecard persists one CSV row per solved graph and provides
// an optional Redis-backed cache keyed by a graph's content hash so a
// re-run over an unchanged dataset can skip re-solving.
package scorecard

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/ni/delaygraph/evaluate"
)

// Row is one scored graph's worth of scorecard data.
type Row struct {
	RunID           uuid.UUID
	DatasetPath     string
	AssignerName    string
	Throughput      int64
	Latency         int64
	Registers       int64
	SlackPS         int64
	FoundComboCycle bool
}

var header = []string{
	"run_id", "dataset_path", "assigner", "throughput", "latency",
	"registers", "slack_ps", "found_combo_cycle",
}

// CSVWriter emits scorecard rows to an underlying io.Writer, writing the
// header exactly once on the first row.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSVWriter wraps w for scorecard row emission.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteRow appends one row, writing the header first if this is the
// first call.
func (c *CSVWriter) WriteRow(r Row) error {
	if !c.wroteHeader {
		if err := c.w.Write(header); err != nil {
			return fmt.Errorf("scorecard: write header: %w", err)
		}
		c.wroteHeader = true
	}

	record := []string{
		r.RunID.String(),
		r.DatasetPath,
		r.AssignerName,
		fmt.Sprintf("%d", r.Throughput),
		fmt.Sprintf("%d", r.Latency),
		fmt.Sprintf("%d", r.Registers),
		fmt.Sprintf("%d", r.SlackPS),
		fmt.Sprintf("%t", r.FoundComboCycle),
	}
	if err := c.w.Write(record); err != nil {
		return fmt.Errorf("scorecard: write row: %w", err)
	}

	return nil
}

// Flush flushes any buffered rows and returns the first write error
// encountered, if any.
func (c *CSVWriter) Flush() error {
	c.w.Flush()

	return c.w.Error()
}

// RowFromScore builds a Row from an evaluate.Evaluator's result.
func RowFromScore(runID uuid.UUID, datasetPath, assignerName string, score evaluate.ScoreCard, slackPS int64, foundComboCycle bool) Row {
	return Row{
		RunID:           runID,
		DatasetPath:     datasetPath,
		AssignerName:    assignerName,
		Throughput:      score.Throughput,
		Latency:         score.Latency,
		Registers:       score.Registers,
		SlackPS:         slackPS,
		FoundComboCycle: foundComboCycle,
	}
}
