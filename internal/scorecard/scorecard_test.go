package scorecard_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ni/delaygraph/evaluate"
	"github.com/ni/delaygraph/internal/scorecard"
)

func TestCSVWriterWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := scorecard.NewCSVWriter(&buf)

	row := scorecard.RowFromScore(uuid.Nil, "graphs/a.graphml", "greedy", evaluate.ScoreCard{Throughput: 1, Latency: 2, Registers: 3}, -5, true)
	require.NoError(t, w.WriteRow(row))
	require.NoError(t, w.WriteRow(row))
	require.NoError(t, w.Flush())

	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	require.Equal(t, 3, lines, "one header line plus two data rows")
	require.Contains(t, buf.String(), "run_id,dataset_path,assigner")
	require.Contains(t, buf.String(), "greedy")
}

func TestCacheKeyIsStableForIdenticalInputs(t *testing.T) {
	content := []byte("same graph bytes")

	k1 := scorecard.Key(content, "asap", 1000)
	k2 := scorecard.Key(content, "asap", 1000)
	require.Equal(t, k1, k2)

	k3 := scorecard.Key(content, "greedy", 1000)
	require.NotEqual(t, k1, k3)
}
