package graphml

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/ni/delaygraph/core"
)

type goalDocument struct {
	TargetPeriodPS int64 `xml:"TargetClockPeriodInPicoSeconds"`
}

// LoadGoal parses r as the goal file format from §6 and returns the
// target clock period in picoseconds, raised to the graph's maximum
// single-edge delay if the file's value is smaller — edge delay is a
// hard floor no clock period can undercut.
func LoadGoal(r io.Reader, g *core.Graph) (int64, error) {
	var doc goalDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("graphml: goal: decode: %w", err)
	}
	if doc.TargetPeriodPS <= 0 {
		return 0, fmt.Errorf("graphml: goal: target period must be positive, got %d", doc.TargetPeriodPS)
	}

	target := doc.TargetPeriodPS
	for _, e := range g.Edges() {
		if e.Delay > target {
			target = e.Delay
		}
	}

	return target, nil
}
