// Package dataset discovers graph/goal pairs under a dataset root for the
// CLI to solve. Discovery uses filepath.WalkDir's own (lexically ordered)
// traversal rather than a hand-rolled directory walk.
package dataset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Pair is one graph ready to be solved: a GraphML file and its sibling
// goal file in the same directory.
type Pair struct {
	GraphPath string
	GoalPath  string
}

// Walk recursively finds every *.graphml file under root that has a
// sibling goal.xml in the same directory, and returns them in the stable
// lexical order filepath.WalkDir visits. A *.graphml file with no sibling
// goal file is skipped, not an error — not every graph in a dataset is
// necessarily meant to be solved.
func Walk(root string) ([]Pair, error) {
	var pairs []Pair

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".graphml" {
			return nil
		}

		goalPath := filepath.Join(filepath.Dir(path), "goal.xml")
		if _, statErr := os.Stat(goalPath); statErr != nil {
			return nil
		}

		pairs = append(pairs, Pair{GraphPath: path, GoalPath: goalPath})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dataset: walk %s: %w", root, err)
	}

	return pairs, nil
}
