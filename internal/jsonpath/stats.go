// Package jsonpath holds the document measurement and path utilities used
// by presentation layers: node statistics, offset-to-path mapping, and
// path-addressed query/update.
package jsonpath

import (
	"github.com/morphkit/morph/internal/models"
	"github.com/morphkit/morph/internal/serializer"
)

// Stats computes node count, maximum depth and byte size for a JSON
// document. Every container and every leaf counts as one node; the root
// sits at depth 0.
func Stats(text string) (models.Stats, error) {
	value, err := serializer.ParseJSON(text)
	if err != nil {
		return models.Stats{}, err
	}
	nodes, depth := measure(value, 0)
	return models.Stats{NodeCount: nodes, Depth: depth, ByteSize: len(text)}, nil
}

func measure(value models.Value, depth int) (int, int) {
	count, maxDepth := 1, depth
	switch v := value.(type) {
	case models.Object:
		for _, child := range v {
			n, d := measure(child, depth+1)
			count += n
			if d > maxDepth {
				maxDepth = d
			}
		}
	case models.Array:
		for _, child := range v {
			n, d := measure(child, depth+1)
			count += n
			if d > maxDepth {
				maxDepth = d
			}
		}
	}
	return count, maxDepth
}
