package search

import (
	"fmt"
	"strings"
)

// Algorithm names an expansion discipline
type Algorithm string

const (
	BFS    Algorithm = "BFS"
	DFS    Algorithm = "DFS"
	UCS    Algorithm = "UCS"
	Greedy Algorithm = "GREEDY"
	IDS    Algorithm = "IDS"
)

// Algorithms lists every supported strategy
var Algorithms = []Algorithm{BFS, DFS, UCS, Greedy, IDS}

// ParseAlgorithm resolves a case-insensitive algorithm name, empty means BFS
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return BFS, nil
	}

	for _, alg := range Algorithms {
		if string(alg) == name {
			return alg, nil
		}
	}
	return "", fmt.Errorf("unknown algorithm %q", name)
}
