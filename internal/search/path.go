package search

// Reconstruct walks a parent map from target back to the root and returns
// the path in start->target order. The root maps to "". Returns nil if target
// was never recorded.
func Reconstruct(parents map[string]string, target string) []string {
	if _, ok := parents[target]; !ok {
		return nil
	}

	var path []string
	for curr := target; curr != ""; {
		parent, ok := parents[curr]
		if !ok {
			break
		}
		path = append(path, curr)

		// A well-formed map is a tree, anything longer has a cycle
		if len(path) > len(parents) {
			return nil
		}
		curr = parent
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
