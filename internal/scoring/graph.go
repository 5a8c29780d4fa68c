package scoring

import "sort"

// GraphResult holds the per-batch dependency analysis: for each task, how many
// distinct other tasks it blocks, plus the set of task IDs that sit on at
// least one directed dependency cycle.
type GraphResult struct {
	BlockedCounts map[int]int
	CycleSet      map[int]bool
}

// AnalyzeGraph builds the dependency graph for a batch and computes blocked
// counts and the cycle set. Edges pointing at IDs not present in the batch are
// dropped; duplicate dependency entries count once.
func AnalyzeGraph(tasks []Task) GraphResult {
	known := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}

	// Adjacency: task -> tasks it depends on, deduped and filtered to the batch.
	adj := make(map[int][]int, len(tasks))
	blocked := make(map[int]int, len(tasks))
	for _, t := range tasks {
		if _, ok := blocked[t.ID]; !ok {
			blocked[t.ID] = 0
		}
		seen := make(map[int]bool, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			if !known[dep] || seen[dep] {
				continue
			}
			seen[dep] = true
			adj[t.ID] = append(adj[t.ID], dep)
			blocked[dep]++
		}
	}

	cycles := make(map[int]bool)

	// DFS with an explicit recursion path: a back-edge to a node still on the
	// path marks the path suffix from that node as cyclic. Finished nodes are
	// never revisited, so disconnected components and self-loops both
	// terminate in O(V+E).
	const (
		unvisited = 0
		onPath    = 1
		done      = 2
	)
	state := make(map[int]int, len(tasks))
	path := make([]int, 0, len(tasks))

	var visit func(id int)
	visit = func(id int) {
		state[id] = onPath
		path = append(path, id)
		for _, dep := range adj[id] {
			switch state[dep] {
			case unvisited:
				visit(dep)
			case onPath:
				for i := len(path) - 1; i >= 0; i-- {
					cycles[path[i]] = true
					if path[i] == dep {
						break
					}
				}
			}
		}
		path = path[:len(path)-1]
		state[id] = done
	}

	ids := make([]int, 0, len(known))
	for id := range known {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if state[id] == unvisited {
			visit(id)
		}
	}

	return GraphResult{BlockedCounts: blocked, CycleSet: cycles}
}

// CycleIDs returns the cycle set as a sorted slice.
func (g GraphResult) CycleIDs() []int {
	ids := make([]int, 0, len(g.CycleSet))
	for id := range g.CycleSet {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
