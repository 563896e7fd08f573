package alphabeta

// SearchStats accumulates instrumentation across one or more search calls.
// It is owned by the caller and passed by reference into a solver; the engine
// only appends and updates, it never clears. Callers wanting per-call
// isolation must Reset between calls.
type SearchStats struct {
	// NodesExpanded counts every node the traversal entered.
	NodesExpanded int
	// SearchDepthUsed records the maximum depth parameter seen. The depth
	// counts down during recursion, so this ends up being the largest root
	// depth searched since the last reset.
	SearchDepthUsed int
	// BranchingFactors holds the legal-move count of every branching node
	// visited, in visit order.
	BranchingFactors []int
	// HeuristicDeltas holds, for each chosen root move, the evaluation
	// difference the move produced.
	HeuristicDeltas []int
}

// Reset clears all accumulated values.
func (st *SearchStats) Reset() {
	*st = SearchStats{}
}

// AvgBranchingFactor returns the mean branching factor, or 0 with no data.
func (st *SearchStats) AvgBranchingFactor() float64 {
	if len(st.BranchingFactors) == 0 {
		return 0
	}
	sum := 0
	for _, bf := range st.BranchingFactors {
		sum += bf
	}
	return float64(sum) / float64(len(st.BranchingFactors))
}

// AvgHeuristicDelta returns the mean heuristic delta, or 0 with no data.
func (st *SearchStats) AvgHeuristicDelta() float64 {
	if len(st.HeuristicDeltas) == 0 {
		return 0
	}
	sum := 0
	for _, d := range st.HeuristicDeltas {
		sum += d
	}
	return float64(sum) / float64(len(st.HeuristicDeltas))
}
