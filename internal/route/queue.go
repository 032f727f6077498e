package route

// state is a pending arrival at a node.
type state struct {
	node    string
	arrival float64
	seq     uint64 // insertion order, breaks arrival ties
}

// arrivalPQ is a min-heap of *state ordered by arrival, then insertion order.
// Stale entries are left in place and skipped when popped.
type arrivalPQ []*state

func (pq arrivalPQ) Len() int { return len(pq) }

func (pq arrivalPQ) Less(i, j int) bool {
	if pq[i].arrival != pq[j].arrival {
		return pq[i].arrival < pq[j].arrival
	}
	return pq[i].seq < pq[j].seq
}

func (pq arrivalPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *arrivalPQ) Push(x interface{}) { *pq = append(*pq, x.(*state)) }

func (pq *arrivalPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
