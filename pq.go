package astar

// openEntry is one heap record for a node of the arena. A node that improves
// gets a fresh entry; the old one is recognised as stale on pop because its
// seq no longer matches the node's.
type openEntry struct {
	node int32
	f    float64
	h    float64
	seq  uint64
}

// priorityQueue orders entries by f, then h, then insertion order, so equal
// inputs always pop in the same order.
type priorityQueue []openEntry

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	a, b := queue[i], queue[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}
func (queue priorityQueue) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *priorityQueue) Push(x any) {
	*queue = append(*queue, x.(openEntry))
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	*queue = oldQueue[:n-1]
	return item
}
