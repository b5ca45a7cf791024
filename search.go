package astar

import (
	"container/heap"

	"github.com/pdrpinto/gridastar/internal"
)

// node is the single record kept for a discovered node. parent is an index
// into the same arena, -1 for the start.
type node[NodeType comparable] struct {
	id     NodeType
	g      float64
	h      float64
	f      float64
	parent int32
	seq    uint64 // seq of the node's live heap entry
	closed bool
}

// search owns all state of one A* run. It is shared by Search and Stepper.
type search[NodeType comparable] struct {
	graph     Graph[NodeType]
	goal      NodeType
	heuristic Heuristic[NodeType]

	nodes   []node[NodeType]   // arena
	index   map[NodeType]int32 // discovered-map: node -> arena index
	openSet priorityQueue
	seq     uint64

	expanded  int
	done      bool
	found     bool
	truncated bool
	goalIndex int32
}

func newSearch[NodeType comparable](
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
) *search[NodeType] {
	s := &search[NodeType]{
		graph:     graph,
		goal:      goalNode,
		heuristic: heuristic,
		index:     make(map[NodeType]int32),
		goalIndex: -1,
	}
	h := heuristic(startNode, goalNode)
	s.nodes = append(s.nodes, node[NodeType]{id: startNode, g: 0, h: h, f: h, parent: -1})
	s.index[startNode] = 0
	s.push(0)
	return s
}

func (s *search[NodeType]) push(i int32) {
	s.seq++
	n := &s.nodes[i]
	n.seq = s.seq
	heap.Push(&s.openSet, openEntry{node: i, f: n.f, h: n.h, seq: s.seq})
}

// pop returns the arena index of the best live open node, skipping entries
// of closed or since-improved nodes.
func (s *search[NodeType]) pop() (int32, bool) {
	for s.openSet.Len() > 0 {
		entry := heap.Pop(&s.openSet).(openEntry)
		n := &s.nodes[entry.node]
		if n.closed || n.seq != entry.seq {
			continue
		}
		return entry.node, true
	}
	return -1, false
}

// hasOpen drops stale entries off the top of the open set and reports
// whether a live one remains.
func (s *search[NodeType]) hasOpen() bool {
	for s.openSet.Len() > 0 {
		top := s.openSet[0]
		n := &s.nodes[top.node]
		if !n.closed && n.seq == top.seq {
			return true
		}
		heap.Pop(&s.openSet)
	}
	return false
}

// overLimit reports whether the expansion budget is spent while work is
// still pending. An exhausted frontier is left for expand to report as
// not found.
func (s *search[NodeType]) overLimit(maxExpansions int) bool {
	return maxExpansions > 0 && s.expanded >= maxExpansions && s.hasOpen()
}

// expand performs one iteration of the main loop and returns the node it
// expanded. ok is false when the open set ran dry.
func (s *search[NodeType]) expand() (current int32, ok bool) {
	if s.done {
		return -1, false
	}
	current, ok = s.pop()
	if !ok {
		s.done = true
		return -1, false
	}

	s.nodes[current].closed = true
	s.expanded++
	currentNode := s.nodes[current].id
	currentG := s.nodes[current].g

	if currentNode == s.goal {
		s.done = true
		s.found = true
		s.goalIndex = current
		return current, true
	}

	for _, neighbor := range s.graph.Neighbors(currentNode) {
		s.relax(current, currentG, neighbor)
	}
	return current, true
}

func (s *search[NodeType]) relax(from int32, fromG float64, neighbor Neighbor[NodeType]) {
	tentativeG := fromG + neighbor.Cost

	i, seen := s.index[neighbor.ID]
	if !seen {
		i = int32(len(s.nodes))
		h := s.heuristic(neighbor.ID, s.goal)
		s.nodes = append(s.nodes, node[NodeType]{
			id:     neighbor.ID,
			g:      tentativeG,
			h:      h,
			f:      tentativeG + h,
			parent: from,
		})
		s.index[neighbor.ID] = i
		s.push(i)
		return
	}

	n := &s.nodes[i]
	if n.closed || tentativeG >= n.g {
		return
	}
	n.g = tentativeG
	n.h = s.heuristic(neighbor.ID, s.goal)
	n.f = n.g + n.h
	n.parent = from
	s.push(i)
}

func (s *search[NodeType]) truncate() {
	s.done = true
	s.truncated = true
}

func (s *search[NodeType]) parentOf(i int32) int32 { return s.nodes[i].parent }

func (s *search[NodeType]) result() Result[NodeType] {
	result := Result[NodeType]{
		ExpandedNodes: s.expanded,
		Found:         s.found,
		Truncated:     s.truncated,
	}
	if !s.found {
		return result
	}

	chain := internal.ParentChain(s.goalIndex, len(s.nodes), s.parentOf)
	result.Path = make([]NodeType, len(chain))
	result.Scores = make([]Score, len(chain))
	for k, i := range chain {
		n := s.nodes[i]
		result.Path[k] = n.id
		result.Scores[k] = Score{G: n.g, H: n.h, F: n.f}
	}
	result.TotalCost = s.nodes[s.goalIndex].g
	return result
}
