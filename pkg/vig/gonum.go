package vig

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
)

// gonumView exposes a Graph through gonum's interfaces. Nodes and neighbors are always
// iterated by ascending id, so seeded gonum algorithms see the same input on every run.
type gonumView struct {
	nodes     []graph.Node
	neighbors map[int64][]graph.Node
	weights   map[Pair]float64
}

var _ graph.WeightedUndirected = (*gonumView)(nil)

// Gonum returns a read-only gonum view of the graph whose node ids are variable ids. Only
// variables with at least one edge are nodes.
func (g *Graph) Gonum() graph.WeightedUndirected {
	view := &gonumView{
		neighbors: make(map[int64][]graph.Node),
		weights:   g.weights,
	}

	for _, pair := range g.order {
		view.neighbors[pair.X] = append(view.neighbors[pair.X], simple.Node(pair.Y))
		view.neighbors[pair.Y] = append(view.neighbors[pair.Y], simple.Node(pair.X))
	}
	for _, neighbors := range view.neighbors {
		slices.SortFunc(neighbors, byID)
	}
	for _, vertex := range g.Vertices() {
		view.nodes = append(view.nodes, simple.Node(vertex))
	}

	return view
}

func byID(a, b graph.Node) int {
	switch {
	case a.ID() < b.ID():
		return -1
	case a.ID() > b.ID():
		return 1
	}
	return 0
}

func (view *gonumView) Node(id int64) graph.Node {
	if _, ok := view.neighbors[id]; !ok {
		return nil
	}
	return simple.Node(id)
}

func (view *gonumView) Nodes() graph.Nodes {
	if len(view.nodes) == 0 {
		return graph.Empty
	}
	return iterator.NewOrderedNodes(view.nodes)
}

func (view *gonumView) From(id int64) graph.Nodes {
	neighbors, ok := view.neighbors[id]
	if !ok {
		return graph.Empty
	}
	return iterator.NewOrderedNodes(neighbors)
}

func (view *gonumView) HasEdgeBetween(xid, yid int64) bool {
	_, ok := view.weights[NewPair(xid, yid)]
	return ok && xid != yid
}

func (view *gonumView) Edge(uid, vid int64) graph.Edge {
	return view.EdgeBetween(uid, vid)
}

func (view *gonumView) EdgeBetween(xid, yid int64) graph.Edge {
	edge := view.WeightedEdgeBetween(xid, yid)
	if edge == nil {
		return nil
	}
	return edge
}

func (view *gonumView) WeightedEdge(uid, vid int64) graph.WeightedEdge {
	return view.WeightedEdgeBetween(uid, vid)
}

func (view *gonumView) WeightedEdgeBetween(xid, yid int64) graph.WeightedEdge {
	weight, ok := view.weights[NewPair(xid, yid)]
	if !ok || xid == yid {
		return nil
	}
	return simple.WeightedEdge{F: simple.Node(xid), T: simple.Node(yid), W: weight}
}

// Weight follows simple.NewWeightedUndirectedGraph(0, 0): self pairs and absent edges weigh 0.
func (view *gonumView) Weight(xid, yid int64) (float64, bool) {
	if xid == yid {
		return 0, true
	}
	weight, ok := view.weights[NewPair(xid, yid)]
	return weight, ok
}
