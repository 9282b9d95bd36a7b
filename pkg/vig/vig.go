package vig

import (
	"slices"

	"github.com/limaJavier/cnfvig/pkg/cnf"
	"github.com/samber/lo"
)

// Pair is an unordered variable pair stored with X < Y
type Pair struct {
	X, Y int64
}

func NewPair(x, y int64) Pair {
	if x > y {
		x, y = y, x
	}
	return Pair{X: x, Y: y}
}

type Edge struct {
	X, Y   int64
	Weight float64
}

// Graph is the variable interaction graph of a formula: two variables are adjacent when some
// clause mentions both, and every clause spreads a total weight of 1 evenly over the pairs of
// its distinct variables.
type Graph struct {
	maxVar  uint64
	weights map[Pair]float64
	order   []Pair // first insertion order of the pairs
}

func Build(formula cnf.Formula) *Graph {
	graph := &Graph{
		maxVar:  formula.MaxVar,
		weights: make(map[Pair]float64),
	}

	for _, clause := range formula.Clauses {
		variables := lo.Uniq(lo.Map(clause, func(literal int64, _ int) int64 { return cnf.Variable(literal) }))
		slices.Sort(variables)

		k := len(variables)
		if k < 2 {
			continue
		}
		amount := 1.0 / (float64(k) * float64(k-1) / 2.0)

		for i := range k {
			for j := i + 1; j < k; j++ {
				graph.accumulate(Pair{X: variables[i], Y: variables[j]}, amount)
			}
		}
	}

	return graph
}

func (g *Graph) accumulate(pair Pair, amount float64) {
	if _, ok := g.weights[pair]; !ok {
		g.order = append(g.order, pair)
	}
	g.weights[pair] += amount
}

func (g *Graph) MaxVar() uint64 {
	return g.maxVar
}

// Len returns the number of edges
func (g *Graph) Len() int {
	return len(g.order)
}

// Weight returns the weight between x and y in any order, or 0 when they are not adjacent
func (g *Graph) Weight(x, y int64) float64 {
	return g.weights[NewPair(x, y)]
}

// Edges returns the edges in insertion order
func (g *Graph) Edges() []Edge {
	return lo.Map(g.order, func(pair Pair, _ int) Edge {
		return Edge{X: pair.X, Y: pair.Y, Weight: g.weights[pair]}
	})
}

// Vertices returns the variables with at least one edge, ascending
func (g *Graph) Vertices() []int64 {
	vertices := lo.Uniq(lo.FlatMap(g.order, func(pair Pair, _ int) []int64 {
		return []int64{pair.X, pair.Y}
	}))
	slices.Sort(vertices)
	return vertices
}

func (g *Graph) TotalWeight() float64 {
	return lo.SumBy(g.order, func(pair Pair) float64 { return g.weights[pair] })
}
