package partition

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/limaJavier/cnfvig/pkg/vig"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
)

type louvainPartitioner struct {
	seed       uint64
	resolution float64
}

// NewLouvainPartitioner returns a Partitioner maximizing modularity with gonum's Louvain
// implementation. Equal seeds yield equal partitions of equal graphs.
func NewLouvainPartitioner(seed uint64, resolution float64) Partitioner {
	return &louvainPartitioner{seed: seed, resolution: resolution}
}

func (partitioner *louvainPartitioner) Partition(g *vig.Graph) (Partition, error) {
	partition := make(Partition)
	if g.Len() == 0 {
		return partition, nil
	} else if partitioner.resolution <= 0 {
		return nil, fmt.Errorf("resolution must be positive: %v", partitioner.resolution)
	}

	reduced := community.Modularize(g.Gonum(), partitioner.resolution, rand.NewPCG(partitioner.seed, partitioner.seed))

	for id, members := range normalize(reduced.Communities()) {
		for _, variable := range members {
			partition[variable] = id
		}
	}

	unassigned := lo.Filter(g.Vertices(), func(variable int64, _ int) bool {
		_, ok := partition[variable]
		return !ok
	})
	if len(unassigned) > 0 {
		return nil, fmt.Errorf("community detection left %d variables unassigned: %v", len(unassigned), unassigned)
	}

	return partition, nil
}

// normalize sorts every community and orders the communities by their smallest variable
func normalize(communities [][]graph.Node) [][]int64 {
	normalized := lo.FilterMap(communities, func(nodes []graph.Node, _ int) ([]int64, bool) {
		members := lo.Map(nodes, func(n graph.Node, _ int) int64 { return n.ID() })
		slices.Sort(members)
		return members, len(members) > 0
	})
	slices.SortFunc(normalized, func(a, b []int64) int {
		return cmp.Compare(a[0], b[0])
	})
	return normalized
}

// Modularity returns the modularity Q of the partition over the graph at the given resolution
func Modularity(g *vig.Graph, partition Partition, resolution float64) float64 {
	if g.Len() == 0 {
		return 0
	}

	communities := lo.Map(Communities(partition), func(members []int64, _ int) []graph.Node {
		return lo.Map(members, func(variable int64, _ int) graph.Node { return node(variable) })
	})
	return community.Q(g.Gonum(), communities, resolution)
}

type node int64

func (n node) ID() int64 { return int64(n) }
