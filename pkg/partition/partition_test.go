package partition

import (
	"bytes"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/limaJavier/cnfvig/pkg/cnf"
	"github.com/limaJavier/cnfvig/pkg/vig"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoCliques returns two 4-cliques over {1..4} and {5..8} joined by the single edge (4,5)
func twoCliques() *vig.Graph {
	clauses := make([]cnf.Clause, 0)
	for _, block := range [][]int64{{1, 2, 3, 4}, {5, 6, 7, 8}} {
		for i := range block {
			for j := i + 1; j < len(block); j++ {
				clauses = append(clauses, cnf.Clause{block[i], -block[j]})
			}
		}
	}
	clauses = append(clauses, cnf.Clause{4, 5})
	return vig.Build(cnf.Formula{MaxVar: 8, Clauses: clauses})
}

func TestLouvainPartitioner(t *testing.T) {
	t.Run("Every vertex gets a community", func(t *testing.T) {
		g := NewWithT(t)
		graph := vig.Build(cnf.GenerateFormula(40, 60, rand.NewPCG(3, 3)))

		partition, err := NewLouvainPartitioner(1, 1).Partition(graph)

		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(partition).To(HaveLen(len(graph.Vertices())))
		for _, vertex := range graph.Vertices() {
			g.Expect(partition).To(HaveKey(vertex))
			g.Expect(partition[vertex]).To(BeNumerically(">=", 0))
		}
	})

	t.Run("Cliques are separated", func(t *testing.T) {
		g := NewWithT(t)

		partition, err := NewLouvainPartitioner(1, 1).Partition(twoCliques())

		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(Communities(partition)).To(Equal([][]int64{{1, 2, 3, 4}, {5, 6, 7, 8}}))
		g.Expect(partition).To(HaveKeyWithValue(int64(1), 0))
		g.Expect(partition).To(HaveKeyWithValue(int64(8), 1))
	})

	t.Run("Same seed, same partition", func(t *testing.T) {
		g := NewWithT(t)
		graph := vig.Build(cnf.GenerateFormula(60, 40, rand.NewPCG(11, 5)))
		partitioner := NewLouvainPartitioner(1, 1)

		first, err := partitioner.Partition(graph)
		g.Expect(err).NotTo(HaveOccurred())

		for range 5 {
			again, err := partitioner.Partition(graph)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(again).To(Equal(first))
		}
	})

	t.Run("Empty graph", func(t *testing.T) {
		partition, err := NewLouvainPartitioner(1, 1).Partition(vig.Build(cnf.Formula{MaxVar: 3, Clauses: []cnf.Clause{{1}, {2, -2}}}))

		require.NoError(t, err)
		assert.Empty(t, partition)
	})

	t.Run("Invalid resolution", func(t *testing.T) {
		_, err := NewLouvainPartitioner(1, 0).Partition(twoCliques())

		assert.ErrorContains(t, err, "resolution")
	})
}

func TestModularity(t *testing.T) {
	graph := twoCliques()
	split := Partition{1: 0, 2: 0, 3: 0, 4: 0, 5: 1, 6: 1, 7: 1, 8: 1}
	single := Partition{1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0, 8: 0}

	assert.Greater(t, Modularity(graph, split, 1), 0.3)
	assert.InDelta(t, 0, Modularity(graph, single, 1), 1e-12)
	assert.Zero(t, Modularity(vig.Build(cnf.Formula{}), Partition{}, 1))
}

func TestCommunities(t *testing.T) {
	assert.Equal(t, [][]int64{{2, 7}, {1}, {3, 9}}, Communities(Partition{7: 0, 1: 1, 9: 2, 2: 0, 3: 2}))
	assert.Empty(t, Communities(Partition{}))
}

func TestWrite(t *testing.T) {
	t.Run("One line per variable", func(t *testing.T) {
		var buffer bytes.Buffer

		require.NoError(t, Write(&buffer, Partition{3: 1, 1: 0, 2: 0}))

		assert.Equal(t, "1 0\n2 0\n3 1\n", buffer.String())
	})

	t.Run("File is truncated", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "part")
		require.NoError(t, os.WriteFile(fileName, []byte("9 9\n9 9\n9 9\n"), 0666))

		require.NoError(t, WriteFile(fileName, Partition{1: 0}))

		content, err := os.ReadFile(fileName)
		require.NoError(t, err)
		assert.Equal(t, "1 0\n", string(content))
	})

	t.Run("Missing directory", func(t *testing.T) {
		err := WriteFile(filepath.Join(t.TempDir(), "missing", "part"), Partition{1: 0})

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
