package partition

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/limaJavier/cnfvig/pkg/vig"
	"github.com/samber/lo"
)

// Partition maps a variable to its community id
type Partition map[int64]int

type Partitioner interface {
	Partition(*vig.Graph) (Partition, error) // Every vertex of the graph must receive a community
}

// Communities groups the variables by community id; the i-th group holds community i, ascending
func Communities(partition Partition) [][]int64 {
	if len(partition) == 0 {
		return [][]int64{}
	}

	communities := make([][]int64, lo.Max(lo.Values(partition))+1)
	for _, variable := range slices.Sorted(maps.Keys(partition)) {
		community := partition[variable]
		communities[community] = append(communities[community], variable)
	}
	return communities
}

// Write writes one "<variable> <community>" line per variable, ascending by variable
func Write(writer io.Writer, partition Partition) error {
	buffered := bufio.NewWriter(writer)
	for _, variable := range slices.Sorted(maps.Keys(partition)) {
		if _, err := fmt.Fprintf(buffered, "%d %d\n", variable, partition[variable]); err != nil {
			return err
		}
	}
	return buffered.Flush()
}

func WriteFile(fileName string, partition Partition) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("failed to create partition file: %w", err)
	}

	if err := Write(file, partition); err != nil {
		file.Close()
		return fmt.Errorf("failed to write partition file %v: %w", fileName, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close partition file %v: %w", fileName, err)
	}
	return nil
}
