package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/limaJavier/cnfvig/pkg/cnf"
	"github.com/limaJavier/cnfvig/pkg/partition"
	"github.com/limaJavier/cnfvig/pkg/vig"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

type InstanceMetadata struct {
	Name    string
	MaxVar  uint64
	Clauses int
}

type PartitionerMetadata struct {
	Seed       uint64
	Resolution float64
}

type BenchmarkResult struct {
	Instance      InstanceMetadata
	Partitioner   PartitionerMetadata
	Edges         int
	Communities   int
	Modularity    float64
	BuildDuration time.Duration
	Duration      time.Duration
}

func main() {
	directoryPtr := pflag.String("dir", "", "Directory holding the .cnf instances")
	outFilePtr := pflag.String("out", "benchmark_results.csv", "Path to the CSV file to write")
	seedsPtr := pflag.UintSlice("seeds", []uint{1}, "Seeds of the community detection")
	resolutionsPtr := pflag.Float64Slice("resolutions", []float64{1}, "Modularity resolutions")
	strictPtr := pflag.Bool("strict-dimacs", false, "Split clauses on 0 terminators")
	pflag.Parse()

	if *directoryPtr == "" {
		logrus.Fatal("an instance directory must be specified")
	}

	instances, err := getInstances(*directoryPtr)
	if err != nil {
		logrus.Fatalf("cannot list instances: %v", err)
	}
	seeds := lo.Map(*seedsPtr, func(seed uint, _ int) uint64 { return uint64(seed) })
	partitioners := getPartitioners(seeds, *resolutionsPtr)
	results := make([]BenchmarkResult, 0, len(instances)*len(partitioners))

	for _, instance := range instances {
		for _, partitioner := range partitioners {
			logrus.Infof("Benchmarking instance \"%v\" with seed \"%v\" and resolution \"%v\"", instance, partitioner.Seed, partitioner.Resolution)

			result, err := measure(instance, partitioner, cnf.ParseOptions{StrictDIMACS: *strictPtr})
			if err != nil {
				logrus.Fatalf("an error occurred while benchmarking \"%v\": %v", instance, err)
			}
			results = append(results, result)
		}
	}

	file, err := os.Create(*outFilePtr)
	if err != nil {
		logrus.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := toCsv(file, results); err != nil {
		logrus.Fatalf("cannot write CSV file: %v", err)
	}
}

// getInstances returns the .cnf files of directory, sorted
func getInstances(directory string) ([]string, error) {
	files, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	instances := lo.FilterMap(files, func(file os.DirEntry, _ int) (string, bool) {
		return filepath.Join(directory, file.Name()), !file.IsDir() && strings.HasSuffix(file.Name(), ".cnf")
	})
	slices.Sort(instances)
	return instances, nil
}

func getPartitioners(seeds []uint64, resolutions []float64) []PartitionerMetadata {
	return lo.FlatMap(seeds, func(seed uint64, _ int) []PartitionerMetadata {
		return lo.Map(resolutions, func(resolution float64, _ int) PartitionerMetadata {
			return PartitionerMetadata{Seed: seed, Resolution: resolution}
		})
	})
}

func measure(fileName string, metadata PartitionerMetadata, options cnf.ParseOptions) (BenchmarkResult, error) {
	start := time.Now()
	formula, err := cnf.ParseFile(fileName, options)
	if err != nil {
		return BenchmarkResult{}, err
	}
	graph := vig.Build(formula)
	buildDuration := time.Since(start)

	communities, err := partition.NewLouvainPartitioner(metadata.Seed, metadata.Resolution).Partition(graph)
	if err != nil {
		return BenchmarkResult{}, err
	}

	return BenchmarkResult{
		Instance: InstanceMetadata{
			Name:    filepath.Base(fileName),
			MaxVar:  formula.MaxVar,
			Clauses: len(formula.Clauses),
		},
		Partitioner:   metadata,
		Edges:         graph.Len(),
		Communities:   len(partition.Communities(communities)),
		Modularity:    partition.Modularity(graph, communities, metadata.Resolution),
		BuildDuration: buildDuration,
		Duration:      time.Since(start),
	}, nil
}

func toCsv(writer io.Writer, results []BenchmarkResult) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{"Instance", "MaxVar", "Clauses", "Seed", "Resolution", "Edges", "Communities", "Modularity", "Build(ms)", "Duration(ms)"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		if err := csvWriter.Write(toRecord(result)); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func toRecord(result BenchmarkResult) []string {
	return []string{
		result.Instance.Name,
		fmt.Sprintf("%d", result.Instance.MaxVar),
		fmt.Sprintf("%d", result.Instance.Clauses),
		fmt.Sprintf("%d", result.Partitioner.Seed),
		fmt.Sprintf("%g", result.Partitioner.Resolution),
		fmt.Sprintf("%d", result.Edges),
		fmt.Sprintf("%d", result.Communities),
		fmt.Sprintf("%.6f", result.Modularity),
		fmt.Sprintf("%d", result.BuildDuration.Milliseconds()),
		fmt.Sprintf("%d", result.Duration.Milliseconds()),
	}
}
