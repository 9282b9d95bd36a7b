package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/limaJavier/cnfvig/internal/config"
	"github.com/limaJavier/cnfvig/pkg/cnf"
	"github.com/limaJavier/cnfvig/pkg/partition"
	"github.com/limaJavier/cnfvig/pkg/vig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const usageExitCode = 255 // -1

var errUsage = errors.New("file not given")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, errUsage) {
		os.Exit(usageExitCode)
	} else if err != nil {
		logrus.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	// Define arguments
	flags := pflag.NewFlagSet("cnfvig", pflag.ContinueOnError)
	flags.SetOutput(stdout)
	configPath := flags.String("config", "", "Path to a JSON config file; defaults are used when empty")
	seed := flags.Uint64("seed", 0, "Seed of the community detection, 1 by default")
	resolution := flags.Float64("resolution", 0, "Modularity resolution, 1 by default")
	outDir := flags.String("out-dir", "", "Directory where graph.txt, graph_unw.txt and part are written, the current one by default")
	strictDIMACS := flags.Bool("strict-dimacs", false, "Split clauses on 0 terminators instead of reading one clause per line")
	if err := flags.Parse(args); errors.Is(err, pflag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}

	if flags.NArg() < 1 {
		fmt.Fprintln(stdout, "ERROR: file not given")
		return errUsage
	}
	fileName := flags.Arg(0)

	// Resolve configuration: defaults < config file < flags
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if flags.Changed("seed") {
		cfg.Seed = *seed
	}
	if flags.Changed("resolution") {
		cfg.Resolution = *resolution
	}
	if flags.Changed("out-dir") {
		cfg.OutDir = *outDir
	}
	if flags.Changed("strict-dimacs") {
		cfg.StrictDIMACS = *strictDIMACS
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Build the variable interaction graph
	formula, err := cnf.ParseFile(fileName, cnf.ParseOptions{StrictDIMACS: cfg.StrictDIMACS})
	if err != nil {
		return fmt.Errorf("cannot parse CNF file %v: %w", fileName, err)
	}
	graph := vig.Build(formula)
	logrus.WithFields(logrus.Fields{
		"edges":    graph.Len(),
		"vertices": len(graph.Vertices()),
	}).Info("built variable interaction graph")

	if err := vig.WriteFiles(cfg.OutDir, cfg.GraphFile, cfg.UnweightedGraphFile, graph); err != nil {
		return err
	}

	// Partition it
	start := time.Now()
	communities, err := partition.NewLouvainPartitioner(cfg.Seed, cfg.Resolution).Partition(graph)
	if err != nil {
		return fmt.Errorf("cannot partition graph: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"communities": len(partition.Communities(communities)),
		"modularity":  partition.Modularity(graph, communities, cfg.Resolution),
		"duration":    time.Since(start),
	}).Info("partition done")

	return partition.WriteFile(filepath.Join(cfg.OutDir, cfg.PartitionFile), communities)
}
