package vig

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FormatWeight renders a weight in fixed notation with the fewest digits that parse back to
// the same float64.
func FormatWeight(weight float64) string {
	return strconv.FormatFloat(weight, 'f', -1, 64)
}

// WriteWeighted writes one "<x>  <y> <weight>" line per edge
func WriteWeighted(writer io.Writer, graph *Graph) error {
	buffered := bufio.NewWriter(writer)
	for _, edge := range graph.Edges() {
		if _, err := fmt.Fprintf(buffered, "%d  %d %s\n", edge.X, edge.Y, FormatWeight(edge.Weight)); err != nil {
			return err
		}
	}
	return buffered.Flush()
}

// WriteUnweighted writes one "<x>  <y>" line per edge
func WriteUnweighted(writer io.Writer, graph *Graph) error {
	buffered := bufio.NewWriter(writer)
	for _, edge := range graph.Edges() {
		if _, err := fmt.Fprintf(buffered, "%d  %d\n", edge.X, edge.Y); err != nil {
			return err
		}
	}
	return buffered.Flush()
}

// WriteFiles creates (or truncates) both edge lists inside directory
func WriteFiles(directory, weightedName, unweightedName string, graph *Graph) error {
	if err := writeFile(filepath.Join(directory, weightedName), graph, WriteWeighted); err != nil {
		return err
	}
	return writeFile(filepath.Join(directory, unweightedName), graph, WriteUnweighted)
}

func writeFile(fileName string, graph *Graph, write func(io.Writer, *Graph) error) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}

	if err := write(file, graph); err != nil {
		file.Close()
		return fmt.Errorf("failed to write graph file %v: %w", fileName, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close graph file %v: %w", fileName, err)
	}
	return nil
}

// ReadWeighted parses a weighted edge list. Endpoints are returned as (min, max).
func ReadWeighted(reader io.Reader) ([]Edge, error) {
	edges := make([]Edge, 0)
	scanner := bufio.NewScanner(reader)

	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		} else if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 fields, got %d", lineNumber, len(fields))
		}

		x, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid vertex: %w", lineNumber, err)
		}
		y, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid vertex: %w", lineNumber, err)
		}
		weight, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid weight: %w", lineNumber, err)
		}

		pair := NewPair(x, y)
		edges = append(edges, Edge{X: pair.X, Y: pair.Y, Weight: weight})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading edge list: %w", err)
	}
	return edges, nil
}
