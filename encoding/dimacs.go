package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Graph is an undirected graph read from a DIMACS coloring instance.
// Vertices are 0-based; each edge appears once.
type Graph struct {
	Vertices int
	Edges    [][2]int
}

// ParseCol parses the DIMACS graph-coloring format: a "p edge V E" problem
// line, "e u v" edge lines with 1-based vertex numbers, and "c" comment
// lines.
func ParseCol(in io.Reader) (*Graph, error) {
	scanner := bufio.NewScanner(in)
	g := &Graph{}
	sawProblem := false

	for scanner.Scan() {
		fields := bytes.Fields(scanner.Bytes())

		if len(fields) == 0 || string(fields[0]) == "c" {
			continue
		}
		switch string(fields[0]) {
		case "p":
			if len(fields) != 4 || string(fields[1]) != "edge" {
				return nil, fmt.Errorf("encoding: malformed problem line: %q", scanner.Text())
			}
			n, err := strconv.Atoi(string(fields[2]))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("encoding: bad vertex count: %q", scanner.Text())
			}
			g.Vertices = n
			sawProblem = true
		case "e":
			if !sawProblem {
				return nil, fmt.Errorf("encoding: edge before problem line: %q", scanner.Text())
			}
			if len(fields) != 3 {
				return nil, fmt.Errorf("encoding: malformed edge line: %q", scanner.Text())
			}
			u, err1 := strconv.Atoi(string(fields[1]))
			v, err2 := strconv.Atoi(string(fields[2]))
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("encoding: malformed edge line: %q", scanner.Text())
			}
			if u < 1 || u > g.Vertices || v < 1 || v > g.Vertices {
				return nil, fmt.Errorf("encoding: edge out of range: %q", scanner.Text())
			}
			g.Edges = append(g.Edges, [2]int{u - 1, v - 1})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !sawProblem {
		return nil, fmt.Errorf("encoding: missing problem line")
	}
	return g, nil
}
