// The finch command solves the two built-in example problems, map coloring
// and n-queens, printing every solution as it is discovered followed by the
// solver statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/golang/glog"

	"github.com/finch-cp/finch/config"
	"github.com/finch-cp/finch/encoding"
	"github.com/finch-cp/finch/solver"
	"github.com/finch-cp/finch/term"
)

// australia is the adjacency map of the classic Australia three-coloring
// problem. Tasmania is an island: it appears in every solution but
// constrains nothing.
var australia = map[string][]string{
	"WA":  {"NT", "SA"},
	"NT":  {"WA", "SA", "Q"},
	"SA":  {"WA", "NT", "Q", "NSW", "V"},
	"Q":   {"NT", "SA", "NSW"},
	"NSW": {"Q", "SA", "V"},
	"V":   {"SA", "NSW"},
	"T":   {},
}

// australiaOrder keeps the region listing stable across runs.
var australiaOrder = []string{"WA", "NT", "SA", "Q", "NSW", "V", "T"}

var palette = []string{"Red", "Green", "Blue", "Yellow", "Purple", "Orange"}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error

	switch os.Args[1] {
	case "queens":
		err = runQueens(os.Args[2:])
	case "mapcolor":
		err = runMapColor(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Exitf("finch: %v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: finch <command> [args]"+
		"\n\nCommands:\n"+
		"  queens   -n <size>                solve the n-queens problem\n"+
		"  mapcolor -colors <k> [file.col]   color a map (default: Australia)\n")
}

func runQueens(args []string) error {
	fs := flag.NewFlagSet("queens", flag.ExitOnError)
	n := fs.Int("n", 8, "board size and number of queens")
	verbose := fs.Bool("v", false, "log search events to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n < 1 {
		return fmt.Errorf("board size must be positive, got %d", *n)
	}

	s := solver.New(newConfig(*verbose))

	// One variable per column; its value is the row holding that column's
	// queen.
	cols := make([]term.Var, *n)
	for i := range cols {
		v, err := s.NewVar(0, *n-1, fmt.Sprintf("x_%d", i))
		if err != nil {
			return err
		}
		cols[i] = v
	}
	if err := s.AddAllDifferent(term.Vars(cols...)...); err != nil {
		return err
	}
	diag1 := make([]term.Term, *n)
	diag2 := make([]term.Term, *n)
	for i, v := range cols {
		diag1[i] = v.Plus(i)
		diag2[i] = v.Minus(i)
	}
	if err := s.AddAllDifferent(diag1...); err != nil {
		return err
	}
	if err := s.AddAllDifferent(diag2...); err != nil {
		return err
	}

	stats, err := s.EnumerateAll(context.Background(), func(num int, sol solver.Solution, elapsed time.Duration) error {
		fmt.Printf("Solution %d, time = %f s\n", num, elapsed.Seconds())
		displayBoard(cols, sol)

		return nil
	})
	if err != nil {
		return err
	}
	displayStats(stats)

	return nil
}

func runMapColor(args []string) error {
	fs := flag.NewFlagSet("mapcolor", flag.ExitOnError)
	colors := fs.Int("colors", 3, "number of available colors")
	verbose := fs.Bool("v", false, "log search events to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *colors < 1 {
		return fmt.Errorf("color count must be positive, got %d", *colors)
	}

	names := australiaOrder
	edges := australiaEdges()

	if fs.NArg() > 0 {
		g, err := readCol(fs.Arg(0))
		if err != nil {
			return err
		}
		names = make([]string, g.Vertices)
		for i := range names {
			names[i] = fmt.Sprintf("v%d", i+1)
		}
		edges = g.Edges
	}

	s := solver.New(newConfig(*verbose))

	vars := make([]term.Var, len(names))
	for i, name := range names {
		v, err := s.NewVar(0, *colors-1, name)
		if err != nil {
			return err
		}
		vars[i] = v
	}
	for _, e := range edges {
		if err := s.AddNotEqual(vars[e[0]], vars[e[1]]); err != nil {
			return err
		}
	}

	stats, err := s.EnumerateAll(context.Background(), func(num int, sol solver.Solution, elapsed time.Duration) error {
		fmt.Printf("Solution %d, time = %f s\n", num, elapsed.Seconds())
		for _, v := range vars {
			fmt.Printf("%s: %s\n", sol.Name(v), colorName(sol.Value(v)))
		}
		fmt.Println()

		return nil
	})
	if err != nil {
		return err
	}
	displayStats(stats)

	return nil
}

// australiaEdges returns each adjacency of the built-in map exactly once, in
// region-listing order.
func australiaEdges() [][2]int {
	index := map[string]int{}
	for i, name := range australiaOrder {
		index[name] = i
	}
	edges := [][2]int{}

	for i, name := range australiaOrder {
		for _, neighbor := range australia[name] {
			if j := index[neighbor]; i < j {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}

func readCol(path string) (*encoding.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return encoding.ParseCol(f)
}

func newConfig(verbose bool) *config.Config {
	if verbose {
		return config.NewVerbose()
	}
	return config.New()
}

func colorName(i int) string {
	if i < len(palette) {
		return palette[i]
	}
	return fmt.Sprintf("Color%d", i)
}

// displayBoard prints the board with a queen in column j, row i marked "Q".
func displayBoard(cols []term.Var, sol solver.Solution) {
	n := len(cols)

	for i := 0; i < n; i++ {
		row := make([]string, n)
		for j := 0; j < n; j++ {
			if sol.Value(cols[j]) == i {
				row[j] = "Q"
			} else {
				row[j] = "_"
			}
		}
		fmt.Println(strings.Join(row, " "))
	}
	fmt.Println()
}

func displayStats(stats solver.Stats) {
	fmt.Println("\nStatistics")
	fmt.Printf("  conflicts      : %d\n", stats.Conflicts)
	fmt.Printf("  branches       : %d\n", stats.Branches)
	fmt.Printf("  wall time      : %f s\n", stats.WallTime.Seconds())
	fmt.Printf("  solutions found: %d\n", stats.Solutions)
}
