package encoding

import (
	"strings"
	"testing"
)

func TestParseCol(t *testing.T) {
	in := `c a triangle
p edge 3 3
e 1 2
e 2 3
e 1 3
`
	g, err := ParseCol(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCol failed: %v", err)
	}
	if g.Vertices != 3 {
		t.Fatalf("Wrong vertex count: %d", g.Vertices)
	}
	if len(g.Edges) != 3 {
		t.Fatalf("Wrong edge count: %d", len(g.Edges))
	}
	if g.Edges[0] != [2]int{0, 1} {
		t.Fatalf("Edge not converted to 0-based: %v", g.Edges[0])
	}
}

func TestParseColMissingProblemLine(t *testing.T) {
	if _, err := ParseCol(strings.NewReader("e 1 2\n")); err == nil {
		t.Fatalf("Did not reject edge before problem line")
	}
	if _, err := ParseCol(strings.NewReader("c nothing\n")); err == nil {
		t.Fatalf("Did not reject instance without problem line")
	}
}

func TestParseColEdgeOutOfRange(t *testing.T) {
	in := "p edge 2 1\ne 1 3\n"

	if _, err := ParseCol(strings.NewReader(in)); err == nil {
		t.Fatalf("Did not reject out-of-range edge")
	}
}

func TestParseColMalformed(t *testing.T) {
	for _, in := range []string{
		"p edge x 1\n",
		"p node 2 1\n",
		"p edge 2 1\ne 1\n",
		"p edge 2 1\ne one 2\n",
	} {
		if _, err := ParseCol(strings.NewReader(in)); err == nil {
			t.Fatalf("Did not reject malformed input: %q", in)
		}
	}
}
