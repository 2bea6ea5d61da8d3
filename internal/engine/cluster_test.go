package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDetect(t *testing.T) {
	d := NewDetector(DefaultMinClusterSize)

	tests := []struct {
		name    string
		rows    []string
		symbols []Symbol
		sizes   []int
	}{
		{
			name:    "two disjoint clusters of one symbol",
			rows:    []string{"l1 l1 l1 l1 l1 2X", "2X 2X 2X 2X 2X 2X", "l1 l1 l1 l1 l1 l1"},
			symbols: []Symbol{Low1, Low1},
			sizes:   []int{5, 6},
		},
		{
			name: "four cells do not pay",
			rows: []string{"h1 h1 h1 h1 l2"},
		},
		{
			name:    "wild completes a cluster",
			rows:    []string{"h2 h2 w h2 h2"},
			symbols: []Symbol{High2},
			sizes:   []int{5},
		},
		{
			name: "multiplier breaks the fill",
			rows: []string{"l3 l3 l3 4X l3 l3 l3"},
		},
		{
			name: "wild never substitutes for scatter",
			rows: []string{"s s w s s"},
		},
		{
			name:    "pure wild cluster",
			rows:    []string{"w w w w w l1"},
			symbols: []Symbol{Wild},
			sizes:   []int{5},
		},
		{
			name:    "shared wild goes to the first cluster only",
			rows:    []string{"l1 l1 l1 l1 w l2 l2 l2 l2"},
			symbols: []Symbol{Low1},
			sizes:   []int{5},
		},
		{
			name:    "L shape across rows",
			rows:    []string{"l4 2X 2X", "l4 2X 2X", "l4 l4 l4"},
			symbols: []Symbol{Low4},
			sizes:   []int{5},
		},
		{
			name: "diagonal is not connected",
			rows: []string{"l1 2X l1", "2X l1 2X", "l1 2X l1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clusters := d.Detect(mustGrid(t, tt.rows...))
			require.Len(t, clusters, len(tt.sizes))
			for i, cl := range clusters {
				assert.Equal(t, tt.symbols[i], cl.Symbol)
				assert.Equal(t, tt.sizes[i], cl.Size())
			}
		})
	}
}

func TestDetectHonorsMinSize(t *testing.T) {
	g := mustGrid(t, "h3 h3 h3 l1")
	assert.Len(t, NewDetector(3).Detect(g), 1)
	assert.Empty(t, NewDetector(4).Detect(g))
}

func genGrid(t *rapid.T, rows, cols int, alphabet []Symbol) *Grid {
	g := NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Set(r, c, rapid.SampledFrom(alphabet).Draw(t, "cell"))
		}
	}
	return g
}

func TestDetectInvariantsProperty(t *testing.T) {
	d := NewDetector(DefaultMinClusterSize)
	// Узкий алфавит дает много кластеров и wild-подстановок
	alphabet := []Symbol{Low1, Low2, Wild, Scatter, Mult2}

	rapid.Check(t, func(t *rapid.T) {
		g := genGrid(t, 7, 7, alphabet)
		clusters := d.Detect(g)

		owner := map[Position]int{}
		for i, cl := range clusters {
			if cl.Size() < DefaultMinClusterSize {
				t.Fatalf("cluster %d has %d cells", i, cl.Size())
			}
			members := map[Position]struct{}{}
			for _, p := range cl.Cells {
				sym := g.At(p.Row, p.Col)
				if sym.IsScatter() || sym.IsMultiplier() {
					t.Fatalf("cluster %d contains %q at %v", i, sym, p)
				}
				if sym != cl.Symbol && !sym.IsWild() {
					t.Fatalf("cluster of %q contains %q", cl.Symbol, sym)
				}
				if prev, ok := owner[p]; ok {
					t.Fatalf("cell %v in clusters %d and %d", p, prev, i)
				}
				owner[p] = i
				members[p] = struct{}{}
			}
			if !connected(cl.Cells, members) {
				t.Fatalf("cluster %d is not 4-connected", i)
			}
		}
	})
}

func connected(cells []Position, members map[Position]struct{}) bool {
	seen := map[Position]struct{}{cells[0]: {}}
	stack := []Position{cells[0]}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, dir := range dirs {
			n := Position{Row: cur.Row + dir[0], Col: cur.Col + dir[1]}
			if _, ok := members[n]; !ok {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			stack = append(stack, n)
		}
	}
	return len(seen) == len(cells)
}

// largestCandidate размер наибольшей связной области, которая могла бы стать кластером
func largestCandidate(g *Grid) int {
	best := 0
	for _, target := range catalog {
		if !target.IsMatchable() {
			continue
		}
		visited := make([]bool, g.Rows()*g.Cols())
		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				if visited[r*g.Cols()+c] || !accepts(target, g.At(r, c)) {
					continue
				}
				size := 0
				visited[r*g.Cols()+c] = true
				stack := []Position{{Row: r, Col: c}}
				for len(stack) > 0 {
					cur := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					size++
					for _, dir := range dirs {
						nr, nc := cur.Row+dir[0], cur.Col+dir[1]
						if g.InBounds(nr, nc) && !visited[nr*g.Cols()+nc] && accepts(target, g.At(nr, nc)) {
							visited[nr*g.Cols()+nc] = true
							stack = append(stack, Position{Row: nr, Col: nc})
						}
					}
				}
				if size > best {
					best = size
				}
			}
		}
	}
	return best
}

func TestDetectNothingBelowMinimumProperty(t *testing.T) {
	d := NewDetector(DefaultMinClusterSize)
	rapid.Check(t, func(t *rapid.T) {
		g := genGrid(t, 7, 7, catalog)
		clusters := d.Detect(g)
		if largestCandidate(g) < DefaultMinClusterSize && len(clusters) != 0 {
			t.Fatalf("got %d clusters on a grid without a 5-cell region", len(clusters))
		}
	})
}

func TestDetectIsRepeatable(t *testing.T) {
	d := NewDetector(DefaultMinClusterSize)
	rapid.Check(t, func(t *rapid.T) {
		g := genGrid(t, 7, 7, catalog)
		first := d.Detect(g)
		second := d.Detect(g)
		if len(first) != len(second) {
			t.Fatalf("detect is not repeatable: %d vs %d", len(first), len(second))
		}
	})
}

func TestDetectWildPassAddsNothing(t *testing.T) {
	d := NewDetector(DefaultMinClusterSize)
	alphabet := []Symbol{Low1, Low2, Wild, Scatter, Mult2}
	rapid.Check(t, func(t *rapid.T) {
		g := genGrid(t, 7, 7, alphabet)
		visited := make([]bool, g.Rows()*g.Cols())
		d.scan(g, visited, Symbol.IsMatchable)
		if extra := d.scan(g, visited, Symbol.IsWild); len(extra) != 0 {
			t.Fatalf("wild pass found %d clusters after the matchable pass", len(extra))
		}
	})
}
