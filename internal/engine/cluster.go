package engine

import (
	"fmt"
)

// Минимальный размер оплачиваемого кластера по умолчанию
const DefaultMinClusterSize = 5

// Cluster связная группа ячеек одного символа (с учетом wild)
type Cluster struct {
	// Symbol целевой символ заливки; Wild для кластера только из wild
	Symbol Symbol     `json:"symbol"`
	Cells  []Position `json:"cells"`
}

func (c Cluster) Size() int { return len(c.Cells) }

var dirs = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Detector ищет кластеры на снимке поля
type Detector struct {
	minSize int
}

func NewDetector(minSize int) Detector {
	if minSize <= 0 {
		minSize = DefaultMinClusterSize
	}
	return Detector{minSize: minSize}
}

// Detect возвращает кластеры в порядке построчного обхода затравок.
// Первый проход стартует с любых matchable ячеек, второй только с непосещенных wild.
// Множество посещенных ячеек общее для обоих проходов
func (d Detector) Detect(g *Grid) []Cluster {
	visited := make([]bool, g.Rows()*g.Cols())
	clusters := d.scan(g, visited, Symbol.IsMatchable)
	// Wild уже matchable и посещены первым проходом; второй проход оставлен страховкой и новых кластеров не дает
	clusters = append(clusters, d.scan(g, visited, Symbol.IsWild)...)

	for _, cl := range clusters {
		d.mustValid(g, cl)
	}
	return clusters
}

// scan заливает от каждой непосещенной затравки и оставляет кластеры не меньше minSize
func (d Detector) scan(g *Grid, visited []bool, seed func(Symbol) bool) []Cluster {
	var clusters []Cluster
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			sym := g.At(r, c)
			if visited[r*g.Cols()+c] || !seed(sym) {
				continue
			}
			cells := fill(g, visited, r, c)
			if len(cells) >= d.minSize {
				clusters = append(clusters, Cluster{Symbol: sym, Cells: cells})
			}
		}
	}
	return clusters
}

// fill заливка от затравки на явном стеке. Множители обрывают заливку и не помечаются посещенными
func fill(g *Grid, visited []bool, r, c int) []Position {
	target := g.At(r, c)
	visited[r*g.Cols()+c] = true
	stack := []Position{{Row: r, Col: c}}
	var cells []Position

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cells = append(cells, cur)

		for _, dir := range dirs {
			nr, nc := cur.Row+dir[0], cur.Col+dir[1]
			if !g.InBounds(nr, nc) || visited[nr*g.Cols()+nc] {
				continue
			}
			if !accepts(target, g.At(nr, nc)) {
				continue
			}
			visited[nr*g.Cols()+nc] = true
			stack = append(stack, Position{Row: nr, Col: nc})
		}
	}
	return cells
}

// accepts сообщает, присоединяется ли сосед к заливке с данным целевым символом
func accepts(target, neighbor Symbol) bool {
	if !neighbor.IsMatchable() {
		return false
	}
	if target.IsWild() {
		return neighbor.IsWild()
	}
	return neighbor == target || neighbor.IsWild()
}

func (d Detector) mustValid(g *Grid, cl Cluster) {
	if len(cl.Cells) < d.minSize {
		panic(fmt.Sprintf("engine: cluster of %d cells below minimum %d", len(cl.Cells), d.minSize))
	}
	seen := make(map[Position]struct{}, len(cl.Cells))
	for _, p := range cl.Cells {
		sym := g.At(p.Row, p.Col)
		if !sym.IsMatchable() {
			panic(fmt.Sprintf("engine: cluster cell %v holds non-matchable %q", p, sym))
		}
		if sym != cl.Symbol && !sym.IsWild() {
			panic(fmt.Sprintf("engine: cluster of %q contains %q at %v", cl.Symbol, sym, p))
		}
		if _, dup := seen[p]; dup {
			panic(fmt.Sprintf("engine: cell %v repeated in cluster", p))
		}
		seen[p] = struct{}{}
	}
}
