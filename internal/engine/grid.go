package engine

import (
	"encoding/json"
	"fmt"
)

// Position координата ячейки; в JSON пишется как [row, col]
type Position struct {
	Row int
	Col int
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.Row, p.Col})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	p.Row, p.Col = pair[0], pair[1]
	return nil
}

// Grid прямоугольное поле символов, хранится построчно
type Grid struct {
	rows  int
	cols  int
	cells []Symbol
}

// NewGrid создает пустое поле
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("engine: invalid grid size %dx%d", rows, cols))
	}
	return &Grid{rows: rows, cols: cols, cells: make([]Symbol, rows*cols)}
}

// GridFromRows собирает поле из матрицы токенов
func GridFromRows(rows [][]Symbol) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	g := NewGrid(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != g.cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), g.cols)
		}
		for c, sym := range row {
			if !sym.Known() {
				return nil, fmt.Errorf("cell (%d,%d): unknown symbol %q", r, c, sym)
			}
			g.Set(r, c, sym)
		}
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }

func (g *Grid) Cols() int { return g.cols }

func (g *Grid) At(r, c int) Symbol { return g.cells[r*g.cols+c] }

func (g *Grid) Set(r, c int, s Symbol) { g.cells[r*g.cols+c] = s }

func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// Clone возвращает независимую копию поля
func (g *Grid) Clone() *Grid {
	cells := make([]Symbol, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Count считает ячейки с символом
func (g *Grid) Count(s Symbol) int {
	n := 0
	for _, cell := range g.cells {
		if cell == s {
			n++
		}
	}
	return n
}

// Matrix возвращает поле как матрицу строк
func (g *Grid) Matrix() [][]Symbol {
	out := make([][]Symbol, g.rows)
	for r := range out {
		out[r] = make([]Symbol, g.cols)
		copy(out[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Validate проверяет, что каждая ячейка содержит символ каталога
func (g *Grid) Validate() error {
	for i, cell := range g.cells {
		if !cell.Known() {
			return fmt.Errorf("cell (%d,%d): invalid symbol %q", i/g.cols, i%g.cols, cell)
		}
	}
	return nil
}

func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Matrix())
}

func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]Symbol
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := GridFromRows(rows)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}
