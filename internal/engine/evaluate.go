package engine

import (
	"fmt"
)

// MultiplierMode правило учета ячеек-множителей при оценке выигрыша
type MultiplierMode string

const (
	// MultiplierLiteral множители на поле не влияют на выигрыш
	MultiplierLiteral MultiplierMode = "literal"
	// MultiplierAdjacent множители, соседние с кластером, умножают его выигрыш на сумму своих значений
	MultiplierAdjacent MultiplierMode = "adjacent"
)

// ParseMultiplierMode разбирает режим; пустая строка дает MultiplierLiteral
func ParseMultiplierMode(s string) (MultiplierMode, error) {
	switch MultiplierMode(s) {
	case "", MultiplierLiteral:
		return MultiplierLiteral, nil
	case MultiplierAdjacent:
		return MultiplierAdjacent, nil
	}
	return "", fmt.Errorf("unknown multiplier mode %q", s)
}

// ClusterWin выигрыш одного кластера
type ClusterWin struct {
	Cluster
	BaseWin    int64 `json:"base_win"`
	Multiplier int   `json:"multiplier"`
	Win        int64 `json:"win"`
}

// StepWin итог оценки одного шага каскада
type StepWin struct {
	Clusters     []ClusterWin
	WinningCells []Position
	Win          int64
}

// Evaluator переводит кластеры в денежный выигрыш
type Evaluator struct {
	mode MultiplierMode
}

func NewEvaluator(mode MultiplierMode) Evaluator {
	if mode == "" {
		mode = MultiplierLiteral
	}
	return Evaluator{mode: mode}
}

// Evaluate считает выигрыш шага: по каждому кластеру cells * bet, с учетом режима множителей
func (e Evaluator) Evaluate(g *Grid, clusters []Cluster, bet int64) StepWin {
	var out StepWin
	for _, cl := range clusters {
		base := int64(cl.Size()) * bet
		cw := ClusterWin{Cluster: cl, BaseWin: base, Multiplier: 1, Win: base}

		if e.mode == MultiplierAdjacent {
			if sum := adjacentMultiplierSum(g, cl); sum > 0 {
				cw.Multiplier = sum
				cw.Win = base * int64(sum)
			}
		}

		out.Clusters = append(out.Clusters, cw)
		out.WinningCells = append(out.WinningCells, cl.Cells...)
		out.Win += cw.Win
	}
	return out
}

// adjacentMultiplierSum сумма значений различных ячеек-множителей, соседних с кластером
func adjacentMultiplierSum(g *Grid, cl Cluster) int {
	seen := make(map[Position]struct{})
	sum := 0
	for _, p := range cl.Cells {
		for _, dir := range dirs {
			n := Position{Row: p.Row + dir[0], Col: p.Col + dir[1]}
			if !g.InBounds(n.Row, n.Col) {
				continue
			}
			factor, ok := g.At(n.Row, n.Col).MultiplierValue()
			if !ok {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			sum += factor
		}
	}
	return sum
}
