package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// constSource всегда возвращает один индекс
type constSource int

func (s constSource) IntN(n int) int { return int(s) % n }

// seqSource отдает значения по порядку, затем fallback
type seqSource struct {
	seq      []int
	fallback int
}

func (s *seqSource) IntN(n int) int {
	if len(s.seq) == 0 {
		return s.fallback % n
	}
	v := s.seq[0]
	s.seq = s.seq[1:]
	return v % n
}

func catalogIndex(t *testing.T, sym Symbol) int {
	t.Helper()
	for i, s := range catalog {
		if s == sym {
			return i
		}
	}
	t.Fatalf("symbol %q not in catalog", sym)
	return -1
}

// mustGrid строит поле из строк с токенами через пробел
func mustGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	matrix := make([][]Symbol, len(rows))
	for i, row := range rows {
		for _, tok := range strings.Fields(row) {
			matrix[i] = append(matrix[i], Symbol(tok))
		}
	}
	g, err := GridFromRows(matrix)
	require.NoError(t, err)
	return g
}

// twoClusterGrid два несвязанных кластера l1 из 5 и 6 ячеек, остальное множители
func twoClusterGrid(t *testing.T) *Grid {
	return mustGrid(t,
		"l1 l1 l1 l1 l1 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"l1 l1 l1 l1 l1 l1 2X",
	)
}

func newTestEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := New(cfg, nil)
	require.NoError(t, err)
	return e
}
