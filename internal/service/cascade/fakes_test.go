package cascade

import (
	"context"
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/stretchr/testify/require"

	"rabbits_den/internal/config/env"
	"rabbits_den/internal/engine"
	"rabbits_den/internal/model"
	"rabbits_den/internal/repository"
	"rabbits_den/internal/repository/cascade_stats_repo"
	"rabbits_den/internal/service"
)

// store общее хранилище фейковых репозиториев
type store struct {
	balances map[int]int64
	states   map[int]model.CascadeState
	// reads порядок чтений внутри транзакции
	reads []string
}

// fakeTx откатывает хранилище, если функция вернула ошибку
type fakeTx struct {
	st *store
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	balances := maps.Clone(f.st.balances)
	states := maps.Clone(f.st.states)
	if err := fn(ctx); err != nil {
		f.st.balances = balances
		f.st.states = states
		return err
	}
	return nil
}

func (f *fakeTx) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return f.Do(ctx, fn)
}

type fakeUserRepo struct {
	st *store
}

func (r *fakeUserRepo) CreateUser(context.Context, *model.User) (int, error) {
	return 0, errors.New("not supported")
}

func (r *fakeUserRepo) GetUserByLogin(context.Context, string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetBalance(_ context.Context, id int) (int64, error) {
	r.st.reads = append(r.st.reads, "balance")
	b, ok := r.st.balances[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return b, nil
}

func (r *fakeUserRepo) UpdateBalance(_ context.Context, id int, amount int64) error {
	if _, ok := r.st.balances[id]; !ok {
		return repository.ErrNotFound
	}
	r.st.balances[id] = amount
	return nil
}

type fakeCascadeRepo struct {
	st *store
}

func (r *fakeCascadeRepo) GetState(_ context.Context, userID int) (model.CascadeState, error) {
	r.st.reads = append(r.st.reads, "state")
	state, ok := r.st.states[userID]
	if !ok {
		return model.DefaultCascadeState(), nil
	}
	return state, nil
}

func (r *fakeCascadeRepo) UpdateState(_ context.Context, userID int, state model.CascadeState) error {
	r.st.states[userID] = state
	return nil
}

// gridSource отдает индексы каталога для заданного поля, затем fallback
type gridSource struct {
	seq      []int
	fallback int
}

func (s *gridSource) IntN(n int) int {
	if len(s.seq) == 0 {
		return s.fallback % n
	}
	v := s.seq[0]
	s.seq = s.seq[1:]
	return v % n
}

func symbolIndex(t *testing.T, sym engine.Symbol) int {
	t.Helper()
	for i, s := range engine.Catalog() {
		if s == sym {
			return i
		}
	}
	t.Fatalf("unknown symbol %q", sym)
	return 0
}

// sourceFor источник, который сначала рисует поле rows, а дозаполняет fill
func sourceFor(t *testing.T, fill engine.Symbol, rows ...string) func() (engine.Source, error) {
	t.Helper()
	var seq []int
	for _, row := range rows {
		for _, tok := range strings.Fields(row) {
			seq = append(seq, symbolIndex(t, engine.Symbol(tok)))
		}
	}
	fallback := symbolIndex(t, fill)
	return func() (engine.Source, error) {
		return &gridSource{seq: append([]int(nil), seq...), fallback: fallback}, nil
	}
}

var (
	// Два кластера l1 (5 и 6 ячеек), выигрыш 11 * bet
	clusterRows = []string{
		"l1 l1 l1 l1 l1 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"l1 l1 l1 l1 l1 l1 2X",
	}
	// Три скаттера без кластеров
	scatterRows = []string{
		"s 2X s 2X s 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
		"2X 2X 2X 2X 2X 2X 2X",
	}
)

type fixture struct {
	st    *store
	stats *cascade_stats_repo.StatsRepo
	serv  service.CascadeService
}

func newFixture(t *testing.T, src func() (engine.Source, error), mutate func(*engine.Config)) *fixture {
	t.Helper()
	cfg, err := env.ParseCascadeConfig([]byte("cascade:\n  bet:\n    min: 10\n    max: 1000\n    step: 10\n"))
	require.NoError(t, err)

	engCfg, err := EngineConfig(cfg)
	require.NoError(t, err)
	if mutate != nil {
		mutate(&engCfg)
	}
	eng, err := engine.New(engCfg, nil)
	require.NoError(t, err)

	st := &store{balances: map[int]int64{1: 1000}, states: map[int]model.CascadeState{}}
	stats := cascade_stats_repo.NewCascadeStatsRepository(0)
	serv := NewCascadeService(cfg, eng, &fakeTx{st: st}, &fakeCascadeRepo{st: st}, &fakeUserRepo{st: st}, stats,
		WithSourceFactory(src))
	return &fixture{st: st, stats: stats, serv: serv}
}

// badWeightsConfig конфиг с весом для неизвестного символа
type badWeightsConfig struct{}

func (badWeightsConfig) Rows() int                     { return 7 }
func (badWeightsConfig) Cols() int                     { return 7 }
func (badWeightsConfig) MinClusterSize() int           { return 5 }
func (badWeightsConfig) ScatterTrigger() int           { return 3 }
func (badWeightsConfig) BonusSpins() int               { return 10 }
func (badWeightsConfig) MultiplierStep() int           { return 1 }
func (badWeightsConfig) MaxCascades() int              { return 100 }
func (badWeightsConfig) MaxWinXBet() int64             { return 0 }
func (badWeightsConfig) MultiplierMode() string        { return "literal" }
func (badWeightsConfig) SymbolWeights() map[string]int { return map[string]int{"carrot": 1} }
func (badWeightsConfig) MinBet() int64                 { return 10 }
func (badWeightsConfig) MaxBet() int64                 { return 100 }
func (badWeightsConfig) StepBet() int64                { return 10 }
func (badWeightsConfig) BonusBuyCostXBet() int64       { return 100 }
