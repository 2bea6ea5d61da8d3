package cascade_repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rabbits_den/internal/model"
	"rabbits_den/internal/repository"
)

const (
	table          = "cascade_state"
	colUserID      = "user_id"
	colFreeSpins   = "free_spins_count"
	colMultiplier  = "multiplier"
	colBet         = "bet"
	colUpdatedAt   = "updated_at"
	currentTimeSQL = "now()"
)

// psql построитель запросов с плейсхолдерами $n
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCascadeRepository(dbc *pgxpool.Pool) repository.CascadeRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// GetState - фриспины, множитель и ставка бонуса игрока.
// Возвращает состояние по умолчанию, если записи нет
func (r *repo) GetState(ctx context.Context, userID int) (model.CascadeState, error) {
	query := psql.Select(colFreeSpins, colMultiplier, colBet).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		Suffix("FOR UPDATE")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return model.CascadeState{}, err
	}

	var state model.CascadeState
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&state.FreeSpins, &state.Multiplier, &state.Bet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.DefaultCascadeState(), nil
		}
		return model.CascadeState{}, err
	}
	return state, nil
}

// UpdateState - сохраняет состояние игрока, создавая запись при первом спине
func (r *repo) UpdateState(ctx context.Context, userID int, state model.CascadeState) error {
	query := psql.Insert(table).
		Columns(colUserID, colFreeSpins, colMultiplier, colBet).
		Values(userID, state.FreeSpins, state.Multiplier, state.Bet).
		Suffix("ON CONFLICT ("+colUserID+") DO UPDATE SET "+
			colFreeSpins+" = EXCLUDED."+colFreeSpins+", "+
			colMultiplier+" = EXCLUDED."+colMultiplier+", "+
			colBet+" = EXCLUDED."+colBet+", "+
			colUpdatedAt+" = "+currentTimeSQL)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}
