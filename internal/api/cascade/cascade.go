package cascade

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	dto "rabbits_den/internal/api/dto/cascade"
	"rabbits_den/internal/converter"
	"rabbits_den/internal/engine"
	"rabbits_den/internal/service"
	cascadeServ "rabbits_den/internal/service/cascade"
	"rabbits_den/pkg/req"
	"rabbits_den/pkg/resp"
)

type HandlerDeps struct {
	Serv service.CascadeService
	Log  *zap.Logger
}

type Handler struct {
	serv service.CascadeService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, log: log}
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Spin(r.Context(), converter.ToCascadeSpin(payload))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result, true))
}

func (h *Handler) BuyBonus(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BonusBuyRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.BuyBonus(r.Context(), converter.ToBonusBuy(payload))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBonusBuyResponse(*result))
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := h.serv.Deposit(r.Context(), payload.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.DepositResponse{Balance: balance})
}

func (h *Handler) CheckData(w http.ResponseWriter, r *http.Request) {
	data, err := h.serv.CheckData(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDataResponse(*data))
}

// Replay воспроизводит спин по сидам; авторизация не нужна
func (h *Handler) Replay(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ReplayRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Replay(r.Context(), converter.ToReplayRequest(payload))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result, false))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats(r.Context())))
}

// writeServiceError переводит ошибку сервиса в HTTP статус
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cascadeServ.ErrUnauthorized):
		resp.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, cascadeServ.ErrInvalidBet),
		errors.Is(err, cascadeServ.ErrInvalidAmount),
		errors.Is(err, cascadeServ.ErrInvalidReplaySeed),
		errors.Is(err, cascadeServ.ErrInvalidReplayState),
		errors.Is(err, engine.ErrInvalidBet),
		errors.Is(err, engine.ErrInvalidFreeGames),
		errors.Is(err, engine.ErrInvalidMultiplier),
		errors.Is(err, engine.ErrWinOverflow):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, cascadeServ.ErrNotEnoughBalance),
		errors.Is(err, cascadeServ.ErrFreeSpinsActive):
		resp.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.log.Error("cascade request failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
