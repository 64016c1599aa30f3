package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stickpark/game-portal/internal/api/metrics"
	"github.com/stickpark/game-portal/internal/core/domain"
	"github.com/stickpark/game-portal/internal/core/ports"
)

// TurnsHandler serves the play-turns ledger: balances, peer transfers, and
// admin grants.
type TurnsHandler struct {
	turns ports.TurnsService
}

func NewTurnsHandler(turns ports.TurnsService) *TurnsHandler {
	return &TurnsHandler{turns: turns}
}

type transferRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	GameID      string `json:"game_id"      validate:"required"`
	Amount      int    `json:"amount"       validate:"required,gt=0"`
}

type grantRequest struct {
	UserID string `json:"user_id" validate:"required"`
	GameID string `json:"game_id" validate:"required"`
	Amount int    `json:"amount"  validate:"required,gt=0"`
}

// Transfer handles POST /v1/turns/transfer.
//
// @Summary      Gift turns to a friend
// @Tags         turns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      transferRequest  true  "Transfer details"
// @Success      200   {object}  balanceResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/turns/transfer [post]
func (h *TurnsHandler) Transfer(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	balance, err := h.turns.Transfer(c.Request().Context(), userID, req.RecipientID, req.GameID, req.Amount)
	if err != nil {
		metrics.TransferErrorsTotal.WithLabelValues(transferErrorReason(err)).Inc()
		return err
	}

	metrics.TurnsTransferredTotal.Add(float64(req.Amount))
	return c.JSON(http.StatusOK, balanceResponse{GameID: req.GameID, Balance: balance})
}

// Grant handles POST /v1/admin/turns/grant (admin only).
//
// @Summary      Grant turns to a user
// @Tags         turns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      grantRequest  true  "Grant details"
// @Success      200   {object}  balanceResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/turns/grant [post]
func (h *TurnsHandler) Grant(c echo.Context) error {
	var req grantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	balance, err := h.turns.Grant(c.Request().Context(), req.UserID, req.GameID, req.Amount)
	if err != nil {
		return err
	}

	metrics.TurnsGrantedTotal.Add(float64(req.Amount))
	return c.JSON(http.StatusOK, balanceResponse{GameID: req.GameID, Balance: balance})
}

// Balances handles GET /v1/turns — the caller's own ledger.
//
// @Summary      Get own turn balances
// @Tags         turns
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int
// @Router       /v1/turns [get]
func (h *TurnsHandler) Balances(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	balances, err := h.turns.Balances(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balances)
}

func transferErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSelfReference):
		return "self_transfer"
	case errors.Is(err, domain.ErrNotFriends):
		return "not_friends"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrGameNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
