package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stickpark/game-portal/internal/core/ports"
)

// GameHandler serves the game catalog.
type GameHandler struct {
	games ports.GameService
}

func NewGameHandler(games ports.GameService) *GameHandler {
	return &GameHandler{games: games}
}

type createGameRequest struct {
	Name         string `json:"name"          validate:"required,max=100"`
	Description  string `json:"description"   validate:"required,max=1000"`
	GameURL      string `json:"game_url"      validate:"required,url"`
	ThumbnailURL string `json:"thumbnail_url" validate:"required,url"`
	Category     string `json:"category"`
}

type updateGameRequest struct {
	Name         *string `json:"name"          validate:"omitempty,max=100"`
	Description  *string `json:"description"   validate:"omitempty,max=1000"`
	GameURL      *string `json:"game_url"      validate:"omitempty,url"`
	ThumbnailURL *string `json:"thumbnail_url" validate:"omitempty,url"`
	Category     *string `json:"category"`
	IsActive     *bool   `json:"is_active"`
}

// List handles GET /v1/games.
//
// @Summary      List games
// @Tags         games
// @Produce      json
// @Success      200  {array}  domain.Game
// @Router       /v1/games [get]
func (h *GameHandler) List(c echo.Context) error {
	games, err := h.games.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, games)
}

// Get handles GET /v1/games/:id.
//
// @Summary      Get a game
// @Tags         games
// @Produce      json
// @Param        id   path      string  true  "Game ID"
// @Success      200  {object}  domain.Game
// @Failure      404  {object}  errorResponse
// @Router       /v1/games/{id} [get]
func (h *GameHandler) Get(c echo.Context) error {
	game, err := h.games.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, game)
}

// Create handles POST /v1/games (admin only).
//
// @Summary      Create a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGameRequest  true  "Game details"
// @Success      201   {object}  domain.Game
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/games [post]
func (h *GameHandler) Create(c echo.Context) error {
	var req createGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	game, err := h.games.Create(c.Request().Context(), ports.CreateGameInput{
		Name:         req.Name,
		Description:  req.Description,
		GameURL:      req.GameURL,
		ThumbnailURL: req.ThumbnailURL,
		Category:     req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, game)
}

// Update handles PUT /v1/games/:id (admin only).
//
// @Summary      Update a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Game ID"
// @Param        body  body      updateGameRequest  true  "Game changes"
// @Success      200   {object}  domain.Game
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/games/{id} [put]
func (h *GameHandler) Update(c echo.Context) error {
	var req updateGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	game, err := h.games.Update(c.Request().Context(), c.Param("id"), ports.UpdateGameInput{
		Name:         req.Name,
		Description:  req.Description,
		GameURL:      req.GameURL,
		ThumbnailURL: req.ThumbnailURL,
		Category:     req.Category,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, game)
}

// Delete handles DELETE /v1/games/:id (admin only).
//
// @Summary      Delete a game
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Game ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/games/{id} [delete]
func (h *GameHandler) Delete(c echo.Context) error {
	if err := h.games.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "game deleted"})
}
