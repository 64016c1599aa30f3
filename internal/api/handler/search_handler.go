package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stickpark/game-portal/internal/core/ports"
)

// SearchHandler serves the combined user/game search.
type SearchHandler struct {
	search ports.SearchService
}

func NewSearchHandler(search ports.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Search handles GET /v1/search?q=...
//
// @Summary      Search users and games by name
// @Tags         search
// @Produce      json
// @Param        q    query     string  true  "Query (min 2 characters)"
// @Success      200  {object}  ports.SearchResult
// @Failure      400  {object}  errorResponse
// @Router       /v1/search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	result, err := h.search.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
