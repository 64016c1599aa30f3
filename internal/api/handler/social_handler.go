package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stickpark/game-portal/internal/api/metrics"
	"github.com/stickpark/game-portal/internal/core/domain"
	"github.com/stickpark/game-portal/internal/core/ports"
)

// SocialHandler serves friend requests and the friends list.
type SocialHandler struct {
	social ports.SocialService
}

func NewSocialHandler(social ports.SocialService) *SocialHandler {
	return &SocialHandler{social: social}
}

type sendRequestRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// friendSummary is the public subset rendered for users in friend lists.
type friendSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

type requestListResponse struct {
	Sent     []friendSummary `json:"sent"`
	Received []friendSummary `json:"received"`
}

// SendRequest handles POST /v1/friends/requests.
//
// @Summary      Send a friend request
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendRequestRequest  true  "Target user"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/friends/requests [post]
func (h *SocialHandler) SendRequest(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.social.SendRequest(c.Request().Context(), userID, req.UserID); err != nil {
		metrics.FriendActionsTotal.WithLabelValues("send", "error").Inc()
		return err
	}

	metrics.FriendActionsTotal.WithLabelValues("send", "ok").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "friend request sent"})
}

// AcceptRequest handles POST /v1/friends/requests/:id/accept.
//
// @Summary      Accept a friend request
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sender user ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/friends/requests/{id}/accept [post]
func (h *SocialHandler) AcceptRequest(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.social.AcceptRequest(c.Request().Context(), userID, c.Param("id")); err != nil {
		metrics.FriendActionsTotal.WithLabelValues("accept", "error").Inc()
		return err
	}

	metrics.FriendActionsTotal.WithLabelValues("accept", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "friend request accepted"})
}

// RejectRequest handles POST /v1/friends/requests/:id/reject.
//
// @Summary      Reject a friend request
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sender user ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/friends/requests/{id}/reject [post]
func (h *SocialHandler) RejectRequest(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.social.RejectRequest(c.Request().Context(), userID, c.Param("id")); err != nil {
		metrics.FriendActionsTotal.WithLabelValues("reject", "error").Inc()
		return err
	}

	metrics.FriendActionsTotal.WithLabelValues("reject", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "friend request rejected"})
}

// CancelRequest handles DELETE /v1/friends/requests/:id.
//
// @Summary      Cancel a sent friend request
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target user ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/friends/requests/{id} [delete]
func (h *SocialHandler) CancelRequest(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.social.CancelRequest(c.Request().Context(), userID, c.Param("id")); err != nil {
		metrics.FriendActionsTotal.WithLabelValues("cancel", "error").Inc()
		return err
	}

	metrics.FriendActionsTotal.WithLabelValues("cancel", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "friend request cancelled"})
}

// RemoveFriend handles DELETE /v1/friends/:id.
//
// @Summary      Remove a friend
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Friend user ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/friends/{id} [delete]
func (h *SocialHandler) RemoveFriend(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.social.RemoveFriend(c.Request().Context(), userID, c.Param("id")); err != nil {
		metrics.FriendActionsTotal.WithLabelValues("remove", "error").Inc()
		return err
	}

	metrics.FriendActionsTotal.WithLabelValues("remove", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "friend removed"})
}

// ListFriends handles GET /v1/friends.
//
// @Summary      List own friends
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  friendSummary
// @Router       /v1/friends [get]
func (h *SocialHandler) ListFriends(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	friends, err := h.social.ListFriends(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaries(friends))
}

// ListRequests handles GET /v1/friends/requests.
//
// @Summary      List own pending friend requests
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  requestListResponse
// @Router       /v1/friends/requests [get]
func (h *SocialHandler) ListRequests(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	lists, err := h.social.ListRequests(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requestListResponse{
		Sent:     toSummaries(lists.Sent),
		Received: toSummaries(lists.Received),
	})
}

func toSummaries(users []*domain.User) []friendSummary {
	out := make([]friendSummary, 0, len(users))
	for _, u := range users {
		out = append(out, friendSummary{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			AvatarURL:   u.AvatarURL,
		})
	}
	return out
}
