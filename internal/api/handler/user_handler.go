package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stickpark/game-portal/internal/api/metrics"
	"github.com/stickpark/game-portal/internal/core/ports"
)

// UserHandler serves own-profile management, phone verification, and
// privacy-gated views of other users' profiles and ranks.
type UserHandler struct {
	accounts ports.AccountService
	ranks    ports.RankService
}

func NewUserHandler(accounts ports.AccountService, ranks ports.RankService) *UserHandler {
	return &UserHandler{accounts: accounts, ranks: ranks}
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=50"`
	Bio         *string `json:"bio"          validate:"omitempty,max=200"`
	AvatarURL   *string `json:"avatar_url"   validate:"omitempty,url"`
	Privacy     *string `json:"privacy"      validate:"omitempty,oneof=public friends"`
}

type verifyPhoneRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// Me handles GET /v1/users/me.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.accounts.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe handles PUT /v1/users/me.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile changes"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Router       /v1/users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.accounts.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		Privacy:     req.Privacy,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SendOTP handles POST /v1/users/me/otp.
//
// @Summary      Issue a phone verification code
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /v1/users/me/otp [post]
func (h *UserHandler) SendOTP(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.accounts.SendVerificationCode(c.Request().Context(), userID); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "verification code sent"})
}

// VerifyOTP handles POST /v1/users/me/otp/verify.
//
// @Summary      Verify phone number
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      verifyPhoneRequest  true  "Verification code"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/users/me/otp/verify [post]
func (h *UserHandler) VerifyOTP(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req verifyPhoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accounts.VerifyPhone(c.Request().Context(), userID, req.Code); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "phone number verified"})
}

// View handles GET /v1/users/:id — another user's profile, full or
// truncated depending on the privacy policy.
//
// @Summary      View a user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  ports.ProfileView
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) View(c echo.Context) error {
	viewerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.accounts.ViewProfile(c.Request().Context(), viewerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Ranks handles GET /v1/users/:id/ranks.
//
// @Summary      Get a user's leaderboard ranks
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {array}   ports.GameRank
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id}/ranks [get]
func (h *UserHandler) Ranks(c echo.Context) error {
	viewerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ranks, err := h.ranks.Ranks(c.Request().Context(), viewerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ranks)
}
