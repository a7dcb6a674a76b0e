package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SeatLogix/desk_booking_app/internal/apperrors"
	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
	portssvc "github.com/SeatLogix/desk_booking_app/internal/core/ports/services"
	"github.com/SeatLogix/desk_booking_app/internal/dto"
	"github.com/SeatLogix/desk_booking_app/internal/middleware"
	"github.com/SeatLogix/desk_booking_app/internal/platform/config"
	"github.com/SeatLogix/desk_booking_app/internal/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const oauthStateCookieName = "oauth_state"

// googleOAuthHandler handles the Google OAuth login flow for the web client.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	cfg                *config.Config
}

func newGoogleOAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: services.GoogleOAuth,
		userService:        services.User,
		tokenService:       services.Token,
		cfg:                cfg,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes. These are
// public; the flow itself is the authentication.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newGoogleOAuthHandler(cfg, services)

	googleRoutes := rg.Group("/api/v1/auth/google")
	{
		googleRoutes.GET("/login", h.loginGoogle)
		googleRoutes.GET("/callback", h.callbackGoogle)
		googleRoutes.POST("/exchange-code", h.exchangeCodeGoogle)
	}
}

// exchangeCodeRequest is the JSON body for the /google/exchange-code endpoint.
type exchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// loginGoogle godoc
// @Summary Begin Google OAuth login
// @Description Sets a CSRF state cookie and redirects the browser to Google's consent page.
// @Tags oauth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) loginGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}

	// Short-lived, HTTPOnly. Compared against the state echoed in the callback.
	c.SetCookie(oauthStateCookieName, state, 600, "/", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// callbackGoogle godoc
// @Summary Google OAuth callback
// @Description Handles the redirect back from Google, creates or resolves the local user and returns application tokens.
// @Tags oauth
// @Produce json
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) callbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	wantState, err := c.Cookie(oauthStateCookieName)
	if err != nil || wantState == "" || c.Query("state") != wantState {
		logger.Warn("OAuth state mismatch on Google callback")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}

	h.completeLogin(c, code)
}

// exchangeCodeGoogle godoc
// @Summary Exchange authorization code for tokens
// @Description Exchanges an authorization code obtained by the frontend for application tokens.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body exchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCodeGoogle(c *gin.Context) {
	var req exchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}
	h.completeLogin(c, req.Code)
}

// completeLogin exchanges the code, resolves the local user and returns a
// token pair. Shared by the redirect callback and the SPA exchange endpoint.
func (h *googleOAuthHandler) completeLogin(c *gin.Context, code string) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Warn("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	// Prefer the signed ID token when Google returns one; fall back to the
	// userinfo endpoint otherwise.
	info, err := h.resolveUserInfo(c, oauth2Token)
	if err != nil {
		logger.Error("Failed to resolve Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to verify Google identity"})
		return
	}

	user, err := h.userService.FindOrCreateFromGoogle(ctx, info)
	if err != nil {
		respondError(c, err, "Failed to process Google login")
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate refresh token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		logger.Error("Failed to store refresh token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("User logged in via Google", slog.String("user_id", user.UserID), slog.String("email", user.Email))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         dto.ToUserResponse(user),
	})
}

func (h *googleOAuthHandler) resolveUserInfo(c *gin.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	ctx := c.Request.Context()

	idTokenString, ok := token.Extra("id_token").(string)
	if ok && idTokenString != "" {
		payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
		if err != nil {
			return nil, err
		}
		email, _ := payload.Claims["email"].(string)
		name, _ := payload.Claims["name"].(string)
		verified, _ := payload.Claims["email_verified"].(bool)
		if email == "" || payload.Subject == "" {
			return nil, apperrors.ErrUnauthorized
		}
		return &domain.GoogleUserInfo{
			ID:            payload.Subject,
			Email:         email,
			VerifiedEmail: verified,
			Name:          name,
		}, nil
	}

	return h.googleOAuthService.GetUserInfo(ctx, token)
}
