// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models/dto"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/services"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/middleware"
)

// AuthController handles account operations. One endpoint carries
// signup, login and profile update, selected by the action field.
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Handle dispatches POST /api/auth by action.
// @Summary Account operations
// @Description Signup, login or profile update depending on the action field. There are no passwords; the email is the credential.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AuthRequest true "Auth action payload"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or unknown action"
// @Failure 404 {object} dto.ErrorResponse "No account for that email"
// @Router /auth [post]
func (c *AuthController) Handle(ctx *gin.Context) {
	var req dto.AuthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid auth request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	switch req.Action {
	case dto.ActionSignup:
		c.signup(ctx, &req)
	case dto.ActionLogin:
		c.login(ctx, &req)
	case dto.ActionUpdate:
		c.update(ctx, &req)
	default:
		c.logger.Warn().Str("action", string(req.Action)).Msg("Unknown auth action")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown action")
		errorDetail = errorDetail.WithDetails("Action must be signup, login or update")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	}
}

func (c *AuthController) signup(ctx *gin.Context, req *dto.AuthRequest) {
	user, token, err := c.authService.Signup(ctx.Request.Context(), req.Name, req.Email)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Signup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("userId", user.ID).Str("email", user.Email).Msg("Account signed in via signup")
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.AuthResponse{User: user, Token: token},
	})
}

func (c *AuthController) login(ctx *gin.Context, req *dto.AuthRequest) {
	user, token, err := c.authService.Login(ctx.Request.Context(), req.Email)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("userId", user.ID).Msg("Account logged in")
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.AuthResponse{User: user, Token: token},
	})
}

func (c *AuthController) update(ctx *gin.Context, req *dto.AuthRequest) {
	// Members may only touch their own profile. The admin desk can
	// edit anyone, which backs the moderation dashboard.
	targetID := req.UserID
	if !middleware.IsAdminRequest(ctx) {
		if caller := middleware.CurrentUserID(ctx); caller != "" && targetID != "" && caller != targetID {
			ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeForbidden, "Cannot edit another profile")))
			return
		}
		if targetID == "" {
			targetID = middleware.CurrentUserID(ctx)
		}
	}

	user, err := c.authService.UpdateProfile(ctx.Request.Context(), targetID, req.Updates)
	if err != nil {
		c.logger.Warn().Err(err).Str("userId", targetID).Msg("Profile update failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.AuthResponse{User: user},
	})
}
