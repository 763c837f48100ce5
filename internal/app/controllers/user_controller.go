package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models/dto"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/services"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/middleware"
)

// UserController exposes the member directory for the admin dashboard.
type UserController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(authService services.AuthService, logger zerolog.Logger) *UserController {
	return &UserController{
		authService: authService,
		logger:      logger,
	}
}

// List returns every account, newest first. Admin only.
// @Summary List accounts
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.authService.ListUsers(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list users")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: users})
}
