package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models/dto"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/services"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/middleware"
)

// MessageController handles the direct message endpoints.
type MessageController struct {
	messageService services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

// List returns a user's messages, oldest first.
// @Summary List messages
// @Description Returns messages the user sent or received. all=true (admin) returns the full log.
// @Tags messages
// @Produce json
// @Param userId query string false "User id"
// @Param all query bool false "Return every message (admin)"
// @Success 200 {object} dto.APIResponse{data=[]models.Message}
// @Failure 400 {object} dto.ErrorResponse "Missing user id"
// @Router /messages [get]
func (c *MessageController) List(ctx *gin.Context) {
	if ctx.Query("all") == "true" && middleware.IsAdminRequest(ctx) {
		msgs, err := c.messageService.ListAll(ctx.Request.Context())
		if err != nil {
			c.logger.Error().Err(err).Msg("Failed to list messages")
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.APIResponse{Data: msgs})
		return
	}

	msgs, err := c.messageService.ListForUser(ctx.Request.Context(), ctx.Query("userId"))
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to list messages")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: msgs})
}

// Send appends a message.
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message payload"
// @Success 201 {object} dto.APIResponse{data=models.Message}
// @Failure 400 {object} dto.ErrorResponse "Invalid or empty message"
// @Router /messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid message payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	msg := &models.Message{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		ItemID:     req.ItemID,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
	}

	sent, err := c.messageService.Send(ctx.Request.Context(), msg)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to send message")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: sent})
}
