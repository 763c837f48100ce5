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

// ItemController handles lost/found report endpoints.
type ItemController struct {
	itemService services.ItemService
	logger      zerolog.Logger
}

// NewItemController creates a new ItemController
func NewItemController(itemService services.ItemService, logger zerolog.Logger) *ItemController {
	return &ItemController{
		itemService: itemService,
		logger:      logger,
	}
}

// List returns reports, newest first.
// @Summary List reports
// @Description Returns verified reports. Pass all=true (admin) to include pending ones.
// @Tags items
// @Produce json
// @Param all query bool false "Include unverified reports"
// @Success 200 {object} dto.APIResponse{data=[]models.Item}
// @Router /items [get]
func (c *ItemController) List(ctx *gin.Context) {
	all := ctx.Query("all") == "true"
	if all && !middleware.IsAdminRequest(ctx) {
		// Members never see the moderation queue.
		all = false
	}

	items, err := c.itemService.List(ctx.Request.Context(), all)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list items")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: items})
}

// Create stores a new report.
// @Summary Report a lost or found item
// @Tags items
// @Accept json
// @Produce json
// @Param request body dto.CreateItemRequest true "Report payload"
// @Success 201 {object} dto.APIResponse{data=models.Item}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /items [post]
func (c *ItemController) Create(ctx *gin.Context) {
	var req dto.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid item payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item := &models.Item{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Date:        req.Date,
		Status:      req.Status,
		ImageURL:    req.ImageURL,
		PosterID:    req.PosterID,
		PosterName:  req.PosterName,
	}

	created, err := c.itemService.Create(ctx.Request.Context(), item)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to create item")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("itemId", created.ID).Str("posterId", created.PosterID).Msg("Report created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: created})
}

// Update applies a partial edit to a report. Admins may change any
// field; the report's poster may change the status (the reclaim flow).
// @Summary Edit a report
// @Tags items
// @Accept json
// @Produce json
// @Param request body dto.UpdateItemRequest true "Partial update"
// @Success 200 {object} dto.APIResponse{data=models.Item}
// @Failure 403 {object} dto.ErrorResponse "Not the poster"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /items [put]
func (c *ItemController) Update(ctx *gin.Context) {
	var req dto.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var (
		updated *models.Item
		err     error
	)
	if middleware.IsAdminRequest(ctx) {
		updated, err = c.itemService.Update(ctx.Request.Context(), req.ItemID, req.Fields)
	} else {
		status, ok := statusOnlyUpdate(req.Fields)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Only the report's status can be changed")
			ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		updated, err = c.itemService.UpdateStatusAsOwner(ctx.Request.Context(), middleware.CurrentUserID(ctx), req.ItemID, status)
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("itemId", req.ItemID).Msg("Failed to update item")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: updated})
}

// statusOnlyUpdate reports whether fields touches nothing but status.
func statusOnlyUpdate(fields map[string]interface{}) (models.ItemStatus, bool) {
	if len(fields) != 1 {
		return "", false
	}
	raw, ok := fields["status"].(string)
	if !ok {
		return "", false
	}
	return models.ItemStatus(raw), true
}

// Verify flips a report's verification flag. Admin only.
// @Summary Verify or unverify a report
// @Tags items
// @Accept json
// @Produce json
// @Param request body dto.VerifyItemRequest true "Verification payload"
// @Success 200 {object} dto.APIResponse{data=models.Item}
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /items [patch]
func (c *ItemController) Verify(ctx *gin.Context) {
	var req dto.VerifyItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	updated, err := c.itemService.Verify(ctx.Request.Context(), req.ItemID, req.IsVerified)
	if err != nil {
		c.logger.Warn().Err(err).Str("itemId", req.ItemID).Msg("Failed to verify item")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("itemId", req.ItemID).Bool("isVerified", req.IsVerified).Msg("Report verification updated")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: updated})
}

// Delete removes a report. Admin only.
// @Summary Delete a report
// @Tags items
// @Produce json
// @Param itemId query string true "Report id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /items [delete]
func (c *ItemController) Delete(ctx *gin.Context) {
	itemID := ctx.Query("itemId")

	if err := c.itemService.Delete(ctx.Request.Context(), itemID); err != nil {
		c.logger.Warn().Err(err).Str("itemId", itemID).Msg("Failed to delete item")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("itemId", itemID).Msg("Report deleted")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: gin.H{"deleted": true}})
}
