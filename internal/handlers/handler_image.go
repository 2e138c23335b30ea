package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/middleware"
)

// imageHandler serves stored images.
type imageHandler struct {
	imageService portssvc.ImageSvcFacade
}

func newImageHandler(is portssvc.ImageSvcFacade) *imageHandler {
	return &imageHandler{imageService: is}
}

// registerImageRoutes registers the image retrieval and deletion routes.
func registerImageRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, imageService portssvc.ImageSvcFacade) {
	h := newImageHandler(imageService)

	images := rg.Group("/images")
	{
		images.GET("/:id", middleware.RequirePermission(userService, domain.PermGetSelf), h.getImage)
		images.DELETE("/:id", middleware.RequirePermission(userService, domain.PermManageSelf), h.deleteImage)
	}
}

// getImage godoc
// @Summary Retrieve a stored image
// @Description Streams the image bytes with the stored content type
// @Tags images
// @Produce image/*
// @Param id path string true "Image ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Image not found"
// @Security BearerAuth
// @Router /images/{id} [get]
func (h *imageHandler) getImage(c *gin.Context) {
	image, err := h.imageService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Length", strconv.FormatInt(image.SizeBytes, 10))
	c.Header("Content-Disposition", `inline; filename="`+image.FileName+`"`)
	c.Data(http.StatusOK, image.ContentType, image.Data)
}

// deleteImage godoc
// @Summary Delete a stored image
// @Tags images
// @Produce json
// @Param id path string true "Image ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Image not found"
// @Security BearerAuth
// @Router /images/{id} [delete]
func (h *imageHandler) deleteImage(c *gin.Context) {
	if err := h.imageService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
