package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
	"github.com/tradeledger/trade_ledger_app/internal/middleware"
)

// collectionHandler handles HTTP requests related to cash collections.
type collectionHandler struct {
	collectionService portssvc.CollectionSvcFacade
	imageService      portssvc.ImageSvcFacade
}

func newCollectionHandler(cs portssvc.CollectionSvcFacade, is portssvc.ImageSvcFacade) *collectionHandler {
	return &collectionHandler{collectionService: cs, imageService: is}
}

// registerCollectionRoutes registers all collection-related routes.
func registerCollectionRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, collectionService portssvc.CollectionSvcFacade, imageService portssvc.ImageSvcFacade) {
	h := newCollectionHandler(collectionService, imageService)

	collections := rg.Group("/collections")
	{
		collections.GET("", middleware.RequirePermission(userService, domain.PermGetSelf), h.listCollections)
		collections.GET("/:id", middleware.RequirePermission(userService, domain.PermGetSelf), h.getCollection)
		collections.POST("", middleware.RequirePermission(userService, domain.PermManageSelf), h.createCollection)
		collections.POST("/add-amount", middleware.RequirePermission(userService, domain.PermManageSelf), h.addAmount)
		collections.PATCH("/:id", middleware.RequirePermission(userService, domain.PermManageSelf), h.updateCollection)
		collections.DELETE("/:id", middleware.RequirePermission(userService, domain.PermManageSelf), h.deleteCollection)
	}
}

// createCollection godoc
// @Summary Create a collection
// @Description Creates a cash-collection record with bank/agent metadata and an optional image
// @Tags collections
// @Accept multipart/form-data
// @Produce json
// @Param bankName formData string true "Bank name"
// @Param agentName formData string true "Agent name"
// @Param agentPhoneNumber formData string true "Agent phone number"
// @Param image formData file false "Image"
// @Success 201 {object} dto.CollectionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /collections [post]
func (h *collectionHandler) createCollection(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateCollectionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	imageID, err := storeUploadedImage(c, h.imageService)
	if err != nil {
		respondError(c, err)
		return
	}

	collection, err := h.collectionService.CreateCollection(c.Request.Context(), user.UserID, req, imageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCollectionResponse(collection))
}

// listCollections godoc
// @Summary List collections
// @Tags collections
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.ListCollectionsResponse
// @Security BearerAuth
// @Router /collections [get]
func (h *collectionHandler) listCollections(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListCollectionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	collections, total, err := h.collectionService.ListCollections(c.Request.Context(), user.UserID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ListCollectionsResponse{
		Collections: make([]dto.CollectionResponse, len(collections)),
		PageMeta:    dto.NewPageMeta(params.Page, params.Limit, total),
	}
	for i := range collections {
		resp.Collections[i] = dto.ToCollectionResponse(&collections[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getCollection godoc
// @Summary Get a collection by ID
// @Description Retrieves a collection with its transaction history
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} dto.CollectionResponse
// @Failure 404 {object} map[string]string "Collection not found"
// @Security BearerAuth
// @Router /collections/{id} [get]
func (h *collectionHandler) getCollection(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	collection, err := h.collectionService.GetCollection(c.Request.Context(), user.UserID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCollectionResponse(collection))
}

// addAmount godoc
// @Summary Add an amount to a collection
// @Description Appends an {amount, timestamp} entry and increments the running amount
// @Tags collections
// @Accept json
// @Produce json
// @Param body body dto.AddAmountRequest true "Collection ID and amount"
// @Success 200 {object} dto.CollectionResponse
// @Failure 404 {object} map[string]string "Collection not found"
// @Security BearerAuth
// @Router /collections/add-amount [post]
func (h *collectionHandler) addAmount(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	collection, err := h.collectionService.AddAmount(c.Request.Context(), user.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCollectionResponse(collection))
}

// updateCollection godoc
// @Summary Update a collection
// @Tags collections
// @Accept json
// @Produce json
// @Param id path string true "Collection ID"
// @Param collection body dto.UpdateCollectionRequest true "Fields to update"
// @Success 200 {object} dto.CollectionResponse
// @Failure 404 {object} map[string]string "Collection not found"
// @Security BearerAuth
// @Router /collections/{id} [patch]
func (h *collectionHandler) updateCollection(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	collection, err := h.collectionService.UpdateCollection(c.Request.Context(), user.UserID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCollectionResponse(collection))
}

// deleteCollection godoc
// @Summary Delete a collection
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Collection not found"
// @Security BearerAuth
// @Router /collections/{id} [delete]
func (h *collectionHandler) deleteCollection(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.collectionService.DeleteCollection(c.Request.Context(), user.UserID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
