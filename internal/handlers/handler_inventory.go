package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
	"github.com/tradeledger/trade_ledger_app/internal/middleware"
)

// inventoryHandler handles HTTP requests related to the user's inventory.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
	imageService     portssvc.ImageSvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade, imgSvc portssvc.ImageSvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is, imageService: imgSvc}
}

// registerInventoryRoutes registers all inventory-related routes.
func registerInventoryRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, inventoryService portssvc.InventorySvcFacade, imageService portssvc.ImageSvcFacade) {
	h := newInventoryHandler(inventoryService, imageService)

	inventory := rg.Group("/inventory")
	{
		inventory.GET("", middleware.RequirePermission(userService, domain.PermGetSelf), h.getInventory)
		inventory.GET("/categories", middleware.RequirePermission(userService, domain.PermGetSelf), h.getCategories)
		inventory.GET("/items-by-category", middleware.RequirePermission(userService, domain.PermGetSelf), h.getItemsByCategory)
		inventory.POST("/items", middleware.RequirePermission(userService, domain.PermManageSelf), h.addItem)
		inventory.PATCH("/items/:id", middleware.RequirePermission(userService, domain.PermManageSelf), h.updateItem)
		inventory.DELETE("/items/:id", middleware.RequirePermission(userService, domain.PermManageSelf), h.removeItem)
	}
}

// getInventory godoc
// @Summary Get the user's inventory
// @Description Retrieves the inventory with all items expanded
// @Tags inventory
// @Produce json
// @Success 200 {object} dto.InventoryResponse
// @Failure 404 {object} map[string]string "Inventory not found"
// @Security BearerAuth
// @Router /inventory [get]
func (h *inventoryHandler) getInventory(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inv, err := h.inventoryService.GetInventory(c.Request.Context(), user.InventoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInventoryResponse(inv))
}

// getCategories godoc
// @Summary List inventory categories
// @Description Retrieves the distinct normalized category labels of the user's items
// @Tags inventory
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Security BearerAuth
// @Router /inventory/categories [get]
func (h *inventoryHandler) getCategories(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	categories, err := h.inventoryService.GetCategories(c.Request.Context(), user.InventoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: categories})
}

// getItemsByCategory godoc
// @Summary Group inventory items by category
// @Tags inventory
// @Produce json
// @Success 200 {object} dto.ItemsByCategoryResponse
// @Security BearerAuth
// @Router /inventory/items-by-category [get]
func (h *inventoryHandler) getItemsByCategory(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	grouped, err := h.inventoryService.GetItemsByCategory(c.Request.Context(), user.InventoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ItemsByCategoryResponse{Categories: make(map[string][]dto.ItemResponse, len(grouped))}
	for category, items := range grouped {
		converted := make([]dto.ItemResponse, len(items))
		for i := range items {
			converted[i] = dto.ToItemResponse(&items[i])
		}
		resp.Categories[category] = converted
	}
	c.JSON(http.StatusOK, resp)
}

// addItem godoc
// @Summary Add an item to the inventory
// @Description Creates a catalog item with an optional image and adds it to the user's inventory
// @Tags inventory
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Item name"
// @Param category formData string false "Category label"
// @Param description formData string false "Description"
// @Param image formData file false "Image"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /inventory/items [post]
func (h *inventoryHandler) addItem(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	imageID, err := storeUploadedImage(c, h.imageService)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.inventoryService.AddItem(c.Request.Context(), user.InventoryID, req, imageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// updateItem godoc
// @Summary Update an item
// @Description Updates item fields; a new image replaces and deletes the previous one
// @Tags inventory
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Item ID"
// @Param name formData string false "Item name"
// @Param category formData string false "Category label"
// @Param description formData string false "Description"
// @Param image formData file false "Replacement image"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /inventory/items/{id} [patch]
func (h *inventoryHandler) updateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	imageID, err := storeUploadedImage(c, h.imageService)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), c.Param("id"), req, imageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// removeItem godoc
// @Summary Remove an item from the inventory
// @Description Removes the inventory membership; the item record is retained
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 204 "Removed"
// @Failure 404 {object} map[string]string "Item not in inventory"
// @Security BearerAuth
// @Router /inventory/items/{id} [delete]
func (h *inventoryHandler) removeItem(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.inventoryService.RemoveItem(c.Request.Context(), user.InventoryID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
