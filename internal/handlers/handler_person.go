package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
	"github.com/tradeledger/trade_ledger_app/internal/middleware"
)

// personHandler handles HTTP requests related to customers and suppliers.
type personHandler struct {
	personService portssvc.PersonSvcFacade
	imageService  portssvc.ImageSvcFacade
}

func newPersonHandler(ps portssvc.PersonSvcFacade, is portssvc.ImageSvcFacade) *personHandler {
	return &personHandler{personService: ps, imageService: is}
}

// registerPersonRoutes registers all person-related routes.
func registerPersonRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, personService portssvc.PersonSvcFacade, imageService portssvc.ImageSvcFacade) {
	h := newPersonHandler(personService, imageService)

	persons := rg.Group("/persons")
	{
		persons.GET("", middleware.RequirePermission(userService, domain.PermGetSelf), h.listPersons)
		persons.GET("/:id", middleware.RequirePermission(userService, domain.PermGetSelf), h.getPerson)
		persons.POST("", middleware.RequirePermission(userService, domain.PermManageSelf), h.createPerson)
		persons.PATCH("/:id", middleware.RequirePermission(userService, domain.PermManageSelf), h.updatePerson)
		persons.DELETE("/:id", middleware.RequirePermission(userService, domain.PermManageSelf), h.deletePerson)
	}
}

// storeUploadedImage reads an optional multipart file and stores it, returning
// the stored image ID or nil when no file was sent.
func storeUploadedImage(c *gin.Context, imageService portssvc.ImageSvcFacade) (*string, error) {
	// No file field, or a non-multipart request, means no image.
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	imageID, err := imageService.Store(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return nil, err
	}
	return &imageID, nil
}

// createPerson godoc
// @Summary Create a person
// @Description Creates a customer or supplier with an optional image; an initial totalOverdue creates an opening balance order
// @Tags persons
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param phoneNumber formData string true "Phone number"
// @Param type formData string true "customer or supplier"
// @Param totalOverdue formData number false "Opening overdue balance"
// @Param image formData file false "Image"
// @Success 201 {object} dto.PersonResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /persons [post]
func (h *personHandler) createPerson(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreatePersonRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	imageID, err := storeUploadedImage(c, h.imageService)
	if err != nil {
		respondError(c, err)
		return
	}

	person, err := h.personService.CreatePerson(c.Request.Context(), user, req, imageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPersonResponse(person))
}

// getPerson godoc
// @Summary Get a person by ID
// @Tags persons
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} dto.PersonResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Person not found"
// @Security BearerAuth
// @Router /persons/{id} [get]
func (h *personHandler) getPerson(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	person, err := h.personService.GetPerson(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPersonResponse(person))
}

// listPersons godoc
// @Summary List persons
// @Description Retrieves a filtered, sorted page of the user's persons
// @Tags persons
// @Produce json
// @Param type query string false "customer or supplier"
// @Param name query string false "Name substring filter"
// @Param sortBy query string false "field:asc|desc" default(createdAt:desc)
// @Param limit query int false "Page size" default(10)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.ListPersonsResponse
// @Security BearerAuth
// @Router /persons [get]
func (h *personHandler) listPersons(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListPersonsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	persons, total, err := h.personService.ListPersons(c.Request.Context(), user.UserID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ListPersonsResponse{
		Persons:  make([]dto.PersonResponse, len(persons)),
		PageMeta: dto.NewPageMeta(params.Page, params.Limit, total),
	}
	for i := range persons {
		resp.Persons[i] = dto.ToPersonResponse(&persons[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updatePerson godoc
// @Summary Update a person
// @Tags persons
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param person body dto.UpdatePersonRequest true "Fields to update"
// @Success 200 {object} dto.PersonResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Person not found"
// @Security BearerAuth
// @Router /persons/{id} [patch]
func (h *personHandler) updatePerson(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	person, err := h.personService.UpdatePerson(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPersonResponse(person))
}

// deletePerson godoc
// @Summary Delete a person
// @Description Removes a person, adjusting the user's pending aggregate by the person's overdue; orders are retained
// @Tags persons
// @Produce json
// @Param id path string true "Person ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Person not found"
// @Security BearerAuth
// @Router /persons/{id} [delete]
func (h *personHandler) deletePerson(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.personService.DeletePerson(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
