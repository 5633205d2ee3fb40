package handlers

import (
	"net/http"
	"strconv"

	"github.com/alimgiray/demography/internal/models"
	"github.com/alimgiray/demography/internal/query"
	"github.com/alimgiray/demography/internal/services"
	"github.com/gin-gonic/gin"
)

// PersonListResponse keeps the field names the frontend reads: size is the
// total number of matches, not the page length.
type PersonListResponse struct {
	Persons  []*models.Person `json:"persons"`
	Size     int64            `json:"size"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// PersonHandler serves the person resource and its statistics routes
type PersonHandler struct {
	personService   *services.PersonService
	defaultPageSize int
}

// NewPersonHandler falls back to a page size of 20 when defaultPageSize is not positive
func NewPersonHandler(personService *services.PersonService, defaultPageSize int) *PersonHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	return &PersonHandler{
		personService:   personService,
		defaultPageSize: defaultPageSize,
	}
}

// ListPersons returns one page of persons matching the query string filters
func (h *PersonHandler) ListPersons(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "page must be an integer")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(h.defaultPageSize)))
	if err != nil {
		respondError(c, http.StatusBadRequest, "size must be an integer")
		return
	}

	filters, err := query.ParseFilters(c.Request.URL.Query())
	if err != nil {
		respondServiceError(c, "list persons", err)
		return
	}

	result, err := h.personService.ListPersons(c.Request.Context(), filters, c.QueryArray("sort"), query.Page{Number: page, Size: size})
	if err != nil {
		respondServiceError(c, "list persons", err)
		return
	}

	c.JSON(http.StatusOK, PersonListResponse{
		Persons:  result.Persons,
		Size:     result.TotalCount,
		Page:     page,
		PageSize: size,
	})
}

// GetPerson returns a single person by ID
func (h *PersonHandler) GetPerson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	person, err := h.personService.GetPerson(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "get person", err)
		return
	}

	c.JSON(http.StatusOK, person)
}

// CreatePerson stores a new person
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	person, ok := bindPerson(c)
	if !ok {
		return
	}

	created, err := h.personService.CreatePerson(c.Request.Context(), person)
	if err != nil {
		respondServiceError(c, "create person", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdatePerson replaces a person's mutable fields
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	person, ok := bindPerson(c)
	if !ok {
		return
	}

	updated, err := h.personService.UpdatePerson(c.Request.Context(), id, person)
	if err != nil {
		respondServiceError(c, "update person", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeletePerson removes a person, answering 404 when it did not exist
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.personService.DeletePerson(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "delete person", err)
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, models.ErrPersonNotFound.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// AverageWeight returns the mean weight as a bare number
func (h *PersonHandler) AverageWeight(c *gin.Context) {
	avg, err := h.personService.AverageWeight(c.Request.Context())
	if err != nil {
		respondServiceError(c, "average weight", err)
		return
	}

	c.JSON(http.StatusOK, avg)
}

// TotalCount returns how many persons are stored as a bare number
func (h *PersonHandler) TotalCount(c *gin.Context) {
	total, err := h.personService.TotalCount(c.Request.Context())
	if err != nil {
		respondServiceError(c, "total count", err)
		return
	}

	c.JSON(http.StatusOK, total)
}

// CountByLocation counts persons matching whichever of x, y and name are given
func (h *PersonHandler) CountByLocation(c *gin.Context) {
	var (
		x    *float64
		y    *int
		name *string
	)

	if raw, ok := c.GetQuery("x"); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "x must be a number")
			return
		}
		x = &v
	}
	if raw, ok := c.GetQuery("y"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "y must be an integer")
			return
		}
		y = &v
	}
	if raw, ok := c.GetQuery("name"); ok {
		name = &raw
	}

	count, err := h.personService.CountByLocation(c.Request.Context(), x, y, name)
	if err != nil {
		respondServiceError(c, "count by location", err)
		return
	}

	c.JSON(http.StatusOK, count)
}

// PersonsByHeight lists persons strictly taller than minHeight
func (h *PersonHandler) PersonsByHeight(c *gin.Context) {
	minHeight, err := strconv.ParseFloat(c.Query("minHeight"), 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "minHeight must be a number")
		return
	}

	persons, err := h.personService.PersonsAboveHeight(c.Request.Context(), minHeight)
	if err != nil {
		respondServiceError(c, "persons by height", err)
		return
	}

	c.JSON(http.StatusOK, persons)
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid person ID")
		return 0, false
	}
	return id, true
}

func bindPerson(c *gin.Context) (*models.Person, bool) {
	var req models.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	person, err := req.ToPerson()
	if err != nil {
		respondServiceError(c, "bind person", err)
		return nil, false
	}
	return person, true
}
