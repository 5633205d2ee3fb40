package handlers

import (
	"net/http"

	"github.com/alimgiray/demography/internal/services"
	"github.com/gin-gonic/gin"
)

type DemographyHandler struct {
	personService *services.PersonService
}

// NewDemographyHandler returns a handler for the demography routes
func NewDemographyHandler(personService *services.PersonService) *DemographyHandler {
	return &DemographyHandler{personService: personService}
}

// CountByHairColor returns how many persons have the hair color in the path
func (h *DemographyHandler) CountByHairColor(c *gin.Context) {
	count, err := h.personService.CountByHairColor(c.Request.Context(), c.Param("hairColor"))
	if err != nil {
		respondServiceError(c, "count by hair color", err)
		return
	}

	c.JSON(http.StatusOK, count)
}

// CountByNationality returns how many persons have the nationality in the path
func (h *DemographyHandler) CountByNationality(c *gin.Context) {
	count, err := h.personService.CountByNationality(c.Request.Context(), c.Param("nationality"))
	if err != nil {
		respondServiceError(c, "count by nationality", err)
		return
	}

	c.JSON(http.StatusOK, count)
}

// PercentageByNationalityAndEyeColor returns the share of a nationality
// having the given eye color, in percent
func (h *DemographyHandler) PercentageByNationalityAndEyeColor(c *gin.Context) {
	pct, err := h.personService.PercentageByNationalityAndEyeColor(c.Request.Context(), c.Param("nationality"), c.Param("eyeColor"))
	if err != nil {
		respondServiceError(c, "percentage by nationality and eye color", err)
		return
	}

	c.JSON(http.StatusOK, pct)
}
