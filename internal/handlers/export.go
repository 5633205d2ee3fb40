package handlers

import (
	"bytes"
	"net/http"

	"github.com/alimgiray/demography/internal/export"
	"github.com/alimgiray/demography/internal/query"
	"github.com/alimgiray/demography/internal/services"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	personService *services.PersonService
}

// NewExportHandler returns a handler for the spreadsheet export route
func NewExportHandler(personService *services.PersonService) *ExportHandler {
	return &ExportHandler{personService: personService}
}

// ExportPersons downloads every person matching the list filters as xlsx
func (h *ExportHandler) ExportPersons(c *gin.Context) {
	filters, err := query.ParseFilters(c.Request.URL.Query())
	if err != nil {
		respondServiceError(c, "export persons", err)
		return
	}

	persons, err := h.personService.MatchingPersons(c.Request.Context(), filters, c.QueryArray("sort"))
	if err != nil {
		respondServiceError(c, "export persons", err)
		return
	}

	var buf bytes.Buffer
	if err := export.WritePersons(&buf, persons); err != nil {
		respondServiceError(c, "export persons", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="persons.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
