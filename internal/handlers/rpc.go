package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/alimgiray/demography/internal/models"
	"github.com/alimgiray/demography/internal/query"
	"github.com/alimgiray/demography/internal/services"
	"github.com/alimgiray/demography/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Fault codes of the RPC surface
const (
	FaultClient   = "Client"
	FaultNotFound = "NotFound"
	FaultServer   = "Server"
)

type Fault struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type FaultResponse struct {
	Fault Fault `json:"fault"`
}

// GetPersonsRequest carries list criteria as typed fields. Zero numbers and
// empty strings mean "not specified".
type GetPersonsRequest struct {
	ID          int      `json:"id"`
	IDLt        int      `json:"idLt"`
	IDGt        int      `json:"idGt"`
	Name        string   `json:"name"`
	Height      float64  `json:"height"`
	HeightLt    float64  `json:"heightLt"`
	HeightGt    float64  `json:"heightGt"`
	Weight      int64    `json:"weight"`
	WeightLt    int64    `json:"weightLt"`
	WeightGt    int64    `json:"weightGt"`
	Nationality string   `json:"nationality"`
	Birthday    string   `json:"birthday"`
	BirthdayLt  string   `json:"birthdayLt"`
	BirthdayGt  string   `json:"birthdayGt"`
	Sort        []string `json:"sort"`
	Page        int      `json:"page"`
	Size        int      `json:"size"`
}

func (r GetPersonsRequest) criteria() query.Criteria {
	return query.Criteria{
		ID:          r.ID,
		IDLt:        r.IDLt,
		IDGt:        r.IDGt,
		Name:        r.Name,
		Height:      r.Height,
		HeightLt:    r.HeightLt,
		HeightGt:    r.HeightGt,
		Weight:      r.Weight,
		WeightLt:    r.WeightLt,
		WeightGt:    r.WeightGt,
		Nationality: r.Nationality,
		Birthday:    r.Birthday,
		BirthdayLt:  r.BirthdayLt,
		BirthdayGt:  r.BirthdayGt,
	}
}

type GetPersonsResponse struct {
	Persons    []*models.Person `json:"persons"`
	TotalCount int64            `json:"totalCount"`
}

type GetPersonByIdRequest struct {
	ID int `json:"id"`
}

type CreatePersonRequest struct {
	Person models.PersonRequest `json:"person"`
}

type UpdatePersonRequest struct {
	ID     int                  `json:"id"`
	Person models.PersonRequest `json:"person"`
}

type DeletePersonRequest struct {
	ID int `json:"id"`
}

type CountByLocationRequest struct {
	X    *float64 `json:"x"`
	Y    *int     `json:"y"`
	Name *string  `json:"name"`
}

type GetPersonsByHeightRequest struct {
	MinHeight float64 `json:"minHeight"`
}

type CountByHairColorRequest struct {
	HairColor string `json:"hairColor"`
}

type CountByNationalityRequest struct {
	Nationality string `json:"nationality"`
}

type GetPercentageByNationalityAndEyeColorRequest struct {
	Nationality string `json:"nationality"`
	EyeColor    string `json:"eyeColor"`
}

type PersonResponse struct {
	Person *models.Person `json:"person"`
}

type PersonsResponse struct {
	Persons []*models.Person `json:"persons"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type AverageWeightResponse struct {
	AverageWeight float64 `json:"averageWeight"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type PercentageResponse struct {
	Percentage float64 `json:"percentage"`
}

type rpcOperation func(c *gin.Context) (any, error)

// errMalformedPayload marks a request body that is not valid JSON for its operation
var errMalformedPayload = errors.New("malformed request payload")

// rpcCall binds the JSON payload into Req before calling fn. An empty body
// binds the zero request.
func rpcCall[Req any](fn func(ctx context.Context, req Req) (any, error)) rpcOperation {
	return func(c *gin.Context) (any, error) {
		var req Req
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			return nil, errMalformedPayload
		}
		return fn(c.Request.Context(), req)
	}
}

// RPCHandler exposes the person operations as named calls with typed
// payloads, backed by the same service as the resource routes
type RPCHandler struct {
	personService *services.PersonService
	operations    map[string]rpcOperation
}

// NewRPCHandler registers every named operation against personService
func NewRPCHandler(personService *services.PersonService) *RPCHandler {
	h := &RPCHandler{personService: personService}
	h.operations = map[string]rpcOperation{
		"GetPersons":                            rpcCall(h.getPersons),
		"GetPersonById":                         rpcCall(h.getPersonByID),
		"CreatePerson":                          rpcCall(h.createPerson),
		"UpdatePerson":                          rpcCall(h.updatePerson),
		"DeletePerson":                          rpcCall(h.deletePerson),
		"GetAverageWeight":                      rpcCall(h.averageWeight),
		"CountByLocation":                       rpcCall(h.countByLocation),
		"GetPersonsByHeight":                    rpcCall(h.personsByHeight),
		"CountByHairColor":                      rpcCall(h.countByHairColor),
		"CountByNationality":                    rpcCall(h.countByNationality),
		"GetTotalCount":                         rpcCall(h.totalCount),
		"GetAllPersons":                         rpcCall(h.allPersons),
		"GetPercentageByNationalityAndEyeColor": rpcCall(h.percentage),
	}
	return h
}

// Dispatch runs the operation named in the path
func (h *RPCHandler) Dispatch(c *gin.Context) {
	name := c.Param("operation")
	op, ok := h.operations[name]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, FaultResponse{Fault{Code: FaultClient, Message: "unknown operation " + name}})
		return
	}

	result, err := op(c)
	if err != nil {
		status, fault := toFault(err)
		if fault.Code == FaultServer {
			logger.WithError(err).WithField("operation", name).Error("RPC call failed")
		}
		c.AbortWithStatusJSON(status, FaultResponse{fault})
		return
	}

	c.JSON(http.StatusOK, result)
}

func toFault(err error) (int, Fault) {
	var verrs models.ValidationErrors
	var valueErr *query.ValueError

	switch {
	case errors.Is(err, errMalformedPayload):
		return http.StatusBadRequest, Fault{Code: FaultClient, Message: err.Error()}
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity, Fault{Code: FaultClient, Message: verrs.Error()}
	case errors.As(err, &valueErr):
		return http.StatusBadRequest, Fault{Code: FaultClient, Message: valueErr.Error()}
	case errors.Is(err, models.ErrPersonNotFound):
		return http.StatusNotFound, Fault{Code: FaultNotFound, Message: err.Error()}
	default:
		return http.StatusInternalServerError, Fault{Code: FaultServer, Message: "Internal server error"}
	}
}

func (h *RPCHandler) getPersons(ctx context.Context, req GetPersonsRequest) (any, error) {
	filters, err := req.criteria().Filters()
	if err != nil {
		return nil, err
	}

	result, err := h.personService.ListPersons(ctx, filters, req.Sort, query.Page{Number: req.Page, Size: req.Size})
	if err != nil {
		return nil, err
	}
	return GetPersonsResponse{Persons: result.Persons, TotalCount: result.TotalCount}, nil
}

func (h *RPCHandler) getPersonByID(ctx context.Context, req GetPersonByIdRequest) (any, error) {
	person, err := h.personService.GetPerson(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return PersonResponse{Person: person}, nil
}

func (h *RPCHandler) createPerson(ctx context.Context, req CreatePersonRequest) (any, error) {
	person, err := req.Person.ToPerson()
	if err != nil {
		return nil, err
	}

	created, err := h.personService.CreatePerson(ctx, person)
	if err != nil {
		return nil, err
	}
	return PersonResponse{Person: created}, nil
}

func (h *RPCHandler) updatePerson(ctx context.Context, req UpdatePersonRequest) (any, error) {
	person, err := req.Person.ToPerson()
	if err != nil {
		return nil, err
	}

	updated, err := h.personService.UpdatePerson(ctx, req.ID, person)
	if err != nil {
		return nil, err
	}
	return PersonResponse{Person: updated}, nil
}

func (h *RPCHandler) deletePerson(ctx context.Context, req DeletePersonRequest) (any, error) {
	deleted, err := h.personService.DeletePerson(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return SuccessResponse{Success: deleted}, nil
}

func (h *RPCHandler) averageWeight(ctx context.Context, _ struct{}) (any, error) {
	avg, err := h.personService.AverageWeight(ctx)
	if err != nil {
		return nil, err
	}
	return AverageWeightResponse{AverageWeight: avg}, nil
}

func (h *RPCHandler) countByLocation(ctx context.Context, req CountByLocationRequest) (any, error) {
	count, err := h.personService.CountByLocation(ctx, req.X, req.Y, req.Name)
	if err != nil {
		return nil, err
	}
	return CountResponse{Count: count}, nil
}

func (h *RPCHandler) personsByHeight(ctx context.Context, req GetPersonsByHeightRequest) (any, error) {
	persons, err := h.personService.PersonsAboveHeight(ctx, req.MinHeight)
	if err != nil {
		return nil, err
	}
	return PersonsResponse{Persons: persons}, nil
}

func (h *RPCHandler) countByHairColor(ctx context.Context, req CountByHairColorRequest) (any, error) {
	count, err := h.personService.CountByHairColor(ctx, req.HairColor)
	if err != nil {
		return nil, err
	}
	return CountResponse{Count: count}, nil
}

func (h *RPCHandler) countByNationality(ctx context.Context, req CountByNationalityRequest) (any, error) {
	count, err := h.personService.CountByNationality(ctx, req.Nationality)
	if err != nil {
		return nil, err
	}
	return CountResponse{Count: count}, nil
}

func (h *RPCHandler) totalCount(ctx context.Context, _ struct{}) (any, error) {
	total, err := h.personService.TotalCount(ctx)
	if err != nil {
		return nil, err
	}
	return CountResponse{Count: total}, nil
}

func (h *RPCHandler) allPersons(ctx context.Context, _ struct{}) (any, error) {
	persons, err := h.personService.GetAllPersons(ctx)
	if err != nil {
		return nil, err
	}
	return PersonsResponse{Persons: persons}, nil
}

func (h *RPCHandler) percentage(ctx context.Context, req GetPercentageByNationalityAndEyeColorRequest) (any, error) {
	pct, err := h.personService.PercentageByNationalityAndEyeColor(ctx, req.Nationality, req.EyeColor)
	if err != nil {
		return nil, err
	}
	return PercentageResponse{Percentage: pct}, nil
}
