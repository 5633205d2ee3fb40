package handlers

import (
	"net/http"
	"testing"

	"github.com/alimgiray/demography/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRPCMatchesResourceRoutes(t *testing.T) {
	router := newTestRouter(t)
	createPerson(t, router, personPayload("Anna", 165, "RUSSIA", "BLUE"))
	createPerson(t, router, personPayload("Boris", 182, "RUSSIA", "BROWN"))
	createPerson(t, router, personPayload("Chen", 170, "CHINA", "BROWN"))

	rest := decode[PersonListResponse](t, doRequest(router, http.MethodGet, "/api/persons?nationality=RUSSIA&sort=height,desc&page=0&size=10", nil))

	w := doRequest(router, http.MethodPost, "/rpc/GetPersons", GetPersonsRequest{
		Nationality: "RUSSIA",
		Sort:        []string{"height,desc"},
		Size:        10,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rpc := decode[GetPersonsResponse](t, w)

	assert.Equal(t, rest.Size, rpc.TotalCount)
	assert.Equal(t, rest.Persons, rpc.Persons)
}

func TestRPCZeroValuesAreUnset(t *testing.T) {
	router := newTestRouter(t)
	createPerson(t, router, personPayload("Anna", 165, "RUSSIA", ""))
	createPerson(t, router, personPayload("Boris", 182, "RUSSIA", ""))

	w := doRequest(router, http.MethodPost, "/rpc/GetPersons", map[string]any{"id": 0, "height": 0, "name": "", "size": 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decode[GetPersonsResponse](t, w).TotalCount)
}

func TestRPCPersonLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/rpc/CreatePerson", map[string]any{"person": personPayload("Anna", 165, "ITALY", "GREEN")})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[PersonResponse](t, w).Person
	require.NotNil(t, created)

	w = doRequest(router, http.MethodPost, "/rpc/GetPersonById", GetPersonByIdRequest{ID: created.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Anna", decode[PersonResponse](t, w).Person.Name)

	w = doRequest(router, http.MethodPost, "/rpc/UpdatePerson", map[string]any{"id": created.ID, "person": personPayload("Anna B", 166, "ITALY", "")})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Anna B", decode[PersonResponse](t, w).Person.Name)

	w = doRequest(router, http.MethodPost, "/rpc/CountByHairColor", CountByHairColorRequest{HairColor: "RED"})
	assert.Equal(t, int64(0), decode[CountResponse](t, w).Count)

	w = doRequest(router, http.MethodPost, "/rpc/GetAverageWeight", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, decode[AverageWeightResponse](t, w).AverageWeight)

	name := "Rome"
	w = doRequest(router, http.MethodPost, "/rpc/CountByLocation", CountByLocationRequest{Name: &name})
	assert.Equal(t, int64(1), decode[CountResponse](t, w).Count)

	w = doRequest(router, http.MethodPost, "/rpc/GetPersonsByHeight", GetPersonsByHeightRequest{MinHeight: 100})
	assert.Len(t, decode[PersonsResponse](t, w).Persons, 1)

	w = doRequest(router, http.MethodPost, "/rpc/GetPercentageByNationalityAndEyeColor", GetPercentageByNationalityAndEyeColorRequest{Nationality: "ITALY", EyeColor: "GREEN"})
	assert.Equal(t, 0.0, decode[PercentageResponse](t, w).Percentage)

	w = doRequest(router, http.MethodPost, "/rpc/DeletePerson", DeletePersonRequest{ID: created.ID})
	assert.True(t, decode[SuccessResponse](t, w).Success)

	w = doRequest(router, http.MethodPost, "/rpc/DeletePerson", DeletePersonRequest{ID: created.ID})
	assert.False(t, decode[SuccessResponse](t, w).Success)
}

func TestRPCCountsAndAllPersons(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/rpc/GetAllPersons", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decode[PersonsResponse](t, w).Persons)

	createPerson(t, router, personPayload("Anna", 165, "RUSSIA", "BLUE"))
	createPerson(t, router, personPayload("Boris", 182, "RUSSIA", "BROWN"))
	createPerson(t, router, personPayload("Chen", 170, "CHINA", "BROWN"))

	w = doRequest(router, http.MethodPost, "/rpc/GetTotalCount", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(3), decode[CountResponse](t, w).Count)

	w = doRequest(router, http.MethodPost, "/rpc/CountByNationality", CountByNationalityRequest{Nationality: "RUSSIA"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(2), decode[CountResponse](t, w).Count)

	w = doRequest(router, http.MethodPost, "/rpc/CountByNationality", CountByNationalityRequest{Nationality: "ATLANTIS"})
	assert.Equal(t, int64(0), decode[CountResponse](t, w).Count)

	w = doRequest(router, http.MethodPost, "/rpc/GetAllPersons", nil)
	require.Equal(t, http.StatusOK, w.Code)
	persons := decode[PersonsResponse](t, w).Persons
	require.Len(t, persons, 3)
	for i, name := range []string{"Anna", "Boris", "Chen"} {
		assert.Equal(t, name, persons[i].Name)
		assert.Equal(t, i+1, persons[i].ID)
	}

	rest := decode[int64](t, doRequest(router, http.MethodGet, "/api/persons/count", nil))
	assert.Equal(t, rest, int64(len(persons)))
}

func TestRPCFaults(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name       string
		operation  string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"Missing person", "GetPersonById", GetPersonByIdRequest{ID: 7}, http.StatusNotFound, FaultNotFound},
		{"Update missing person", "UpdatePerson", map[string]any{"id": 7, "person": personPayload("Ghost", 170, "INDIA", "")}, http.StatusNotFound, FaultNotFound},
		{"Invalid person", "CreatePerson", map[string]any{"person": personPayload("", 170, "INDIA", "")}, http.StatusUnprocessableEntity, FaultClient},
		{"Bad filter value", "GetPersons", GetPersonsRequest{Birthday: "not-a-date", Size: 5}, http.StatusBadRequest, FaultClient},
		{"Malformed payload", "GetPersonById", `{"id": "seven"}`, http.StatusBadRequest, FaultClient},
		{"Unknown operation", "DropTable", nil, http.StatusNotFound, FaultClient},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/rpc/"+tc.operation, tc.body)
			assert.Equal(t, tc.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tc.wantCode, decode[FaultResponse](t, w).Fault.Code)
		})
	}
}

func TestRPCFaultMessageForMissingPerson(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/rpc/GetPersonById", GetPersonByIdRequest{ID: 3})
	assert.Equal(t, models.ErrPersonNotFound.Error(), decode[FaultResponse](t, w).Fault.Message)
}
