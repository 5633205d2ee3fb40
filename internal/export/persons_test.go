package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/alimgiray/demography/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWritePersons(t *testing.T) {
	weight := int64(72)
	hair := models.HairColorRed
	eye := models.EyeColorGreen

	persons := []*models.Person{
		{
			ID:           1,
			Name:         "Anna",
			Coordinates:  models.Coordinates{X: 1.5, Y: 2},
			CreationDate: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
			Height:       170,
			Birthday:     models.NewDate(1990, 1, 2),
			Weight:       &weight,
			Nationality:  models.CountryItaly,
			Location:     models.Location{X: 3, Y: 4, Name: "Rome"},
			HairColor:    &hair,
			EyeColor:     &eye,
		},
		{
			ID:          2,
			Name:        "Boris",
			Height:      182,
			Birthday:    models.NewDate(1985, 7, 14),
			Nationality: models.CountryRussia,
			Location:    models.Location{Name: "Moscow"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePersons(&buf, persons))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, personHeaders, rows[0])

	first := rows[1]
	require.Len(t, first, len(personHeaders))
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "Anna", first[1])
	assert.Equal(t, "1.5", first[2])
	assert.Equal(t, "2024-05-01 10:30:00", first[4])
	assert.Equal(t, "1990-01-02", first[6])
	assert.Equal(t, "72", first[7])
	assert.Equal(t, "ITALY", first[8])
	assert.Equal(t, "Rome", first[11])
	assert.Equal(t, "RED", first[12])
	assert.Equal(t, "GREEN", first[13])

	second := rows[2]
	assert.Equal(t, "Boris", second[1])
	assert.Equal(t, "RUSSIA", second[8])
	assert.Equal(t, "Moscow", second[11])
}

func TestWritePersonsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePersons(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ID", rows[0][0])
}
