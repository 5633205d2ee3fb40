package repositories

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alimgiray/demography/internal/models"
	"github.com/alimgiray/demography/internal/query"
	"github.com/alimgiray/demography/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *PersonRepository {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "persons.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPersonRepository(db)
}

func newPerson(name string, height float64, nationality models.Country) *models.Person {
	return &models.Person{
		Name:         name,
		Coordinates:  models.Coordinates{X: 10.5, Y: 20.7},
		CreationDate: time.Date(2025, 9, 26, 10, 30, 0, 0, time.UTC),
		Height:       height,
		Birthday:     models.NewDate(1990, 5, 15),
		Nationality:  nationality,
		Location:     models.Location{X: 55.75, Y: 37, Name: "Moscow"},
	}
}

func TestPersonRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	weight := int64(70)
	blue := models.EyeColorBlue
	person := newPerson("Ivan", 175.5, models.CountryRussia)
	person.Weight = &weight
	person.EyeColor = &blue

	require.NoError(t, repo.Create(ctx, person))
	assert.Equal(t, 1, person.ID)

	loaded, err := repo.GetByID(ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ivan", loaded.Name)
	assert.Equal(t, models.NewDate(1990, 5, 15), loaded.Birthday)
	assert.True(t, person.CreationDate.Equal(loaded.CreationDate))
	require.NotNil(t, loaded.Weight)
	assert.Equal(t, int64(70), *loaded.Weight)
	assert.Nil(t, loaded.HairColor)
	require.NotNil(t, loaded.EyeColor)
	assert.Equal(t, models.EyeColorBlue, *loaded.EyeColor)
	assert.Equal(t, models.Location{X: 55.75, Y: 37, Name: "Moscow"}, loaded.Location)

	replacement := newPerson("Petr", 180, models.CountryItaly)
	replacement.CreationDate = time.Now()
	updated, err := repo.Replace(ctx, person.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, person.ID, updated.ID)
	assert.Equal(t, "Petr", updated.Name)
	assert.Nil(t, updated.Weight, "replace is a full overwrite")
	assert.Nil(t, updated.EyeColor)
	assert.True(t, person.CreationDate.Equal(updated.CreationDate), "creation date must survive updates")

	deleted, err := repo.Delete(ctx, person.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, person.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.GetByID(ctx, person.ID)
	assert.ErrorIs(t, err, models.ErrPersonNotFound)
}

func TestPersonRepositoryReplaceMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Replace(context.Background(), 99, newPerson("Nobody", 170, models.CountryChina))
	assert.ErrorIs(t, err, models.ErrPersonNotFound)
}

func TestPersonRepositoryFindAndCount(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for i, height := range []float64{190, 160, 175, 160, 182} {
		p := newPerson("P", height, models.CountryIndia)
		p.Name = string(rune('A' + i))
		require.NoError(t, repo.Create(ctx, p))
	}

	filters, err := query.Criteria{HeightGt: 161}.Filters()
	require.NoError(t, err)
	pred := query.Compile(filters)

	count, err := repo.Count(ctx, pred)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	people, err := repo.Find(ctx, pred, query.ResolveSort([]string{"height,desc"}), query.Page{Number: 0, Size: 2})
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, 190.0, people[0].Height)
	assert.Equal(t, 182.0, people[1].Height)

	people, err = repo.Find(ctx, pred, query.ResolveSort([]string{"height,desc"}), query.Page{Number: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, 175.0, people[0].Height)

	// Equal heights are tie-broken by ascending id.
	people, err = repo.Find(ctx, query.Predicate{}, query.ResolveSort([]string{"height,asc"}), query.Page{Number: 0, Size: 2})
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, 2, people[0].ID)
	assert.Equal(t, 4, people[1].ID)

	people, err = repo.Find(ctx, query.Predicate{}, nil, query.Page{Number: 0, Size: 0})
	require.NoError(t, err)
	assert.Empty(t, people)

	people, err = repo.FindAll(ctx, pred, query.ResolveSort([]string{"height,asc"}))
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, 175.0, people[0].Height)
	assert.Equal(t, 190.0, people[2].Height)
}

func TestPersonRepositoryFindByBirthdayRange(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for _, year := range []int{1980, 1990, 2000} {
		p := newPerson("P", 170, models.CountryChina)
		p.Birthday = models.NewDate(year, 1, 1)
		require.NoError(t, repo.Create(ctx, p))
	}

	filters, err := query.Criteria{BirthdayGt: "1985-06-01", BirthdayLt: "2000-01-01"}.Filters()
	require.NoError(t, err)

	people, err := repo.Find(ctx, query.Compile(filters), nil, query.Page{Size: 10})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, 1990, people[0].Birthday.Year())
}

func TestPersonRepositoryStatistics(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, ok, err := repo.AverageWeight(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	w1, w2 := int64(60), int64(90)
	red := models.HairColorRed
	blue := models.EyeColorBlue

	a := newPerson("A", 170, models.CountryRussia)
	a.Weight = &w1
	a.HairColor = &red
	a.EyeColor = &blue
	b := newPerson("B", 180, models.CountryRussia)
	b.Weight = &w2
	c := newPerson("C", 190, models.CountryChina)
	c.Location = models.Location{X: 1.5, Y: 2, Name: "Beijing"}
	for _, p := range []*models.Person{a, b, c} {
		require.NoError(t, repo.Create(ctx, p))
	}

	avg, ok, err := repo.AverageWeight(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 75.0, avg, 1e-9)

	n, err := repo.CountByHairColor(ctx, models.HairColorRed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.CountByNationality(ctx, models.CountryRussia)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.CountByNationalityAndEyeColor(ctx, models.CountryRussia, models.EyeColorBlue)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	name := "Moscow"
	n, err = repo.CountByLocation(ctx, nil, nil, &name)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	y := 2
	n, err = repo.CountByLocation(ctx, nil, &y, &name)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = repo.CountByLocation(ctx, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	tall, err := repo.FindByHeightGreaterThan(ctx, 175)
	require.NoError(t, err)
	assert.Len(t, tall, 2)

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestPersonRepositoryPropagatesStoreFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPersonRepository(db)
	boom := errors.New("connection reset")

	mock.ExpectQuery("SELECT AVG\\(weight\\) FROM persons").WillReturnError(boom)
	_, _, err = repo.AverageWeight(context.Background())
	assert.ErrorIs(t, err, boom)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM persons WHERE id > \\?").
		WithArgs(5).
		WillReturnError(boom)
	_, err = repo.Count(context.Background(), query.Predicate{Clause: "id > ?", Args: []any{5}})
	assert.ErrorIs(t, err, boom)

	mock.ExpectExec("DELETE FROM persons").WithArgs(1).WillReturnError(sql.ErrConnDone)
	_, err = repo.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, sql.ErrConnDone)

	assert.NoError(t, mock.ExpectationsWereMet())
}
