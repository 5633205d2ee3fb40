package services

import (
	"context"
	"errors"
	"time"

	"github.com/alimgiray/demography/internal/metrics"
	"github.com/alimgiray/demography/internal/models"
	"github.com/alimgiray/demography/internal/query"
)

// PersonPage is one page of a filtered listing plus the size of the whole match
type PersonPage struct {
	Persons    []*models.Person
	TotalCount int64
}

// PersonService is the single entry point both transports bind to
type PersonService struct {
	store   PersonStore
	queries *QueryService
	stats   *DemographyService
	metrics *metrics.Metrics
}

// NewPersonService wires the store with the query and statistics services
func NewPersonService(store PersonStore, queries *QueryService, stats *DemographyService, m *metrics.Metrics) *PersonService {
	return &PersonService{
		store:   store,
		queries: queries,
		stats:   stats,
		metrics: m,
	}
}

// CreatePerson validates and stores a new person. The ID and creation date
// are always assigned here, whatever the caller sent.
func (s *PersonService) CreatePerson(ctx context.Context, person *models.Person) (*models.Person, error) {
	if person == nil {
		return nil, errors.New("person is required")
	}
	if err := person.Validate(); err != nil {
		return nil, err
	}

	created := *person
	created.ID = 0
	created.CreationDate = time.Now().UTC().Truncate(time.Second)

	if err := s.store.Create(ctx, &created); err != nil {
		return nil, err
	}

	s.metrics.IncrementCreated()
	return &created, nil
}

// GetPerson returns models.ErrPersonNotFound when id is unknown
func (s *PersonService) GetPerson(ctx context.Context, id int) (*models.Person, error) {
	return s.store.GetByID(ctx, id)
}

// UpdatePerson replaces all mutable fields of the person with the given ID.
// It returns models.ErrPersonNotFound when no such person exists.
func (s *PersonService) UpdatePerson(ctx context.Context, id int, person *models.Person) (*models.Person, error) {
	if person == nil {
		return nil, errors.New("person is required")
	}
	if err := person.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.Replace(ctx, id, person)
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementUpdated()
	return updated, nil
}

// DeletePerson reports whether a person with the given ID existed
func (s *PersonService) DeletePerson(ctx context.Context, id int) (bool, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.metrics.IncrementDeleted()
	}
	return deleted, nil
}

// GetAllPersons returns every stored person in ID order
func (s *PersonService) GetAllPersons(ctx context.Context) ([]*models.Person, error) {
	return s.store.GetAll(ctx)
}

// ListPersons returns a page of matching persons and the total match count
func (s *PersonService) ListPersons(ctx context.Context, filters query.Filters, sort []string, page query.Page) (*PersonPage, error) {
	persons, err := s.queries.List(ctx, filters, sort, page)
	if err != nil {
		return nil, err
	}

	total, err := s.queries.Count(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &PersonPage{Persons: persons, TotalCount: total}, nil
}

// MatchingPersons returns every person matching filters, unpaged
func (s *PersonService) MatchingPersons(ctx context.Context, filters query.Filters, sort []string) ([]*models.Person, error) {
	return s.queries.ListAll(ctx, filters, sort)
}

// CountPersons returns how many persons match filters
func (s *PersonService) CountPersons(ctx context.Context, filters query.Filters) (int64, error) {
	return s.queries.Count(ctx, filters)
}

// AverageWeight returns the mean weight, or 0 when no person has one
func (s *PersonService) AverageWeight(ctx context.Context) (float64, error) {
	return s.stats.AverageWeight(ctx)
}

// CountByLocation counts persons whose location matches every non-nil argument
func (s *PersonService) CountByLocation(ctx context.Context, x *float64, y *int, name *string) (int64, error) {
	return s.stats.CountByLocation(ctx, x, y, name)
}

// PersonsAboveHeight returns persons strictly taller than minHeight
func (s *PersonService) PersonsAboveHeight(ctx context.Context, minHeight float64) ([]*models.Person, error) {
	return s.stats.FindByHeightGreaterThan(ctx, minHeight)
}

// CountByHairColor returns 0 for an unknown hair color
func (s *PersonService) CountByHairColor(ctx context.Context, hairColor string) (int64, error) {
	return s.stats.CountByHairColor(ctx, hairColor)
}

// CountByNationality returns 0 for an unknown nationality
func (s *PersonService) CountByNationality(ctx context.Context, nationality string) (int64, error) {
	return s.stats.CountByNationality(ctx, nationality)
}

// PercentageByNationalityAndEyeColor returns the share of a nationality that
// has the eye color, in percent
func (s *PersonService) PercentageByNationalityAndEyeColor(ctx context.Context, nationality, eyeColor string) (float64, error) {
	return s.stats.PercentageByNationalityAndEyeColor(ctx, nationality, eyeColor)
}

// TotalCount returns how many persons are stored
func (s *PersonService) TotalCount(ctx context.Context) (int64, error) {
	return s.stats.TotalCount(ctx)
}
