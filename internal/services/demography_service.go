package services

import (
	"context"
	"time"

	"github.com/alimgiray/demography/internal/metrics"
	"github.com/alimgiray/demography/internal/models"
)

// DemographyService computes aggregate statistics straight from the store.
// Category arguments that do not name a known enumeration value yield a
// zero result rather than an error.
type DemographyService struct {
	store   DemographyStore
	metrics *metrics.Metrics
}

// NewDemographyService computes statistics over store; m may be nil
func NewDemographyService(store DemographyStore, m *metrics.Metrics) *DemographyService {
	return &DemographyService{
		store:   store,
		metrics: m,
	}
}

// AverageWeight returns the mean weight of persons that have one, or 0
func (s *DemographyService) AverageWeight(ctx context.Context) (float64, error) {
	defer s.metrics.ObserveQuery("average_weight", time.Now())

	avg, ok, err := s.store.AverageWeight(ctx)
	if err != nil || !ok {
		return 0, err
	}
	return avg, nil
}

// CountByHairColor counts persons with the given hair color
func (s *DemographyService) CountByHairColor(ctx context.Context, hairColor string) (int64, error) {
	defer s.metrics.ObserveQuery("count_by_hair_color", time.Now())

	color, ok := models.ParseHairColor(hairColor)
	if !ok {
		return 0, nil
	}
	return s.store.CountByHairColor(ctx, color)
}

// CountByNationality counts persons of the given nationality
func (s *DemographyService) CountByNationality(ctx context.Context, nationality string) (int64, error) {
	defer s.metrics.ObserveQuery("count_by_nationality", time.Now())

	country, ok := models.ParseCountry(nationality)
	if !ok {
		return 0, nil
	}
	return s.store.CountByNationality(ctx, country)
}

// PercentageByNationalityAndEyeColor returns which share, in percent, of the
// persons of a nationality have the given eye color. It is 0 when nobody has
// that nationality.
func (s *DemographyService) PercentageByNationalityAndEyeColor(ctx context.Context, nationality, eyeColor string) (float64, error) {
	defer s.metrics.ObserveQuery("percentage_by_nationality_and_eye_color", time.Now())

	country, ok := models.ParseCountry(nationality)
	if !ok {
		return 0, nil
	}
	eye, ok := models.ParseEyeColor(eyeColor)
	if !ok {
		return 0, nil
	}

	total, err := s.store.CountByNationality(ctx, country)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	matched, err := s.store.CountByNationalityAndEyeColor(ctx, country, eye)
	if err != nil {
		return 0, err
	}
	return percentage(matched, total), nil
}

// CountByLocation counts persons whose location matches every provided component
func (s *DemographyService) CountByLocation(ctx context.Context, x *float64, y *int, name *string) (int64, error) {
	defer s.metrics.ObserveQuery("count_by_location", time.Now())

	return s.store.CountByLocation(ctx, x, y, name)
}

// FindByHeightGreaterThan returns persons strictly taller than minHeight
func (s *DemographyService) FindByHeightGreaterThan(ctx context.Context, minHeight float64) ([]*models.Person, error) {
	defer s.metrics.ObserveQuery("find_by_height", time.Now())

	return s.store.FindByHeightGreaterThan(ctx, minHeight)
}

// TotalCount returns the number of stored persons
func (s *DemographyService) TotalCount(ctx context.Context) (int64, error) {
	return s.store.CountAll(ctx)
}

func percentage(matched, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total) * 100
}
