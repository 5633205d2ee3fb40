package services

import (
	"context"

	"github.com/alimgiray/demography/internal/models"
	"github.com/alimgiray/demography/internal/query"
)

// PersonStore is the durable record storage the services run against.
// repositories.PersonRepository implements it.
type PersonStore interface {
	Create(ctx context.Context, person *models.Person) error
	GetByID(ctx context.Context, id int) (*models.Person, error)
	GetAll(ctx context.Context) ([]*models.Person, error)
	Replace(ctx context.Context, id int, person *models.Person) (*models.Person, error)
	Delete(ctx context.Context, id int) (bool, error)
	Find(ctx context.Context, pred query.Predicate, order []query.SortKey, page query.Page) ([]*models.Person, error)
	FindAll(ctx context.Context, pred query.Predicate, order []query.SortKey) ([]*models.Person, error)
	Count(ctx context.Context, pred query.Predicate) (int64, error)
}

// DemographyStore answers the aggregate queries behind the statistics
type DemographyStore interface {
	AverageWeight(ctx context.Context) (float64, bool, error)
	CountAll(ctx context.Context) (int64, error)
	CountByHairColor(ctx context.Context, hairColor models.HairColor) (int64, error)
	CountByNationality(ctx context.Context, nationality models.Country) (int64, error)
	CountByNationalityAndEyeColor(ctx context.Context, nationality models.Country, eyeColor models.EyeColor) (int64, error)
	CountByLocation(ctx context.Context, x *float64, y *int, name *string) (int64, error)
	FindByHeightGreaterThan(ctx context.Context, minHeight float64) ([]*models.Person, error)
}
