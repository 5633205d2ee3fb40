package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alimgiray/demography/internal/models"
)

// AverageWeight returns the mean weight over persons with a weight set.
// ok is false when no such person exists.
func (r *PersonRepository) AverageWeight(ctx context.Context) (avg float64, ok bool, err error) {
	var result sql.NullFloat64
	err = r.db.QueryRowContext(ctx, `SELECT AVG(weight) FROM persons WHERE weight IS NOT NULL`).Scan(&result)
	if err != nil {
		return 0, false, fmt.Errorf("average weight: %w", err)
	}
	return result.Float64, result.Valid, nil
}

// CountAll returns the total number of persons
func (r *PersonRepository) CountAll(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, "", nil)
}

// CountByHairColor returns how many persons have the given hair color
func (r *PersonRepository) CountByHairColor(ctx context.Context, hairColor models.HairColor) (int64, error) {
	return r.countWhere(ctx, "hair_color = ?", []any{hairColor})
}

// CountByNationality returns how many persons have the given nationality
func (r *PersonRepository) CountByNationality(ctx context.Context, nationality models.Country) (int64, error) {
	return r.countWhere(ctx, "nationality = ?", []any{nationality})
}

// CountByNationalityAndEyeColor counts persons of a nationality with the given eye color
func (r *PersonRepository) CountByNationalityAndEyeColor(ctx context.Context, nationality models.Country, eyeColor models.EyeColor) (int64, error) {
	return r.countWhere(ctx, "nationality = ? AND eye_color = ?", []any{nationality, eyeColor})
}

// CountByLocation counts persons whose location matches every provided
// component; nil components are unconstrained
func (r *PersonRepository) CountByLocation(ctx context.Context, x *float64, y *int, name *string) (int64, error) {
	var (
		conds []string
		args  []any
	)
	if x != nil {
		conds = append(conds, "location_x = ?")
		args = append(args, *x)
	}
	if y != nil {
		conds = append(conds, "location_y = ?")
		args = append(args, *y)
	}
	if name != nil {
		conds = append(conds, "location_name = ?")
		args = append(args, *name)
	}
	return r.countWhere(ctx, strings.Join(conds, " AND "), args)
}

// FindByHeightGreaterThan returns persons strictly taller than minHeight in store order
func (r *PersonRepository) FindByHeightGreaterThan(ctx context.Context, minHeight float64) ([]*models.Person, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+personColumns+` FROM persons WHERE height > ?`, minHeight)
	if err != nil {
		return nil, fmt.Errorf("find persons by height: %w", err)
	}
	return scanPersons(rows)
}

func (r *PersonRepository) countWhere(ctx context.Context, where string, args []any) (int64, error) {
	stmt := `SELECT COUNT(*) FROM persons`
	if where != "" {
		stmt += ` WHERE ` + where
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return count, nil
}
