package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alimgiray/demography/internal/models"
	"github.com/alimgiray/demography/internal/query"
)

const personColumns = `id, name, coord_x, coord_y, creation_date, height, birthday, weight,
	nationality, location_x, location_y, location_name, hair_color, eye_color`

type PersonRepository struct {
	db *sql.DB
}

// NewPersonRepository stores persons in db, which must already carry the schema
func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(s scanner) (*models.Person, error) {
	var (
		person    models.Person
		weight    sql.NullInt64
		hairColor sql.NullString
		eyeColor  sql.NullString
	)
	err := s.Scan(
		&person.ID, &person.Name, &person.Coordinates.X, &person.Coordinates.Y, &person.CreationDate,
		&person.Height, &person.Birthday, &weight,
		&person.Nationality, &person.Location.X, &person.Location.Y, &person.Location.Name,
		&hairColor, &eyeColor,
	)
	if err != nil {
		return nil, err
	}

	if weight.Valid {
		person.Weight = &weight.Int64
	}
	if hairColor.Valid {
		hair := models.HairColor(hairColor.String)
		person.HairColor = &hair
	}
	if eyeColor.Valid {
		eye := models.EyeColor(eyeColor.String)
		person.EyeColor = &eye
	}
	return &person, nil
}

func scanPersons(rows *sql.Rows) ([]*models.Person, error) {
	defer rows.Close()

	people := []*models.Person{}
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	return people, rows.Err()
}

// Create inserts a person and fills in the generated ID
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	stmt := `
		INSERT INTO persons (
			name, coord_x, coord_y, creation_date, height, birthday, weight,
			nationality, location_x, location_y, location_name, hair_color, eye_color
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, stmt,
		person.Name, person.Coordinates.X, person.Coordinates.Y, person.CreationDate,
		person.Height, person.Birthday, person.Weight,
		person.Nationality, person.Location.X, person.Location.Y, person.Location.Name,
		person.HairColor, person.EyeColor,
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	person.ID = int(id)
	return nil
}

// GetByID retrieves a person by ID, returning models.ErrPersonNotFound when absent
func (r *PersonRepository) GetByID(ctx context.Context, id int) (*models.Person, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM persons WHERE id = ?`, id)

	person, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get person %d: %w", id, err)
	}
	return person, nil
}

// GetAll returns every person in ID order
func (r *PersonRepository) GetAll(ctx context.Context) ([]*models.Person, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+personColumns+` FROM persons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return scanPersons(rows)
}

// Replace overwrites every mutable field of the person with the given ID.
// The ID and creation date are left untouched.
func (r *PersonRepository) Replace(ctx context.Context, id int, person *models.Person) (*models.Person, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("replace person %d: %w", id, err)
	}
	defer tx.Rollback()

	stmt := `
		UPDATE persons SET
			name = ?, coord_x = ?, coord_y = ?, height = ?, birthday = ?, weight = ?,
			nationality = ?, location_x = ?, location_y = ?, location_name = ?,
			hair_color = ?, eye_color = ?
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, stmt,
		person.Name, person.Coordinates.X, person.Coordinates.Y, person.Height, person.Birthday, person.Weight,
		person.Nationality, person.Location.X, person.Location.Y, person.Location.Name,
		person.HairColor, person.EyeColor,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("replace person %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("replace person %d: %w", id, err)
	}
	if affected == 0 {
		return nil, models.ErrPersonNotFound
	}

	updated, err := scanPerson(tx.QueryRowContext(ctx, `SELECT `+personColumns+` FROM persons WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("reload person %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("replace person %d: %w", id, err)
	}
	return updated, nil
}

// Delete removes a person by ID and reports whether it existed
func (r *PersonRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM persons WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete person %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete person %d: %w", id, err)
	}
	return affected > 0, nil
}

// Find returns one page of persons matching pred in the given order
func (r *PersonRepository) Find(ctx context.Context, pred query.Predicate, order []query.SortKey, page query.Page) ([]*models.Person, error) {
	if page.Empty() {
		return []*models.Person{}, nil
	}

	stmt := selectMatching(pred, order) + ` LIMIT ? OFFSET ?`
	args := append(append([]any{}, pred.Args...), page.Size, page.Offset())
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("find persons: %w", err)
	}
	return scanPersons(rows)
}

// FindAll returns every person matching pred in the given order, in one query
func (r *PersonRepository) FindAll(ctx context.Context, pred query.Predicate, order []query.SortKey) ([]*models.Person, error) {
	rows, err := r.db.QueryContext(ctx, selectMatching(pred, order), pred.Args...)
	if err != nil {
		return nil, fmt.Errorf("find all persons: %w", err)
	}
	return scanPersons(rows)
}

func selectMatching(pred query.Predicate, order []query.SortKey) string {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + personColumns + ` FROM persons`)
	sb.WriteString(pred.Where())
	sb.WriteString(query.OrderBy(order))
	return sb.String()
}

// Count returns the number of persons matching pred
func (r *PersonRepository) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM persons`+pred.Where(), pred.Args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return count, nil
}
