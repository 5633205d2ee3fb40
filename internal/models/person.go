package models

import (
	"strings"
	"time"
)

// Person is the single resource managed by the service
type Person struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Coordinates  Coordinates `json:"coordinates"`
	CreationDate time.Time   `json:"creationDate"`
	Height       float64     `json:"height"`
	Birthday     Date        `json:"birthday"`
	Weight       *int64      `json:"weight,omitempty"`
	Nationality  Country     `json:"nationality"`
	Location     Location    `json:"location"`
	HairColor    *HairColor  `json:"hairColor,omitempty"`
	EyeColor     *EyeColor   `json:"eyeColor,omitempty"`
}

type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Location struct {
	X    float64 `json:"x"`
	Y    int     `json:"y"`
	Name string  `json:"name"`
}

// Validate checks the invariants every stored person must satisfy
func (p *Person) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, &ValidationError{Field: "name", Message: "name must not be blank"})
	}
	if p.Height <= 0 {
		errs = append(errs, &ValidationError{Field: "height", Message: "height must be greater than 0"})
	}
	if p.Birthday.IsZero() {
		errs = append(errs, &ValidationError{Field: "birthday", Message: "birthday is required"})
	}
	if p.Weight != nil && *p.Weight <= 0 {
		errs = append(errs, &ValidationError{Field: "weight", Message: "weight must be greater than 0"})
	}
	if !p.Nationality.Valid() {
		errs = append(errs, &ValidationError{Field: "nationality", Message: "nationality must be one of " + strings.Join(countryNames(), ", ")})
	}
	if strings.TrimSpace(p.Location.Name) == "" {
		errs = append(errs, &ValidationError{Field: "location.name", Message: "location name must not be blank"})
	}
	if p.HairColor != nil && !p.HairColor.Valid() {
		errs = append(errs, &ValidationError{Field: "hairColor", Message: "unknown hair color"})
	}
	if p.EyeColor != nil && !p.EyeColor.Valid() {
		errs = append(errs, &ValidationError{Field: "eyeColor", Message: "unknown eye color"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
