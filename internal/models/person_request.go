package models

// PersonRequest is the create/update payload shared by the HTTP and RPC
// surfaces. Required nested values are pointers so a missing field can be
// told apart from a zero one.
type PersonRequest struct {
	Name        string              `json:"name"`
	Coordinates *CoordinatesRequest `json:"coordinates"`
	Height      float64             `json:"height"`
	Birthday    *Date               `json:"birthday"`
	Weight      *int64              `json:"weight"`
	Nationality string              `json:"nationality"`
	Location    *LocationRequest    `json:"location"`
	HairColor   *string             `json:"hairColor"`
	EyeColor    *string             `json:"eyeColor"`
}

type CoordinatesRequest struct {
	X *float64 `json:"x"`
	Y float64  `json:"y"`
}

type LocationRequest struct {
	X    float64 `json:"x"`
	Y    *int    `json:"y"`
	Name string  `json:"name"`
}

// ToPerson converts the payload into a Person, reporting every missing or
// invalid field at once.
func (r *PersonRequest) ToPerson() (*Person, error) {
	var errs ValidationErrors
	person := &Person{
		Name:   r.Name,
		Height: r.Height,
		Weight: r.Weight,
	}

	if r.Coordinates == nil {
		errs = append(errs, &ValidationError{Field: "coordinates", Message: "coordinates are required"})
	} else if r.Coordinates.X == nil {
		errs = append(errs, &ValidationError{Field: "coordinates.x", Message: "coordinate x is required"})
	} else {
		person.Coordinates = Coordinates{X: *r.Coordinates.X, Y: r.Coordinates.Y}
	}

	if r.Birthday != nil {
		person.Birthday = *r.Birthday
	}

	if r.Location == nil {
		errs = append(errs, &ValidationError{Field: "location", Message: "location is required"})
	} else {
		if r.Location.Y == nil {
			errs = append(errs, &ValidationError{Field: "location.y", Message: "location y is required"})
		} else {
			person.Location.Y = *r.Location.Y
		}
		person.Location.X = r.Location.X
		person.Location.Name = r.Location.Name
	}

	// Enum values are kept as sent so Validate can name the offending field.
	person.Nationality = Country(normalizeEnum(r.Nationality))
	if r.HairColor != nil && *r.HairColor != "" {
		hair := HairColor(normalizeEnum(*r.HairColor))
		person.HairColor = &hair
	}
	if r.EyeColor != nil && *r.EyeColor != "" {
		eye := EyeColor(normalizeEnum(*r.EyeColor))
		person.EyeColor = &eye
	}

	if err := person.Validate(); err != nil {
		if more, ok := err.(ValidationErrors); ok {
			errs = append(errs, more...)
		}
	}
	if r.Location == nil {
		errs = dropField(errs, "location.name")
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return person, nil
}

func dropField(errs ValidationErrors, field string) ValidationErrors {
	kept := errs[:0]
	for _, e := range errs {
		if e.Field != field {
			kept = append(kept, e)
		}
	}
	return kept
}
