package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alimgiray/demography/internal/models"
)

// Field is a filterable person attribute
type Field string

const (
	FieldID          Field = "id"
	FieldName        Field = "name"
	FieldHeight      Field = "height"
	FieldWeight      Field = "weight"
	FieldNationality Field = "nationality"
	FieldBirthday    Field = "birthday"
)

// Operator is the comparison applied by a filter
type Operator string

const (
	OpEq Operator = "eq"
	OpLt Operator = "lt"
	OpGt Operator = "gt"
)

// FilterKey is one entry of the filter vocabulary, e.g. height[lt]
type FilterKey struct {
	Field Field
	Op    Operator
}

var (
	KeyID          = FilterKey{FieldID, OpEq}
	KeyIDLt        = FilterKey{FieldID, OpLt}
	KeyIDGt        = FilterKey{FieldID, OpGt}
	KeyName        = FilterKey{FieldName, OpEq}
	KeyHeight      = FilterKey{FieldHeight, OpEq}
	KeyHeightLt    = FilterKey{FieldHeight, OpLt}
	KeyHeightGt    = FilterKey{FieldHeight, OpGt}
	KeyWeight      = FilterKey{FieldWeight, OpEq}
	KeyWeightLt    = FilterKey{FieldWeight, OpLt}
	KeyWeightGt    = FilterKey{FieldWeight, OpGt}
	KeyNationality = FilterKey{FieldNationality, OpEq}
	KeyBirthday    = FilterKey{FieldBirthday, OpEq}
	KeyBirthdayLt  = FilterKey{FieldBirthday, OpLt}
	KeyBirthdayGt  = FilterKey{FieldBirthday, OpGt}
)

var vocabulary = map[string]FilterKey{}

func init() {
	for _, k := range []FilterKey{
		KeyID, KeyIDLt, KeyIDGt, KeyName,
		KeyHeight, KeyHeightLt, KeyHeightGt,
		KeyWeight, KeyWeightLt, KeyWeightGt,
		KeyNationality,
		KeyBirthday, KeyBirthdayLt, KeyBirthdayGt,
	} {
		vocabulary[k.String()] = k
	}
}

// ParseFilterKey resolves a wire key such as "id[lt]". The second result is
// false for keys outside the vocabulary.
func ParseFilterKey(s string) (FilterKey, bool) {
	k, ok := vocabulary[s]
	return k, ok
}

func (k FilterKey) String() string {
	if k.Op == OpEq {
		return string(k.Field)
	}
	return string(k.Field) + "[" + string(k.Op) + "]"
}

// Filter pairs a key with a value of the type its field requires:
// int for id, string for name, float64 for height, int64 for weight,
// models.Country for nationality and models.Date for birthday.
type Filter struct {
	Key   FilterKey
	Value any
}

// Filters is a conjunction; an empty list matches every person
type Filters []Filter

// ValueError reports a filter value that does not parse as its field's type
type ValueError struct {
	Key   string
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value %q for filter %s: %v", e.Value, e.Key, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// Criteria holds filter values as they arrive from a transport. A zero value
// in any field means the caller did not specify it, so zero can never be
// used as an equality filter.
type Criteria struct {
	ID, IDLt, IDGt                   int
	Name                             string
	Height, HeightLt, HeightGt       float64
	Weight, WeightLt, WeightGt       int64
	Nationality                      string
	Birthday, BirthdayLt, BirthdayGt string
}

// Filters normalizes the criteria into a filter list, dropping unset fields
func (c Criteria) Filters() (Filters, error) {
	var f Filters

	addInt := func(key FilterKey, v int) {
		if v != 0 {
			f = append(f, Filter{key, v})
		}
	}
	addFloat := func(key FilterKey, v float64) {
		if v != 0 {
			f = append(f, Filter{key, v})
		}
	}
	addWeight := func(key FilterKey, v int64) {
		if v != 0 {
			f = append(f, Filter{key, v})
		}
	}
	addDate := func(key FilterKey, v string) error {
		if v == "" {
			return nil
		}
		d, err := models.ParseDate(v)
		if err != nil {
			return &ValueError{Key: key.String(), Value: v, Err: err}
		}
		f = append(f, Filter{key, d})
		return nil
	}

	addInt(KeyID, c.ID)
	addInt(KeyIDLt, c.IDLt)
	addInt(KeyIDGt, c.IDGt)
	if c.Name != "" {
		f = append(f, Filter{KeyName, c.Name})
	}
	addFloat(KeyHeight, c.Height)
	addFloat(KeyHeightLt, c.HeightLt)
	addFloat(KeyHeightGt, c.HeightGt)
	addWeight(KeyWeight, c.Weight)
	addWeight(KeyWeightLt, c.WeightLt)
	addWeight(KeyWeightGt, c.WeightGt)
	if c.Nationality != "" {
		// An unknown country is kept as-is; it can never equal a stored value.
		country, _ := models.ParseCountry(c.Nationality)
		f = append(f, Filter{KeyNationality, country})
	}
	if err := addDate(KeyBirthday, c.Birthday); err != nil {
		return nil, err
	}
	if err := addDate(KeyBirthdayLt, c.BirthdayLt); err != nil {
		return nil, err
	}
	if err := addDate(KeyBirthdayGt, c.BirthdayGt); err != nil {
		return nil, err
	}

	return f, nil
}

// Set assigns a raw string value to the criteria field named by key.
// An empty raw value leaves the field unset.
func (c *Criteria) Set(key FilterKey, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var err error
	switch key.Field {
	case FieldID:
		var v int
		if v, err = strconv.Atoi(raw); err == nil {
			*pickInt(c, key.Op) = v
		}
	case FieldName:
		c.Name = raw
	case FieldHeight:
		var v float64
		if v, err = strconv.ParseFloat(raw, 64); err == nil {
			*pickFloat(c, key.Op) = v
		}
	case FieldWeight:
		var v int64
		if v, err = strconv.ParseInt(raw, 10, 64); err == nil {
			*pickWeight(c, key.Op) = v
		}
	case FieldNationality:
		c.Nationality = raw
	case FieldBirthday:
		*pickDate(c, key.Op) = raw
	}
	if err != nil {
		return &ValueError{Key: key.String(), Value: raw, Err: err}
	}
	return nil
}

// ParseFilters builds filters from a query-string style map. Keys outside
// the vocabulary are skipped; for repeated keys the first value wins.
func ParseFilters(values map[string][]string) (Filters, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var c Criteria
	for _, raw := range keys {
		key, ok := ParseFilterKey(raw)
		if !ok || len(values[raw]) == 0 {
			continue
		}
		if err := c.Set(key, values[raw][0]); err != nil {
			return nil, err
		}
	}
	return c.Filters()
}

func pickInt(c *Criteria, op Operator) *int {
	switch op {
	case OpLt:
		return &c.IDLt
	case OpGt:
		return &c.IDGt
	}
	return &c.ID
}

func pickFloat(c *Criteria, op Operator) *float64 {
	switch op {
	case OpLt:
		return &c.HeightLt
	case OpGt:
		return &c.HeightGt
	}
	return &c.Height
}

func pickWeight(c *Criteria, op Operator) *int64 {
	switch op {
	case OpLt:
		return &c.WeightLt
	case OpGt:
		return &c.WeightGt
	}
	return &c.Weight
}

func pickDate(c *Criteria, op Operator) *string {
	switch op {
	case OpLt:
		return &c.BirthdayLt
	case OpGt:
		return &c.BirthdayGt
	}
	return &c.Birthday
}
