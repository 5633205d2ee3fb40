package query

import "strings"

// Predicate is a compiled SQL condition with its positional arguments.
// An empty Clause matches every row.
type Predicate struct {
	Clause string
	Args   []any
}

// Where renders the predicate as a WHERE clause, or nothing when it matches all
func (p Predicate) Where() string {
	if p.Clause == "" {
		return ""
	}
	return " WHERE " + p.Clause
}

var filterColumns = map[Field]string{
	FieldID:          "id",
	FieldName:        "name",
	FieldHeight:      "height",
	FieldWeight:      "weight",
	FieldNationality: "nationality",
	FieldBirthday:    "birthday",
}

var operatorSQL = map[Operator]string{
	OpEq: "=",
	OpLt: "<",
	OpGt: ">",
}

// Compile turns the filters into a conjunction of column comparisons.
// Filters with a nil value or a key outside the vocabulary contribute nothing.
func Compile(filters Filters) Predicate {
	var (
		conds []string
		args  []any
	)
	for _, f := range filters {
		if f.Value == nil {
			continue
		}
		column, ok := filterColumns[f.Key.Field]
		if !ok {
			continue
		}
		op, ok := operatorSQL[f.Key.Op]
		if !ok {
			continue
		}
		conds = append(conds, column+" "+op+" ?")
		args = append(args, f.Value)
	}
	return Predicate{Clause: strings.Join(conds, " AND "), Args: args}
}
