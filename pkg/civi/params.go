package civi

import "strings"

// Params is the parameter mapping of one API call. Callers' maps are copied
// before any version-specific encoding, never mutated in place.
type Params map[string]any

func (p Params) clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}

	return out
}

// Comparison operators accepted as a key suffix, longest first so that
// ">=" wins over ">".
var operatorSuffixes = []string{
	"<=",
	">=",
	"!=",
	"<>",
	"<",
	">",
	"=",
	"NOT LIKE",
	"LIKE",
	"NOT IN",
	"IN",
	"BETWEEN",
}

// splitOperator splits a parameter key like "age >=" into the field name
// and its comparison operator. Keys without a recognized suffix keep the
// implicit equality operator.
func splitOperator(key string) (string, string) {
	field, suffix, found := strings.Cut(key, " ")
	if !found {
		return key, "="
	}

	suffix = strings.TrimSpace(suffix)
	for _, op := range operatorSuffixes {
		if strings.EqualFold(suffix, op) {
			return field, op
		}
	}

	return key, "="
}
