package civi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitOperator(t *testing.T) {
	tests := []struct {
		key   string
		field string
		op    string
	}{
		{"id", "id", "="},
		{"id =", "id", "="},
		{"age >=", "age", ">="},
		{"age <=", "age", "<="},
		{"age >", "age", ">"},
		{"age <", "age", "<"},
		{"age !=", "age", "!="},
		{"age <>", "age", "<>"},
		{"name LIKE", "name", "LIKE"},
		{"name like", "name", "LIKE"},
		{"name NOT LIKE", "name", "NOT LIKE"},
		{"id IN", "id", "IN"},
		{"id NOT IN", "id", "NOT IN"},
		{"age BETWEEN", "age", "BETWEEN"},
		{"first_name", "first_name", "="},
		{"weird key", "weird key", "="},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			field, op := splitOperator(test.key)
			assert.Equal(t, test.field, field)
			assert.Equal(t, test.op, op)
		})
	}
}

func TestKnownActions(t *testing.T) {
	v3Actions := KnownActions(V3)
	assert.Contains(t, v3Actions, "getsingle")
	assert.NotContains(t, v3Actions, "save")

	v4Actions := KnownActions(V4)
	assert.Contains(t, v4Actions, "save")
	assert.NotContains(t, v4Actions, "getsingle")

	// Returned slices are copies.
	v4Actions[0] = "mutated"
	assert.NotContains(t, KnownActions(V4), "mutated")

	assert.Empty(t, KnownActions(Version("v5")))
}
