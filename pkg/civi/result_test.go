package civi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Accessors(t *testing.T) {
	result := newResult(
		[]Record{
			{"id": "1", "display_name": "One"},
			{"id": "2", "display_name": "Two"},
		},
		2,
		map[string]any{"countFetched": float64(2)},
	)

	assert.Equal(t, 2, result.Len())
	assert.Equal(t, 2, result.Count())
	assert.Equal(t, "One", result.Record(0)["display_name"])
	assert.Equal(t, "Two", result.Record(1)["display_name"])
	assert.Equal(t, float64(2), result.Meta()["countFetched"])

	records := result.Records()
	require.Len(t, records, 2)

	// The returned sequence is a copy; reordering it does not affect the
	// result.
	records[0], records[1] = records[1], records[0]
	assert.Equal(t, "One", result.Record(0)["display_name"])
}

func TestResult_One(t *testing.T) {
	t.Run("exactly one", func(t *testing.T) {
		result := newResult([]Record{{"id": "2"}}, 1, nil)

		record, err := result.One()
		require.NoError(t, err)
		assert.Equal(t, "2", record["id"])
	})

	t.Run("zero records", func(t *testing.T) {
		result := newResult(nil, 0, nil)

		_, err := result.One()
		require.Error(t, err)

		countErr := &UnexpectedResultCountError{}
		require.ErrorAs(t, err, &countErr)
		assert.Equal(t, 1, countErr.Expected)
		assert.Equal(t, 0, countErr.Actual)
	})

	t.Run("two records", func(t *testing.T) {
		result := newResult([]Record{{"id": "1"}, {"id": "2"}}, 2, nil)

		_, err := result.One()
		require.Error(t, err)
		assert.True(t, IsUnexpectedResultCount(err))
	})
}
