package kernel_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBusinessDate(t *testing.T) {
	t.Run("should parse ISO date", func(t *testing.T) {
		d, err := kernel.ParseBusinessDate("2024-03-01")

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, "2024-03-01", d.String())
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d.Time())
	})

	t.Run("should ignore surrounding whitespace", func(t *testing.T) {
		d, err := kernel.ParseBusinessDate(" 2024-03-01\n")

		require.NoError(t, err)
		assert.Equal(t, "2024-03-01", d.String())
	})

	t.Run("should require a value", func(t *testing.T) {
		_, err := kernel.ParseBusinessDate("")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject malformed dates", func(t *testing.T) {
		for _, raw := range []string{"01/03/2024", "2024-13-01", "2024-02-30", "yesterday"} {
			_, err := kernel.ParseBusinessDate(raw)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
		}
	})
}

func TestNewBusinessDate(t *testing.T) {
	t.Run("should use the calendar date of the given location", func(t *testing.T) {
		brisbane := time.FixedZone("AEST", 10*60*60)
		instant := time.Date(2024, 3, 1, 20, 30, 0, 0, time.UTC) // 06:30 on the 2nd in Brisbane

		d := kernel.NewBusinessDate(instant.In(brisbane))

		assert.Equal(t, "2024-03-02", d.String())
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var d kernel.BusinessDate

		require.ErrorIs(t, d.Validate(), kernel.ErrBusinessDateIsNotConstructed)
	})

	t.Run("IsEqual compares calendar dates", func(t *testing.T) {
		a := kernel.MustParseBusinessDate("2024-03-01")
		b := kernel.NewBusinessDate(time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC))
		c := kernel.MustParseBusinessDate("2024-03-02")

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})
}
