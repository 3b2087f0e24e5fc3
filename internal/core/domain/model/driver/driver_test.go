package driver_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewDriver(t *testing.T) {
	rate := decimal.RequireFromString("0.1")

	t.Run("should create driver with range", func(t *testing.T) {
		d, err := driver.NewDriver(3, " Bob ", rate, intPtr(4550), intPtr(4575))

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, int64(3), d.ID())
		assert.Equal(t, "Bob", d.Name())
		start, end, ok := d.CoverageRange()
		assert.True(t, ok)
		assert.Equal(t, 4550, start)
		assert.Equal(t, 4575, end)
	})

	t.Run("should collect all validation errors", func(t *testing.T) {
		d, err := driver.NewDriver(3, "", decimal.NewFromInt(2), intPtr(10), intPtr(1))

		assert.Nil(t, d)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing endpoint is allowed", func(t *testing.T) {
		d, err := driver.NewDriver(3, "Bob", rate, intPtr(4550), nil)

		require.NoError(t, err)
		_, _, ok := d.CoverageRange()
		assert.False(t, ok)
		assert.False(t, d.Covers(kernel.PostCode(4550)))
		_, ok = d.DistanceTo(kernel.PostCode(4550))
		assert.False(t, ok)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var d driver.Driver
		require.ErrorIs(t, d.Validate(), driver.ErrDriverIsNotConstructed)
	})
}

func TestDriver_Coverage(t *testing.T) {
	d, err := driver.NewDriver(1, "Bob", decimal.RequireFromString("0.1"), intPtr(4000), intPtr(4010))
	require.NoError(t, err)

	tests := []struct {
		pc       int
		covers   bool
		distance int
	}{
		{4000, true, 0},
		{4005, true, 5},
		{4010, true, 0},
		{3990, false, 10},
		{4013, false, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.covers, d.Covers(kernel.PostCode(tt.pc)), "pc %d", tt.pc)
		distance, ok := d.DistanceTo(kernel.PostCode(tt.pc))
		assert.True(t, ok)
		assert.Equal(t, tt.distance, distance, "pc %d", tt.pc)
	}
}

func TestDriver_Assignment(t *testing.T) {
	d, err := driver.NewDriver(9, "Eve", decimal.RequireFromString("0.12"), intPtr(1), intPtr(2))
	require.NoError(t, err)

	a, err := d.Assignment()

	require.NoError(t, err)
	assert.Equal(t, int64(9), a.DriverID())
	assert.Equal(t, "Eve", a.DriverName())
	assert.True(t, a.CommissionRate().Equal(decimal.RequireFromString("0.12")))
}
