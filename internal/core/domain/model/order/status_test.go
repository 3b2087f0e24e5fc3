package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	tests := []struct {
		name    string
		status  order.Status
		wantErr bool
	}{
		{"formatted", order.Formatted, false},
		{"assigned", order.Assigned, false},
		{"docketed", order.Docketed, false},
		{"unknown", order.Unknown, true},
		{"out of range", order.Status(42), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.status.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Formatted", order.Formatted.String())
	assert.Equal(t, "Assigned", order.Assigned.String())
	assert.Equal(t, "Docketed", order.Docketed.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("formatted can be assigned", func(t *testing.T) {
		s, err := order.Formatted.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.Assigned, s)
	})

	t.Run("assigned can be reassigned", func(t *testing.T) {
		s, err := order.Assigned.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.Assigned, s)
	})

	t.Run("docketed cannot be assigned", func(t *testing.T) {
		_, err := order.Docketed.Assign()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("only assigned can be docketed", func(t *testing.T) {
		s, err := order.Assigned.Docket()
		require.NoError(t, err)
		assert.Equal(t, order.Docketed, s)

		_, err = order.Formatted.Docket()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		_, err = order.Docketed.Docket()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("items only before docketing", func(t *testing.T) {
		require.NoError(t, order.Formatted.ValidateAddItem())
		require.NoError(t, order.Assigned.ValidateAddItem())
		require.ErrorIs(t, order.Docketed.ValidateAddItem(), errs.ErrValueIsInvalid)
	})

	t.Run("driver presence matches status", func(t *testing.T) {
		require.NoError(t, order.Formatted.ValidateCanHaveDriver(false))
		require.Error(t, order.Formatted.ValidateCanHaveDriver(true))
		require.NoError(t, order.Assigned.ValidateCanHaveDriver(true))
		require.Error(t, order.Assigned.ValidateCanHaveDriver(false))
	})
}
