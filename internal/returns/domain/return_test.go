package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveReason(t *testing.T) {
	t.Run("known reasons pass through", func(t *testing.T) {
		for _, reason := range []string{ReasonLost, ReasonReturn, ReasonRefund, ReasonReplace} {
			resolved, err := ResolveReason(reason, "")
			require.NoError(t, err)
			assert.Equal(t, reason, resolved)
		}
	})

	t.Run("Other substitutes the free text", func(t *testing.T) {
		resolved, err := ResolveReason(ReasonOther, "Box was crushed")
		require.NoError(t, err)
		assert.Equal(t, "Box was crushed", resolved)
	})

	t.Run("Other requires free text", func(t *testing.T) {
		_, err := ResolveReason(ReasonOther, "")
		assert.ErrorIs(t, err, ErrMissingOtherReason)
	})

	t.Run("unknown reason fails", func(t *testing.T) {
		_, err := ResolveReason("lost", "")
		assert.ErrorIs(t, err, ErrInvalidReason)

		_, err = ResolveReason("", "")
		assert.ErrorIs(t, err, ErrInvalidReason)
	})
}

func TestReturn_SourceKind(t *testing.T) {
	orderID := uint(1)
	productID := uint(2)

	orderReturn := &Return{OrderID: &orderID}
	assert.Equal(t, SourceOrder, orderReturn.SourceKind())
	assert.True(t, orderReturn.Valid())

	productReturn := &Return{ProductID: &productID}
	assert.Equal(t, SourceProduct, productReturn.SourceKind())
	assert.True(t, productReturn.Valid())

	assert.False(t, (&Return{}).Valid())
	assert.False(t, (&Return{OrderID: &orderID, ProductID: &productID}).Valid())
}
