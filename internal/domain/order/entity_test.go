package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseOrder_ShipOnce(t *testing.T) {
	o := NewPurchaseOrder(1, 2)
	assert.False(t, o.Shipped)

	require.NoError(t, o.Ship())
	assert.True(t, o.Shipped)

	assert.ErrorIs(t, o.Ship(), ErrAlreadyShipped)
	assert.True(t, o.Shipped)
}
