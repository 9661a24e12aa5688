package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderPending.Valid())
	assert.True(t, OrderShipped.Valid())
	assert.True(t, OrderDelivered.Valid())
	assert.False(t, OrderStatus("CANCELLED").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderPending, OrderShipped, true},
		{OrderShipped, OrderDelivered, true},
		{OrderPending, OrderDelivered, false}, // no skipping
		{OrderShipped, OrderPending, false},   // no moving back
		{OrderDelivered, OrderPending, false},
		{OrderDelivered, OrderShipped, false},
		{OrderDelivered, OrderDelivered, false}, // terminal
		{OrderPending, OrderPending, false},
	}

	for _, c := range cases {
		assert.Equalf(t, c.ok, c.from.CanTransitionTo(c.to),
			"%s -> %s", c.from, c.to)
	}
}
