// internal/domain/order/entity_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/delivery-backend/internal/domain/user"
)

func TestStatusCanTransitionTo(t *testing.T) {
	all := []Status{
		StatusCreated, StatusConfirmed, StatusPreparing,
		StatusDelivering, StatusCompleted, StatusCancelled,
	}

	allowed := map[Status]map[Status]bool{
		StatusCreated:    {StatusConfirmed: true, StatusCancelled: true},
		StatusConfirmed:  {StatusPreparing: true, StatusCancelled: true},
		StatusPreparing:  {StatusDelivering: true},
		StatusDelivering: {StatusCompleted: true},
		StatusCompleted:  {},
		StatusCancelled:  {},
	}

	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowed[from][to], got, "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatusesAreFinal(t *testing.T) {
	for _, terminal := range []Status{StatusCompleted, StatusCancelled} {
		for _, next := range []Status{
			StatusCreated, StatusConfirmed, StatusPreparing,
			StatusDelivering, StatusCompleted, StatusCancelled,
		} {
			assert.False(t, terminal.CanTransitionTo(next),
				"terminal status %s must not transition to %s", terminal, next)
		}
	}
}

func TestUnknownStatusHasNoTransitions(t *testing.T) {
	assert.False(t, Status("SHIPPED").CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCreated.CanTransitionTo(Status("SHIPPED")))
}

func TestOrderCanBeViewedBy(t *testing.T) {
	o := Order{UserID: 7, StoreID: 3}

	// The owning customer, regardless of role.
	assert.True(t, o.CanBeViewedBy(7, user.RoleCustomer, 0))

	// Another customer.
	assert.False(t, o.CanBeViewedBy(8, user.RoleCustomer, 0))

	// Store staff are scoped to their own store.
	assert.True(t, o.CanBeViewedBy(20, user.RoleStaff, 3))
	assert.False(t, o.CanBeViewedBy(20, user.RoleStaff, 4))
	assert.True(t, o.CanBeViewedBy(21, user.RoleMerchant, 3))
	assert.False(t, o.CanBeViewedBy(21, user.RoleMerchant, 4))

	// Staff with no store attachment see nothing beyond their own orders.
	assert.False(t, o.CanBeViewedBy(22, user.RoleStaff, 0))

	// Admins see everything.
	assert.True(t, o.CanBeViewedBy(30, user.RoleAdmin, 0))
}
