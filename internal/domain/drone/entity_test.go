// internal/domain/drone/entity_test.go
package drone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t time.Time) *time.Time {
	return &t
}

func TestPickNextPrefersNeverAssigned(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	fleet := []Drone{
		{ID: 1, Serial: "VNM-001", Status: StatusIdle, LastAssignedAt: at(base)},
		{ID: 2, Serial: "VNM-002", Status: StatusIdle},
		{ID: 3, Serial: "VNM-003", Status: StatusIdle, LastAssignedAt: at(base.Add(-time.Hour))},
	}

	picked := PickNext(fleet)
	require.NotNil(t, picked)
	assert.Equal(t, uint(2), picked.ID)
}

func TestPickNextTakesLongestIdle(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	fleet := []Drone{
		{ID: 1, Status: StatusIdle, LastAssignedAt: at(base)},
		{ID: 2, Status: StatusIdle, LastAssignedAt: at(base.Add(-2 * time.Hour))},
		{ID: 3, Status: StatusIdle, LastAssignedAt: at(base.Add(-time.Hour))},
	}

	picked := PickNext(fleet)
	require.NotNil(t, picked)
	assert.Equal(t, uint(2), picked.ID)
}

func TestPickNextSkipsBusyDrones(t *testing.T) {
	fleet := []Drone{
		{ID: 1, Status: StatusDelivering},
		{ID: 2, Status: StatusMaintenance},
		{ID: 3, Status: StatusOffline},
		{ID: 4, Status: StatusIdle},
	}

	picked := PickNext(fleet)
	require.NotNil(t, picked)
	assert.Equal(t, uint(4), picked.ID)
}

func TestPickNextEmptyPool(t *testing.T) {
	assert.Nil(t, PickNext(nil))
	assert.Nil(t, PickNext([]Drone{{ID: 1, Status: StatusDelivering}}))
}

func TestTallyStats(t *testing.T) {
	fleet := []Drone{
		{Status: StatusIdle},
		{Status: StatusIdle},
		{Status: StatusDelivering},
		{Status: StatusReturning},
		{Status: StatusMaintenance},
		{Status: StatusOffline},
		{Status: StatusAssigned},
	}

	stats := TallyStats(fleet)
	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 2, stats.Idle)
	assert.Equal(t, 1, stats.Assigned)
	assert.Equal(t, 1, stats.Delivering)
	assert.Equal(t, 1, stats.Returning)
	assert.Equal(t, 1, stats.Maintenance)
	assert.Equal(t, 1, stats.Offline)
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{
		StatusOffline, StatusIdle, StatusAssigned,
		StatusDelivering, StatusReturning, StatusMaintenance,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("CHARGING").Valid())
	assert.False(t, Status("idle").Valid())
}

func TestAssignmentActive(t *testing.T) {
	a := Assignment{OrderID: 1, DroneID: 1}
	assert.True(t, a.Active())

	now := time.Now()
	a.CompletedAt = &now
	assert.False(t, a.Active())
}
