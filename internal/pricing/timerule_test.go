package pricing

import (
	"testing"
	"time"

	"fleet-dispatch/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-06 is a Friday
var friday = time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)

func TestInWindowOvernight(t *testing.T) {
	assert.True(t, InWindow("22:00", "06:00", "23:30"))
	assert.True(t, InWindow("22:00", "06:00", "02:00"))
	assert.True(t, InWindow("22:00:00", "06:00:00", "06:00"))
	assert.False(t, InWindow("22:00", "06:00", "12:00"))
}

func TestInWindowSameDay(t *testing.T) {
	assert.True(t, InWindow("09:00", "17:00", "09:00"))
	assert.True(t, InWindow("09:00", "17:00", "17:00"))
	assert.True(t, InWindow("9:00", "17:00", "9:30"))
	assert.False(t, InWindow("09:00", "17:00", "17:01"))
}

func TestEvaluateTimeRulesPriority(t *testing.T) {
	rules := []entity.TimeBasedRule{
		{ID: uuid.New(), Name: "Night", StartTime: ptr("22:00"), EndTime: ptr("06:00"), AdjustmentPercentage: 25, Priority: 1, IsActive: true},
		{ID: uuid.New(), Name: "Friday night", DaysOfWeek: []string{"friday"}, StartTime: ptr("20:00"), EndTime: ptr("23:59"), AdjustmentPercentage: 40, Priority: 5, IsActive: true},
		{ID: uuid.New(), Name: "Disabled", AdjustmentPercentage: 99, Priority: 100, IsActive: false},
	}

	adj := EvaluateTimeRules(rules, Pickup{Date: friday, Time: "23:30"})
	require.NotNil(t, adj.RuleName)
	assert.Equal(t, "Friday night", *adj.RuleName)
	assert.InDelta(t, 40, adj.Percentage, 0.001)

	// saturday only the generic night rule applies
	adj = EvaluateTimeRules(rules, Pickup{Date: friday.AddDate(0, 0, 1), Time: "02:00"})
	require.NotNil(t, adj.RuleName)
	assert.Equal(t, "Night", *adj.RuleName)

	adj = EvaluateTimeRules(rules, Pickup{Date: friday, Time: "12:00"})
	assert.Nil(t, adj.RuleName)
	assert.Zero(t, adj.Percentage)
}

func TestEvaluateTimeRulesScope(t *testing.T) {
	premium := uuid.New()
	transfer := uuid.New()
	rules := []entity.TimeBasedRule{
		{Name: "Premium early bird", CategoryID: &premium, ServiceTypeID: &transfer, StartTime: ptr("05:00"), EndTime: ptr("07:00"), AdjustmentPercentage: -10, Priority: 10, IsActive: true},
	}

	adj := EvaluateTimeRules(rules, Pickup{Date: friday, Time: "06:15", CategoryID: &premium, ServiceTypeID: &transfer})
	assert.InDelta(t, -10, adj.Percentage, 0.001)

	other := uuid.New()
	adj = EvaluateTimeRules(rules, Pickup{Date: friday, Time: "06:15", CategoryID: &other, ServiceTypeID: &transfer})
	assert.Nil(t, adj.RuleName)

	adj = EvaluateTimeRules(rules, Pickup{Date: friday, Time: "06:15", ServiceTypeID: &transfer})
	assert.Nil(t, adj.RuleName)
}

func TestWindowedRuleNeedsClockTime(t *testing.T) {
	rules := []entity.TimeBasedRule{
		{Name: "Night", StartTime: ptr("22:00"), EndTime: ptr("06:00"), AdjustmentPercentage: 25, IsActive: true},
		{Name: "Weekend", DaysOfWeek: []string{"Saturday", "sunday"}, AdjustmentPercentage: 15, IsActive: true},
	}

	assert.Nil(t, EvaluateTimeRules(rules, Pickup{Date: friday}).RuleName)

	adj := EvaluateTimeRules(rules, Pickup{Date: friday.AddDate(0, 0, 1)})
	require.NotNil(t, adj.RuleName)
	assert.Equal(t, "Weekend", *adj.RuleName)
}
