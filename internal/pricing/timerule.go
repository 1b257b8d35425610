package pricing

import (
	"sort"
	"strings"
	"time"

	"fleet-dispatch/internal/data/entity"

	"github.com/google/uuid"
)

// Pickup is what time based rules are matched against. Time is "HH:MM";
// empty means no clock time was given, which fails any windowed rule.
type Pickup struct {
	Date          time.Time
	Time          string
	CategoryID    *uuid.UUID
	ServiceTypeID *uuid.UUID
}

type Adjustment struct {
	Percentage float64    `json:"percentage"`
	RuleID     *uuid.UUID `json:"rule_id,omitempty"`
	RuleName   *string    `json:"rule_name,omitempty"`
}

// EvaluateTimeRules returns the adjustment of the highest priority active
// rule matching p, or a zero Adjustment.
func EvaluateTimeRules(rules []entity.TimeBasedRule, p Pickup) Adjustment {
	active := make([]entity.TimeBasedRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority > active[j].Priority
	})

	day := strings.ToLower(p.Date.Weekday().String())
	clock := normalizeClock(p.Time)

	for i := range active {
		r := active[i]
		if !matchesScope(r.CategoryID, p.CategoryID) || !matchesScope(r.ServiceTypeID, p.ServiceTypeID) {
			continue
		}
		if !matchesDay(r.DaysOfWeek, day) {
			continue
		}
		if !matchesWindow(r.StartTime, r.EndTime, clock) {
			continue
		}
		name := r.Name
		id := r.ID
		return Adjustment{Percentage: r.AdjustmentPercentage, RuleID: &id, RuleName: &name}
	}

	return Adjustment{}
}

// a rule scoped to an id only matches that id
func matchesScope(ruleID, got *uuid.UUID) bool {
	if ruleID == nil {
		return true
	}
	return got != nil && *ruleID == *got
}

func matchesDay(days []string, day string) bool {
	if len(days) == 0 {
		return true
	}
	for _, d := range days {
		if strings.EqualFold(strings.TrimSpace(d), day) {
			return true
		}
	}
	return false
}

// InWindow reports whether clock falls in [start, end]. start after end
// wraps past midnight, so 22:00-06:00 holds 23:30 and 02:00.
func InWindow(start, end, clock string) bool {
	start, end, clock = normalizeClock(start), normalizeClock(end), normalizeClock(clock)
	if start <= end {
		return clock >= start && clock <= end
	}
	return clock >= start || clock <= end
}

func matchesWindow(start, end *string, clock string) bool {
	if start == nil || end == nil || *start == "" || *end == "" {
		return true
	}
	if clock == "" {
		return false
	}
	return InWindow(*start, *end, clock)
}

// normalizeClock trims seconds so "22:00:00" and "22:00" compare equal.
// Single digit hours are padded.
func normalizeClock(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 5 && s[2] == ':' {
		return s[:5]
	}
	if len(s) == 4 && s[1] == ':' {
		return "0" + s
	}
	return s
}
