package pricing

import (
	"sort"

	"fleet-dispatch/internal/data/entity"

	"github.com/google/uuid"
)

const (
	FallbackBasePrice = 32000
	BaseCurrency      = "JPY"
)

type PriceSource string

const (
	SourceExact          PriceSource = "database_exact_match"
	SourceHourly         PriceSource = "database_hourly_rate"
	SourceVehicle        PriceSource = "database_vehicle_rate"
	SourceCategory       PriceSource = "database_category_match"
	SourceCategoryHourly PriceSource = "database_category_hourly_rate"
	SourceFallback       PriceSource = "fallback"
)

type PriceQuery struct {
	ServiceTypeID uuid.UUID
	Category      ServiceCategory
	VehicleID     *uuid.UUID
	CategoryID    *uuid.UUID
	DurationHours int
	HoursPerDay   int
}

// BasePrice is a unit price: per trip, or per day for charters. Multiplying
// by quantity and service days is left to Line.
type BasePrice struct {
	Amount   float64     `json:"amount"`
	Currency string      `json:"currency"`
	Source   PriceSource `json:"source"`
}

// ResolveBasePrice walks the price table from the most to the least specific
// match and ends at fallback when nothing applies.
func ResolveBasePrice(items []entity.PricingItem, q PriceQuery, fallback float64) BasePrice {
	candidates := make([]entity.PricingItem, 0, len(items))
	for _, it := range items {
		if it.IsActive && it.ServiceTypeID == q.ServiceTypeID {
			candidates = append(candidates, it)
		}
	}
	// newest first, the table keeps superseded rows around
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].UpdatedAt.After(candidates[j].UpdatedAt)
	})

	duration := q.DurationHours
	if duration < 1 {
		duration = 1
	}

	byVehicle := func(it entity.PricingItem) bool {
		return q.VehicleID != nil && it.VehicleID != nil && *it.VehicleID == *q.VehicleID &&
			(q.CategoryID == nil || it.CategoryID == nil || *it.CategoryID == *q.CategoryID)
	}
	byCategory := func(it entity.PricingItem) bool {
		return q.CategoryID != nil && it.CategoryID != nil && *it.CategoryID == *q.CategoryID
	}

	if it, ok := first(candidates, func(it entity.PricingItem) bool { return byVehicle(it) && it.DurationHours == duration }); ok {
		return BasePrice{Amount: it.Price, Currency: currencyOr(it.Currency), Source: SourceExact}
	}
	if it, ok := first(candidates, func(it entity.PricingItem) bool { return byVehicle(it) && it.DurationHours == 1 }); ok {
		return BasePrice{Amount: q.fromHourly(it.Price, duration), Currency: currencyOr(it.Currency), Source: SourceHourly}
	}
	if it, ok := first(candidates, byVehicle); ok {
		return BasePrice{Amount: it.Price, Currency: currencyOr(it.Currency), Source: SourceVehicle}
	}
	if it, ok := first(candidates, func(it entity.PricingItem) bool { return byCategory(it) && it.DurationHours == duration }); ok {
		return BasePrice{Amount: it.Price, Currency: currencyOr(it.Currency), Source: SourceCategory}
	}
	if it, ok := first(candidates, func(it entity.PricingItem) bool { return byCategory(it) && it.DurationHours == 1 }); ok {
		return BasePrice{Amount: q.fromHourly(it.Price, duration), Currency: currencyOr(it.Currency), Source: SourceCategoryHourly}
	}

	if fallback <= 0 {
		fallback = FallbackBasePrice
	}
	return BasePrice{Amount: fallback, Currency: BaseCurrency, Source: SourceFallback}
}

// charters turn an hourly rate into a day rate, other services bill the
// booked duration
func (q PriceQuery) fromHourly(hourly float64, duration int) float64 {
	if q.Category == CategoryCharter {
		hours := q.HoursPerDay
		if hours < 1 {
			hours = duration
		}
		return hourly * float64(hours)
	}
	return hourly * float64(duration)
}

func first(items []entity.PricingItem, match func(entity.PricingItem) bool) (entity.PricingItem, bool) {
	for _, it := range items {
		if match(it) {
			return it, true
		}
	}
	return entity.PricingItem{}, false
}

func currencyOr(c string) string {
	if c == "" {
		return BaseCurrency
	}
	return c
}

// DefaultTaxPercentage is the consumption tax for the team's country.
func DefaultTaxPercentage(team entity.TeamLocation) float64 {
	if team == entity.TeamThailand {
		return 7
	}
	return 10
}
