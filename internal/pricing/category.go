// Package pricing computes quotation totals. It does no I/O: callers load
// promotions, rules and price tables and pass them in.
package pricing

import "strings"

type ServiceCategory int

const (
	CategoryUnknown ServiceCategory = iota
	CategoryCharter
	CategoryTransfer
	CategoryOther
)

func (c ServiceCategory) String() string {
	switch c {
	case CategoryCharter:
		return "charter"
	case CategoryTransfer:
		return "transfer"
	case CategoryOther:
		return "other"
	default:
		return ""
	}
}

// ParseCategory reads the stored category column.
func ParseCategory(s string) ServiceCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "charter":
		return CategoryCharter
	case "transfer":
		return CategoryTransfer
	case "other":
		return CategoryOther
	default:
		return CategoryUnknown
	}
}

// Classify derives a category from a service type name. It is only used for
// rows that do not carry an explicit category.
func Classify(name string) ServiceCategory {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "charter"):
		return CategoryCharter
	case strings.Contains(n, "airport"), strings.Contains(n, "transfer"):
		return CategoryTransfer
	default:
		return CategoryOther
	}
}

// Resolve prefers the stored category and falls back to the name.
func Resolve(stored, name string) ServiceCategory {
	if c := ParseCategory(stored); c != CategoryUnknown {
		return c
	}
	return Classify(name)
}

type lineStrategy func(unitPrice float64, quantity, serviceDays int) float64

// Charter unit prices are day rates, so quantity does not apply.
func charterLine(unitPrice float64, _ int, serviceDays int) float64 {
	return unitPrice * float64(serviceDays)
}

func perUnitLine(unitPrice float64, quantity, serviceDays int) float64 {
	return unitPrice * float64(quantity) * float64(serviceDays)
}

func (c ServiceCategory) strategy() lineStrategy {
	if c == CategoryCharter {
		return charterLine
	}
	return perUnitLine
}

// AppliesTimeAdjustment reports whether a time based surcharge is folded
// into the line total. Charter totals are duration based only.
func (c ServiceCategory) AppliesTimeAdjustment() bool {
	return c != CategoryCharter
}
