package pricing

import (
	"fmt"
	"strings"
	"time"

	"fleet-dispatch/internal/data/entity"
)

type RejectionReason string

// Values double as translation keys under quotations.form.promotions.
const (
	RejectInvalid           RejectionReason = "invalid"
	RejectNotActive         RejectionReason = "notActive"
	RejectExpired           RejectionReason = "expired"
	RejectUsageLimitReached RejectionReason = "usageLimitReached"
	RejectMinimumAmount     RejectionReason = "minimumAmount"
)

// Rejection explains why a code was not applied. Code and MinimumAmount are
// set when they help render the message.
type Rejection struct {
	Reason        RejectionReason
	Code          string
	MinimumAmount float64
}

func (r *Rejection) Error() string {
	switch r.Reason {
	case RejectNotActive:
		return fmt.Sprintf("promotion %s is not yet active", r.Code)
	case RejectExpired:
		return fmt.Sprintf("promotion %s has expired", r.Code)
	case RejectUsageLimitReached:
		return fmt.Sprintf("promotion %s usage limit reached", r.Code)
	case RejectMinimumAmount:
		return fmt.Sprintf("promotion %s requires a minimum amount of %.0f", r.Code, r.MinimumAmount)
	default:
		return fmt.Sprintf("invalid promotion code %q", r.Code)
	}
}

// ValidatePromotion finds an active promotion by case-insensitive code and
// checks it against baseTotal, the pre-discount total. Checks run in a fixed
// order and the first failure is returned.
func ValidatePromotion(code string, promotions []entity.PricingPromotion, baseTotal float64, now time.Time) (*entity.PricingPromotion, *Rejection) {
	code = strings.TrimSpace(code)

	var promo *entity.PricingPromotion
	if code != "" {
		for i := range promotions {
			if promotions[i].IsActive && strings.EqualFold(promotions[i].Code, code) {
				promo = &promotions[i]
				break
			}
		}
	}
	if promo == nil {
		return nil, &Rejection{Reason: RejectInvalid, Code: code}
	}

	switch {
	case promo.StartDate != nil && now.Before(*promo.StartDate):
		return nil, &Rejection{Reason: RejectNotActive, Code: promo.Code}
	case promo.EndDate != nil && now.After(*promo.EndDate):
		return nil, &Rejection{Reason: RejectExpired, Code: promo.Code}
	case promo.UsageLimit != nil && promo.TimesUsed >= *promo.UsageLimit:
		return nil, &Rejection{Reason: RejectUsageLimitReached, Code: promo.Code}
	case promo.MinimumAmount != nil && baseTotal < *promo.MinimumAmount:
		return nil, &Rejection{Reason: RejectMinimumAmount, Code: promo.Code, MinimumAmount: *promo.MinimumAmount}
	}

	return promo, nil
}
