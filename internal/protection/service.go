package protection

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/diarmuidw/enquiry-backend/pkg/errors"
	"github.com/diarmuidw/enquiry-backend/pkg/logger"
)

// Action tells the storefront what to do with the protection line item.
type Action string

const (
	ActionAdd     Action = "add"
	ActionReplace Action = "replace"
	ActionKeep    Action = "keep"
	ActionRemove  Action = "remove"
	ActionNone    Action = "none"
)

const defaultRateBps = 300

// Plan is the resolved protection decision for a cart.
type Plan struct {
	Action        Action          `json:"action"`
	Tier          *Tier           `json:"-"`
	VariantID     string          `json:"variant_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	PremiumTarget decimal.Decimal `json:"premium_target"`
}

// ServiceParams groups dependencies for the protection service.
type ServiceParams struct {
	Tiers   []Tier
	RateBps int
	Logger  *logger.Logger
}

// Service picks the protection tier whose price is nearest a fixed percentage
// of the cart subtotal.
type Service struct {
	tiers []Tier
	rate  decimal.Decimal
	logg  *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}

	tiers := params.Tiers
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}

	rateBps := params.RateBps
	if rateBps <= 0 {
		rateBps = defaultRateBps
	}

	return &Service{
		tiers: tiers,
		rate:  decimal.NewFromInt(int64(rateBps)).Div(decimal.NewFromInt(10000)),
		logg:  params.Logger,
	}, nil
}

// ParseTiers converts "variantID:price" pairs from configuration into tiers.
func ParseTiers(pairs []string) ([]Tier, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	tiers := make([]Tier, 0, len(pairs))
	for _, pair := range pairs {
		trimmed := strings.TrimSpace(pair)
		if trimmed == "" {
			continue
		}
		parts := strings.SplitN(trimmed, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid tier %q (expected variantID:price)", pair)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid tier price in %q: %w", pair, err)
		}
		tiers = append(tiers, Tier{VariantID: strings.TrimSpace(parts[0]), Price: price})
	}
	return tiers, nil
}

// SelectTier returns the tier whose price is nearest to rate*subtotal. When
// two tiers are equally close the earlier (cheaper) one wins.
func (s *Service) SelectTier(subtotal decimal.Decimal) (Tier, decimal.Decimal, error) {
	if subtotal.IsNegative() {
		return Tier{}, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "subtotal must not be negative")
	}
	if len(s.tiers) == 0 {
		return Tier{}, decimal.Zero, pkgerrors.New(pkgerrors.CodeInternal, "no protection tiers configured")
	}

	target := subtotal.Mul(s.rate).Round(2)

	best := s.tiers[0]
	bestDistance := best.Price.Sub(target).Abs()
	for _, tier := range s.tiers[1:] {
		distance := tier.Price.Sub(target).Abs()
		if distance.LessThan(bestDistance) {
			best = tier
			bestDistance = distance
		}
	}
	return best, target, nil
}

// BuildPlan decides what the storefront should do with its protection line.
// subtotal must exclude any protection line already in the cart;
// currentVariantID is that line's variant (empty when absent); enabled is the
// customer's toggle.
func (s *Service) BuildPlan(subtotal decimal.Decimal, currentVariantID string, enabled bool) (Plan, error) {
	current := strings.TrimSpace(currentVariantID)

	if !enabled {
		if current != "" {
			return Plan{Action: ActionRemove, VariantID: current}, nil
		}
		return Plan{Action: ActionNone}, nil
	}

	if subtotal.LessThanOrEqual(decimal.Zero) {
		if current != "" {
			return Plan{Action: ActionRemove, VariantID: current}, nil
		}
		return Plan{Action: ActionNone}, nil
	}

	tier, target, err := s.SelectTier(subtotal)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		Tier:          &tier,
		VariantID:     tier.VariantID,
		Price:         tier.Price,
		PremiumTarget: target,
	}

	switch {
	case current == "":
		plan.Action = ActionAdd
	case current == tier.VariantID:
		plan.Action = ActionKeep
	default:
		plan.Action = ActionReplace
	}
	return plan, nil
}
