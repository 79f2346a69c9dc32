package availability

import (
	"strings"
	"time"
)

// State classifies a variant's merchandising availability.
type State string

const (
	StateNormal        State = "normal"
	StateDiscontinued  State = "discontinued"
	StateNotForSale    State = "not_for_sale"
	StateNoRestockDate State = "no_restock_date"
	StateOther         State = "other"
)

// Directive tells the storefront exactly how to render a variant: buy-button
// text and enabled state, the unavailable notice, and the stock label.
type Directive struct {
	State             State  `json:"state"`
	BuyButtonText     string `json:"buy_button_text"`
	BuyButtonDisabled bool   `json:"buy_button_disabled"`
	ShowNotice        bool   `json:"show_notice"`
	NoticeText        string `json:"notice_text,omitempty"`
	StockLabelText    string `json:"stock_label_text,omitempty"`
	StockLabelTone    string `json:"stock_label_tone"`
	ShowAlternatives  bool   `json:"show_alternatives"`
}

const (
	toneOK       = "ok"
	toneCritical = "critical"
	toneHidden   = "hidden"
)

var directives = map[State]Directive{
	StateNormal: {
		State:          StateNormal,
		BuyButtonText:  "Add to enquiry",
		StockLabelText: "In stock",
		StockLabelTone: toneOK,
	},
	StateDiscontinued: {
		State:             StateDiscontinued,
		BuyButtonText:     "Discontinued - View Alternatives",
		BuyButtonDisabled: true,
		ShowNotice:        true,
		NoticeText:        "This product has been discontinued.",
		StockLabelText:    "Discontinued",
		StockLabelTone:    toneCritical,
		ShowAlternatives:  true,
	},
	StateNotForSale: {
		State:             StateNotForSale,
		BuyButtonText:     "Not Available",
		BuyButtonDisabled: true,
		ShowNotice:        true,
		NoticeText:        "This product is not available for purchase.",
		StockLabelText:    "Not Available",
		StockLabelTone:    toneCritical,
	},
	StateNoRestockDate: {
		State:             StateNoRestockDate,
		BuyButtonText:     "Out of Stock",
		BuyButtonDisabled: true,
		StockLabelText:    "Out of Stock",
		StockLabelTone:    toneCritical,
	},
	StateOther: {
		State:          StateOther,
		BuyButtonText:  "Add to enquiry",
		StockLabelTone: toneHidden,
	},
}

// Evaluate returns the render directive for a state. Unknown states fall back
// to the hidden-label directive rather than claiming stock.
func Evaluate(state State) Directive {
	if d, ok := directives[state]; ok {
		return d
	}
	return directives[StateOther]
}

// StateFromRecord derives the state from a stored status row. An absent or
// empty status means the variant sells normally; an out-of-stock status with
// no planned restock gets its own state so the label can say so.
func StateFromRecord(status string, restockDate *time.Time) State {
	normalized := strings.ToLower(strings.TrimSpace(status))
	switch normalized {
	case "", "normal":
		return StateNormal
	case "discontinued":
		return StateDiscontinued
	case "not_for_sale":
		return StateNotForSale
	case "out_of_stock":
		if restockDate == nil {
			return StateNoRestockDate
		}
		return StateOther
	default:
		return StateOther
	}
}
