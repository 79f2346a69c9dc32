package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/diarmuidw/enquiry-backend/api/responses"
	"github.com/diarmuidw/enquiry-backend/api/validators"
	"github.com/diarmuidw/enquiry-backend/internal/protection"
	pkgerrors "github.com/diarmuidw/enquiry-backend/pkg/errors"
	"github.com/diarmuidw/enquiry-backend/pkg/logger"
)

type protectionPlanPayload struct {
	// Subtotal is the cart total excluding any protection line, as a decimal string.
	Subtotal         string `json:"subtotal" validate:"required"`
	CurrentVariantID string `json:"current_variant_id"`
	Enabled          *bool  `json:"enabled"`
}

// ProtectionPlan resolves what the storefront should do with its
// shipping-protection line for the given subtotal.
func ProtectionPlan(svc *protection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "protection service unavailable"))
			return
		}

		var payload protectionPlanPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		subtotal, err := decimal.NewFromString(payload.Subtotal)
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "subtotal must be a decimal string"))
			return
		}

		enabled := true
		if payload.Enabled != nil {
			enabled = *payload.Enabled
		}

		plan, err := svc.BuildPlan(subtotal, payload.CurrentVariantID, enabled)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, plan)
	}
}
