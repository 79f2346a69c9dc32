package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/diarmuidw/enquiry-backend/api/responses"
	"github.com/diarmuidw/enquiry-backend/api/validators"
	"github.com/diarmuidw/enquiry-backend/internal/availability"
	pkgerrors "github.com/diarmuidw/enquiry-backend/pkg/errors"
	"github.com/diarmuidw/enquiry-backend/pkg/logger"
)

type availabilityBatchPayload struct {
	VariantIDs []string `json:"variant_ids" validate:"required,min=1"`
}

type setStatusPayload struct {
	ProductGID  string `json:"product_gid"`
	Status      string `json:"status"`
	RestockDate string `json:"restock_date"`
}

// AvailabilityLookup returns the render directive for one variant.
func AvailabilityLookup(svc *availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		variantID := strings.TrimSpace(chi.URLParam(r, "variantID"))
		result, err := svc.Lookup(ctx, variantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AvailabilityBatch resolves directives for many variants in one call, for
// collection and search pages.
func AvailabilityBatch(svc *availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		var payload availabilityBatchPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		results, err := svc.LookupBatch(ctx, payload.VariantIDs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"variants": results})
	}
}

// AvailabilitySetStatus records a status row from the merchant back office.
func AvailabilitySetStatus(svc *availability.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "availability service unavailable"))
			return
		}

		variantID := strings.TrimSpace(chi.URLParam(r, "variantID"))

		var payload setStatusPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var restockDate *time.Time
		if trimmed := strings.TrimSpace(payload.RestockDate); trimmed != "" {
			parsed, err := time.Parse(time.RFC3339, trimmed)
			if err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "restock_date must be RFC3339"))
				return
			}
			restockDate = &parsed
		}

		if err := svc.SetStatus(ctx, variantID, payload.ProductGID, payload.Status, restockDate); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "recorded"})
	}
}
