package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/diarmuidw/enquiry-backend/api/responses"
	"github.com/diarmuidw/enquiry-backend/api/validators"
	"github.com/diarmuidw/enquiry-backend/internal/draftorders"
	"github.com/diarmuidw/enquiry-backend/internal/enquiry"
	pkgerrors "github.com/diarmuidw/enquiry-backend/pkg/errors"
	"github.com/diarmuidw/enquiry-backend/pkg/logger"
)

type addItemPayload struct {
	VariantID    string `json:"variant_id" validate:"required"`
	ProductGID   string `json:"product_gid"`
	Quantity     int    `json:"quantity"`
	Title        string `json:"title"`
	VariantTitle string `json:"variant_title"`
	Image        string `json:"image"`
	Vendor       string `json:"vendor"`
	Handle       string `json:"handle"`
	URL          string `json:"url"`
}

type setQuantityPayload struct {
	Quantity int `json:"quantity"`
}

type updateEmailPayload struct {
	Email string `json:"email" validate:"required,email"`
}

type submitPayload struct {
	Email               string `json:"email" validate:"required,email"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	Company             string `json:"company"`
	Address1            string `json:"address1"`
	Address2            string `json:"address2"`
	City                string `json:"city"`
	Postcode            string `json:"postcode"`
	Country             string `json:"country"`
	Phone               string `json:"phone"`
	Message             string `json:"message"`
	AcceptsMarketing    bool   `json:"accepts_marketing"`
	AcceptsSmsMarketing bool   `json:"accepts_sms_marketing"`

	ShippingAddress *shippingAddressPayload `json:"shipping_address"`

	Comments      string `json:"comments"`
	CompanyName   string `json:"company_name"`
	FileUploadURL string `json:"file_upload_url"`
	SendEmail     *bool  `json:"send_email"`
}

type shippingAddressPayload struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Company     string `json:"company"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

type itemListResponse struct {
	Items    []draftorders.Item `json:"items"`
	Count    int                `json:"count"`
	Degraded bool               `json:"degraded,omitempty"`
}

type countResponse struct {
	Count     int  `json:"count"`
	FromCache bool `json:"from_cache,omitempty"`
	Degraded  bool `json:"degraded,omitempty"`
}

type quantityResponse struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	Deferred  bool   `json:"deferred"`
}

// EnquiryList returns the reconciled, enriched item list.
func EnquiryList(svc *enquiry.Service, creds *enquiry.CredentialStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enquiry service unavailable"))
			return
		}

		result, err := svc.List(ctx, creds.Read(r))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if result.ClearCredential {
			creds.Clear(w)
		}

		responses.WriteSuccess(w, itemListResponse{
			Items:    result.Items,
			Count:    result.Count,
			Degraded: result.Degraded,
		})
	}
}

// EnquiryCount answers the header badge.
func EnquiryCount(svc *enquiry.Service, creds *enquiry.CredentialStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enquiry service unavailable"))
			return
		}

		result, err := svc.Count(ctx, creds.Read(r))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if result.ClearCredential {
			creds.Clear(w)
		}

		responses.WriteSuccess(w, countResponse{
			Count:     result.Count,
			FromCache: result.FromCache,
			Degraded:  result.Degraded,
		})
	}
}

// EnquiryAddItem merges a variant into the draft, creating the draft (and its
// credential cookies) on first add.
func EnquiryAddItem(svc *enquiry.Service, creds *enquiry.CredentialStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enquiry service unavailable"))
			return
		}

		var payload addItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.AddItem(ctx, creds.Read(r), enquiry.AddItemInput{
			VariantID:    payload.VariantID,
			ProductGID:   payload.ProductGID,
			Quantity:     payload.Quantity,
			Title:        payload.Title,
			VariantTitle: payload.VariantTitle,
			Image:        payload.Image,
			Vendor:       payload.Vendor,
			Handle:       payload.Handle,
			URL:          payload.URL,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if result.Credential != nil {
			creds.Write(w, *result.Credential)
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, itemListResponse{
			Items: result.Items,
			Count: result.Count,
		})
	}
}

// EnquirySetQuantity accepts the new quantity immediately; the remote write is
// coalesced behind the quiescence window.
func EnquirySetQuantity(svc *enquiry.Service, creds *enquiry.CredentialStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enquiry service unavailable"))
			return
		}

		variantID := strings.TrimSpace(chi.URLParam(r, "variantID"))

		var payload setQuantityPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.SetQuantity(ctx, creds.Read(r), variantID, payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, quantityResponse{
			VariantID: result.VariantID,
			Quantity:  result.Quantity,
			Deferred:  result.Deferred,
		})
	}
}

// EnquiryRemoveItem filters a variant out; removing the last one deletes the
// draft and expires the credential cookies.
func EnquiryRemoveItem(svc *enquiry.Service, creds *enquiry.CredentialStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enquiry service unavailable"))
			return
		}

		variantID := strings.TrimSpace(chi.URLParam(r, "variantID"))

		result, err := svc.RemoveItem(ctx, creds.Read(r), variantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if result.ClearCredential {
			creds.Clear(w)
		}

		responses.WriteSuccess(w, itemListResponse{
			Items: result.Items,
			Count: result.Count,
		})
	}
}

// EnquiryUpdateEmail captures the email early, before the form is submitted.
func EnquiryUpdateEmail(svc *enquiry.Service, creds *enquiry.CredentialStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enquiry service unavailable"))
			return
		}

		var payload updateEmailPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.UpdateEmail(ctx, creds.Read(r), payload.Email); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// EnquirySubmit finalizes the enquiry and expires the credential cookies.
func EnquirySubmit(svc *enquiry.Service, creds *enquiry.CredentialStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enquiry service unavailable"))
			return
		}

		var payload submitPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sendEmail := true
		if payload.SendEmail != nil {
			sendEmail = *payload.SendEmail
		}

		sub := draftorders.Submission{
			CustomerInfo: draftorders.CustomerInfo{
				Email:               payload.Email,
				FirstName:           payload.FirstName,
				LastName:            payload.LastName,
				Company:             payload.Company,
				Address1:            payload.Address1,
				Address2:            payload.Address2,
				City:                payload.City,
				Postcode:            payload.Postcode,
				Country:             payload.Country,
				Phone:               payload.Phone,
				Message:             payload.Message,
				AcceptsMarketing:    payload.AcceptsMarketing,
				AcceptsSmsMarketing: payload.AcceptsSmsMarketing,
			},
			Comments:      payload.Comments,
			CompanyName:   payload.CompanyName,
			FileUploadURL: payload.FileUploadURL,
			SendEmail:     sendEmail,
		}
		if payload.ShippingAddress != nil {
			sub.ShippingAddress = &draftorders.ShippingAddress{
				FirstName:   payload.ShippingAddress.FirstName,
				LastName:    payload.ShippingAddress.LastName,
				Company:     payload.ShippingAddress.Company,
				Address1:    payload.ShippingAddress.Address1,
				Address2:    payload.ShippingAddress.Address2,
				City:        payload.ShippingAddress.City,
				Zip:         payload.ShippingAddress.Zip,
				CountryCode: payload.ShippingAddress.CountryCode,
				Phone:       payload.ShippingAddress.Phone,
			}
		}

		if err := svc.Submit(ctx, creds.Read(r), sub); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		creds.Clear(w)
		responses.WriteSuccess(w, map[string]string{"status": "submitted"})
	}
}
