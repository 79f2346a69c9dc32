package availability

import (
	"context"
	"strings"
	"time"

	"github.com/diarmuidw/enquiry-backend/pkg/db/models"
	pkgerrors "github.com/diarmuidw/enquiry-backend/pkg/errors"
	"github.com/diarmuidw/enquiry-backend/pkg/logger"
)

// ServiceParams groups dependencies for the availability service.
type ServiceParams struct {
	Repo   *Repository
	Logger *logger.Logger
}

// Service answers availability lookups for the storefront and records status
// updates from the merchant back office.
type Service struct {
	repo *Repository
	logg *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "availability repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &Service{repo: params.Repo, logg: params.Logger}, nil
}

// VariantAvailability pairs a variant with its render directive.
type VariantAvailability struct {
	VariantID   string     `json:"variant_id"`
	Directive   Directive  `json:"directive"`
	RestockDate *time.Time `json:"restock_date,omitempty"`
}

// Lookup resolves the directive for one variant. A variant with no recorded
// status sells normally.
func (s *Service) Lookup(ctx context.Context, variantID string) (VariantAvailability, error) {
	if strings.TrimSpace(variantID) == "" {
		return VariantAvailability{}, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}

	row, err := s.repo.Find(ctx, variantID)
	if err != nil {
		return VariantAvailability{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant status")
	}

	return availabilityFor(variantID, row), nil
}

// LookupBatch resolves directives for many variants in one query.
func (s *Service) LookupBatch(ctx context.Context, variantIDs []string) ([]VariantAvailability, error) {
	ids := dedupe(variantIDs)
	if len(ids) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one variant id is required")
	}

	rows, err := s.repo.FindBatch(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant statuses")
	}

	byVariant := make(map[string]*models.VariantStatus, len(rows))
	for i := range rows {
		byVariant[rows[i].VariantID] = &rows[i]
	}

	out := make([]VariantAvailability, 0, len(ids))
	for _, id := range ids {
		out = append(out, availabilityFor(id, byVariant[id]))
	}
	return out, nil
}

// SetStatus records or replaces a variant's status.
func (s *Service) SetStatus(ctx context.Context, variantID, productGID, status string, restockDate *time.Time) error {
	if strings.TrimSpace(variantID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}

	row := models.VariantStatus{
		VariantID:   strings.TrimSpace(variantID),
		ProductGID:  strings.TrimSpace(productGID),
		Status:      strings.ToLower(strings.TrimSpace(status)),
		RestockDate: restockDate,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store variant status")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"variant_id": row.VariantID,
		"status":     row.Status,
	}), "variant status updated")
	return nil
}

func availabilityFor(variantID string, row *models.VariantStatus) VariantAvailability {
	if row == nil {
		return VariantAvailability{
			VariantID: variantID,
			Directive: Evaluate(StateNormal),
		}
	}
	return VariantAvailability{
		VariantID:   variantID,
		Directive:   Evaluate(StateFromRecord(row.Status, row.RestockDate)),
		RestockDate: row.RestockDate,
	}
}

func dedupe(ids []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, id := range ids {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
