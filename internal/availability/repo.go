package availability

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diarmuidw/enquiry-backend/pkg/db/models"
)

// Repository encapsulates variant status persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find returns the status row for a variant, or nil when none is recorded.
func (r *Repository) Find(ctx context.Context, variantID string) (*models.VariantStatus, error) {
	if strings.TrimSpace(variantID) == "" {
		return nil, gorm.ErrInvalidValue
	}

	var row models.VariantStatus
	err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// FindBatch returns the recorded status rows for the given variants. Variants
// without a row are simply absent from the result.
func (r *Repository) FindBatch(ctx context.Context, variantIDs []string) ([]models.VariantStatus, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}

	var rows []models.VariantStatus
	err := r.db.WithContext(ctx).
		Where("variant_id IN ?", variantIDs).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert writes the status row, replacing any existing row for the variant.
func (r *Repository) Upsert(ctx context.Context, row models.VariantStatus) error {
	if strings.TrimSpace(row.VariantID) == "" {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "variant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"product_gid", "status", "restock_date", "updated_at"}),
		}).
		Create(&row).
		Error
}
