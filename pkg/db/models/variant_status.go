package models

import "time"

// VariantStatus records merchandising availability for a product variant.
// Status is free-form merchant data; the well-known values are "discontinued"
// and "not_for_sale". RestockDate stays nil when no restock is planned.
type VariantStatus struct {
	VariantID   string     `gorm:"column:variant_id;primaryKey"`
	ProductGID  string     `gorm:"column:product_gid;index:variant_statuses_product_gid_idx"`
	Status      string     `gorm:"column:status;not null;default:''"`
	RestockDate *time.Time `gorm:"column:restock_date"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (VariantStatus) TableName() string {
	return "variant_statuses"
}
