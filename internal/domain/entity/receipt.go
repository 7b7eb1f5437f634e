package entity

import (
	"time"

	"github.com/baysidepv/charter-api/internal/domain/enum"
)

// Receipt is an uploaded expense photo attached to a work order. The image
// itself lives in object storage; this row keeps the locator and metadata.
// Receipts are owned by their order and go away with it (cascade).
type Receipt struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	WorkOrderID uint                 `gorm:"not null;index" json:"work_order_id"`
	URL         string               `gorm:"size:1024;not null" json:"url"`
	Category    enum.ExpenseCategory `gorm:"size:20;default:'general'" json:"category"`
	FileName    string               `gorm:"size:255" json:"file_name"`
	FileSize    int64                `json:"file_size"`
	MimeType    string               `gorm:"size:100" json:"mime_type"`
	CreatedAt   time.Time            `json:"created_at"`

	// Relationships
	WorkOrder WorkOrder `gorm:"foreignKey:WorkOrderID" json:"-"`
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}
