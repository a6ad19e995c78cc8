package generations

import "time"

// Generation is the audit record of one successful copy generation.
// Include is the resolved channel list serialized comma-separated, the
// same layout the dashboard consumes. Output is the full seven-field
// result as JSON. Records are append-only.
type Generation struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index:idx_generations_user_id"`
	ProductName string `gorm:"not null"`
	Voice       string `gorm:"type:varchar(16);not null;default:'default'"`
	Include     string
	Output      string `gorm:"type:jsonb"`
	CreatedAt   time.Time
}
