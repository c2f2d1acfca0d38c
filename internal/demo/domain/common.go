package domain

import "time"

// AuditFields holds standard audit timestamps for demo entities.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	LastUpdatedAt time.Time `db:"last_updated_at" json:"lastUpdatedAt"`
}
