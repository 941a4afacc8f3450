package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// Actor identities are email-shaped strings supplied by the caller's auth context.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}
