package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction names an admin action recorded in the audit log.
type AuditAction string

// Recorded admin actions
const (
	AuditProviderApproved AuditAction = "provider.approved"
	AuditProviderRejected AuditAction = "provider.rejected"
)

// VerificationAction returns the audit action for a verification decision.
func VerificationAction(approve bool) AuditAction {
	if approve {
		return AuditProviderApproved
	}
	return AuditProviderRejected
}

// AuditEntry records an admin decision.
type AuditEntry struct {
	ID               uuid.UUID   `json:"id"`
	AdminID          uuid.UUID   `json:"admin_id"`
	Action           AuditAction `json:"action"`
	TargetProviderID uuid.UUID   `json:"target_provider_id"`
	TargetUserID     uuid.UUID   `json:"target_user_id"`
	CreatedAt        time.Time   `json:"created_at"`
}

// CountEntry is one row of an analytics rollup.
type CountEntry struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Analytics is the admin dashboard rollup over all bookings.
type Analytics struct {
	TopServices     []CountEntry `json:"top_services"`
	PopularPincodes []CountEntry `json:"popular_locations"`
	TotalBookings   int64        `json:"total_bookings"`
	GeneratedAt     time.Time    `json:"generated_at"`
}

// Analytics limits
const (
	DefaultAnalyticsLimit = 5
	MaxAnalyticsLimit     = 100
)
