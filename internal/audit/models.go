package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time
	ActorEmail string
	Subject    string
	Action     string
	RequestID  string
	ClientIP   string
}

type AuditEvent string

const (
	EventListingSubmitted  AuditEvent = "listing_submitted"
	EventListingVerified   AuditEvent = "listing_verified"
	EventListingUnverified AuditEvent = "listing_unverified"
	EventListingHidden     AuditEvent = "listing_hidden"
	EventListingUnhidden   AuditEvent = "listing_unhidden"
	EventAdminGranted      AuditEvent = "admin_granted"
	EventAdminRevoked      AuditEvent = "admin_revoked"
)
