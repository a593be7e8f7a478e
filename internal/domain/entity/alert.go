// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertKind identifies what triggered an alert.
type AlertKind string

const (
	// AlertKindCategoryLimitNear fires when a category crosses 80% of its limit.
	AlertKindCategoryLimitNear AlertKind = "CATEGORY_LIMIT_NEAR"
	// AlertKindCategoryLimitExceeded fires when a category crosses 100% of its limit.
	AlertKindCategoryLimitExceeded AlertKind = "CATEGORY_LIMIT_EXCEEDED"
	// AlertKindCardLinkageFailed is the compensating alert emitted when the
	// credit-card linkage saga exhausts its retries.
	AlertKindCardLinkageFailed AlertKind = "CARD_LINKAGE_FAILED"
	// AlertKindSystem covers generic system notices.
	AlertKindSystem AlertKind = "SYSTEM"
)

// AlertSeverity ranks how urgent an alert is.
type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "INFO"
	AlertSeverityWarning  AlertSeverity = "WARNING"
	AlertSeverityHigh     AlertSeverity = "HIGH"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

// Alert represents a user-facing notification row. Category-limit alerts are
// unique per (user, category, year, month, kind); system alerts have no
// category or period.
type Alert struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Kind       AlertKind
	Severity   AlertSeverity
	CategoryID *uuid.UUID
	Year       int
	Month      int
	Message    string
	Payload    map[string]any
	RelatedIDs []string // IDs of the entries that triggered the alert
	CreatedAt  time.Time
}

// NewCategoryAlert creates an alert gated by the per-period uniqueness key.
func NewCategoryAlert(
	userID, categoryID uuid.UUID,
	year, month int,
	kind AlertKind,
	severity AlertSeverity,
	message string,
	payload map[string]any,
	relatedIDs []string,
) *Alert {
	return &Alert{
		ID:         uuid.New(),
		UserID:     userID,
		Kind:       kind,
		Severity:   severity,
		CategoryID: &categoryID,
		Year:       year,
		Month:      month,
		Message:    message,
		Payload:    payload,
		RelatedIDs: relatedIDs,
		CreatedAt:  time.Now().UTC(),
	}
}

// NewSystemAlert creates a generic system alert.
func NewSystemAlert(
	userID uuid.UUID,
	kind AlertKind,
	severity AlertSeverity,
	message string,
	payload map[string]any,
	relatedIDs []string,
) *Alert {
	return &Alert{
		ID:         uuid.New(),
		UserID:     userID,
		Kind:       kind,
		Severity:   severity,
		Message:    message,
		Payload:    payload,
		RelatedIDs: relatedIDs,
		CreatedAt:  time.Now().UTC(),
	}
}
