package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// AlertModel represents the alerts table in the database. Payload is stored
// as a JSON document; RelatedIDs as a text array.
type AlertModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind       string         `gorm:"type:varchar(40);not null;index"`
	Severity   string         `gorm:"type:varchar(10);not null"`
	CategoryID *uuid.UUID     `gorm:"type:uuid;index"`
	Year       int            `gorm:"not null;default:0"`
	Month      int            `gorm:"not null;default:0"`
	Message    string         `gorm:"type:text;not null"`
	Payload    string         `gorm:"type:text"`
	RelatedIDs pq.StringArray `gorm:"type:text[]"`
	CreatedAt  time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for the AlertModel.
func (AlertModel) TableName() string {
	return "alerts"
}

// ToEntity converts an AlertModel to a domain Alert entity.
func (m *AlertModel) ToEntity() *entity.Alert {
	var payload map[string]any
	if m.Payload != "" {
		// A corrupt payload degrades to nil rather than failing the read.
		_ = json.Unmarshal([]byte(m.Payload), &payload)
	}

	return &entity.Alert{
		ID:         m.ID,
		UserID:     m.UserID,
		Kind:       entity.AlertKind(m.Kind),
		Severity:   entity.AlertSeverity(m.Severity),
		CategoryID: m.CategoryID,
		Year:       m.Year,
		Month:      m.Month,
		Message:    m.Message,
		Payload:    payload,
		RelatedIDs: []string(m.RelatedIDs),
		CreatedAt:  m.CreatedAt,
	}
}

// AlertFromEntity creates an AlertModel from a domain Alert entity.
func AlertFromEntity(alert *entity.Alert) *AlertModel {
	payload := ""
	if alert.Payload != nil {
		if raw, err := json.Marshal(alert.Payload); err == nil {
			payload = string(raw)
		}
	}

	return &AlertModel{
		ID:         alert.ID,
		UserID:     alert.UserID,
		Kind:       string(alert.Kind),
		Severity:   string(alert.Severity),
		CategoryID: alert.CategoryID,
		Year:       alert.Year,
		Month:      alert.Month,
		Message:    alert.Message,
		Payload:    payload,
		RelatedIDs: pq.StringArray(alert.RelatedIDs),
		CreatedAt:  alert.CreatedAt,
	}
}
