package dto

import (
	"time"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// AlertResponse represents a single alert in API responses.
type AlertResponse struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	Severity   string         `json:"severity"`
	CategoryID *string        `json:"category_id,omitempty"`
	Year       int            `json:"year,omitempty"`
	Month      int            `json:"month,omitempty"`
	Message    string         `json:"message"`
	Payload    map[string]any `json:"payload,omitempty"`
	RelatedIDs []string       `json:"related_ids,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// AlertListResponse represents the response for listing alerts.
type AlertListResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}

// ToAlertResponse converts a domain Alert entity to an AlertResponse DTO.
func ToAlertResponse(alert *entity.Alert) AlertResponse {
	resp := AlertResponse{
		ID:         alert.ID.String(),
		Kind:       string(alert.Kind),
		Severity:   string(alert.Severity),
		Year:       alert.Year,
		Month:      alert.Month,
		Message:    alert.Message,
		Payload:    alert.Payload,
		RelatedIDs: alert.RelatedIDs,
		CreatedAt:  alert.CreatedAt,
	}
	if alert.CategoryID != nil {
		id := alert.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

// ToAlertListResponse converts a list of alerts to AlertListResponse.
func ToAlertListResponse(alerts []*entity.Alert) AlertListResponse {
	out := make([]AlertResponse, len(alerts))
	for i, alert := range alerts {
		out[i] = ToAlertResponse(alert)
	}
	return AlertListResponse{Alerts: out}
}
