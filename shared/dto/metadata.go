package dto

import (
	"rendezvous/shared/constant"
	"rendezvous/shared/model"
	"rendezvous/shared/timezone"
)

// Metadata is the audit trail of a row as rendered to clients, in the application time zone.
// Actors are omitted when a guest made the change.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	m.CreatedAt = timezone.Format(source.CreatedAt, constant.DateFormat)
	m.CreatedBy = actor(source.CreatedBy)
	m.ModifiedBy = actor(source.ModifiedBy)

	if !source.ModifiedAt.IsZero() {
		m.ModifiedAt = timezone.Format(source.ModifiedAt, constant.DateFormat)
	}
}

func actor(name string) string {
	if name == constant.ContextGuest {
		return ""
	}

	return name
}
