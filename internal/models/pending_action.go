package models

import (
	"time"

	"gorm.io/datatypes"
)

// PendingAction is a queued create/update/delete awaiting an admin decision.
// UniqueKey holds the proposed unique name while the record is pending; it
// backs the partial unique index that guards against racing submissions.
type PendingAction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActionType   string         `gorm:"size:10;not null" json:"actionType"`
	ResourceType string         `gorm:"size:40;not null;index:idx_pending_actions_resource,priority:1" json:"resourceType"`
	ResourceID   *uint          `gorm:"index:idx_pending_actions_resource,priority:2" json:"resourceId,omitempty"`
	Data         datatypes.JSON `json:"data,omitempty"`
	UniqueKey    *string        `gorm:"size:200" json:"-"`

	RequestedBy uint   `gorm:"not null;index:idx_pending_actions_requester,priority:1" json:"requestedBy"`
	Status      string `gorm:"size:10;not null;default:'pending';index:idx_pending_actions_requester,priority:2" json:"status"`

	ReviewedBy      *uint      `json:"reviewedBy,omitempty"`
	ReviewDate      *time.Time `json:"reviewDate,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejectionReason,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Field{},
		&Certification{},
		&Training{},
		&Company{},
		&CompanyCertification{},
		&CompanyTraining{},
		&Page{},
		&PendingAction{},
		&AuditLog{},
	}
}
