package models

import "time"

// EscrowOperationStateModel is an audit row for multi-step operations
// (atomic creates, quorum approvals, resolutions). Written inside the same
// database transaction as the operation itself.
type EscrowOperationStateModel struct {
	ID            uint       `gorm:"primaryKey"`
	EntityID      string     `gorm:"index;not null"`
	Operation     string     `gorm:"not null"` // "create_contract", "approve_transaction", "resolve_dispute"
	StatusChanged bool       `gorm:"default:false"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	CompletedAt   *time.Time `gorm:"default:null"`
}

func (EscrowOperationStateModel) TableName() string {
	return "escrow_operation_states"
}
