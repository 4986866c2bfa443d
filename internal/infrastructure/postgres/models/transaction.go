package models

import "time"

type TransactionModel struct {
	ID               string `gorm:"primaryKey"`
	EscrowContractID string `gorm:"index;not null"`
	SenderID         string `gorm:"not null"`
	RecipientID      string
	Amount           float64
	Type             string
	Status           string `gorm:"index"`
	MilestoneID      *string
	SettlementHash   string
	IdempotencyKey   *string                 `gorm:"uniqueIndex"`
	Contract         EscrowContractModel     `gorm:"foreignKey:EscrowContractID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Approvals        []MultisigApprovalModel `gorm:"foreignKey:TransactionID;references:ID"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// MultisigApprovalModel rows are append-only. The composite unique index is
// what closes the check-then-insert race on duplicate approvals.
type MultisigApprovalModel struct {
	ID            string `gorm:"primaryKey"`
	TransactionID string `gorm:"uniqueIndex:idx_transaction_approver;not null"`
	ApproverID    string `gorm:"uniqueIndex:idx_transaction_approver;not null"`
	Signature     string
	ApprovedAt    time.Time
}

func (MultisigApprovalModel) TableName() string {
	return "multisig_approvals"
}
