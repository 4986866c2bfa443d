package models

import "time"

type EscrowContractModel struct {
	ID                string `gorm:"primaryKey"`
	Title             string
	Description       string
	ClientID          string `gorm:"index;not null"`
	AuditorID         string `gorm:"index;not null"`
	TotalAmount       float64
	Currency          string
	Status            string `gorm:"index"`
	RequiresMultisig  bool
	SettlementAddress string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (EscrowContractModel) TableName() string {
	return "escrow_contracts"
}
