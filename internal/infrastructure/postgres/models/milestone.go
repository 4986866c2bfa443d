package models

import "time"

type MilestoneModel struct {
	ID               string `gorm:"primaryKey"`
	EscrowContractID string `gorm:"index;not null"`
	Title            string
	Description      string
	Amount           float64
	Deadline         *time.Time
	IsCompleted      bool
	CompletedAt      *time.Time
	Contract         EscrowContractModel `gorm:"foreignKey:EscrowContractID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (MilestoneModel) TableName() string {
	return "milestones"
}
