package domain

import "time"

// Milestone is a partial deliverable under a contract tied to a partial
// payment amount. Milestones are never deleted once a transaction
// references them.
type Milestone struct {
	ID               string
	EscrowContractID string
	Title            string
	Description      string
	Amount           float64
	Deadline         *time.Time
	IsCompleted      bool
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type MilestoneRepository interface {
	CreateMilestone(milestone *Milestone) error
	GetMilestoneByID(milestoneID string) (*Milestone, error)
	// ListByContractID returns milestones ordered by creation time, oldest
	// first. The ordering is part of the contract with callers.
	ListByContractID(contractID string) ([]*Milestone, error)
	// SetCompletion stamps completed_at when completed is true and clears it
	// otherwise. Returns ErrNotFound for an unknown milestone.
	SetCompletion(milestoneID string, completed bool) error
}
