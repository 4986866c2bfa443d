package domain

import "time"

type EscrowStatus string

const (
	EscrowPending   EscrowStatus = "PENDING"
	EscrowActive    EscrowStatus = "ACTIVE"
	EscrowCompleted EscrowStatus = "COMPLETED"
	EscrowCancelled EscrowStatus = "CANCELLED"
	EscrowDisputed  EscrowStatus = "DISPUTED"
)

// Terminal reports whether the contract can leave this status.
func (s EscrowStatus) Terminal() bool {
	return s == EscrowCompleted || s == EscrowCancelled
}

// CanTransitionTo encodes the contract state machine:
// PENDING -> ACTIVE -> COMPLETED, with DISPUTED and CANCELLED as side exits
// from PENDING/ACTIVE and DISPUTED -> ACTIVE once a dispute settles.
func (s EscrowStatus) CanTransitionTo(next EscrowStatus) bool {
	switch s {
	case EscrowPending:
		return next == EscrowActive || next == EscrowCancelled || next == EscrowDisputed
	case EscrowActive:
		return next == EscrowCompleted || next == EscrowCancelled || next == EscrowDisputed
	case EscrowDisputed:
		return next == EscrowActive
	default:
		return false
	}
}

// TransitionSources lists the statuses a contract may leave to reach
// target, derived from CanTransitionTo so guard lists cannot drift from
// the state machine.
func TransitionSources(target EscrowStatus) []EscrowStatus {
	all := []EscrowStatus{EscrowPending, EscrowActive, EscrowCompleted, EscrowCancelled, EscrowDisputed}
	var sources []EscrowStatus
	for _, s := range all {
		if s.CanTransitionTo(target) {
			sources = append(sources, s)
		}
	}
	return sources
}

// EscrowContract is the custody agreement between a client and an auditor.
// Funds referenced by it are held by the external settlement layer; this
// service owns the lifecycle and authorization state only.
type EscrowContract struct {
	ID                string
	Title             string
	Description       string
	ClientID          string
	AuditorID         string
	TotalAmount       float64
	Currency          string
	Status            EscrowStatus
	RequiresMultisig  bool
	SettlementAddress string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsParty reports whether userID is the contract's client or auditor.
func (c *EscrowContract) IsParty(userID string) bool {
	return userID == c.ClientID || userID == c.AuditorID
}

// RequiredApprovals is the quorum for transactions under this contract:
// both parties when the contract is multisig, a single signer otherwise.
func (c *EscrowContract) RequiredApprovals() int {
	if c.RequiresMultisig {
		return 2
	}
	return 1
}

type ContractFilter struct {
	ClientID  *string
	AuditorID *string
	Status    *EscrowStatus
	Currency  *string
	Page      int
	Limit     int
}

type ContractRepository interface {
	// CreateContractWithMilestones persists the contract and its initial
	// milestone set as one transaction. Either all rows exist afterwards
	// or none do.
	CreateContractWithMilestones(contract *EscrowContract, milestones []*Milestone) error
	GetContractByID(contractID string) (*EscrowContract, error)
	// TransitionStatus performs a conditional status update: the write only
	// lands if the current status is one of from. Returns ErrNotFound if the
	// contract does not exist and ErrInvalidTransition if the guard failed.
	TransitionStatus(contractID string, to EscrowStatus, from ...EscrowStatus) error
	ListContracts(filter ContractFilter) ([]*EscrowContract, int64, error)
}
