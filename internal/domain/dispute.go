package domain

import "time"

type DisputeStatus string

const (
	DisputeOpened   DisputeStatus = "OPENED"
	DisputeInReview DisputeStatus = "IN_REVIEW"
	DisputeResolved DisputeStatus = "RESOLVED"
	DisputeClosed   DisputeStatus = "CLOSED"
)

// Terminal reports whether the dispute accepts further comments or a
// resolution. RESOLVED and CLOSED are both final for writes.
func (s DisputeStatus) Terminal() bool {
	return s == DisputeResolved || s == DisputeClosed
}

// Dispute is a contested claim against a contract, optionally scoped to a
// milestone or transaction. It is closed exactly once via resolution.
type Dispute struct {
	ID               string
	EscrowContractID string
	MilestoneID      string
	TransactionID    string
	RaisedBy         string
	ArbitratorID     string
	Status           DisputeStatus
	Reason           string
	Evidence         string
	Resolution       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Comments         []*DisputeComment
}

// DisputeComment is one message on a dispute thread. Immutable once created.
type DisputeComment struct {
	ID        string
	DisputeID string
	UserID    string
	Comment   string
	CreatedAt time.Time
}

type DisputeFilter struct {
	ContractID   *string
	RaisedBy     *string
	ArbitratorID *string
	Status       *DisputeStatus
	Page         int
	Limit        int
}

type DisputeRepository interface {
	CreateDispute(dispute *Dispute) error
	GetDisputeByID(disputeID string) (*Dispute, error)
	// AddComment appends the comment only while the dispute is OPENED or
	// IN_REVIEW; the status check and insert share one database transaction.
	AddComment(comment *DisputeComment) error
	ListComments(disputeID string) ([]*DisputeComment, error)
	// AssignArbitrator moves OPENED -> IN_REVIEW and records the arbitrator.
	AssignArbitrator(disputeID, arbitratorID string) error
	// Resolve records the resolution with a conditional update so that
	// exactly one caller wins; later callers get ErrAlreadyResolved.
	Resolve(disputeID, resolution string) error
	// Close archives a RESOLVED dispute.
	Close(disputeID string) error
	ListDisputes(filter DisputeFilter) ([]*Dispute, int64, error)
}
