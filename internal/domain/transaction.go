package domain

import "time"

type TransactionType string

const (
	TransactionDeposit           TransactionType = "DEPOSIT"
	TransactionMilestonePayment  TransactionType = "MILESTONE_PAYMENT"
	TransactionRefund            TransactionType = "REFUND"
	TransactionFee               TransactionType = "FEE"
	TransactionDisputeResolution TransactionType = "DISPUTE_RESOLUTION"
)

// Valid reports whether the type is one of the supported ledger entry kinds.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDeposit, TransactionMilestonePayment, TransactionRefund,
		TransactionFee, TransactionDisputeResolution:
		return true
	default:
		return false
	}
}

type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "PENDING"
	TransactionApproved TransactionStatus = "APPROVED"
	TransactionExecuted TransactionStatus = "EXECUTED"
)

// Transaction is a ledger entry for an intended fund movement against a
// contract. It stays PENDING until the approval quorum is met; execution
// (settlement) happens outside this service and is recorded afterwards.
type Transaction struct {
	ID               string
	EscrowContractID string
	SenderID         string
	RecipientID      string
	Amount           float64
	Type             TransactionType
	Status           TransactionStatus
	MilestoneID      string
	SettlementHash   string
	IdempotencyKey   string
	Approvals        []*MultisigApproval
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MultisigApproval is one signer's authorization of a transaction. At most
// one approval exists per (transaction, approver) pair; the store enforces
// the uniqueness.
type MultisigApproval struct {
	ID            string
	TransactionID string
	ApproverID    string
	Signature     string
	ApprovedAt    time.Time
}

type TransactionRepository interface {
	CreateTransaction(transaction *Transaction) error
	GetTransactionByID(transactionID string) (*Transaction, error)
	GetTransactionByIdempotencyKey(key string) (*Transaction, error)
	// ListByContractID returns the contract's transactions with their
	// approval sets loaded in the same read, newest first.
	ListByContractID(contractID string) ([]*Transaction, error)
	// Approve appends the approval and, inside the same database
	// transaction, re-evaluates quorum with a conditional status update.
	// It reports whether the transaction transitioned to APPROVED.
	// A second approval by the same approver yields ErrDuplicateApproval.
	Approve(transactionID string, approval *MultisigApproval, quorum int) (bool, error)
	// MarkExecuted records the settlement hash; only APPROVED transactions
	// may be marked, anything else is ErrInvalidTransition.
	MarkExecuted(transactionID, settlementHash string) error
}
