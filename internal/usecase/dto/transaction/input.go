package transactiondto

type CreateTransactionInput struct {
	EscrowContractID string
	SenderID         string
	RecipientID      string
	Amount           float64
	Type             string
	MilestoneID      string
	// IdempotencyKey is caller-supplied; retrying a create with the same key
	// returns the transaction recorded by the first attempt.
	IdempotencyKey string
}

type ApproveTransactionInput struct {
	TransactionID string
	ApproverID    string
	Signature     string
}
