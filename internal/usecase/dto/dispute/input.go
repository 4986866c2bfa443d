package disputedto

type CreateDisputeInput struct {
	EscrowContractID string
	MilestoneID      string
	TransactionID    string
	RaisedBy         string
	Reason           string
	Evidence         string
}

type ListDisputesInput struct {
	ContractID   string
	RaisedBy     string
	ArbitratorID string
	Status       string
	Page         int
	Limit        int
}
