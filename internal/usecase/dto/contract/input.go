package contractdto

import "time"

type CreateContractInput struct {
	Title             string
	Description       string
	ClientID          string
	AuditorID         string
	TotalAmount       float64
	Currency          string
	RequiresMultisig  bool
	SettlementAddress string
	Milestones        []MilestoneSpec
}

type MilestoneSpec struct {
	Title       string
	Description string
	Amount      float64
	Deadline    *time.Time
}

type ListContractsInput struct {
	ClientID  string
	AuditorID string
	Status    string
	Currency  string
	Page      int
	Limit     int
}
