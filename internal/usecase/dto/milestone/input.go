package milestonedto

import "time"

type AddMilestoneInput struct {
	EscrowContractID string
	Title            string
	Description      string
	Amount           float64
	Deadline         *time.Time
}
