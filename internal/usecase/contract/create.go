package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wund3run/arena-escrow-service/internal/domain"
	contractdto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/contract"
)

// CreateContract validates the spec and persists the contract together with
// its initial milestone set in one atomic write. The milestone amounts may
// not exceed the contract total; this is checked at creation only.
func (uc *DefaultContractUsecase) CreateContract(input *contractdto.CreateContractInput) (*contractdto.ContractOutput, error) {
	if input.ClientID == "" || input.AuditorID == "" {
		return nil, fmt.Errorf("%w: client_id and auditor_id are required", domain.ErrValidation)
	}
	if input.ClientID == input.AuditorID {
		return nil, fmt.Errorf("%w: client and auditor must be distinct parties", domain.ErrValidation)
	}
	if input.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: total_amount must be non-negative", domain.ErrValidation)
	}
	if input.Currency == "" {
		return nil, fmt.Errorf("%w: currency is required", domain.ErrValidation)
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	var milestoneSum float64
	for _, spec := range input.Milestones {
		if spec.Amount < 0 {
			return nil, fmt.Errorf("%w: milestone amount must be non-negative", domain.ErrValidation)
		}
		if spec.Title == "" {
			return nil, fmt.Errorf("%w: milestone title is required", domain.ErrValidation)
		}
		milestoneSum += spec.Amount
	}
	if milestoneSum > input.TotalAmount {
		return nil, fmt.Errorf("%w: milestone amounts %.2f exceed contract total %.2f",
			domain.ErrValidation, milestoneSum, input.TotalAmount)
	}

	now := time.Now()
	contract := &domain.EscrowContract{
		ID:                uuid.New().String(),
		Title:             input.Title,
		Description:       input.Description,
		ClientID:          input.ClientID,
		AuditorID:         input.AuditorID,
		TotalAmount:       input.TotalAmount,
		Currency:          input.Currency,
		Status:            domain.EscrowPending,
		RequiresMultisig:  input.RequiresMultisig,
		SettlementAddress: input.SettlementAddress,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	milestones := make([]*domain.Milestone, len(input.Milestones))
	for i, spec := range input.Milestones {
		milestones[i] = &domain.Milestone{
			ID:               uuid.New().String(),
			EscrowContractID: contract.ID,
			Title:            spec.Title,
			Description:      spec.Description,
			Amount:           spec.Amount,
			Deadline:         spec.Deadline,
			// created_at drives milestone ordering; keep the initial set in
			// the order the caller supplied it
			CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
			UpdatedAt: now,
		}
	}

	if err := uc.ContractRepo.CreateContractWithMilestones(contract, milestones); err != nil {
		return nil, err
	}

	uc.publishContractEvent(contract, domain.EscrowPending)
	if uc.Metrics != nil {
		uc.Metrics.ContractsCreatedTotal.WithLabelValues(contract.Currency, fmt.Sprintf("%t", contract.RequiresMultisig)).Inc()
	}

	return &contractdto.ContractOutput{Contract: contract, Milestones: milestones}, nil
}
