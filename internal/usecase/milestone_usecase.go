package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wund3run/arena-escrow-service/internal/domain"
	milestonedto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/milestone"
)

type MilestoneUsecase interface {
	ListMilestones(contractID string) ([]*domain.Milestone, error)
	AddMilestone(input *milestonedto.AddMilestoneInput) (*domain.Milestone, error)
	SetMilestoneCompletion(milestoneID, actorID string, completed bool) (*domain.Milestone, error)
}

type DefaultMilestoneUsecase struct {
	MilestoneRepo domain.MilestoneRepository
	ContractRepo  domain.ContractRepository
}

func NewDefaultMilestoneUsecase(milestoneRepo domain.MilestoneRepository, contractRepo domain.ContractRepository) *DefaultMilestoneUsecase {
	return &DefaultMilestoneUsecase{
		MilestoneRepo: milestoneRepo,
		ContractRepo:  contractRepo,
	}
}

// ListMilestones returns the contract's milestones oldest first.
func (uc *DefaultMilestoneUsecase) ListMilestones(contractID string) ([]*domain.Milestone, error) {
	if _, err := uc.ContractRepo.GetContractByID(contractID); err != nil {
		return nil, err
	}
	return uc.MilestoneRepo.ListByContractID(contractID)
}

// AddMilestone appends a milestone to a live contract. The sum of milestone
// amounts may not exceed the contract total.
func (uc *DefaultMilestoneUsecase) AddMilestone(input *milestonedto.AddMilestoneInput) (*domain.Milestone, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if input.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be non-negative", domain.ErrValidation)
	}

	contract, err := uc.ContractRepo.GetContractByID(input.EscrowContractID)
	if err != nil {
		return nil, err
	}
	if contract.Status.Terminal() {
		return nil, fmt.Errorf("%w: contract %s is %s", domain.ErrInvalidTransition, contract.ID, contract.Status)
	}

	existing, err := uc.MilestoneRepo.ListByContractID(contract.ID)
	if err != nil {
		return nil, err
	}
	var sum float64
	for _, milestone := range existing {
		sum += milestone.Amount
	}
	if sum+input.Amount > contract.TotalAmount {
		return nil, fmt.Errorf("%w: milestone amounts %.2f would exceed contract total %.2f",
			domain.ErrValidation, sum+input.Amount, contract.TotalAmount)
	}

	now := time.Now()
	milestone := &domain.Milestone{
		ID:               uuid.New().String(),
		EscrowContractID: contract.ID,
		Title:            input.Title,
		Description:      input.Description,
		Amount:           input.Amount,
		Deadline:         input.Deadline,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.MilestoneRepo.CreateMilestone(milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

// SetMilestoneCompletion toggles completion under the authorization policy:
// the auditor marks a milestone complete, the client clears the mark when
// rejecting a delivery. Completion stamps completed_at, clearing removes it.
func (uc *DefaultMilestoneUsecase) SetMilestoneCompletion(milestoneID, actorID string, completed bool) (*domain.Milestone, error) {
	milestone, err := uc.MilestoneRepo.GetMilestoneByID(milestoneID)
	if err != nil {
		return nil, err
	}
	contract, err := uc.ContractRepo.GetContractByID(milestone.EscrowContractID)
	if err != nil {
		return nil, err
	}
	if contract.Status.Terminal() {
		return nil, fmt.Errorf("%w: contract %s is %s", domain.ErrInvalidTransition, contract.ID, contract.Status)
	}
	if completed && actorID != contract.AuditorID {
		return nil, fmt.Errorf("%w: only the auditor may complete a milestone", domain.ErrUnauthorized)
	}
	if !completed && actorID != contract.ClientID {
		return nil, fmt.Errorf("%w: only the client may clear milestone completion", domain.ErrUnauthorized)
	}

	if err := uc.MilestoneRepo.SetCompletion(milestoneID, completed); err != nil {
		return nil, err
	}
	return uc.MilestoneRepo.GetMilestoneByID(milestoneID)
}
