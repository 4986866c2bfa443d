package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/wund3run/arena-escrow-service/internal/domain"
	disputedto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/dispute"
)

// CreateDispute opens a dispute against a live contract and moves the
// contract to DISPUTED. Only a party to the contract may raise one, and a
// milestone or transaction scope must belong to the same contract.
func (uc *DefaultDisputeUsecase) CreateDispute(input *disputedto.CreateDisputeInput) (*domain.Dispute, error) {
	if input.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}

	contract, err := uc.ContractRepo.GetContractByID(input.EscrowContractID)
	if err != nil {
		return nil, err
	}
	if !contract.IsParty(input.RaisedBy) {
		return nil, fmt.Errorf("%w: %s is not a party to contract %s",
			domain.ErrUnauthorized, input.RaisedBy, contract.ID)
	}
	if contract.Status.Terminal() || contract.Status == domain.EscrowDisputed {
		return nil, fmt.Errorf("%w: contract %s is %s", domain.ErrInvalidTransition, contract.ID, contract.Status)
	}

	if input.MilestoneID != "" {
		milestone, err := uc.MilestoneRepo.GetMilestoneByID(input.MilestoneID)
		if err != nil {
			return nil, err
		}
		if milestone.EscrowContractID != contract.ID {
			return nil, fmt.Errorf("%w: milestone %s belongs to another contract",
				domain.ErrValidation, input.MilestoneID)
		}
	}
	if input.TransactionID != "" {
		transaction, err := uc.TransactionRepo.GetTransactionByID(input.TransactionID)
		if err != nil {
			return nil, err
		}
		if transaction.EscrowContractID != contract.ID {
			return nil, fmt.Errorf("%w: transaction %s belongs to another contract",
				domain.ErrValidation, input.TransactionID)
		}
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	// The contract transition goes first: the conditional update is the
	// serializing point, so two racing openers cannot both attach an
	// OPENED dispute.
	if err := uc.ContractRepo.TransitionStatus(
		contract.ID, domain.EscrowDisputed,
		domain.TransitionSources(domain.EscrowDisputed)...,
	); err != nil {
		return nil, err
	}

	now := time.Now()
	dispute := &domain.Dispute{
		ID:               idGenerator(),
		EscrowContractID: contract.ID,
		MilestoneID:      input.MilestoneID,
		TransactionID:    input.TransactionID,
		RaisedBy:         input.RaisedBy,
		Status:           domain.DisputeOpened,
		Reason:           input.Reason,
		Evidence:         input.Evidence,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.DisputeRepo.CreateDispute(dispute); err != nil {
		if revertErr := uc.ContractRepo.TransitionStatus(
			contract.ID, contract.Status, domain.EscrowDisputed,
		); revertErr != nil {
			slog.Error("failed to revert contract after dispute insert failure",
				"contract_id", contract.ID, "error", revertErr.Error())
		}
		return nil, err
	}

	uc.publishDisputeEvent(dispute, domain.DisputeOpened)
	if uc.Metrics != nil {
		uc.Metrics.DisputesOpenedTotal.WithLabelValues(disputeScope(dispute)).Inc()
	}
	return dispute, nil
}
