package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wund3run/arena-escrow-service/internal/domain"
	transactiondto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/transaction"
)

// CreateTransaction records a fund-movement intent against a contract. The
// sender must be a party to the contract and a milestone payment must
// reference a milestone of that same contract. With an idempotency key a
// retried create returns the transaction the first attempt recorded.
func (uc *DefaultTransactionUsecase) CreateTransaction(input *transactiondto.CreateTransactionInput) (*domain.Transaction, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	transactionType := domain.TransactionType(input.Type)
	if !transactionType.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, input.Type)
	}

	if input.IdempotencyKey != "" {
		existing, err := uc.TransactionRepo.GetTransactionByIdempotencyKey(input.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	contract, err := uc.ContractRepo.GetContractByID(input.EscrowContractID)
	if err != nil {
		return nil, err
	}
	if contract.Status.Terminal() {
		return nil, fmt.Errorf("%w: contract %s is %s", domain.ErrInvalidTransition, contract.ID, contract.Status)
	}
	if !contract.IsParty(input.SenderID) {
		return nil, fmt.Errorf("%w: sender %s is not a party to contract %s",
			domain.ErrUnauthorized, input.SenderID, contract.ID)
	}

	if transactionType == domain.TransactionMilestonePayment {
		if input.MilestoneID == "" {
			return nil, fmt.Errorf("%w: milestone_id is required for a milestone payment", domain.ErrValidation)
		}
		milestone, err := uc.MilestoneRepo.GetMilestoneByID(input.MilestoneID)
		if err != nil {
			return nil, err
		}
		if milestone.EscrowContractID != contract.ID {
			return nil, fmt.Errorf("%w: milestone %s belongs to another contract",
				domain.ErrValidation, input.MilestoneID)
		}
	}

	now := time.Now()
	transaction := &domain.Transaction{
		ID:               uuid.New().String(),
		EscrowContractID: contract.ID,
		SenderID:         input.SenderID,
		RecipientID:      input.RecipientID,
		Amount:           input.Amount,
		Type:             transactionType,
		Status:           domain.TransactionPending,
		MilestoneID:      input.MilestoneID,
		IdempotencyKey:   input.IdempotencyKey,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.TransactionRepo.CreateTransaction(transaction); err != nil {
		// Lost the insert race on the idempotency key: the winning row is
		// the answer the caller wants.
		if errors.Is(err, domain.ErrIdempotencyConflict) && input.IdempotencyKey != "" {
			return uc.TransactionRepo.GetTransactionByIdempotencyKey(input.IdempotencyKey)
		}
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.TransactionsCreatedTotal.WithLabelValues(string(transactionType)).Inc()
	}
	return transaction, nil
}
