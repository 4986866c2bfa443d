package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wund3run/arena-escrow-service/internal/domain"
	transactiondto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/transaction"
)

// ApproveTransaction appends one signer's approval and transitions the
// transaction to APPROVED when quorum is met. Quorum is the contract's
// policy: both parties on a multisig contract, one signer otherwise. The
// count and the status flip happen in one database transaction, so two
// concurrent approvers cannot both conclude "quorum met".
func (uc *DefaultTransactionUsecase) ApproveTransaction(input *transactiondto.ApproveTransactionInput) (*domain.Transaction, error) {
	transaction, err := uc.TransactionRepo.GetTransactionByID(input.TransactionID)
	if err != nil {
		return nil, err
	}
	contract, err := uc.ContractRepo.GetContractByID(transaction.EscrowContractID)
	if err != nil {
		return nil, err
	}
	if !contract.IsParty(input.ApproverID) {
		return nil, fmt.Errorf("%w: approver %s is not a signer of contract %s",
			domain.ErrUnauthorized, input.ApproverID, contract.ID)
	}
	if transaction.Status != domain.TransactionPending {
		return nil, fmt.Errorf("%w: transaction %s is %s",
			domain.ErrInvalidTransition, transaction.ID, transaction.Status)
	}

	approval := &domain.MultisigApproval{
		ID:            uuid.New().String(),
		TransactionID: transaction.ID,
		ApproverID:    input.ApproverID,
		Signature:     input.Signature,
		ApprovedAt:    time.Now(),
	}

	approvedNow, err := uc.TransactionRepo.Approve(transaction.ID, approval, contract.RequiredApprovals())
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateApproval) && uc.Metrics != nil {
			uc.Metrics.DuplicateApprovalsTotal.WithLabelValues(string(transaction.Type)).Inc()
		}
		return nil, err
	}

	if approvedNow {
		uc.publishTransactionEvent(transaction, domain.TransactionApproved)
		if uc.Metrics != nil {
			uc.Metrics.TransactionsApprovedTotal.WithLabelValues(string(transaction.Type)).Inc()
		}
		// An approved deposit activates a pending contract. Already-active
		// is fine; anything else is unexpected.
		if transaction.Type == domain.TransactionDeposit {
			err := uc.ContractRepo.TransitionStatus(contract.ID, domain.EscrowActive, domain.EscrowPending)
			if err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
				slog.Error("failed to activate contract after deposit approval",
					"contract_id", contract.ID, "error", err.Error())
			}
		}
	}

	// Re-fetch so the caller sees the approval set that justifies the
	// status in one consistent read.
	return uc.TransactionRepo.GetTransactionByID(transaction.ID)
}
