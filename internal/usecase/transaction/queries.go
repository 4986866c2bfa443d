package usecase

import (
	"github.com/wund3run/arena-escrow-service/internal/domain"
)

func (uc *DefaultTransactionUsecase) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	return uc.TransactionRepo.GetTransactionByID(transactionID)
}

func (uc *DefaultTransactionUsecase) ListContractTransactions(contractID string) ([]*domain.Transaction, error) {
	if _, err := uc.ContractRepo.GetContractByID(contractID); err != nil {
		return nil, err
	}
	return uc.TransactionRepo.ListByContractID(contractID)
}

// MarkTransactionExecuted records the settlement reference once the
// external settlement layer has moved the funds.
func (uc *DefaultTransactionUsecase) MarkTransactionExecuted(transactionID, settlementHash string) error {
	if err := uc.TransactionRepo.MarkExecuted(transactionID, settlementHash); err != nil {
		return err
	}
	transaction, err := uc.TransactionRepo.GetTransactionByID(transactionID)
	if err == nil {
		uc.publishTransactionEvent(transaction, domain.TransactionExecuted)
	}
	return nil
}
