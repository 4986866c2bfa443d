package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wund3run/arena-escrow-service/internal/domain"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTransactionRepository struct {
	db *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{db: db}
}

func (r *DefaultTransactionRepository) CreateTransaction(transaction *domain.Transaction) error {
	transactionModel := mappers.ToGORMTransaction(transaction)
	if err := r.db.Create(transactionModel).Error; err != nil {
		if isDuplicateErr(err) {
			return fmt.Errorf("%w: transaction %s", domain.ErrIdempotencyConflict, transaction.ID)
		}
		return fmt.Errorf("%w: create transaction: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (r *DefaultTransactionRepository) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	var transactionModel models.TransactionModel
	if err := r.db.Preload("Approvals").First(&transactionModel, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return mappers.ToDomainTransaction(&transactionModel), nil
}

func (r *DefaultTransactionRepository) GetTransactionByIdempotencyKey(key string) (*domain.Transaction, error) {
	var transactionModel models.TransactionModel
	if err := r.db.Preload("Approvals").First(&transactionModel, "idempotency_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: idempotency key %s", domain.ErrNotFound, key)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return mappers.ToDomainTransaction(&transactionModel), nil
}

// ListByContractID loads transactions with their approval sets in one read,
// so a caller never sees an APPROVED transaction without the approvals that
// justify it.
func (r *DefaultTransactionRepository) ListByContractID(contractID string) ([]*domain.Transaction, error) {
	var transactionModels []models.TransactionModel
	if err := r.db.Preload("Approvals").
		Where("escrow_contract_id = ?", contractID).
		Order("created_at DESC").
		Find(&transactionModels).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	transactions := make([]*domain.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = mappers.ToDomainTransaction(&transactionModels[i])
	}
	return transactions, nil
}

// Approve inserts the approval row and decides quorum inside one database
// transaction. The unique (transaction_id, approver_id) index rejects
// duplicates regardless of application races, and the PENDING guard on the
// status update keeps two concurrent quorum decisions from both landing.
func (r *DefaultTransactionRepository) Approve(transactionID string, approval *domain.MultisigApproval, quorum int) (bool, error) {
	approved := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		approvalModel := mappers.ToGORMApproval(approval)
		if err := tx.Create(approvalModel).Error; err != nil {
			if isDuplicateErr(err) {
				return fmt.Errorf("%w: approver %s already signed transaction %s",
					domain.ErrDuplicateApproval, approval.ApproverID, transactionID)
			}
			return fmt.Errorf("%w: create approval: %v", domain.ErrPersistence, err)
		}

		var count int64
		if err := tx.Model(&models.MultisigApprovalModel{}).
			Where("transaction_id = ?", transactionID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("%w: count approvals: %v", domain.ErrPersistence, err)
		}
		if count < int64(quorum) {
			return nil
		}

		result := tx.Model(&models.TransactionModel{}).
			Where("id = ? AND status = ?", transactionID, string(domain.TransactionPending)).
			Update("status", string(domain.TransactionApproved))
		if result.Error != nil {
			return fmt.Errorf("%w: approve transaction: %v", domain.ErrPersistence, result.Error)
		}
		// RowsAffected == 0 means a concurrent approver already flipped the
		// status; the approval itself still counts.
		approved = result.RowsAffected > 0
		if approved {
			now := time.Now()
			return tx.Create(&models.EscrowOperationStateModel{
				EntityID:      transactionID,
				Operation:     "approve_transaction",
				StatusChanged: true,
				CompletedAt:   &now,
			}).Error
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return approved, nil
}

func (r *DefaultTransactionRepository) MarkExecuted(transactionID, settlementHash string) error {
	result := r.db.Model(&models.TransactionModel{}).
		Where("id = ? AND status = ?", transactionID, string(domain.TransactionApproved)).
		Updates(map[string]interface{}{
			"status":          string(domain.TransactionExecuted),
			"settlement_hash": settlementHash,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.TransactionModel{}).Where("id = ?", transactionID).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		if count == 0 {
			return fmt.Errorf("%w: transaction %s", domain.ErrNotFound, transactionID)
		}
		return fmt.Errorf("%w: transaction %s is not approved", domain.ErrInvalidTransition, transactionID)
	}
	return nil
}

// isDuplicateErr covers gorm's translated error plus the raw constraint
// messages from postgres and sqlite, so the check holds under both the
// production and the test driver.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
