package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wund3run/arena-escrow-service/internal/domain"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.EscrowContractModel{},
		&models.MilestoneModel{},
		&models.TransactionModel{},
		&models.MultisigApprovalModel{},
		&models.DisputeModel{},
		&models.DisputeCommentModel{},
		&models.EscrowOperationStateModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedContract(t *testing.T, db *gorm.DB, status domain.EscrowStatus, multisig bool) *domain.EscrowContract {
	t.Helper()
	now := time.Now()
	contract := &domain.EscrowContract{
		ID:               uuid.NewString(),
		Title:            "Smart contract audit",
		ClientID:         "client-1",
		AuditorID:        "auditor-1",
		TotalAmount:      5000,
		Currency:         "USDT",
		Status:           status,
		RequiresMultisig: multisig,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := NewDefaultContractRepository(db).CreateContractWithMilestones(contract, nil); err != nil {
		t.Fatalf("seed contract: %v", err)
	}
	return contract
}

func seedTransaction(t *testing.T, db *gorm.DB, contractID string, txType domain.TransactionType) *domain.Transaction {
	t.Helper()
	now := time.Now()
	transaction := &domain.Transaction{
		ID:               uuid.NewString(),
		EscrowContractID: contractID,
		SenderID:         "client-1",
		RecipientID:      "auditor-1",
		Amount:           1000,
		Type:             txType,
		Status:           domain.TransactionPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := NewDefaultTransactionRepository(db).CreateTransaction(transaction); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return transaction
}

func seedDispute(t *testing.T, db *gorm.DB, contractID string) *domain.Dispute {
	t.Helper()
	now := time.Now()
	dispute := &domain.Dispute{
		ID:               uuid.NewString(),
		EscrowContractID: contractID,
		RaisedBy:         "client-1",
		Status:           domain.DisputeOpened,
		Reason:           "deliverable rejected",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := NewDefaultDisputeRepository(db).CreateDispute(dispute); err != nil {
		t.Fatalf("seed dispute: %v", err)
	}
	return dispute
}
