package postgres

import (
	"log"

	"github.com/wund3run/arena-escrow-service/internal/config"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.EscrowConfig) *gorm.DB {
	dsn := cfg.EscrowDB.Dsn
	// TranslateError lets repositories classify unique-constraint hits as
	// gorm.ErrDuplicatedKey instead of parsing driver errors.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.EscrowContractModel{},
		&models.MilestoneModel{},
		&models.TransactionModel{},
		&models.MultisigApprovalModel{},
		&models.DisputeModel{},
		&models.DisputeCommentModel{},
		&models.EscrowOperationStateModel{},
	)

	return db
}
