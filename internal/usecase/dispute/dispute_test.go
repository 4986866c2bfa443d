package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wund3run/arena-escrow-service/internal/domain"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/models"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/repository"
	disputedto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/dispute"
)

// stubProfiles marks a fixed set of user IDs as arbitrators.
type stubProfiles struct {
	arbitrators map[string]bool
}

func (s *stubProfiles) GetProfile(userID string) (*domain.Profile, error) {
	return &domain.Profile{ID: userID, IsArbitrator: s.arbitrators[userID]}, nil
}

type testEnv struct {
	uc           *DefaultDisputeUsecase
	contractRepo domain.ContractRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.EscrowContractModel{},
		&models.MilestoneModel{},
		&models.TransactionModel{},
		&models.MultisigApprovalModel{},
		&models.DisputeModel{},
		&models.DisputeCommentModel{},
		&models.EscrowOperationStateModel{},
	))
	contractRepo := repository.NewDefaultContractRepository(db)
	uc := NewDefaultDisputeUsecase(
		repository.NewDefaultDisputeRepository(db),
		contractRepo,
		repository.NewDefaultMilestoneRepository(db),
		repository.NewDefaultTransactionRepository(db),
		&stubProfiles{arbitrators: map[string]bool{"arbitrator-1": true}},
		nil, nil,
	)
	return &testEnv{uc: uc, contractRepo: contractRepo}
}

func (e *testEnv) seedContract(t *testing.T) *domain.EscrowContract {
	t.Helper()
	now := time.Now()
	contract := &domain.EscrowContract{
		ID:          uuid.NewString(),
		Title:       "Vault audit",
		ClientID:    "client-1",
		AuditorID:   "auditor-1",
		TotalAmount: 2000,
		Currency:    "USDT",
		Status:      domain.EscrowActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, e.contractRepo.CreateContractWithMilestones(contract, nil))
	return contract
}

func (e *testEnv) openDispute(t *testing.T, contract *domain.EscrowContract) *domain.Dispute {
	t.Helper()
	dispute, err := e.uc.CreateDispute(&disputedto.CreateDisputeInput{
		EscrowContractID: contract.ID,
		RaisedBy:         contract.ClientID,
		Reason:           "deliverable does not match the milestone",
	})
	require.NoError(t, err)
	return dispute
}

func TestCreateDisputeMarksContractDisputed(t *testing.T) {
	env := newTestEnv(t)
	contract := env.seedContract(t)

	dispute := env.openDispute(t, contract)
	require.Equal(t, domain.DisputeOpened, dispute.Status)

	got, err := env.contractRepo.GetContractByID(contract.ID)
	require.NoError(t, err)
	require.Equal(t, domain.EscrowDisputed, got.Status)

	// A second dispute on an already disputed contract is rejected and
	// leaves no row behind: the conditional contract transition runs
	// before the insert, so only one opener can win.
	_, err = env.uc.CreateDispute(&disputedto.CreateDisputeInput{
		EscrowContractID: contract.ID,
		RaisedBy:         contract.AuditorID,
		Reason:           "counter claim",
	})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	output, err := env.uc.ListDisputes(&disputedto.ListDisputesInput{ContractID: contract.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, output.Pagination.TotalItems)
}

// failingDisputeRepo rejects every insert while delegating the rest.
type failingDisputeRepo struct {
	domain.DisputeRepository
}

func (f *failingDisputeRepo) CreateDispute(*domain.Dispute) error {
	return fmt.Errorf("%w: insert rejected", domain.ErrPersistence)
}

func TestCreateDisputeRevertsContractOnInsertFailure(t *testing.T) {
	env := newTestEnv(t)
	contract := env.seedContract(t)
	env.uc.DisputeRepo = &failingDisputeRepo{env.uc.DisputeRepo}

	_, err := env.uc.CreateDispute(&disputedto.CreateDisputeInput{
		EscrowContractID: contract.ID,
		RaisedBy:         contract.ClientID,
		Reason:           "broken deliverable",
	})
	require.ErrorIs(t, err, domain.ErrPersistence)

	got, err := env.contractRepo.GetContractByID(contract.ID)
	require.NoError(t, err)
	require.Equal(t, domain.EscrowActive, got.Status)
}

func TestCreateDisputeAuthorization(t *testing.T) {
	env := newTestEnv(t)
	contract := env.seedContract(t)

	_, err := env.uc.CreateDispute(&disputedto.CreateDisputeInput{
		EscrowContractID: contract.ID,
		RaisedBy:         "stranger",
		Reason:           "I object",
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.uc.CreateDispute(&disputedto.CreateDisputeInput{
		EscrowContractID: contract.ID,
		RaisedBy:         contract.ClientID,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestDisputeComments(t *testing.T) {
	env := newTestEnv(t)
	contract := env.seedContract(t)
	dispute := env.openDispute(t, contract)

	_, err := env.uc.AddComment(dispute.ID, "client-1", "the report misses module X")
	require.NoError(t, err)
	_, err = env.uc.AddComment(dispute.ID, "auditor-1", "module X was out of scope")
	require.NoError(t, err)

	_, err = env.uc.AddComment(dispute.ID, "stranger", "my two cents")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.uc.AddComment(dispute.ID, "client-1", "")
	require.ErrorIs(t, err, domain.ErrValidation)

	got, err := env.uc.GetDisputeByID(dispute.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	require.Equal(t, "the report misses module X", got.Comments[0].Comment)
}

func TestArbitratorCommentAfterAssignment(t *testing.T) {
	env := newTestEnv(t)
	contract := env.seedContract(t)
	dispute := env.openDispute(t, contract)

	// Not a party, not yet assigned.
	_, err := env.uc.AddComment(dispute.ID, "arbitrator-1", "looking into it")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, env.uc.AssignArbitrator(dispute.ID, "client-1", "arbitrator-1"))

	_, err = env.uc.AddComment(dispute.ID, "arbitrator-1", "looking into it")
	require.NoError(t, err)
}

func TestAssignArbitratorRequiresFlag(t *testing.T) {
	env := newTestEnv(t)
	contract := env.seedContract(t)
	dispute := env.openDispute(t, contract)

	err := env.uc.AssignArbitrator(dispute.ID, "client-1", "client-1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAssignArbitratorRejectsOutsider(t *testing.T) {
	env := newTestEnv(t)
	contract := env.seedContract(t)
	dispute := env.openDispute(t, contract)

	// Neither a party nor an arbitrator.
	err := env.uc.AssignArbitrator(dispute.ID, "stranger", "arbitrator-1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	got, err := env.uc.GetDisputeByID(dispute.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DisputeOpened, got.Status)

	// An arbitrator may pick up a dispute without being a party.
	require.NoError(t, env.uc.AssignArbitrator(dispute.ID, "arbitrator-1", "arbitrator-1"))
}

func TestResolveDispute(t *testing.T) {
	env := newTestEnv(t)
	contract := env.seedContract(t)
	dispute := env.openDispute(t, contract)
	require.NoError(t, env.uc.AssignArbitrator(dispute.ID, "client-1", "arbitrator-1"))

	// Only the assigned arbitrator may resolve.
	err := env.uc.ResolveDispute(dispute.ID, "client-1", "refund everything")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, env.uc.ResolveDispute(dispute.ID, "arbitrator-1", "refund 50 percent"))

	// Resolution happens exactly once; the recorded text stands.
	err = env.uc.ResolveDispute(dispute.ID, "arbitrator-1", "refund nothing")
	require.ErrorIs(t, err, domain.ErrAlreadyResolved)

	got, err := env.uc.GetDisputeByID(dispute.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DisputeResolved, got.Status)
	require.Equal(t, "refund 50 percent", got.Resolution)

	// No further comments after resolution.
	_, err = env.uc.AddComment(dispute.ID, "client-1", "wait")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	require.NoError(t, env.uc.CloseDispute(dispute.ID))
	got, err = env.uc.GetDisputeByID(dispute.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DisputeClosed, got.Status)
}

func TestResolveUnassignedRequiresArbitratorProfile(t *testing.T) {
	env := newTestEnv(t)
	contract := env.seedContract(t)
	dispute := env.openDispute(t, contract)

	err := env.uc.ResolveDispute(dispute.ID, "client-1", "done")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, env.uc.ResolveDispute(dispute.ID, "arbitrator-1", "done"))
}

func TestListDisputes(t *testing.T) {
	env := newTestEnv(t)
	contract := env.seedContract(t)
	env.openDispute(t, contract)

	output, err := env.uc.ListDisputes(&disputedto.ListDisputesInput{ContractID: contract.ID})
	require.NoError(t, err)
	require.Len(t, output.Disputes, 1)
	require.EqualValues(t, 1, output.Pagination.TotalItems)

	output, err = env.uc.ListDisputes(&disputedto.ListDisputesInput{RaisedBy: "nobody"})
	require.NoError(t, err)
	require.Empty(t, output.Disputes)
}
