package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wund3run/arena-escrow-service/internal/domain"
)

func TestListMilestonesOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDefaultMilestoneRepository(db)
	contract := seedContract(t, db, domain.EscrowPending, false)

	now := time.Now()
	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		milestone := &domain.Milestone{
			ID:               uuid.NewString(),
			EscrowContractID: contract.ID,
			Title:            title,
			Amount:           100,
			CreatedAt:        now.Add(time.Duration(i) * time.Microsecond),
			UpdatedAt:        now,
		}
		if err := repo.CreateMilestone(milestone); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	milestones, err := repo.ListByContractID(contract.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(milestones) != 3 {
		t.Fatalf("len: got %d, want 3", len(milestones))
	}
	for i, title := range titles {
		if milestones[i].Title != title {
			t.Fatalf("position %d: got %s, want %s", i, milestones[i].Title, title)
		}
	}
}

func TestSetCompletionStampsAndClears(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDefaultMilestoneRepository(db)
	contract := seedContract(t, db, domain.EscrowActive, false)

	now := time.Now()
	milestone := &domain.Milestone{
		ID:               uuid.NewString(),
		EscrowContractID: contract.ID,
		Title:            "Report delivery",
		Amount:           500,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := repo.CreateMilestone(milestone); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.SetCompletion(milestone.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	got, err := repo.GetMilestoneByID(milestone.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsCompleted || got.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp, got %+v", got)
	}

	if err := repo.SetCompletion(milestone.ID, false); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err = repo.GetMilestoneByID(milestone.ID)
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if got.IsCompleted || got.CompletedAt != nil {
		t.Fatalf("expected cleared completion, got %+v", got)
	}
}

func TestSetCompletionUnknownMilestone(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDefaultMilestoneRepository(db)

	err := repo.SetCompletion("missing", true)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
