package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wund3run/arena-escrow-service/internal/delivery/httpapi/middleware"
	"github.com/wund3run/arena-escrow-service/internal/usecase"
	milestonedto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/milestone"
)

type MilestoneHandler struct {
	uc usecase.MilestoneUsecase
}

func NewMilestoneHandler(uc usecase.MilestoneUsecase) *MilestoneHandler {
	return &MilestoneHandler{uc: uc}
}

func (h *MilestoneHandler) ListMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := h.uc.ListMilestones(chi.URLParam(r, "contractID"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]milestoneResponse, len(milestones))
	for i, milestone := range milestones {
		resp[i] = toMilestoneResponse(milestone)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"milestones": resp})
}

type addMilestoneRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

func (h *MilestoneHandler) AddMilestone(w http.ResponseWriter, r *http.Request) {
	var req addMilestoneRequest
	if !decodeBody(w, r, &req) {
		return
	}
	milestone, err := h.uc.AddMilestone(&milestonedto.AddMilestoneInput{
		EscrowContractID: chi.URLParam(r, "contractID"),
		Title:            req.Title,
		Description:      req.Description,
		Amount:           req.Amount,
		Deadline:         req.Deadline,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMilestoneResponse(milestone))
}

type setCompletionRequest struct {
	Completed bool `json:"completed"`
}

func (h *MilestoneHandler) SetCompletion(w http.ResponseWriter, r *http.Request) {
	var req setCompletionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	milestone, err := h.uc.SetMilestoneCompletion(
		chi.URLParam(r, "milestoneID"),
		middleware.ActorID(r.Context()),
		req.Completed,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMilestoneResponse(milestone))
}
