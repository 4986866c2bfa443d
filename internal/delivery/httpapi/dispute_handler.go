package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wund3run/arena-escrow-service/internal/delivery/httpapi/middleware"
	"github.com/wund3run/arena-escrow-service/internal/domain"
	disputeusecase "github.com/wund3run/arena-escrow-service/internal/usecase/dispute"
	disputedto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/dispute"
)

type DisputeHandler struct {
	uc disputeusecase.DisputeUsecase
}

func NewDisputeHandler(uc disputeusecase.DisputeUsecase) *DisputeHandler {
	return &DisputeHandler{uc: uc}
}

type createDisputeRequest struct {
	EscrowContractID string `json:"escrow_contract_id"`
	MilestoneID      string `json:"milestone_id,omitempty"`
	TransactionID    string `json:"transaction_id,omitempty"`
	Reason           string `json:"reason"`
	Evidence         string `json:"evidence,omitempty"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type disputeResponse struct {
	ID               string            `json:"id"`
	EscrowContractID string            `json:"escrow_contract_id"`
	MilestoneID      string            `json:"milestone_id,omitempty"`
	TransactionID    string            `json:"transaction_id,omitempty"`
	RaisedBy         string            `json:"raised_by"`
	ArbitratorID     string            `json:"arbitrator_id,omitempty"`
	Status           string            `json:"status"`
	Reason           string            `json:"reason"`
	Evidence         string            `json:"evidence,omitempty"`
	Resolution       string            `json:"resolution,omitempty"`
	Comments         []commentResponse `json:"comments,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func toDisputeResponse(dispute *domain.Dispute) disputeResponse {
	resp := disputeResponse{
		ID:               dispute.ID,
		EscrowContractID: dispute.EscrowContractID,
		MilestoneID:      dispute.MilestoneID,
		TransactionID:    dispute.TransactionID,
		RaisedBy:         dispute.RaisedBy,
		ArbitratorID:     dispute.ArbitratorID,
		Status:           string(dispute.Status),
		Reason:           dispute.Reason,
		Evidence:         dispute.Evidence,
		Resolution:       dispute.Resolution,
		CreatedAt:        dispute.CreatedAt,
		UpdatedAt:        dispute.UpdatedAt,
	}
	for _, comment := range dispute.Comments {
		resp.Comments = append(resp.Comments, commentResponse{
			ID:        comment.ID,
			UserID:    comment.UserID,
			Comment:   comment.Comment,
			CreatedAt: comment.CreatedAt,
		})
	}
	return resp
}

func (h *DisputeHandler) CreateDispute(w http.ResponseWriter, r *http.Request) {
	var req createDisputeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	dispute, err := h.uc.CreateDispute(&disputedto.CreateDisputeInput{
		EscrowContractID: req.EscrowContractID,
		MilestoneID:      req.MilestoneID,
		TransactionID:    req.TransactionID,
		RaisedBy:         middleware.ActorID(r.Context()),
		Reason:           req.Reason,
		Evidence:         req.Evidence,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDisputeResponse(dispute))
}

func (h *DisputeHandler) GetDispute(w http.ResponseWriter, r *http.Request) {
	dispute, err := h.uc.GetDisputeByID(chi.URLParam(r, "disputeID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDisputeResponse(dispute))
}

func (h *DisputeHandler) ListDisputes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	output, err := h.uc.ListDisputes(&disputedto.ListDisputesInput{
		ContractID:   query.Get("contract_id"),
		RaisedBy:     query.Get("raised_by"),
		ArbitratorID: query.Get("arbitrator_id"),
		Status:       query.Get("status"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	disputes := make([]disputeResponse, len(output.Disputes))
	for i, dispute := range output.Disputes {
		disputes[i] = toDisputeResponse(dispute)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"disputes":   disputes,
		"pagination": output.Pagination,
	})
}

type addCommentRequest struct {
	Comment string `json:"comment"`
}

func (h *DisputeHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	comment, err := h.uc.AddComment(
		chi.URLParam(r, "disputeID"),
		middleware.ActorID(r.Context()),
		req.Comment,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, commentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
	})
}

type assignArbitratorRequest struct {
	ArbitratorID string `json:"arbitrator_id"`
}

func (h *DisputeHandler) AssignArbitrator(w http.ResponseWriter, r *http.Request) {
	var req assignArbitratorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	disputeID := chi.URLParam(r, "disputeID")
	if err := h.uc.AssignArbitrator(disputeID, middleware.ActorID(r.Context()), req.ArbitratorID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": disputeID, "status": string(domain.DisputeInReview)})
}

type resolveDisputeRequest struct {
	Resolution string `json:"resolution"`
}

func (h *DisputeHandler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	var req resolveDisputeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	disputeID := chi.URLParam(r, "disputeID")
	if err := h.uc.ResolveDispute(disputeID, middleware.ActorID(r.Context()), req.Resolution); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": disputeID, "status": string(domain.DisputeResolved)})
}

func (h *DisputeHandler) CloseDispute(w http.ResponseWriter, r *http.Request) {
	disputeID := chi.URLParam(r, "disputeID")
	if err := h.uc.CloseDispute(disputeID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": disputeID, "status": string(domain.DisputeClosed)})
}
