package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wund3run/arena-escrow-service/internal/delivery/httpapi/middleware"
	"github.com/wund3run/arena-escrow-service/internal/domain"
	contractusecase "github.com/wund3run/arena-escrow-service/internal/usecase/contract"
	contractdto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/contract"
)

type ContractHandler struct {
	uc contractusecase.ContractUsecase
}

func NewContractHandler(uc contractusecase.ContractUsecase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

type createContractRequest struct {
	Title             string                   `json:"title"`
	Description       string                   `json:"description"`
	ClientID          string                   `json:"client_id"`
	AuditorID         string                   `json:"auditor_id"`
	TotalAmount       float64                  `json:"total_amount"`
	Currency          string                   `json:"currency"`
	RequiresMultisig  bool                     `json:"requires_multisig"`
	SettlementAddress string                   `json:"settlement_address"`
	Milestones        []createMilestoneRequest `json:"milestones"`
}

type createMilestoneRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

type contractResponse struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	ClientID          string              `json:"client_id"`
	AuditorID         string              `json:"auditor_id"`
	TotalAmount       float64             `json:"total_amount"`
	Currency          string              `json:"currency"`
	Status            string              `json:"status"`
	RequiresMultisig  bool                `json:"requires_multisig"`
	SettlementAddress string              `json:"settlement_address,omitempty"`
	Milestones        []milestoneResponse `json:"milestones,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type milestoneResponse struct {
	ID               string     `json:"id"`
	EscrowContractID string     `json:"escrow_contract_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Amount           float64    `json:"amount"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	IsCompleted      bool       `json:"is_completed"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toContractResponse(contract *domain.EscrowContract, milestones []*domain.Milestone) contractResponse {
	resp := contractResponse{
		ID:                contract.ID,
		Title:             contract.Title,
		Description:       contract.Description,
		ClientID:          contract.ClientID,
		AuditorID:         contract.AuditorID,
		TotalAmount:       contract.TotalAmount,
		Currency:          contract.Currency,
		Status:            string(contract.Status),
		RequiresMultisig:  contract.RequiresMultisig,
		SettlementAddress: contract.SettlementAddress,
		CreatedAt:         contract.CreatedAt,
		UpdatedAt:         contract.UpdatedAt,
	}
	for _, milestone := range milestones {
		resp.Milestones = append(resp.Milestones, toMilestoneResponse(milestone))
	}
	return resp
}

func toMilestoneResponse(milestone *domain.Milestone) milestoneResponse {
	return milestoneResponse{
		ID:               milestone.ID,
		EscrowContractID: milestone.EscrowContractID,
		Title:            milestone.Title,
		Description:      milestone.Description,
		Amount:           milestone.Amount,
		Deadline:         milestone.Deadline,
		IsCompleted:      milestone.IsCompleted,
		CompletedAt:      milestone.CompletedAt,
		CreatedAt:        milestone.CreatedAt,
	}
}

func (h *ContractHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if !decodeBody(w, r, &req) {
		return
	}
	actor := middleware.ActorID(r.Context())
	if actor != req.ClientID && actor != req.AuditorID {
		writeError(w, fmt.Errorf("%w: contract creator must be a party", domain.ErrUnauthorized))
		return
	}

	input := &contractdto.CreateContractInput{
		Title:             req.Title,
		Description:       req.Description,
		ClientID:          req.ClientID,
		AuditorID:         req.AuditorID,
		TotalAmount:       req.TotalAmount,
		Currency:          req.Currency,
		RequiresMultisig:  req.RequiresMultisig,
		SettlementAddress: req.SettlementAddress,
	}
	for _, m := range req.Milestones {
		input.Milestones = append(input.Milestones, contractdto.MilestoneSpec{
			Title:       m.Title,
			Description: m.Description,
			Amount:      m.Amount,
			Deadline:    m.Deadline,
		})
	}

	output, err := h.uc.CreateContract(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toContractResponse(output.Contract, output.Milestones))
}

func (h *ContractHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	output, err := h.uc.GetContractByID(chi.URLParam(r, "contractID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toContractResponse(output.Contract, output.Milestones))
}

func (h *ContractHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	output, err := h.uc.ListContracts(&contractdto.ListContractsInput{
		ClientID:  query.Get("client_id"),
		AuditorID: query.Get("auditor_id"),
		Status:    query.Get("status"),
		Currency:  query.Get("currency"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	contracts := make([]contractResponse, len(output.Contracts))
	for i, contract := range output.Contracts {
		contracts[i] = toContractResponse(contract, nil)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contracts":  contracts,
		"pagination": output.Pagination,
	})
}

func (h *ContractHandler) CancelContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contractID")
	if err := h.uc.CancelContract(contractID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": contractID, "status": string(domain.EscrowCancelled)})
}

func (h *ContractHandler) ReactivateContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contractID")
	if err := h.uc.ReactivateContract(contractID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": contractID, "status": string(domain.EscrowActive)})
}

func (h *ContractHandler) CompleteContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "contractID")
	if err := h.uc.CompleteContract(contractID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": contractID, "status": string(domain.EscrowCompleted)})
}
