package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wund3run/arena-escrow-service/internal/delivery/httpapi/middleware"
	"github.com/wund3run/arena-escrow-service/internal/domain"
	transactiondto "github.com/wund3run/arena-escrow-service/internal/usecase/dto/transaction"
	transactionusecase "github.com/wund3run/arena-escrow-service/internal/usecase/transaction"
)

type TransactionHandler struct {
	uc transactionusecase.TransactionUsecase
}

func NewTransactionHandler(uc transactionusecase.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

type createTransactionRequest struct {
	EscrowContractID string  `json:"escrow_contract_id"`
	RecipientID      string  `json:"recipient_id,omitempty"`
	Amount           float64 `json:"amount"`
	Type             string  `json:"type"`
	MilestoneID      string  `json:"milestone_id,omitempty"`
	IdempotencyKey   string  `json:"idempotency_key,omitempty"`
}

type approvalResponse struct {
	ID         string    `json:"id"`
	ApproverID string    `json:"approver_id"`
	Signature  string    `json:"signature"`
	ApprovedAt time.Time `json:"approved_at"`
}

type transactionResponse struct {
	ID               string             `json:"id"`
	EscrowContractID string             `json:"escrow_contract_id"`
	SenderID         string             `json:"sender_id"`
	RecipientID      string             `json:"recipient_id,omitempty"`
	Amount           float64            `json:"amount"`
	Type             string             `json:"type"`
	Status           string             `json:"status"`
	MilestoneID      string             `json:"milestone_id,omitempty"`
	SettlementHash   string             `json:"settlement_hash,omitempty"`
	Approvals        []approvalResponse `json:"approvals"`
	CreatedAt        time.Time          `json:"created_at"`
}

func toTransactionResponse(transaction *domain.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:               transaction.ID,
		EscrowContractID: transaction.EscrowContractID,
		SenderID:         transaction.SenderID,
		RecipientID:      transaction.RecipientID,
		Amount:           transaction.Amount,
		Type:             string(transaction.Type),
		Status:           string(transaction.Status),
		MilestoneID:      transaction.MilestoneID,
		SettlementHash:   transaction.SettlementHash,
		Approvals:        []approvalResponse{},
		CreatedAt:        transaction.CreatedAt,
	}
	for _, approval := range transaction.Approvals {
		resp.Approvals = append(resp.Approvals, approvalResponse{
			ID:         approval.ID,
			ApproverID: approval.ApproverID,
			Signature:  approval.Signature,
			ApprovedAt: approval.ApprovedAt,
		})
	}
	return resp
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	transaction, err := h.uc.CreateTransaction(&transactiondto.CreateTransactionInput{
		EscrowContractID: req.EscrowContractID,
		SenderID:         middleware.ActorID(r.Context()),
		RecipientID:      req.RecipientID,
		Amount:           req.Amount,
		Type:             req.Type,
		MilestoneID:      req.MilestoneID,
		IdempotencyKey:   req.IdempotencyKey,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(transaction))
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.uc.GetTransactionByID(chi.URLParam(r, "transactionID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(transaction))
}

func (h *TransactionHandler) ListContractTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.uc.ListContractTransactions(chi.URLParam(r, "contractID"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]transactionResponse, len(transactions))
	for i, transaction := range transactions {
		resp[i] = toTransactionResponse(transaction)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": resp})
}

type approveTransactionRequest struct {
	Signature string `json:"signature"`
}

func (h *TransactionHandler) ApproveTransaction(w http.ResponseWriter, r *http.Request) {
	var req approveTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	transaction, err := h.uc.ApproveTransaction(&transactiondto.ApproveTransactionInput{
		TransactionID: chi.URLParam(r, "transactionID"),
		ApproverID:    middleware.ActorID(r.Context()),
		Signature:     req.Signature,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(transaction))
}

type executeTransactionRequest struct {
	SettlementHash string `json:"settlement_hash"`
}

func (h *TransactionHandler) MarkExecuted(w http.ResponseWriter, r *http.Request) {
	var req executeTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	transactionID := chi.URLParam(r, "transactionID")
	if err := h.uc.MarkTransactionExecuted(transactionID, req.SettlementHash); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": transactionID, "status": string(domain.TransactionExecuted)})
}
