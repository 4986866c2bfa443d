package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wund3run/arena-escrow-service/internal/delivery/httpapi/middleware"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/models"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/repository"
	"github.com/wund3run/arena-escrow-service/internal/usecase"
	contractusecase "github.com/wund3run/arena-escrow-service/internal/usecase/contract"
	disputeusecase "github.com/wund3run/arena-escrow-service/internal/usecase/dispute"
	transactionusecase "github.com/wund3run/arena-escrow-service/internal/usecase/transaction"
)

const testJWTSecret = "router-test-secret"

func newTestServer(t *testing.T) *httptest.Server {
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
	milestoneRepo := repository.NewDefaultMilestoneRepository(db)
	transactionRepo := repository.NewDefaultTransactionRepository(db)
	disputeRepo := repository.NewDefaultDisputeRepository(db)

	router := NewRouter(
		middleware.NewAuthenticator(testJWTSecret),
		nil,
		NewContractHandler(contractusecase.NewDefaultContractUsecase(contractRepo, milestoneRepo, disputeRepo, nil, nil)),
		NewMilestoneHandler(usecase.NewDefaultMilestoneUsecase(milestoneRepo, contractRepo)),
		NewTransactionHandler(transactionusecase.NewDefaultTransactionUsecase(transactionRepo, contractRepo, milestoneRepo, nil, nil)),
		NewDisputeHandler(disputeusecase.NewDefaultDisputeUsecase(disputeRepo, contractRepo, milestoneRepo, transactionRepo, nil, nil, nil)),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func bearerToken(t *testing.T, subject string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, server *httptest.Server, method, path, actor string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if actor != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken(t, actor))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func createContractPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":        "NFT marketplace audit",
		"client_id":    "client-1",
		"auditor_id":   "auditor-1",
		"total_amount": 2500.0,
		"currency":     "USDT",
		"milestones": []map[string]interface{}{
			{"title": "Scoping", "amount": 500.0},
			{"title": "Full review", "amount": 2000.0},
		},
	}
}

func TestHealthzIsPublic(t *testing.T) {
	server := newTestServer(t)
	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIRequiresToken(t *testing.T) {
	server := newTestServer(t)
	resp, _ := doRequest(t, server, http.MethodGet, "/api/v1/contracts", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestContractLifecycleOverHTTP(t *testing.T) {
	server := newTestServer(t)

	resp, body := doRequest(t, server, http.MethodPost, "/api/v1/contracts", "client-1", createContractPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	contractID, _ := body["id"].(string)
	require.NotEmpty(t, contractID)
	require.Equal(t, "PENDING", body["status"])
	require.Len(t, body["milestones"], 2)

	resp, body = doRequest(t, server, http.MethodGet, "/api/v1/contracts/"+contractID, "client-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, contractID, body["id"])

	resp, body = doRequest(t, server, http.MethodPost, "/api/v1/contracts/"+contractID+"/cancel", "client-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "CANCELLED", body["status"])

	// Terminal contracts reject further transitions with a 409.
	resp, body = doRequest(t, server, http.MethodPost, "/api/v1/contracts/"+contractID+"/cancel", "client-1", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "invalid_transition", body["kind"])
}

func TestCreateContractRequiresPartyActor(t *testing.T) {
	server := newTestServer(t)

	resp, body := doRequest(t, server, http.MethodPost, "/api/v1/contracts", "stranger", createContractPayload())
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "unauthorized", body["kind"])
}

func TestTransactionApprovalOverHTTP(t *testing.T) {
	server := newTestServer(t)

	_, contract := doRequest(t, server, http.MethodPost, "/api/v1/contracts", "client-1", createContractPayload())
	contractID := contract["id"].(string)

	resp, transaction := doRequest(t, server, http.MethodPost, "/api/v1/transactions", "client-1", map[string]interface{}{
		"escrow_contract_id": contractID,
		"recipient_id":       "auditor-1",
		"amount":             2500.0,
		"type":               "DEPOSIT",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	transactionID := transaction["id"].(string)
	require.Equal(t, "PENDING", transaction["status"])

	resp, approved := doRequest(t, server, http.MethodPost, "/api/v1/transactions/"+transactionID+"/approvals", "client-1", map[string]interface{}{
		"signature": "sig-client",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "APPROVED", approved["status"])

	// Approving again is a duplicate once and a transition error after the
	// status already flipped; either way the caller gets a 409.
	resp, body := doRequest(t, server, http.MethodPost, "/api/v1/transactions/"+transactionID+"/approvals", "client-1", map[string]interface{}{
		"signature": "sig-client",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "invalid_transition", body["kind"])

	// The approved deposit activated the contract.
	resp, contract = doRequest(t, server, http.MethodGet, "/api/v1/contracts/"+contractID, "client-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ACTIVE", contract["status"])
}

func TestValidationErrorsMapTo400(t *testing.T) {
	server := newTestServer(t)

	payload := createContractPayload()
	payload["auditor_id"] = "client-1"
	resp, body := doRequest(t, server, http.MethodPost, "/api/v1/contracts", "client-1", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "validation", body["kind"])
}

func TestNotFoundMapsTo404(t *testing.T) {
	server := newTestServer(t)
	resp, body := doRequest(t, server, http.MethodGet, "/api/v1/contracts/"+uuid.NewString(), "client-1", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "not_found", body["kind"])
}

func TestDisputeFlowOverHTTP(t *testing.T) {
	server := newTestServer(t)

	_, contract := doRequest(t, server, http.MethodPost, "/api/v1/contracts", "client-1", createContractPayload())
	contractID := contract["id"].(string)

	resp, dispute := doRequest(t, server, http.MethodPost, "/api/v1/disputes", "client-1", map[string]interface{}{
		"escrow_contract_id": contractID,
		"reason":             "deliverable rejected",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	disputeID := dispute["id"].(string)
	require.Equal(t, "OPENED", dispute["status"])

	resp, contract = doRequest(t, server, http.MethodGet, "/api/v1/contracts/"+contractID, "client-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "DISPUTED", contract["status"])

	resp, _ = doRequest(t, server, http.MethodPost, "/api/v1/disputes/"+disputeID+"/comments", "auditor-1", map[string]interface{}{
		"comment": "scope did not include this",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// An outsider cannot move the dispute into review.
	resp, body := doRequest(t, server, http.MethodPost, "/api/v1/disputes/"+disputeID+"/review", "stranger", map[string]interface{}{
		"arbitrator_id": "arbitrator-1",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "unauthorized", body["kind"])

	resp, _ = doRequest(t, server, http.MethodPost, "/api/v1/disputes/"+disputeID+"/review", "client-1", map[string]interface{}{
		"arbitrator_id": "arbitrator-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, server, http.MethodPost, "/api/v1/disputes/"+disputeID+"/resolution", "arbitrator-1", map[string]interface{}{
		"resolution": "refund the final milestone",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doRequest(t, server, http.MethodPost, "/api/v1/disputes/"+disputeID+"/resolution", "arbitrator-1", map[string]interface{}{
		"resolution": "changed my mind",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "already_resolved", body["kind"])

	// With the dispute settled the contract can be brought back to work.
	resp, contract = doRequest(t, server, http.MethodPost, "/api/v1/contracts/"+contractID+"/reactivate", "client-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ACTIVE", contract["status"])
}
