package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/wund3run/arena-escrow-service/internal/delivery/httpapi/middleware"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/metrics"
)

// NewRouter wires the escrow engine's REST surface. Everything under
// /api/v1 requires a bearer token; the subject claim is the acting user
// for all party and arbitrator checks.
func NewRouter(
	auth *middleware.Authenticator,
	escrowMetrics *metrics.EscrowMetrics,
	contractHandler *ContractHandler,
	milestoneHandler *MilestoneHandler,
	transactionHandler *TransactionHandler,
	disputeHandler *DisputeHandler,
) http.Handler {
	r := chi.NewRouter()
	if escrowMetrics != nil {
		r.Use(instrument(escrowMetrics))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(auth.Middleware)

		api.Route("/contracts", func(cr chi.Router) {
			cr.Post("/", contractHandler.CreateContract)
			cr.Get("/", contractHandler.ListContracts)
			cr.Get("/{contractID}", contractHandler.GetContract)
			cr.Post("/{contractID}/cancel", contractHandler.CancelContract)
			cr.Post("/{contractID}/complete", contractHandler.CompleteContract)
			cr.Post("/{contractID}/reactivate", contractHandler.ReactivateContract)
			cr.Get("/{contractID}/milestones", milestoneHandler.ListMilestones)
			cr.Post("/{contractID}/milestones", milestoneHandler.AddMilestone)
			cr.Get("/{contractID}/transactions", transactionHandler.ListContractTransactions)
		})

		api.Post("/milestones/{milestoneID}/completion", milestoneHandler.SetCompletion)

		api.Route("/transactions", func(tr chi.Router) {
			tr.Post("/", transactionHandler.CreateTransaction)
			tr.Get("/{transactionID}", transactionHandler.GetTransaction)
			tr.Post("/{transactionID}/approvals", transactionHandler.ApproveTransaction)
			tr.Post("/{transactionID}/execution", transactionHandler.MarkExecuted)
		})

		api.Route("/disputes", func(dr chi.Router) {
			dr.Post("/", disputeHandler.CreateDispute)
			dr.Get("/", disputeHandler.ListDisputes)
			dr.Get("/{disputeID}", disputeHandler.GetDispute)
			dr.Post("/{disputeID}/comments", disputeHandler.AddComment)
			dr.Post("/{disputeID}/review", disputeHandler.AssignArbitrator)
			dr.Post("/{disputeID}/resolution", disputeHandler.ResolveDispute)
			dr.Post("/{disputeID}/close", disputeHandler.CloseDispute)
		})
	})

	return r
}

// instrument records per-route durations and error counts. The route
// pattern is only known after chi matched it, so the lookup happens after
// the handler ran.
func instrument(escrowMetrics *metrics.EscrowMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			operation := r.Method + " " + chi.RouteContext(r.Context()).RoutePattern()
			escrowMetrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
			if ww.Status() >= http.StatusBadRequest {
				escrowMetrics.OperationErrorsTotal.WithLabelValues(operation, strconv.Itoa(ww.Status())).Inc()
			}
		})
	}
}
