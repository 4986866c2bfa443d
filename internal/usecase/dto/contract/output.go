package contractdto

import "github.com/wund3run/arena-escrow-service/internal/domain"

type ContractOutput struct {
	Contract   *domain.EscrowContract
	Milestones []*domain.Milestone
}

type ListContractsOutput struct {
	Contracts  []*domain.EscrowContract
	Pagination Pagination
}

type Pagination struct {
	CurrentPage  int32
	TotalPages   int32
	TotalItems   int32
	ItemsPerPage int32
}
