package ports

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Orders    repository.OrderRepository
	Shipments repository.ShipmentRepository
	Drafts    repository.ShipmentDraftRepository
	Proofs    repository.ProofOfDeliveryRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD. Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
