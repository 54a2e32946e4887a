package memory

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/payment"
)

var _ payment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback directamente sobre los repos en memoria.
// No hay rollback: si fn falla a mitad, los cambios previos quedan aplicados.
type TxRunner struct {
	repos payment.Repos
}

func NewTxRunner(repos payment.Repos) *TxRunner {
	return &TxRunner{repos: repos}
}

func (r *TxRunner) RunPayment(_ context.Context, fn func(repos payment.Repos) error) error {
	return fn(r.repos)
}
