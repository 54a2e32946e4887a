package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var (
	_ repository.PaymentRepository      = (*PaymentRepo)(nil)
	_ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)
)

// PaymentRepo transacciones indexadas por referencia.
type PaymentRepo struct {
	mu  sync.RWMutex
	txs map[string]entity.PaymentTransaction
}

func NewPaymentRepository() *PaymentRepo {
	return &PaymentRepo{txs: make(map[string]entity.PaymentTransaction)}
}

func (r *PaymentRepo) Create(_ context.Context, tx *entity.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[tx.TransactionID] = cloneTx(*tx)
	return nil
}

func (r *PaymentRepo) GetByTransactionID(_ context.Context, transactionID string) (*entity.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.txs[transactionID]
	if !ok {
		return nil, nil
	}
	out := cloneTx(tx)
	return &out, nil
}

func (r *PaymentRepo) FindPending(_ context.Context, organizationID, kind string) (*entity.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *entity.PaymentTransaction
	for _, tx := range r.txs {
		if tx.OrganizationID != organizationID || tx.Kind != kind || tx.Status != entity.PaymentPending {
			continue
		}
		if found == nil || tx.CreatedAt.After(found.CreatedAt) {
			c := cloneTx(tx)
			found = &c
		}
	}
	return found, nil
}

func (r *PaymentRepo) Update(_ context.Context, tx *entity.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[tx.TransactionID] = cloneTx(*tx)
	return nil
}

func (r *PaymentRepo) ListByOrganization(_ context.Context, organizationID string, limit, offset int) ([]*entity.PaymentTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.PaymentTransaction, 0)
	for _, tx := range r.txs {
		if tx.OrganizationID == organizationID {
			c := cloneTx(tx)
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func cloneTx(tx entity.PaymentTransaction) entity.PaymentTransaction {
	tx.Breakdown.Locations = append([]entity.LocationFee(nil), tx.Breakdown.Locations...)
	return tx
}

// SubscriptionRepo suscripciones activadas.
type SubscriptionRepo struct {
	mu   sync.RWMutex
	subs []entity.OrganizationSubscription
}

func NewSubscriptionRepository() *SubscriptionRepo {
	return &SubscriptionRepo{}
}

func (r *SubscriptionRepo) Create(_ context.Context, sub *entity.OrganizationSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, *sub)
	return nil
}

func (r *SubscriptionRepo) GetByTransactionID(_ context.Context, transactionID string) (*entity.OrganizationSubscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.subs {
		if s.TransactionID == transactionID {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *SubscriptionRepo) GetActive(_ context.Context, organizationID string) (*entity.OrganizationSubscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *entity.OrganizationSubscription
	for _, s := range r.subs {
		if s.OrganizationID != organizationID || s.Status != entity.SubscriptionActive {
			continue
		}
		if found == nil || s.ExpiresAt.After(found.ExpiresAt) {
			c := s
			found = &c
		}
	}
	return found, nil
}

// paginate aplica limit/offset; limit<=0 devuelve todo desde offset.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
