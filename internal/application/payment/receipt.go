package payment

import (
	"context"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

// ReceiptService comprobantes PDF de pagos exitosos.
type ReceiptService struct {
	payments repository.PaymentRepository
	renderer ports.ReceiptRenderer
}

func NewReceiptService(payments repository.PaymentRepository, renderer ports.ReceiptRenderer) *ReceiptService {
	return &ReceiptService{payments: payments, renderer: renderer}
}

// Receipt genera el PDF de la transacción si ya fue pagada.
func (s *ReceiptService) Receipt(ctx context.Context, organizationID, transactionID string) ([]byte, error) {
	tx, err := s.payments.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, domain.Internal(err, "load payment")
	}
	if tx == nil || tx.OrganizationID != organizationID {
		return nil, domain.NotFound("transaction %s not found", transactionID)
	}
	if tx.Status != entity.PaymentSuccessful {
		return nil, domain.Conflict("receipt is only available for successful payments")
	}
	pdf, err := s.renderer.RenderReceipt(ctx, tx)
	if err != nil {
		return nil, domain.Internal(err, "render receipt")
	}
	return pdf, nil
}
