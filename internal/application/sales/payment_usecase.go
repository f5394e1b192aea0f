package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aurora-folheados/aurora-api/internal/application/inventory"
	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

// PaymentUseCase fecha o ciclo de pagamento: processa webhooks do gateway e
// cancela vendas devolvendo o estoque ao PDV.
type PaymentUseCase struct {
	txRunner   SalesTxRunner
	saleRepo   repository.SaleRepository
	movementUC *inventory.MovementUseCase
	gateway    PaymentGateway
	notifier   SaleNotifier
	logger     zerolog.Logger
}

// NewPaymentUseCase constrói o caso de uso.
func NewPaymentUseCase(
	txRunner SalesTxRunner,
	saleRepo repository.SaleRepository,
	movementUC *inventory.MovementUseCase,
	gateway PaymentGateway,
	notifier SaleNotifier,
	logger zerolog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		txRunner:   txRunner,
		saleRepo:   saleRepo,
		movementUC: movementUC,
		gateway:    gateway,
		notifier:   notifier,
		logger:     logger,
	}
}

// HandleWebhook normaliza a notificação e aplica a transição de estado.
// Idempotente: a reentrega do mesmo evento não encontra venda PENDING e vira
// no-op. Pagamento recusado cancela a venda e devolve o estoque.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, body []byte) error {
	event, err := uc.gateway.ParseWebhook(ctx, body)
	if err != nil {
		return err
	}
	if event == nil {
		// Evento que não é de pagamento (ping, atualização de cadastro).
		return nil
	}

	if event.Approved {
		changed, err := uc.saleRepo.UpdateStatus(event.SaleID, entity.SaleStatusPending, entity.SaleStatusCompleted)
		if err != nil {
			return err
		}
		if changed {
			uc.logger.Info().Str("sale_id", event.SaleID).
				Str("gateway", uc.gateway.Name()).Msg("pagamento confirmado")
			uc.notifier.NotifySaleStatus(event.SaleID, entity.SaleStatusCompleted)
		}
		return nil
	}

	// Recusa definitiva: cancela e devolve as peças ao PDV.
	if err := uc.Cancel(ctx, event.SaleID, "gateway"); err != nil {
		// Venda já fora de PENDING (confirmada ou cancelada antes): no-op.
		if err == domain.ErrSaleNotPending {
			return nil
		}
		return err
	}
	return nil
}

// Cancel transiciona a venda para CANCELLED e registra as devoluções
// (RETURN) que recreditam o PDV, tudo em uma transação. Venda COMPLETED em
// dinheiro também pode ser cancelada (estorno manual no balcão); venda já
// cancelada é ErrSaleNotPending.
func (uc *PaymentUseCase) Cancel(ctx context.Context, saleID, actorID string) error {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusCancelled {
		return domain.ErrSaleNotPending
	}

	items, err := uc.saleRepo.GetItems(saleID)
	if err != nil {
		return err
	}

	now := time.Now()
	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.CustomerRepository,
	) error {
		changed, err := saleRepo.UpdateStatus(saleID, sale.Status, entity.SaleStatusCancelled)
		if err != nil {
			return err
		}
		if !changed {
			// Outra transação mudou o estado entre a leitura e aqui.
			return domain.ErrSaleNotPending
		}
		for _, item := range items {
			mov := &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				Origin:      entity.SaleLoc(),
				Destination: entity.PDVLoc(sale.PDVID),
				Type:        entity.MovementTypeRETURN,
				Status:      entity.MovementStatusApplied,
				Reference:   saleID,
				CreatedBy:   actorID,
				CreatedAt:   now,
				ConfirmedAt: &now,
			}
			if err := uc.movementUC.RegisterInTx(movRepo, balanceRepo, mov, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info().Str("sale_id", saleID).Str("actor", actorID).Msg("venda cancelada")
	uc.notifier.NotifySaleStatus(saleID, entity.SaleStatusCancelled)
	return nil
}
