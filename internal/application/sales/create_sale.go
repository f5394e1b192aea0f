package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aurora-folheados/aurora-api/internal/application/dto"
	"github.com/aurora-folheados/aurora-api/internal/application/inventory"
	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
	pricing "github.com/aurora-folheados/aurora-api/internal/domain/sales"
)

// SaleUseCase orquestra o checkout do PDV: precificação, resolução de
// cliente, gravação transacional (cabeçalho + itens + baixas de estoque) e,
// após o commit, o handoff ao gateway de pagamento.
type SaleUseCase struct {
	txRunner    SalesTxRunner
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	movementUC  *inventory.MovementUseCase
	gateway     PaymentGateway
	notifier    SaleNotifier
	logger      zerolog.Logger
}

// NewSaleUseCase constrói o caso de uso.
func NewSaleUseCase(
	txRunner SalesTxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementUC *inventory.MovementUseCase,
	gateway PaymentGateway,
	notifier SaleNotifier,
	logger zerolog.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		movementUC:  movementUC,
		gateway:     gateway,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create grava a venda e suas baixas de estoque em uma única transação e, se
// o método exige gateway, cria a cobrança depois do commit. Saldo
// insuficiente em qualquer item desfaz a venda inteira.
func (uc *SaleUseCase) Create(ctx context.Context, req dto.CreateSaleRequest, operatorID string) (*dto.SaleResponse, error) {
	if req.PDVID == "" || len(req.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !pricing.ValidMethod(req.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if req.AppliedCredit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Congela o preço unitário de cada linha: o informado no carrinho ou, na
	// ausência, o preço de catálogo vigente.
	lines := make([]pricing.Line, 0, len(req.Items))
	items := make([]*entity.SaleItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		unitPrice := it.UnitPrice
		if unitPrice.IsZero() {
			product, err := uc.productRepo.GetByID(it.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			unitPrice = product.SalePrice
		}
		lines = append(lines, pricing.Line{Quantity: it.Quantity, UnitPrice: unitPrice})
		items = append(items, &entity.SaleItem{
			ID:        uuid.New().String(),
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: unitPrice,
		})
	}

	totals := pricing.Compute(req.PaymentMethod, lines, req.AppliedCredit)
	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		PDVID:         req.PDVID,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		AppliedCredit: totals.AppliedCredit,
		Total:         totals.Total,
		PaymentMethod: req.PaymentMethod,
		Status:        pricing.InitialStatus(req.PaymentMethod),
		CreatedBy:     operatorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// Total coberto por crédito não tem o que cobrar: liquida na hora.
	if sale.Total.IsZero() {
		sale.Status = entity.SaleStatusCompleted
	}

	var customerName string
	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if req.Customer != nil {
			customer, err := resolveCustomer(customerRepo, req.Customer, req.PDVID, now)
			if err != nil {
				return err
			}
			sale.CustomerID = customer.ID
			customerName = customer.Name
		}

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			item.SaleID = sale.ID
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			mov := &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				Origin:      entity.PDVLoc(req.PDVID),
				Destination: entity.SaleLoc(),
				Type:        entity.MovementTypeSALE,
				Status:      entity.MovementStatusApplied,
				Reference:   sale.ID,
				CreatedBy:   operatorID,
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
		return nil, err
	}

	resp := toSaleResponse(sale, items)
	resp.CustomerName = customerName

	// Handoff ao gateway fora da transação: a venda já está gravada e fica
	// PENDING até o webhook; falha aqui não desfaz o razão.
	if sale.Status == entity.SaleStatusPending && req.PaymentMethod != entity.PaymentMethodCash {
		result, err := uc.gateway.CreatePayment(ctx, PaymentRequest{
			SaleID:      sale.ID,
			Amount:      sale.Total,
			Method:      req.PaymentMethod,
			Description: "Venda Aurora Folheados",
			CardToken:   req.CardToken,
			Payer:       payerFrom(req.Customer),
		})
		if err != nil {
			uc.logger.Error().Err(err).Str("sale_id", sale.ID).
				Str("gateway", uc.gateway.Name()).Msg("falha ao criar cobrança")
			return nil, err
		}
		if err := uc.saleRepo.SetGateway(sale.ID, uc.gateway.Name(), result.GatewayID, result.PixPayload); err != nil {
			return nil, err
		}
		resp.PixPayload = result.PixPayload
		resp.PixQRCode = result.PixQRCode
		if result.Approved {
			// Cartão com captura síncrona: não espera webhook.
			if _, err := uc.saleRepo.UpdateStatus(sale.ID, entity.SaleStatusPending, entity.SaleStatusCompleted); err != nil {
				return nil, err
			}
			resp.Status = entity.SaleStatusCompleted
			uc.notifier.NotifySaleStatus(sale.ID, entity.SaleStatusCompleted)
		}
	}

	return resp, nil
}

// resolveCustomer identifica o cliente na ordem do checkout: WhatsApp,
// depois CPF; se nada casar, cria o cadastro na mesma transação da venda.
func resolveCustomer(
	customerRepo repository.CustomerRepository,
	input *dto.CustomerInput,
	pdvID string,
	now time.Time,
) (*entity.Customer, error) {
	if input.Whatsapp != "" {
		c, err := customerRepo.GetByWhatsapp(input.Whatsapp)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}
	if input.CPF != "" {
		c, err := customerRepo.GetByCPF(input.CPF)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Whatsapp:    input.Whatsapp,
		CPF:         input.CPF,
		OriginPDVID: pdvID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID devolve a venda com seus itens.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	resp := toSaleResponse(sale, items)
	resp.PixPayload = sale.PixPayload
	return resp, nil
}

// ListByPDV devolve as vendas de um PDV, mais recentes primeiro.
func (uc *SaleUseCase) ListByPDV(ctx context.Context, pdvID string, limit, offset int) ([]*dto.SaleResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	sales, err := uc.saleRepo.ListByPDV(pdvID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s, nil))
	}
	return out, nil
}

func payerFrom(input *dto.CustomerInput) PayerInfo {
	if input == nil {
		return PayerInfo{}
	}
	return PayerInfo{Name: input.Name, CPF: input.CPF}
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		PDVID:         sale.PDVID,
		CustomerID:    sale.CustomerID,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		AppliedCredit: sale.AppliedCredit,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		Status:        sale.Status,
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
		Items:         make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return resp
}
