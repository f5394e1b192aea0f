package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurora-folheados/aurora-api/internal/application/dto"
	"github.com/aurora-folheados/aurora-api/internal/application/inventory"
	"github.com/aurora-folheados/aurora-api/internal/application/sales"
	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória — o tx runner tira snapshot e restaura em caso de erro,
// emulando o rollback da transação real.
// ──────────────────────────────────────────────────────────────────────────────

type balanceKey struct {
	productID string
	tipo      string
	locID     string
}

type saleStore struct {
	sales     map[string]*entity.Sale
	saleItems map[string][]*entity.SaleItem
	movements map[string]*entity.StockMovement
	balances  map[balanceKey]int64
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
}

func newSaleStore() *saleStore {
	return &saleStore{
		sales:     make(map[string]*entity.Sale),
		saleItems: make(map[string][]*entity.SaleItem),
		movements: make(map[string]*entity.StockMovement),
		balances:  make(map[balanceKey]int64),
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
	}
}

func (s *saleStore) snapshot() *saleStore {
	cp := newSaleStore()
	for k, v := range s.sales {
		sale := *v
		cp.sales[k] = &sale
	}
	for k, v := range s.saleItems {
		cp.saleItems[k] = append([]*entity.SaleItem(nil), v...)
	}
	for k, v := range s.movements {
		mov := *v
		cp.movements[k] = &mov
	}
	for k, v := range s.balances {
		cp.balances[k] = v
	}
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.customers {
		cp.customers[k] = v
	}
	return cp
}

func (s *saleStore) restore(snap *saleStore) {
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.movements = snap.movements
	s.balances = snap.balances
	s.products = snap.products
	s.customers = snap.customers
}

func (s *saleStore) setBalance(productID string, loc entity.Location, qty int64) {
	s.balances[balanceKey{productID, loc.Tipo, loc.ID}] = qty
}

func (s *saleStore) balance(productID string, loc entity.Location) int64 {
	return s.balances[balanceKey{productID, loc.Tipo, loc.ID}]
}

type fakeSaleRepo struct{ s *saleStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.s.saleItems[item.SaleID] = append(r.s.saleItems[item.SaleID], &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *fakeSaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	return r.s.saleItems[saleID], nil
}

func (r *fakeSaleRepo) ListByPDV(pdvID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if s.PDVID == pdvID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) UpdateStatus(id, fromStatus, toStatus string) (bool, error) {
	sale, ok := r.s.sales[id]
	if !ok || sale.Status != fromStatus {
		return false, nil
	}
	sale.Status = toStatus
	return true, nil
}

func (r *fakeSaleRepo) SetGateway(id, gateway, gatewayID, pixPayload string) error {
	sale, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Gateway = gateway
	sale.GatewayID = gatewayID
	sale.PixPayload = pixPayload
	return nil
}

type fakeMovementRepo struct{ s *saleStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movements[m.ID] = m
	return nil
}
func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	return r.s.movements[id], nil
}
func (r *fakeMovementRepo) ConfirmPending([]string, time.Time) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) PendingFor(entity.Location) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) ListByProduct(string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) ListByReference(ref string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.Reference == ref {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeBalanceRepo struct{ s *saleStore }

func (r *fakeBalanceRepo) Get(productID string, loc entity.Location) (*entity.StockBalance, error) {
	return &entity.StockBalance{
		ProductID: productID, LocationTipo: loc.Tipo, LocationID: loc.ID,
		Quantity: r.s.balance(productID, loc),
	}, nil
}
func (r *fakeBalanceRepo) GetForUpdate(productID string, loc entity.Location) (*entity.StockBalance, error) {
	return r.Get(productID, loc)
}
func (r *fakeBalanceRepo) Upsert(b *entity.StockBalance) error {
	r.s.balances[balanceKey{b.ProductID, b.LocationTipo, b.LocationID}] = b.Quantity
	return nil
}
func (r *fakeBalanceRepo) CentralLevels() ([]repository.CentralLevel, error) { return nil, nil }
func (r *fakeBalanceRepo) ItemsFor(entity.Location) ([]repository.LocationItem, error) {
	return nil, nil
}

type fakeCustomerRepo struct{ s *saleStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.s.customers[c.ID] = c
	return nil
}
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.s.customers[id], nil
}
func (r *fakeCustomerRepo) GetByWhatsapp(whatsapp string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if whatsapp != "" && c.Whatsapp == whatsapp {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) GetByCPF(cpf string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if cpf != "" && c.CPF == cpf {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) List(int, int) ([]*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.s.customers[c.ID] = c
	return nil
}

type fakeProductRepo struct{ s *saleStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) List(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) UpdatePrices(string, decimal.Decimal, decimal.Decimal) error { return nil }
func (r *fakeProductRepo) Update(*entity.Product) error                                { return nil }
func (r *fakeProductRepo) Delete(string) error                                         { return nil }

type fakeSalesTxRunner struct{ s *saleStore }

func (t *fakeSalesTxRunner) RunSale(_ context.Context, fn func(
	repository.SaleRepository,
	repository.MovementRepository,
	repository.BalanceRepository,
	repository.CustomerRepository,
) error) error {
	snap := t.s.snapshot()
	err := fn(&fakeSaleRepo{t.s}, &fakeMovementRepo{t.s}, &fakeBalanceRepo{t.s}, &fakeCustomerRepo{t.s})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

type fakeGateway struct {
	name     string
	result   *sales.PaymentResult
	err      error
	requests []sales.PaymentRequest
	event    *sales.WebhookEvent
}

func (g *fakeGateway) Name() string { return g.name }
func (g *fakeGateway) CreatePayment(_ context.Context, req sales.PaymentRequest) (*sales.PaymentResult, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}
func (g *fakeGateway) ParseWebhook(context.Context, []byte) (*sales.WebhookEvent, error) {
	return g.event, nil
}

type fakeNotifier struct {
	pushes []dto.SaleStatusDTO
}

func (n *fakeNotifier) NotifySaleStatus(saleID, status string) {
	n.pushes = append(n.pushes, dto.SaleStatusDTO{ID: saleID, Status: status})
}

type fixture struct {
	store    *saleStore
	uc       *sales.SaleUseCase
	payUC    *sales.PaymentUseCase
	gateway  *fakeGateway
	notifier *fakeNotifier
}

func newFixture(gw *fakeGateway) *fixture {
	store := newSaleStore()
	notifier := &fakeNotifier{}
	tx := &fakeSalesTxRunner{store}
	movUC := inventory.NewMovementUseCase(nil, &fakeMovementRepo{store}, &fakeProductRepo{store})
	saleRepo := &fakeSaleRepo{store}
	logger := zerolog.Nop()
	return &fixture{
		store:    store,
		uc:       sales.NewSaleUseCase(tx, saleRepo, &fakeProductRepo{store}, movUC, gw, notifier, logger),
		payUC:    sales.NewPaymentUseCase(tx, saleRepo, movUC, gw, notifier, logger),
		gateway:  gw,
		notifier: notifier,
	}
}

func seedCatalog(s *saleStore) {
	s.products["anel"] = &entity.Product{
		ID: "anel", SKU: "AF-010", Name: "Anel folheado",
		SalePrice: decimal.NewFromInt(50),
	}
	s.products["colar"] = &entity.Product{
		ID: "colar", SKU: "AF-020", Name: "Colar folheado",
		SalePrice: decimal.NewFromInt(100),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DinheiroLiquidaNaHoraComDesconto(t *testing.T) {
	fx := newFixture(&fakeGateway{name: "mercadopago"})
	seedCatalog(fx.store)
	pdv := entity.PDVLoc("pdv-1")
	fx.store.setBalance("anel", pdv, 10)
	fx.store.setBalance("colar", pdv, 10)

	resp, err := fx.uc.Create(context.Background(), dto.CreateSaleRequest{
		PDVID: "pdv-1",
		Items: []dto.SaleItemRequest{
			{ProductID: "anel", Quantity: 2},  // catálogo: 50
			{ProductID: "colar", Quantity: 1}, // catálogo: 100
		},
		PaymentMethod: entity.PaymentMethodCash,
	}, "op-1")
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCompleted, resp.Status, "dinheiro não espera webhook")
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, resp.Discount.Equal(decimal.NewFromInt(20)), "10%% à vista")
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(180)))

	assert.EqualValues(t, 8, fx.store.balance("anel", pdv), "baixa na mesma transação")
	assert.EqualValues(t, 9, fx.store.balance("colar", pdv))
	assert.Empty(t, fx.gateway.requests, "dinheiro não passa pelo gateway")
}

func TestCreate_PixFicaPendenteComCobrancaNoGateway(t *testing.T) {
	gw := &fakeGateway{
		name: "asaas",
		result: &sales.PaymentResult{
			GatewayID:  "pay_123",
			PixPayload: "00020126...",
			PixQRCode:  "iVBORw0KGgo=",
		},
	}
	fx := newFixture(gw)
	seedCatalog(fx.store)
	fx.store.setBalance("anel", entity.PDVLoc("pdv-1"), 5)

	resp, err := fx.uc.Create(context.Background(), dto.CreateSaleRequest{
		PDVID:         "pdv-1",
		Items:         []dto.SaleItemRequest{{ProductID: "anel", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodPIX,
	}, "op-1")
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusPending, resp.Status)
	assert.Equal(t, "00020126...", resp.PixPayload)
	assert.Equal(t, "iVBORw0KGgo=", resp.PixQRCode)

	require.Len(t, gw.requests, 1)
	assert.Equal(t, resp.ID, gw.requests[0].SaleID, "referência externa fecha o ciclo do webhook")
	assert.True(t, gw.requests[0].Amount.Equal(decimal.NewFromInt(45)), "cobra o total com desconto")

	stored := fx.store.sales[resp.ID]
	assert.Equal(t, "asaas", stored.Gateway)
	assert.Equal(t, "pay_123", stored.GatewayID)
}

func TestCreate_CartaoAprovadoNaHoraCompleta(t *testing.T) {
	gw := &fakeGateway{
		name:   "mercadopago",
		result: &sales.PaymentResult{GatewayID: "pay_9", Approved: true},
	}
	fx := newFixture(gw)
	seedCatalog(fx.store)
	fx.store.setBalance("anel", entity.PDVLoc("pdv-1"), 5)

	resp, err := fx.uc.Create(context.Background(), dto.CreateSaleRequest{
		PDVID:         "pdv-1",
		Items:         []dto.SaleItemRequest{{ProductID: "anel", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCard,
		CardToken:     "tok_abc",
	}, "op-1")
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCompleted, resp.Status, "captura síncrona não espera webhook")
	assert.Equal(t, "tok_abc", gw.requests[0].CardToken)
	require.Len(t, fx.notifier.pushes, 1)
	assert.Equal(t, entity.SaleStatusCompleted, fx.notifier.pushes[0].Status)
}

func TestCreate_SaldoInsuficienteDesfazTudo(t *testing.T) {
	fx := newFixture(&fakeGateway{name: "mercadopago"})
	seedCatalog(fx.store)
	pdv := entity.PDVLoc("pdv-1")
	fx.store.setBalance("anel", pdv, 10)
	fx.store.setBalance("colar", pdv, 0) // segunda linha estoura

	_, err := fx.uc.Create(context.Background(), dto.CreateSaleRequest{
		PDVID: "pdv-1",
		Items: []dto.SaleItemRequest{
			{ProductID: "anel", Quantity: 2},
			{ProductID: "colar", Quantity: 1},
		},
		PaymentMethod: entity.PaymentMethodCash,
	}, "op-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.EqualValues(t, 10, fx.store.balance("anel", pdv),
		"a primeira linha também volta: venda é tudo ou nada")
	assert.Empty(t, fx.store.sales, "nenhum cabeçalho gravado")
	assert.Empty(t, fx.store.movements, "nenhuma movimentação gravada")
}

func TestCreate_CreditoCobreTotalLiquidaSemGateway(t *testing.T) {
	fx := newFixture(&fakeGateway{name: "mercadopago"})
	seedCatalog(fx.store)
	fx.store.setBalance("anel", entity.PDVLoc("pdv-1"), 5)

	resp, err := fx.uc.Create(context.Background(), dto.CreateSaleRequest{
		PDVID:         "pdv-1",
		Items:         []dto.SaleItemRequest{{ProductID: "anel", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodPIX,
		AppliedCredit: decimal.NewFromInt(500), // maior que o devido
	}, "op-1")
	require.NoError(t, err)

	assert.True(t, resp.Total.IsZero(), "crédito acima do devido tem piso em zero")
	assert.Equal(t, entity.SaleStatusCompleted, resp.Status, "nada a cobrar")
	assert.Empty(t, fx.gateway.requests)
}

func TestCreate_FalhaNoGatewayMantemVendaPendente(t *testing.T) {
	gw := &fakeGateway{name: "mercadopago", err: errors.New("timeout")}
	fx := newFixture(gw)
	seedCatalog(fx.store)
	pdv := entity.PDVLoc("pdv-1")
	fx.store.setBalance("anel", pdv, 5)

	_, err := fx.uc.Create(context.Background(), dto.CreateSaleRequest{
		PDVID:         "pdv-1",
		Items:         []dto.SaleItemRequest{{ProductID: "anel", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodPIX,
	}, "op-1")
	require.Error(t, err)

	// A venda e a baixa de estoque já estavam commitadas antes do handoff;
	// ela fica PENDING para cancelamento ou nova tentativa de cobrança.
	require.Len(t, fx.store.sales, 1)
	for _, sale := range fx.store.sales {
		assert.Equal(t, entity.SaleStatusPending, sale.Status)
	}
	assert.EqualValues(t, 4, fx.store.balance("anel", pdv))
}

func TestCreate_ResolucaoDeClientePorWhatsappDepoisCPF(t *testing.T) {
	fx := newFixture(&fakeGateway{name: "mercadopago"})
	seedCatalog(fx.store)
	fx.store.setBalance("anel", entity.PDVLoc("pdv-1"), 50)
	existing := &entity.Customer{ID: "cli-1", Name: "Marina", Whatsapp: "5511999990000", CPF: "11122233344"}
	fx.store.customers[existing.ID] = existing

	mk := func(c *dto.CustomerInput) *dto.SaleResponse {
		resp, err := fx.uc.Create(context.Background(), dto.CreateSaleRequest{
			PDVID:         "pdv-1",
			Items:         []dto.SaleItemRequest{{ProductID: "anel", Quantity: 1}},
			PaymentMethod: entity.PaymentMethodCash,
			Customer:      c,
		}, "op-1")
		require.NoError(t, err)
		return resp
	}

	// WhatsApp casa primeiro, mesmo com CPF divergente no pedido.
	resp := mk(&dto.CustomerInput{Whatsapp: "5511999990000", CPF: "99999999999"})
	assert.Equal(t, "cli-1", resp.CustomerID)

	// Sem WhatsApp, cai para o CPF.
	resp = mk(&dto.CustomerInput{CPF: "11122233344"})
	assert.Equal(t, "cli-1", resp.CustomerID)

	// Nada casa: cria o cadastro com o PDV de origem.
	resp = mk(&dto.CustomerInput{Name: "Otávio", Whatsapp: "5511888880000"})
	require.NotEmpty(t, resp.CustomerID)
	assert.NotEqual(t, "cli-1", resp.CustomerID)
	created := fx.store.customers[resp.CustomerID]
	require.NotNil(t, created)
	assert.Equal(t, "pdv-1", created.OriginPDVID)
	assert.Len(t, fx.store.customers, 2, "cliente existente não é duplicado")
}

func TestCreate_Validacoes(t *testing.T) {
	fx := newFixture(&fakeGateway{name: "mercadopago"})
	ctx := context.Background()

	_, err := fx.uc.Create(ctx, dto.CreateSaleRequest{PDVID: "", PaymentMethod: entity.PaymentMethodCash}, "op")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.Create(ctx, dto.CreateSaleRequest{
		PDVID:         "pdv-1",
		Items:         []dto.SaleItemRequest{{ProductID: "anel", Quantity: 1}},
		PaymentMethod: "BOLETO",
	}, "op")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.Create(ctx, dto.CreateSaleRequest{
		PDVID:         "pdv-1",
		Items:         []dto.SaleItemRequest{{ProductID: "anel", Quantity: 0}},
		PaymentMethod: entity.PaymentMethodCash,
	}, "op")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Webhook e cancelamento
// ──────────────────────────────────────────────────────────────────────────────

func pendingSale(t *testing.T, fx *fixture) *dto.SaleResponse {
	t.Helper()
	fx.gateway.result = &sales.PaymentResult{GatewayID: "pay_1", PixPayload: "0002..."}
	resp, err := fx.uc.Create(context.Background(), dto.CreateSaleRequest{
		PDVID:         "pdv-1",
		Items:         []dto.SaleItemRequest{{ProductID: "anel", Quantity: 2}},
		PaymentMethod: entity.PaymentMethodPIX,
	}, "op-1")
	require.NoError(t, err)
	require.Equal(t, entity.SaleStatusPending, resp.Status)
	return resp
}

func TestHandleWebhook_AprovadoCompletaUmaVezSo(t *testing.T) {
	fx := newFixture(&fakeGateway{name: "asaas"})
	seedCatalog(fx.store)
	fx.store.setBalance("anel", entity.PDVLoc("pdv-1"), 10)
	resp := pendingSale(t, fx)

	fx.gateway.event = &sales.WebhookEvent{SaleID: resp.ID, Approved: true}
	require.NoError(t, fx.payUC.HandleWebhook(context.Background(), []byte(`{}`)))
	assert.Equal(t, entity.SaleStatusCompleted, fx.store.sales[resp.ID].Status)
	require.Len(t, fx.notifier.pushes, 1)

	// Reentrega do mesmo evento: nada muda, ninguém é notificado de novo.
	require.NoError(t, fx.payUC.HandleWebhook(context.Background(), []byte(`{}`)))
	assert.Len(t, fx.notifier.pushes, 1, "webhook idempotente")
}

func TestHandleWebhook_RecusadoCancelaEDevolveEstoque(t *testing.T) {
	fx := newFixture(&fakeGateway{name: "asaas"})
	seedCatalog(fx.store)
	pdv := entity.PDVLoc("pdv-1")
	fx.store.setBalance("anel", pdv, 10)
	resp := pendingSale(t, fx)
	require.EqualValues(t, 8, fx.store.balance("anel", pdv))

	fx.gateway.event = &sales.WebhookEvent{SaleID: resp.ID, Approved: false}
	require.NoError(t, fx.payUC.HandleWebhook(context.Background(), []byte(`{}`)))

	assert.Equal(t, entity.SaleStatusCancelled, fx.store.sales[resp.ID].Status)
	assert.EqualValues(t, 10, fx.store.balance("anel", pdv),
		"RETURN recredita o PDV pela quantidade vendida")

	// Reentrega: venda já cancelada, no-op sem erro.
	require.NoError(t, fx.payUC.HandleWebhook(context.Background(), []byte(`{}`)))
	assert.EqualValues(t, 10, fx.store.balance("anel", pdv), "devolução não é duplicada")
}

func TestHandleWebhook_EventoNaoPagamentoIgnorado(t *testing.T) {
	fx := newFixture(&fakeGateway{name: "asaas"}) // event nil
	assert.NoError(t, fx.payUC.HandleWebhook(context.Background(), []byte(`{"type":"ping"}`)))
	assert.Empty(t, fx.notifier.pushes)
}

func TestCancel_VendaConcluidaDevolveEstoque(t *testing.T) {
	fx := newFixture(&fakeGateway{name: "mercadopago"})
	seedCatalog(fx.store)
	pdv := entity.PDVLoc("pdv-1")
	fx.store.setBalance("anel", pdv, 10)

	resp, err := fx.uc.Create(context.Background(), dto.CreateSaleRequest{
		PDVID:         "pdv-1",
		Items:         []dto.SaleItemRequest{{ProductID: "anel", Quantity: 3}},
		PaymentMethod: entity.PaymentMethodCash,
	}, "op-1")
	require.NoError(t, err)
	require.EqualValues(t, 7, fx.store.balance("anel", pdv))

	require.NoError(t, fx.payUC.Cancel(context.Background(), resp.ID, "admin-1"))
	assert.Equal(t, entity.SaleStatusCancelled, fx.store.sales[resp.ID].Status)
	assert.EqualValues(t, 10, fx.store.balance("anel", pdv))

	err = fx.payUC.Cancel(context.Background(), resp.ID, "admin-1")
	assert.ErrorIs(t, err, domain.ErrSaleNotPending, "cancelar duas vezes é rejeitado")
	assert.EqualValues(t, 10, fx.store.balance("anel", pdv))
}

func TestCancel_VendaInexistente(t *testing.T) {
	fx := newFixture(&fakeGateway{name: "mercadopago"})
	err := fx.payUC.Cancel(context.Background(), "nao-existe", "admin-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
