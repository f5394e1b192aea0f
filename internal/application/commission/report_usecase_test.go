package commission_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurora-folheados/aurora-api/internal/application/commission"
	"github.com/aurora-folheados/aurora-api/internal/application/dto"
	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *fakeUserRepo) FindByEmail(string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) ListActivePromoters() ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == entity.RolePromoter && u.Status == "active" {
			out = append(out, u)
		}
	}
	return out, nil
}
func (r *fakeUserRepo) ListDirectReports(superiorID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.SuperiorID == superiorID {
			out = append(out, u)
		}
	}
	return out, nil
}
func (r *fakeUserRepo) ListAssignedPDVs(string) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error                     { r.users[u.ID] = u; return nil }

type fakeAnalyticsRepo struct {
	sales   map[string]repository.PromoterSales
	revenue decimal.Decimal
	units   int64
}

func (r *fakeAnalyticsRepo) GetPromoterSales(context.Context, time.Time, time.Time) (map[string]repository.PromoterSales, error) {
	return r.sales, nil
}
func (r *fakeAnalyticsRepo) GetSalesMetrics(context.Context, time.Time, time.Time) (decimal.Decimal, int64, error) {
	return r.revenue, r.units, nil
}

type authKey struct {
	promoterID  string
	month, year int
}

type fakeCommissionRepo struct {
	auths map[authKey]*entity.CommissionAuthorization
}

func (r *fakeCommissionRepo) UpsertAuthorization(a *entity.CommissionAuthorization) error {
	r.auths[authKey{a.PromoterID, a.Month, a.Year}] = a
	return nil
}
func (r *fakeCommissionRepo) GetAuthorization(promoterID string, month, year int) (*entity.CommissionAuthorization, error) {
	return r.auths[authKey{promoterID, month, year}], nil
}
func (r *fakeCommissionRepo) ListAuthorizations(month, year int) ([]*entity.CommissionAuthorization, error) {
	var out []*entity.CommissionAuthorization
	for k, a := range r.auths {
		if k.month == month && k.year == year {
			out = append(out, a)
		}
	}
	return out, nil
}

func newFixture() (*commission.ReportUseCase, *fakeUserRepo, *fakeAnalyticsRepo, *fakeCommissionRepo) {
	users := &fakeUserRepo{users: make(map[string]*entity.User)}
	analytics := &fakeAnalyticsRepo{sales: make(map[string]repository.PromoterSales)}
	auths := &fakeCommissionRepo{auths: make(map[authKey]*entity.CommissionAuthorization)}
	return commission.NewReportUseCase(users, analytics, auths), users, analytics, auths
}

func addPromoter(r *fakeUserRepo, id, name, tier, superiorID string) {
	r.users[id] = &entity.User{
		ID: id, Name: name, Role: entity.RolePromoter,
		Tier: tier, SuperiorID: superiorID, Status: "active",
	}
}

func entryFor(t *testing.T, rep *dto.CommissionReportResponse, promoterID string) dto.CommissionReportEntry {
	t.Helper()
	for _, e := range rep.Entries {
		if e.PromoterID == promoterID {
			return e
		}
	}
	t.Fatalf("promotora %s ausente do relatório", promoterID)
	return dto.CommissionReportEntry{}
}

// ──────────────────────────────────────────────────────────────────────────────
// ReportFor
// ──────────────────────────────────────────────────────────────────────────────

func TestReportFor_JuniorAbaixoDoGatilhoNaoRecebe(t *testing.T) {
	uc, users, analytics, _ := newFixture()
	addPromoter(users, "ju", "Juliana", entity.TierJunior, "")
	// 2 PDVs → capacidade 144; 40 unidades → giro 0.277..., abaixo de 0.50.
	analytics.sales["ju"] = repository.PromoterSales{
		PromoterID: "ju",
		SalesValue: decimal.NewFromInt(4000),
		UnitsSold:  40,
		PDVCount:   2,
	}

	rep, err := uc.ReportFor(context.Background(), 7, 2026)
	require.NoError(t, err)

	e := entryFor(t, rep, "ju")
	assert.False(t, e.TriggerMet)
	assert.True(t, e.Commission.IsZero(), "gatilho não atingido zera a comissão")
	assert.True(t, e.BaseRate.Equal(decimal.NewFromFloat(0.01)),
		"a taxa continua visível no relatório mesmo sem pagamento")
	assert.Equal(t, entity.CommissionStatusPending, e.PaymentStatus)
}

func TestReportFor_SeniorComGiroAltoSobeParaDoisPorCento(t *testing.T) {
	uc, users, analytics, _ := newFixture()
	addPromoter(users, "se", "Sandra", entity.TierSenior, "")
	// 1 PDV → capacidade 72; 60 unidades → giro 0.833 > 0.75.
	analytics.sales["se"] = repository.PromoterSales{
		PromoterID: "se",
		SalesValue: decimal.NewFromInt(6000),
		UnitsSold:  60,
		PDVCount:   1,
	}

	rep, err := uc.ReportFor(context.Background(), 7, 2026)
	require.NoError(t, err)

	e := entryFor(t, rep, "se")
	assert.True(t, e.BaseRate.Equal(decimal.NewFromFloat(0.02)))
	assert.True(t, e.Commission.Equal(decimal.NewFromInt(120)), "6000 × 2%%")
	assert.True(t, e.TriggerMet, "sênior sempre recebe")
}

func TestReportFor_CoordenadoraSomaOverrideDasDirectas(t *testing.T) {
	uc, users, analytics, _ := newFixture()
	addPromoter(users, "co", "Carla", entity.TierCoordinator, "")
	addPromoter(users, "d1", "Dani", entity.TierJunior, "co")
	addPromoter(users, "d2", "Duda", entity.TierSenior, "co")
	// Carteira própria: 10000 em vendas com giro acima do gatilho.
	analytics.sales["co"] = repository.PromoterSales{
		PromoterID: "co", SalesValue: decimal.NewFromInt(10000), UnitsSold: 60, PDVCount: 1,
	}
	analytics.sales["d1"] = repository.PromoterSales{
		PromoterID: "d1", SalesValue: decimal.NewFromInt(8000), UnitsSold: 30, PDVCount: 1,
	}
	analytics.sales["d2"] = repository.PromoterSales{
		PromoterID: "d2", SalesValue: decimal.NewFromInt(12000), UnitsSold: 50, PDVCount: 1,
	}

	rep, err := uc.ReportFor(context.Background(), 7, 2026)
	require.NoError(t, err)

	e := entryFor(t, rep, "co")
	assert.True(t, e.TeamSales.Equal(decimal.NewFromInt(20000)))
	assert.True(t, e.Commission.Equal(decimal.NewFromInt(100)), "10000 × 1%%")
	assert.True(t, e.Override.Equal(decimal.NewFromInt(100)), "20000 × 0.5%%")
	assert.True(t, e.TotalPayable.Equal(decimal.NewFromInt(200)))
}

func TestReportFor_PromotoraSemVendaApareceZerada(t *testing.T) {
	uc, users, _, _ := newFixture()
	addPromoter(users, "nova", "Nina", "", "")

	rep, err := uc.ReportFor(context.Background(), 7, 2026)
	require.NoError(t, err)

	e := entryFor(t, rep, "nova")
	assert.Equal(t, entity.TierJunior, e.Tier, "cadastro sem nível conta como JUNIOR")
	assert.True(t, e.MonthlySales.IsZero())
	assert.True(t, e.Turnover.IsZero(), "sem PDV atribuído o giro é zero, não divisão por zero")
	assert.True(t, e.TotalPayable.IsZero())
}

func TestReportFor_RefleteAutorizacaoPersistida(t *testing.T) {
	uc, users, analytics, auths := newFixture()
	addPromoter(users, "se", "Sandra", entity.TierSenior, "")
	analytics.sales["se"] = repository.PromoterSales{
		PromoterID: "se", SalesValue: decimal.NewFromInt(6000), UnitsSold: 40, PDVCount: 1,
	}
	paid := decimal.NewFromInt(90)
	require.NoError(t, auths.UpsertAuthorization(&entity.CommissionAuthorization{
		PromoterID: "se", Month: 7, Year: 2026,
		Status: entity.CommissionStatusPaid, PaidAmount: paid,
	}))

	rep, err := uc.ReportFor(context.Background(), 7, 2026)
	require.NoError(t, err)

	e := entryFor(t, rep, "se")
	assert.Equal(t, entity.CommissionStatusPaid, e.PaymentStatus)
	assert.True(t, e.PaidAmount.Equal(paid))
}

func TestReportFor_MesInvalido(t *testing.T) {
	uc, _, _, _ := newFixture()
	_, err := uc.ReportFor(context.Background(), 13, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthorizePayment
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthorizePayment_MarcaPaidIdempotente(t *testing.T) {
	uc, users, _, auths := newFixture()
	addPromoter(users, "se", "Sandra", entity.TierSenior, "")

	req := dto.AuthorizeCommissionRequest{
		PromoterID: "se", Month: 7, Year: 2026, Amount: decimal.NewFromInt(90),
	}
	first, err := uc.AuthorizePayment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, entity.CommissionStatusPaid, first.Status)
	assert.NotNil(t, first.PaidAt)

	// Repetir com valor corrigido atualiza a mesma chave, preservando o id.
	req.Amount = decimal.NewFromInt(95)
	second, err := uc.AuthorizePayment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := auths.GetAuthorization("se", 7, 2026)
	require.NoError(t, err)
	assert.True(t, stored.PaidAmount.Equal(decimal.NewFromInt(95)))
}

func TestAuthorizePayment_Validacoes(t *testing.T) {
	uc, users, _, _ := newFixture()
	users.users["pdv-1"] = &entity.User{ID: "pdv-1", Role: entity.RolePDV, Status: "active"}
	ctx := context.Background()

	_, err := uc.AuthorizePayment(ctx, dto.AuthorizeCommissionRequest{
		PromoterID: "fantasma", Month: 7, Year: 2026, Amount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.AuthorizePayment(ctx, dto.AuthorizeCommissionRequest{
		PromoterID: "pdv-1", Month: 7, Year: 2026, Amount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "só promotora recebe comissão")

	_, err = uc.AuthorizePayment(ctx, dto.AuthorizeCommissionRequest{
		PromoterID: "pdv-1", Month: 7, Year: 2026, Amount: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// NetworkMetrics
// ──────────────────────────────────────────────────────────────────────────────

func TestNetworkMetrics_RetornaAgregadoDoMes(t *testing.T) {
	uc, _, analytics, _ := newFixture()
	analytics.revenue = decimal.NewFromInt(35000)
	analytics.units = 410

	out, err := uc.NetworkMetrics(context.Background(), 7, 2026)
	require.NoError(t, err)
	assert.Equal(t, 7, out.Month)
	assert.True(t, out.Revenue.Equal(decimal.NewFromInt(35000)))
	assert.Equal(t, int64(410), out.UnitsSold)

	_, err = uc.NetworkMetrics(context.Background(), 0, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
