package commission

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aurora-folheados/aurora-api/internal/application/dto"
	"github.com/aurora-folheados/aurora-api/internal/domain"
	commissionrules "github.com/aurora-folheados/aurora-api/internal/domain/commission"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

// ReportUseCase monta o relatório mensal de comissões. Tudo é derivado na
// consulta a partir das vendas COMPLETED do período; só a autorização de
// pagamento (PENDING/PAID) é persistida.
type ReportUseCase struct {
	userRepo       repository.UserRepository
	analyticsRepo  repository.SalesAnalyticsRepository
	commissionRepo repository.CommissionRepository
}

// NewReportUseCase constrói o caso de uso.
func NewReportUseCase(
	userRepo repository.UserRepository,
	analyticsRepo repository.SalesAnalyticsRepository,
	commissionRepo repository.CommissionRepository,
) *ReportUseCase {
	return &ReportUseCase{
		userRepo:       userRepo,
		analyticsRepo:  analyticsRepo,
		commissionRepo: commissionRepo,
	}
}

// ReportFor calcula o relatório do mês civil informado. Promotoras ativas
// sempre aparecem, mesmo sem vendas (linha zerada); coordenadoras ganham o
// agregado de equipe somado das subordinadas diretas.
func (uc *ReportUseCase) ReportFor(ctx context.Context, month, year int) (*dto.CommissionReportResponse, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, domain.ErrInvalidInput
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	promoters, err := uc.userRepo.ListActivePromoters()
	if err != nil {
		return nil, err
	}
	sales, err := uc.analyticsRepo.GetPromoterSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	auths, err := uc.commissionRepo.ListAuthorizations(month, year)
	if err != nil {
		return nil, err
	}
	authByPromoter := make(map[string]*entity.CommissionAuthorization, len(auths))
	for _, a := range auths {
		authByPromoter[a.PromoterID] = a
	}

	entries := make([]dto.CommissionReportEntry, 0, len(promoters))
	for _, p := range promoters {
		agg := sales[p.ID] // zero-value quando não vendeu nada no mês
		tier := p.EffectiveTier()

		// Equipe = vendas somadas das subordinadas diretas (um nível).
		teamSales := decimal.Zero
		if tier == entity.TierCoordinator {
			reports, err := uc.userRepo.ListDirectReports(p.ID)
			if err != nil {
				return nil, err
			}
			for _, sub := range reports {
				teamSales = teamSales.Add(sales[sub.ID].SalesValue)
			}
		}

		turnover := commissionrules.Turnover(agg.UnitsSold, agg.PDVCount)
		own := commissionrules.Commission(tier, agg.SalesValue, turnover)
		override := commissionrules.Override(tier, teamSales)

		entry := dto.CommissionReportEntry{
			PromoterID:    p.ID,
			PromoterName:  p.Name,
			Tier:          tier,
			MonthlySales:  agg.SalesValue,
			TeamSales:     teamSales,
			PDVCount:      agg.PDVCount,
			Turnover:      turnover,
			BaseRate:      commissionrules.RateFor(tier, turnover),
			TriggerMet:    commissionrules.Payable(tier, turnover),
			Commission:    own,
			Override:      override,
			TotalPayable:  own.Add(override),
			PaymentStatus: entity.CommissionStatusPending,
		}
		if a, ok := authByPromoter[p.ID]; ok {
			entry.PaymentStatus = a.Status
			entry.PaidAmount = a.PaidAmount
		}
		entries = append(entries, entry)
	}

	return &dto.CommissionReportResponse{Month: month, Year: year, Entries: entries}, nil
}

// AuthorizePayment marca a comissão da promotora no mês como PAID com o valor
// efetivamente pago. Idempotente: repetir a autorização atualiza a mesma
// linha (chave promotora × mês × ano).
func (uc *ReportUseCase) AuthorizePayment(ctx context.Context, req dto.AuthorizeCommissionRequest) (*dto.CommissionAuthorizationResponse, error) {
	if req.PromoterID == "" || req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		return nil, domain.ErrInvalidInput
	}
	if req.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	promoter, err := uc.userRepo.GetByID(req.PromoterID)
	if err != nil || promoter == nil {
		return nil, domain.ErrUserNotFound
	}
	if promoter.Role != entity.RolePromoter {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	auth := &entity.CommissionAuthorization{
		ID:         uuid.New().String(),
		PromoterID: req.PromoterID,
		Month:      req.Month,
		Year:       req.Year,
		Status:     entity.CommissionStatusPaid,
		PaidAmount: req.Amount,
		PaidAt:     &now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	// Reautorização atualiza a linha existente: preserva id e created_at
	// originais (o upsert no banco não os troca).
	existing, err := uc.commissionRepo.GetAuthorization(req.PromoterID, req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		auth.ID = existing.ID
		auth.CreatedAt = existing.CreatedAt
	}
	if err := uc.commissionRepo.UpsertAuthorization(auth); err != nil {
		return nil, err
	}
	return &dto.CommissionAuthorizationResponse{
		ID:         auth.ID,
		PromoterID: auth.PromoterID,
		Month:      auth.Month,
		Year:       auth.Year,
		Status:     auth.Status,
		PaidAmount: auth.PaidAmount,
		PaidAt:     auth.PaidAt,
	}, nil
}

// NetworkMetrics devolve receita bruta e unidades vendidas da rede no mês
// civil (painel do financeiro). Período sem vendas devolve zeros.
func (uc *ReportUseCase) NetworkMetrics(ctx context.Context, month, year int) (*dto.NetworkMetricsResponse, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, domain.ErrInvalidInput
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	revenue, units, err := uc.analyticsRepo.GetSalesMetrics(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &dto.NetworkMetricsResponse{
		Month:     month,
		Year:      year,
		Revenue:   revenue,
		UnitsSold: units,
	}, nil
}
