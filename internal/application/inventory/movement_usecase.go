package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
	"github.com/aurora-folheados/aurora-api/internal/domain/repository"
)

// MovementUseCase registra e confirma movimentações do razão de estoque de
// forma transacional, com bloqueio de fila (SELECT FOR UPDATE) e
// Commit/Rollback.
//
// Semântica de duas fases: uma TRANSFER com destino promotora/PDV nasce
// PENDING — a origem é debitada na criação (a remetente não pode alocar duas
// vezes a mesma peça), o destino só é creditado na conferência física.
// ADJUSTMENT, SALE, RETURN e TRANSFER com destino CENTRAL aplicam na hora.
type MovementUseCase struct {
	txRunner    TxRunner
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
}

// NewMovementUseCase constrói o caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:    txRunner,
		movRepo:     movRepo,
		productRepo: productRepo,
	}
}

// MovementInput entrada para registrar uma movimentação.
type MovementInput struct {
	ProductID   string
	Quantity    int64
	Origin      entity.Location
	Destination entity.Location
	Type        string
	Reference   string
	ActorID     string
}

// RegisterMovement valida a entrada, abre a transação, debita a origem
// (com bloqueio de fila e rejeição de saldo insuficiente), credita o destino
// quando a movimentação nasce APPLIED e grava a linha imutável do razão.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		Origin:      input.Origin,
		Destination: input.Destination,
		Type:        input.Type,
		Status:      entity.MovementStatusApplied,
		Reference:   input.Reference,
		CreatedBy:   input.ActorID,
		CreatedAt:   now,
	}
	if input.Type == entity.MovementTypeTRANSFER && input.Destination.RequiresConfirmation() {
		mov.Status = entity.MovementStatusPending
	} else {
		mov.ConfirmedAt = &now
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.ProductRepository,
	) error {
		return applyAndRecord(movRepo, balanceRepo, mov, now)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterInTx grava uma movimentação usando os repositórios do caller
// (mesma transação). Usado pelo fluxo de venda para que cabeçalho, itens e
// baixas de estoque entrem em uma única transação.
func (uc *MovementUseCase) RegisterInTx(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	mov *entity.StockMovement,
	now time.Time,
) error {
	return applyAndRecord(movRepo, balanceRepo, mov, now)
}

// applyAndRecord debita a origem, credita o destino quando APPLIED e insere
// a linha. SALE não mantém saldo, então só as pontas CENTRAL/PROMOTER/PDV
// tocam a tabela de saldos.
func applyAndRecord(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	mov *entity.StockMovement,
	now time.Time,
) error {
	if mov.Origin.HasBalance() {
		origin, err := balanceRepo.GetForUpdate(mov.ProductID, mov.Origin)
		if err != nil {
			return err
		}
		if origin.Quantity < mov.Quantity {
			return domain.ErrInsufficientStock
		}
		origin.Quantity -= mov.Quantity
		origin.UpdatedAt = now
		if err := balanceRepo.Upsert(origin); err != nil {
			return err
		}
	}

	if mov.Status == entity.MovementStatusApplied && mov.Destination.HasBalance() {
		dest, err := balanceRepo.GetForUpdate(mov.ProductID, mov.Destination)
		if err != nil {
			return err
		}
		dest.Quantity += mov.Quantity
		dest.UpdatedAt = now
		if err := balanceRepo.Upsert(dest); err != nil {
			return err
		}
	}

	return movRepo.Create(mov)
}

// Confirm marca como APPLIED exatamente as linhas PENDING dadas e credita o
// saldo do destino na mesma transação. Linhas já aplicadas (ou inexistentes)
// fazem a operação inteira falhar com ErrMovementNotPending. A conferência é
// do destinatário: actor com localização só confirma linhas endereçadas à
// própria localização; actor vazio (depósito) confirma qualquer linha.
func (uc *MovementUseCase) Confirm(ctx context.Context, movementIDs []string, actor entity.Location) ([]*entity.StockMovement, error) {
	if len(movementIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var confirmed []*entity.StockMovement

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.ProductRepository,
	) error {
		rows, err := movRepo.ConfirmPending(movementIDs, now)
		if err != nil {
			return err
		}
		if len(rows) != len(movementIDs) {
			return domain.ErrMovementNotPending
		}
		for _, mov := range rows {
			if actor.Tipo != "" && !mov.Destination.Equal(actor) {
				return domain.ErrForbidden
			}
			dest, err := balanceRepo.GetForUpdate(mov.ProductID, mov.Destination)
			if err != nil {
				return err
			}
			dest.Quantity += mov.Quantity
			dest.UpdatedAt = now
			if err := balanceRepo.Upsert(dest); err != nil {
				return err
			}
		}
		confirmed = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// PendingFor devolve as TRANSFER não confirmadas endereçadas à localização,
// agrupadas por data de criação (ordem de exibição da tela de conferência).
func (uc *MovementUseCase) PendingFor(ctx context.Context, loc entity.Location) (map[string][]*entity.StockMovement, error) {
	if !loc.RequiresConfirmation() {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.movRepo.PendingFor(loc)
	if err != nil {
		return nil, err
	}
	groups := make(map[string][]*entity.StockMovement)
	for _, m := range rows {
		day := m.CreatedAt.Format("2006-01-02")
		groups[day] = append(groups[day], m)
	}
	return groups, nil
}

// Get devolve uma linha do razão. ErrNotFound se não existe.
func (uc *MovementUseCase) Get(ctx context.Context, id string) (*entity.StockMovement, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// History devolve o kardex de um produto: as movimentações mais recentes
// primeiro, paginadas.
func (uc *MovementUseCase) History(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.ListByProduct(productID, limit, offset)
}

// ByReference devolve as movimentações geradas por uma venda ou auditoria
// (baixas de SALE e devoluções de RETURN carregam o id de origem).
func (uc *MovementUseCase) ByReference(ctx context.Context, reference string) ([]*entity.StockMovement, error) {
	if reference == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByReference(reference)
}

// RegisterBatch grava as movimentações de uma auditoria como inserções
// sequenciais independentes: uma falha no meio deixa as anteriores gravadas
// (limitação conhecida do fluxo de auditoria, cada acerto é atômico por si).
func (uc *MovementUseCase) RegisterBatch(ctx context.Context, inputs []MovementInput) (int, error) {
	for i, in := range inputs {
		if _, err := uc.RegisterMovement(ctx, in); err != nil {
			return i, err
		}
	}
	return len(inputs), nil
}

// validateMovement checa quantidade, tipo e a combinação origem/destino.
func validateMovement(input MovementInput) error {
	if input.ProductID == "" || input.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if !input.Origin.Valid() || !input.Destination.Valid() {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeTRANSFER:
		// Transferência move entre localizações com saldo, nunca para si mesma.
		if !input.Origin.HasBalance() || !input.Destination.HasBalance() {
			return domain.ErrInvalidInput
		}
		if input.Origin.Equal(input.Destination) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeSALE:
		if input.Origin.Tipo != entity.LocationPDV || input.Destination.Tipo != entity.LocationSale {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeRETURN:
		if input.Origin.Tipo != entity.LocationSale || !input.Destination.HasBalance() {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		// Ajuste de auditoria: pelo menos uma ponta com saldo.
		if !input.Origin.HasBalance() && !input.Destination.HasBalance() {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}
