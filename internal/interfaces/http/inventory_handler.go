package http

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aurora-folheados/aurora-api/internal/application/dto"
	"github.com/aurora-folheados/aurora-api/internal/application/inventory"
	"github.com/aurora-folheados/aurora-api/internal/domain"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
)

// InventoryHandler trata o razão de estoque: registrar, confirmar e
// consultar movimentações, mais as projeções de saldo.
type InventoryHandler struct {
	movementUC   *inventory.MovementUseCase
	projectionUC *inventory.ProjectionUseCase
}

// NewInventoryHandler constrói o handler.
func NewInventoryHandler(movementUC *inventory.MovementUseCase, projectionUC *inventory.ProjectionUseCase) *InventoryHandler {
	return &InventoryHandler{movementUC: movementUC, projectionUC: projectionUC}
}

// RegisterMovement godoc
// @Summary      Registrar movimentação de estoque
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimentação"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mov, err := h.movementUC.RegisterMovement(c.Context(), movementInput(in, GetUserID(c)))
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// RegisterBatch godoc
// @Summary      Registrar lote de acertos de auditoria
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchMovementRequest  true  "Lote de movimentações"
// @Success      201   {object}  dto.BatchMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/batch [post]
func (h *InventoryHandler) RegisterBatch(c *fiber.Ctx) error {
	var in dto.BatchMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if len(in.Movements) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "movements não pode ser vazio"})
	}
	actorID := GetUserID(c)
	inputs := make([]inventory.MovementInput, 0, len(in.Movements))
	for _, m := range in.Movements {
		inputs = append(inputs, movementInput(m, actorID))
	}
	registered, err := h.movementUC.RegisterBatch(c.Context(), inputs)
	if err != nil {
		// Inserções são sequenciais e independentes: devolve quantas entraram
		// e onde parou, para a auditoria reenviar só o resto.
		return c.Status(fiber.StatusConflict).JSON(dto.BatchMovementResponse{
			Registered: registered,
			FailedAt:   registered,
			Error:      err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchMovementResponse{Registered: registered})
}

// ConfirmMovements godoc
// @Summary      Confirmar recebimento de transferências pendentes
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmMovementsRequest  true  "IDs das movimentações"
// @Success      200   {array}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/confirm [post]
func (h *InventoryHandler) ConfirmMovements(c *fiber.Ctx) error {
	var in dto.ConfirmMovementsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	// A conferência é do destinatário: promotora e PDV só confirmam remessas
	// endereçadas à própria localização; admin confere pelo depósito.
	var actor entity.Location
	switch GetRole(c) {
	case entity.RolePromoter:
		actor = entity.PromoterLoc(GetUserID(c))
	case entity.RolePDV:
		actor = entity.PDVLoc(GetUserID(c))
	}
	confirmed, err := h.movementUC.Confirm(c.Context(), in.MovementIDs, actor)
	if err != nil {
		return movementError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(confirmed))
	for _, mov := range confirmed {
		out = append(out, toMovementResponse(mov))
	}
	return c.JSON(out)
}

// PendingMovements godoc
// @Summary      Listar transferências pendentes de conferência
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        tipo  query  string  true   "PROMOTER ou PDV"
// @Param        id    query  string  true   "ID da localização"
// @Success      200   {array}  dto.PendingGroupDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/pending [get]
func (h *InventoryHandler) PendingMovements(c *fiber.Ctx) error {
	loc := entity.Location{Tipo: c.Query("tipo"), ID: c.Query("id")}
	groups, err := h.movementUC.PendingFor(c.Context(), loc)
	if err != nil {
		return movementError(c, err)
	}

	// Dias mais recentes primeiro, ordem estável para a tela de conferência.
	days := make([]string, 0, len(groups))
	for day := range groups {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	out := make([]dto.PendingGroupDTO, 0, len(days))
	for _, day := range days {
		group := dto.PendingGroupDTO{Date: day}
		for _, mov := range groups[day] {
			group.Movements = append(group.Movements, toMovementResponse(mov))
		}
		out = append(out, group)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Histórico de movimentações (kardex por peça ou por referência)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Kardex da peça"
// @Param        reference   query  string  false  "Movimentações de uma venda/auditoria"
// @Param        limit       query  int     false  "Limite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var (
		rows []*entity.StockMovement
		err  error
	)
	switch {
	case c.Query("product_id") != "":
		rows, err = h.movementUC.History(c.Context(), c.Query("product_id"), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	case c.Query("reference") != "":
		rows, err = h.movementUC.ByReference(c.Context(), c.Query("reference"))
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "informe product_id ou reference"})
	}
	if err != nil {
		return movementError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(rows))
	for _, mov := range rows {
		out = append(out, toMovementResponse(mov))
	}
	return c.JSON(out)
}

// GetMovement godoc
// @Summary      Obter uma movimentação por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da movimentação"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.movementUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimentação não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toMovementResponse(mov))
}

// CentralLevels godoc
// @Summary      Projeção do depósito: saldo central e em campo por peça
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CentralLevelDTO
// @Router       /api/inventory/central [get]
func (h *InventoryHandler) CentralLevels(c *fiber.Ctx) error {
	out, err := h.projectionUC.CentralLevels(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LocationItems godoc
// @Summary      Saldos de uma localização com flag de estoque baixo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        tipo  path  string  true  "CENTRAL, PROMOTER ou PDV"
// @Param        id    path  string  false "ID da localização (vazio para CENTRAL)"
// @Success      200   {array}  dto.LocationItemDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/locations/{tipo}/{id}/items [get]
func (h *InventoryHandler) LocationItems(c *fiber.Ctx) error {
	loc := entity.Location{Tipo: c.Params("tipo"), ID: c.Params("id")}
	out, err := h.projectionUC.ItemsFor(c.Context(), loc)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(out)
}

// movementError mapeia os erros de domínio do razão para status HTTP.
func movementError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "movimentação inválida: cheque tipo, quantidade e pontas"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "peça não encontrada"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "saldo insuficiente na origem"})
	case domain.ErrMovementNotPending:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_PENDING", Message: "alguma movimentação não está pendente"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "movimentação endereçada a outra localização"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func movementInput(in dto.RegisterMovementRequest, actorID string) inventory.MovementInput {
	return inventory.MovementInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Origin:      entity.Location{Tipo: in.Origin.Tipo, ID: in.Origin.ID},
		Destination: entity.Location{Tipo: in.Destination.Tipo, ID: in.Destination.ID},
		Type:        in.Type,
		Reference:   in.Reference,
		ActorID:     actorID,
	}
}

func toMovementResponse(mov *entity.StockMovement) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:          mov.ID,
		ProductID:   mov.ProductID,
		Quantity:    mov.Quantity,
		Origin:      dto.LocationDTO{Tipo: mov.Origin.Tipo, ID: mov.Origin.ID},
		Destination: dto.LocationDTO{Tipo: mov.Destination.Tipo, ID: mov.Destination.ID},
		Type:        mov.Type,
		Status:      mov.Status,
		CreatedAt:   mov.CreatedAt.Format(time.RFC3339),
	}
	if mov.ConfirmedAt != nil {
		out.ConfirmedAt = mov.ConfirmedAt.Format(time.RFC3339)
	}
	return out
}
