package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aurora-folheados/aurora-api/internal/application/commission"
	"github.com/aurora-folheados/aurora-api/internal/application/dto"
	"github.com/aurora-folheados/aurora-api/internal/domain"
)

// CommissionHandler relatório mensal de comissões e autorização de
// pagamento (rotas de admin).
type CommissionHandler struct {
	uc *commission.ReportUseCase
}

// NewCommissionHandler constrói o handler.
func NewCommissionHandler(uc *commission.ReportUseCase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

// Report godoc
// @Summary      Relatório mensal de comissões
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  true  "Mês (1-12)"
// @Param        year   query  int  true  "Ano"
// @Success      200    {object}  dto.CommissionReportResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/commissions/report [get]
func (h *CommissionHandler) Report(c *fiber.Ctx) error {
	month := c.QueryInt("month", 0)
	year := c.QueryInt("year", 0)
	out, err := h.uc.ReportFor(c.Context(), month, year)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month (1-12) e year são obrigatórios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Metrics godoc
// @Summary      Receita e unidades vendidas da rede no mês
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  true  "Mês (1-12)"
// @Param        year   query  int  true  "Ano"
// @Success      200    {object}  dto.NetworkMetricsResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/commissions/metrics [get]
func (h *CommissionHandler) Metrics(c *fiber.Ctx) error {
	month := c.QueryInt("month", 0)
	year := c.QueryInt("year", 0)
	out, err := h.uc.NetworkMetrics(c.Context(), month, year)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month (1-12) e year são obrigatórios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Authorize godoc
// @Summary      Autorizar pagamento de comissão
// @Tags         commissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AuthorizeCommissionRequest  true  "promotora, mês, ano e valor pago"
// @Success      200   {object}  dto.CommissionAuthorizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/commissions/authorize [post]
func (h *CommissionHandler) Authorize(c *fiber.Ctx) error {
	var in dto.AuthorizeCommissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.AuthorizePayment(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "promotora, mês, ano e valor não negativo são obrigatórios"})
		}
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "promotora não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
