// Package commission implementa as regras de comissionamento por nível
// (serviço de domínio puro, sem I/O).
//
// Giro de uma promotora = unidades vendidas nos PDVs dela no mês dividido
// pela capacidade do kit de referência (nº de PDVs × 72 peças).
//
//	JUNIOR:      taxa 1%; só paga se giro >= 0.50 (gatilho)
//	SENIOR:      taxa 1.5%; sobe para 2% se giro > 0.75; sempre paga
//	COORDINATOR: taxa 1% sobre a carteira própria + override de 0.5% sobre
//	             as vendas das promotoras diretamente subordinadas (um nível,
//	             sem cascata)
package commission

import (
	"github.com/shopspring/decimal"

	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
)

// KitSize é a capacidade da maleta de referência usada no cálculo de giro.
const KitSize = 72

// Gatilhos e taxas do plano de comissão.
var (
	juniorTrigger   = decimal.NewFromFloat(0.50)
	seniorUpgrade   = decimal.NewFromFloat(0.75)
	rateJunior      = decimal.NewFromFloat(0.01)
	rateSeniorBase  = decimal.NewFromFloat(0.015)
	rateSeniorHigh  = decimal.NewFromFloat(0.02)
	rateCoordinator = decimal.NewFromFloat(0.01)

	// OverrideRate é o percentual de override da coordenadora sobre as vendas
	// das subordinadas diretas.
	OverrideRate = decimal.NewFromFloat(0.005)
)

// Turnover calcula o giro: unidades vendidas / (nº de PDVs × 72).
// Promotora sem PDV atribuído tem giro 0 (nunca divisão por zero).
func Turnover(unitsSold int64, pdvCount int) decimal.Decimal {
	if pdvCount <= 0 {
		return decimal.Zero
	}
	capacity := decimal.NewFromInt(int64(pdvCount) * KitSize)
	return decimal.NewFromInt(unitsSold).Div(capacity)
}

// RateFor devolve a taxa-base efetiva do nível para o giro informado.
// A taxa é sempre não nula mesmo quando o gatilho não foi atingido; o
// zeramento da comissão é responsabilidade de Payable, para que o caso
// "taxa calculada mas não paga" fique explícito.
func RateFor(tier string, turnover decimal.Decimal) decimal.Decimal {
	switch tier {
	case entity.TierSenior:
		if turnover.GreaterThan(seniorUpgrade) {
			return rateSeniorHigh
		}
		return rateSeniorBase
	case entity.TierCoordinator:
		return rateCoordinator
	default: // JUNIOR, inclusive cadastro sem nível
		return rateJunior
	}
}

// Payable informa se a comissão do nível é devida para o giro informado.
// Só JUNIOR tem gatilho (giro >= 0.50); os demais níveis sempre recebem.
func Payable(tier string, turnover decimal.Decimal) bool {
	switch tier {
	case entity.TierSenior, entity.TierCoordinator:
		return true
	default:
		return turnover.GreaterThanOrEqual(juniorTrigger)
	}
}

// Commission calcula a comissão própria: vendas × taxa quando devida, zero
// quando o gatilho não foi atingido.
func Commission(tier string, monthlySales, turnover decimal.Decimal) decimal.Decimal {
	if !Payable(tier, turnover) {
		return decimal.Zero
	}
	return monthlySales.Mul(RateFor(tier, turnover))
}

// Override calcula o bônus de coordenação: 0.5% sobre as vendas somadas das
// subordinadas diretas. Zero para quem não é coordenadora.
func Override(tier string, teamSales decimal.Decimal) decimal.Decimal {
	if tier != entity.TierCoordinator {
		return decimal.Zero
	}
	return teamSales.Mul(OverrideRate)
}
