package optimizing

import (
	"fmt"
	"math"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

// BudgetMultiplier devolve o multiplicador de orçamento pela faixa de ACOS.
// Zero indica que o orçamento não cresce.
func BudgetMultiplier(acos, target float64, t domain.Thresholds) float64 {
	switch {
	case acos <= 0:
		return 0
	case acos < t.StrongBand*target:
		return t.BudgetStrongMultiplier
	case acos < t.MediumBand*target:
		return t.BudgetMediumMultiplier
	case acos < t.BudgetLightBand*target:
		return t.BudgetLightMultiplier
	}
	return 0
}

// DecideBudget calcula o novo orçamento diário de uma campanha
func DecideBudget(row domain.Metrics, budget float64, settings domain.Settings) (float64, string) {
	t := settings.Thresholds

	multiplier := BudgetMultiplier(row.ACOS(), settings.TargetACOS, t)
	if multiplier == 0 {
		return utils.RoundWithTwoDecimalPlace(math.Max(budget, t.MinBudget)), "Budget unchanged"
	}

	increased := math.Min(budget*multiplier, row.Spend*t.BudgetSpendCap)
	return utils.RoundWithTwoDecimalPlace(math.Max(increased, t.MinBudget)),
		fmt.Sprintf("Budget Optimized (x%.2f)", multiplier)
}

// OptimizeBudgets ajusta o orçamento das campanhas ativas e força a estratégia
// "Dynamic bids - down only" em todas elas
func OptimizeBudgets(rows []domain.BulkRow, settings domain.Settings) domain.Result[domain.Directive] {
	directives := make([]domain.Directive, 0)
	for _, row := range rows {
		if row.EntityType != domain.EntityCampaign || row.State != domain.StateEnabled || row.DailyBudget == nil {
			continue
		}

		old := *row.DailyBudget
		updated, remark := DecideBudget(row.Metrics, old, settings)

		directives = append(directives, domain.Directive{
			Stage:           domain.StageBudget,
			Operation:       domain.OperationUpdate,
			Target:          domain.RefFromBulkRow(row),
			State:           row.State,
			OldBudget:       &old,
			NewBudget:       &updated,
			BiddingStrategy: domain.BiddingStrategyDownOnly,
			Remark:          remark,
		})
	}

	domain.SortDirectives(directives)
	return domain.Found(directives, domain.EmptyReasonNoRows)
}
