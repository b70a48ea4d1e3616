package optimizing

import (
	"fmt"
	"math"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

// BidRule identifica o ramo da regra de lance que disparou
type BidRule string

const (
	BidRuleZeroClicks      BidRule = "zero-clicks"
	BidRuleHighACOS        BidRule = "high-acos"
	BidRuleLowACOS         BidRule = "low-acos"
	BidRuleNoOrders        BidRule = "no-orders"
	BidRuleNoOrdersAccount BidRule = "no-orders-account-fallback"
	BidRuleNoData          BidRule = "no-conversion-data"
)

// BidDecision é o resultado da regra para uma linha. IdealBid já vem
// arredondado, mas sem o piso de lance mínimo; NewBid é o valor exportado.
type BidDecision struct {
	Rule     BidRule
	OldBid   float64
	IdealBid float64
	NewBid   float64
	Remark   string
}

// DecideBid aplica a regra de lance a uma linha de targeting. group é o agregado
// do ASIN ou da campanha; account é o fallback quando o grupo não tem pedidos.
func DecideBid(row domain.Metrics, oldBid float64, group, account domain.AggregateSummary, settings domain.Settings) BidDecision {
	t := settings.Thresholds
	target := settings.TargetACOS
	decision := BidDecision{OldBid: oldBid}

	switch {
	case row.Clicks == 0:
		decision.Rule = BidRuleZeroClicks
		decision.IdealBid = oldBid * t.ZeroClickNudge
		decision.Remark = "0 clicks Optimized"

	case row.Orders > 0 && row.ACOS() > target:
		decision.Rule = BidRuleHighACOS
		decision.IdealBid = row.RPC() * target
		decision.Remark = "High ACOS Optimized"

	case row.Orders > 0:
		multiplier := t.BandMultiplier(row.ACOS(), target)
		decision.Rule = BidRuleLowACOS
		decision.IdealBid = math.Min(group.CPC*multiplier, row.CPC()*t.RowCPCCap)
		decision.Remark = fmt.Sprintf("Low ACOS Optimized (x%.2f)", multiplier)

	default:
		base := group
		decision.Rule = BidRuleNoOrders
		decision.Remark = "No orders Optimized"
		if !group.HasOrders() {
			base = account
			decision.Rule = BidRuleNoOrdersAccount
			decision.Remark = "Default bid optimised"
		}

		if !base.HasOrders() {
			decision.Rule = BidRuleNoData
			decision.IdealBid = oldBid
			decision.Remark = "No conversions in account, bid unchanged"
			break
		}

		estimate := (base.AOV * target) / (row.Clicks + base.ClicksToConversion)
		// linha sem conversão nunca tem o lance aumentado
		decision.IdealBid = math.Min(estimate, oldBid)
	}

	if decision.Rule == BidRuleHighACOS {
		// arredondar para cima poderia passar do ponto de equilíbrio
		decision.IdealBid = utils.FloorWithTwoDecimalPlace(decision.IdealBid)
	} else {
		decision.IdealBid = utils.RoundWithTwoDecimalPlace(decision.IdealBid)
	}
	decision.NewBid = math.Max(decision.IdealBid, t.MinBid)

	return decision
}

// OptimizeBids calcula o novo lance de cada keyword e product target ativos da coorte
func OptimizeBids(rows []domain.BulkRow, cohort Cohort, account *AccountContext, settings domain.Settings) domain.Result[domain.Directive] {
	targeting := make([]domain.BulkRow, 0, len(rows))
	for _, row := range rows {
		if row.EntityType.IsTargeting() && row.IsEnabled() && !row.MatchType.IsNegative() {
			targeting = append(targeting, row)
		}
	}

	if len(targeting) == 0 {
		return domain.Empty[domain.Directive](domain.EmptyReasonNoRows)
	}

	groups := Aggregate(targeting, func(r domain.BulkRow) domain.GroupKey {
		return domain.GroupKey{Group: cohort.GroupKey(r.CampaignName)}
	})

	directives := make([]domain.Directive, 0, len(targeting))
	for _, row := range targeting {
		oldBid, ok := account.OldBid(row)
		if !ok {
			continue
		}

		group, _ := groups.Get(cohort.GroupKey(row.CampaignName), domain.PlacementNone)
		decision := DecideBid(row.Metrics, oldBid, group, account.Targeting, settings)

		old, updated := decision.OldBid, decision.NewBid
		directives = append(directives, domain.Directive{
			Stage:     domain.StageBid,
			Operation: domain.OperationUpdate,
			Target:    domain.RefFromBulkRow(row),
			State:     row.State,
			OldBid:    &old,
			NewBid:    &updated,
			Remark:    decision.Remark,
		})
	}

	domain.SortDirectives(directives)
	return domain.Found(directives, domain.EmptyReasonNoRows)
}
