package optimizing

import (
	"fmt"
	"math"
	"sort"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

// Regras registradas na aba de diagnóstico "RPC & Bids"
const (
	PlacementRuleHighACOS     = "high-acos"
	PlacementRuleLowACOS      = "low-acos"
	PlacementRuleRatioScaled  = "ratio-scaled"
	PlacementRuleInsufficient = "insufficient data"
	PlacementRuleNoCPC        = "no cpc data"
)

// placementState é o estado calculado de um placement dentro de uma campanha
type placementState struct {
	row      domain.BulkRow
	summary  domain.AggregateSummary
	idealBid float64
	rule     string
}

// PlacementOutcome reúne as diretivas e o diagnóstico de uma coorte
type PlacementOutcome struct {
	Directives  domain.Result[domain.Directive]
	Diagnostics []domain.PlacementDiagnostic
}

// OptimizePlacements deriva os multiplicadores de placement de cada campanha a
// partir do RPC relativo entre placements. O placement de menor lance ideal vira
// o lance base (0%) e os demais recebem o acréscimo percentual sobre ele.
func OptimizePlacements(rows []domain.BulkRow, cohort Cohort, settings domain.Settings) PlacementOutcome {
	adjustments := make([]domain.BulkRow, 0)
	for _, row := range rows {
		if row.EntityType != domain.EntityBiddingAdjustment || row.Placement == domain.PlacementNone {
			continue
		}
		if row.CampaignState != "" && row.CampaignState != domain.StateEnabled {
			continue
		}
		adjustments = append(adjustments, row)
	}

	if len(adjustments) == 0 {
		return PlacementOutcome{Directives: domain.Empty[domain.Directive](domain.EmptyReasonNoRows)}
	}

	// agregado do placement dentro do grupo (ASIN ou campanha)
	groupPlacement := Aggregate(adjustments, func(r domain.BulkRow) domain.GroupKey {
		return domain.GroupKey{Group: cohort.GroupKey(r.CampaignName), Placement: r.Placement}
	})
	// média do placement entre todas as campanhas da coorte
	crossCampaign := Aggregate(adjustments, func(r domain.BulkRow) domain.GroupKey {
		return domain.GroupKey{Placement: r.Placement}
	})
	perCampaign := Aggregate(adjustments, func(r domain.BulkRow) domain.GroupKey {
		return domain.GroupKey{Group: r.CampaignID, Placement: r.Placement}
	})

	campaigns := make(map[string][]*placementState)
	campaignIDs := make([]string, 0)
	seen := make(map[domain.GroupKey]bool)
	for _, row := range adjustments {
		key := domain.GroupKey{Group: row.CampaignID, Placement: row.Placement}
		if seen[key] {
			continue
		}
		seen[key] = true

		if _, ok := campaigns[row.CampaignID]; !ok {
			campaignIDs = append(campaignIDs, row.CampaignID)
		}
		campaigns[row.CampaignID] = append(campaigns[row.CampaignID], &placementState{
			row:      row,
			summary:  perCampaign[key],
			idealBid: math.NaN(),
		})
	}
	sort.Strings(campaignIDs)

	var (
		directives  []domain.Directive
		diagnostics []domain.PlacementDiagnostic
	)

	for _, campaignID := range campaignIDs {
		states := campaigns[campaignID]
		sort.Slice(states, func(i, j int) bool {
			return states[i].row.Placement.Order() < states[j].row.Placement.Order()
		})

		groupKey := cohort.GroupKey(states[0].row.CampaignName)
		computeIdealBids(states, groupKey, groupPlacement, crossCampaign, settings)

		percentages, base := placementPercentages(states, settings.Thresholds.MaxPlacementPercentage)

		for i, state := range states {
			diagnostic := domain.PlacementDiagnostic{
				GroupKey:     groupKey,
				CampaignID:   campaignID,
				CampaignName: state.row.CampaignName,
				Placement:    state.row.Placement,
				Metrics:      state.summary.Metrics,
				RPC:          state.summary.RPC,
				CPC:          state.summary.CPC,
				ACOS:         state.summary.ACOS,
				IdealBid:     state.idealBid,
				Percentage:   percentages[i],
				Rule:         state.rule,
			}
			diagnostics = append(diagnostics, diagnostic)

			if percentages[i] == nil {
				continue
			}

			directives = append(directives, domain.Directive{
				Stage:         domain.StagePlacement,
				Operation:     domain.OperationUpdate,
				Target:        domain.RefFromBulkRow(state.row),
				State:         state.row.State,
				OldPercentage: state.row.Percentage,
				NewPercentage: percentages[i],
				Remark:        fmt.Sprintf("Placement %s (ideal bid %.2f, base bid %.2f)", state.rule, state.idealBid, base),
			})
		}
	}

	domain.SortDirectives(directives)
	return PlacementOutcome{
		Directives:  domain.Found(directives, domain.EmptyReasonNoChanges),
		Diagnostics: diagnostics,
	}
}

// computeIdealBids preenche o lance ideal de cada placement da campanha
func computeIdealBids(states []*placementState, groupKey string, groupPlacement, crossCampaign Summaries, settings domain.Settings) {
	t := settings.Thresholds
	target := settings.TargetACOS

	var reference *placementState
	for _, state := range states {
		s := state.summary
		if s.RPC <= 0 {
			continue
		}

		if s.ACOS > target {
			state.idealBid = s.RPC * target
			state.rule = PlacementRuleHighACOS
		} else {
			multiplier := t.BandMultiplier(s.ACOS, target)
			aggregate, _ := groupPlacement.Get(groupKey, state.row.Placement)
			state.idealBid = math.Min(aggregate.CPC*multiplier, s.CPC*t.RowCPCCap)
			state.rule = PlacementRuleLowACOS
		}

		// o placement lucrativo com mais cliques é a referência das escalas
		if reference == nil || s.Clicks > reference.summary.Clicks {
			reference = state
		}
	}

	if reference == nil {
		for _, state := range states {
			state.rule = PlacementRuleInsufficient
		}
		return
	}

	for _, state := range states {
		if state.summary.RPC > 0 {
			continue
		}

		otherCPC := placementCPC(state, groupKey, groupPlacement, crossCampaign)
		if otherCPC <= 0 || reference.summary.CPC <= 0 || math.IsNaN(reference.idealBid) {
			state.rule = PlacementRuleNoCPC
			continue
		}

		state.idealBid = reference.idealBid * (otherCPC / reference.summary.CPC)
		state.rule = PlacementRuleRatioScaled
	}
}

// placementCPC usa o CPC da própria campanha, depois o do grupo e por fim a média entre campanhas
func placementCPC(state *placementState, groupKey string, groupPlacement, crossCampaign Summaries) float64 {
	if state.summary.CPC > 0 {
		return state.summary.CPC
	}
	if aggregate, ok := groupPlacement.Get(groupKey, state.row.Placement); ok && aggregate.CPC > 0 {
		return aggregate.CPC
	}
	if aggregate, ok := crossCampaign.Get("", state.row.Placement); ok && aggregate.CPC > 0 {
		return aggregate.CPC
	}
	return math.NaN()
}

// placementPercentages converte os lances ideais em porcentagens sobre o menor deles.
// Placements sem lance ideal ficam nil e não são alterados.
func placementPercentages(states []*placementState, maxPercentage int) ([]*int, float64) {
	percentages := make([]*int, len(states))

	base := math.Inf(1)
	for _, state := range states {
		if !math.IsNaN(state.idealBid) && state.idealBid > 0 && state.idealBid < base {
			base = state.idealBid
		}
	}
	if math.IsInf(base, 1) {
		return percentages, math.NaN()
	}

	for i, state := range states {
		if math.IsNaN(state.idealBid) || state.idealBid <= 0 {
			continue
		}
		p := utils.RoundPercentage((state.idealBid/base-1)*100, 0, maxPercentage)
		percentages[i] = &p
	}

	return percentages, utils.RoundWithTwoDecimalPlace(base)
}
