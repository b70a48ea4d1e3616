package optimizing

import (
	"math"
	"sort"
	"strings"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

type harvestKey struct {
	group string
	term  string
}

type harvestAccumulator struct {
	candidate domain.HarvestCandidate
	best      float64
}

// HarvestBid aplica ao termo colhido os dois primeiros ramos da regra de lance
func HarvestBid(term domain.Metrics, group domain.AggregateSummary, settings domain.Settings) (float64, string) {
	t := settings.Thresholds
	target := settings.TargetACOS

	var (
		ideal  float64
		remark string
	)
	if term.ACOS() > target {
		ideal = utils.FloorWithTwoDecimalPlace(term.RPC() * target)
		remark = "High ACOS harvest"
	} else {
		multiplier := t.BandMultiplier(term.ACOS(), target)
		ideal = utils.RoundWithTwoDecimalPlace(math.Min(group.CPC*multiplier, term.CPC()*t.RowCPCCap))
		remark = "Low ACOS harvest"
	}

	return math.Max(ideal, t.MinBid), remark
}

// Harvest promove termos que converteram em alvos explícitos. O termo é
// agregado por grupo e precisa de pelo menos HarvestMinOrders pedidos; termos
// que já são keyword exata ou ASIN em qualquer lugar da conta são descartados.
func Harvest(rows []domain.SearchTermRow, cohort Cohort, account *AccountContext, settings domain.Settings) domain.Result[domain.HarvestCandidate] {
	if len(rows) == 0 {
		return domain.Empty[domain.HarvestCandidate](domain.EmptyReasonNoRows)
	}

	groups := Aggregate(rows, func(r domain.SearchTermRow) domain.GroupKey {
		return domain.GroupKey{Group: cohort.GroupKey(account.CampaignName(r.CampaignID, r.CampaignName))}
	})

	accumulators := make(map[harvestKey]*harvestAccumulator)
	for _, row := range rows {
		term := strings.TrimSpace(row.CustomerSearchTerm)
		if term == "" || row.Sales <= 0 {
			continue
		}
		if row.MatchType.IsExact() || domain.IsASINExpression(row.ProductTargetingExpression) {
			continue
		}

		campaignName := account.CampaignName(row.CampaignID, row.CampaignName)
		key := harvestKey{group: cohort.GroupKey(campaignName), term: strings.ToLower(term)}

		acc, ok := accumulators[key]
		if !ok {
			acc = &harvestAccumulator{candidate: domain.HarvestCandidate{GroupKey: key.group, SearchTerm: term}}
			accumulators[key] = acc
		}
		acc.candidate.Metrics.Add(row.Metrics)

		// o ad group de origem é o que mais converteu o termo
		if !ok || row.Orders > acc.best {
			acc.best = row.Orders
			acc.candidate.CampaignID = row.CampaignID
			acc.candidate.CampaignName = campaignName
			acc.candidate.AdGroupID = row.AdGroupID
			acc.candidate.AdGroupName = row.AdGroupName
		}
	}

	candidates := make([]domain.HarvestCandidate, 0)
	for key, acc := range accumulators {
		c := acc.candidate
		if c.Orders < settings.Thresholds.HarvestMinOrders {
			continue
		}
		// termos com poucas impressões não têm volume para justificar um alvo próprio
		if settings.MinSearchVolume > 0 && c.Impressions < float64(settings.MinSearchVolume) {
			continue
		}
		if account.IsExplicitlyTargeted(c.SearchTerm) {
			continue
		}

		if domain.LooksLikeASIN(c.SearchTerm) {
			c.Target = domain.HarvestProductASIN
			c.Expression = domain.ASINTargetExpression(c.SearchTerm)
		} else {
			c.Target = domain.HarvestKeywordExact
			c.Expression = c.SearchTerm
		}

		group, _ := groups.Get(key.group, domain.PlacementNone)
		c.ACOS = c.Metrics.ACOS()
		c.CPC = c.Metrics.CPC()
		c.RPC = c.Metrics.RPC()
		c.IdealBid, c.Remark = HarvestBid(c.Metrics, group, settings)

		candidates = append(candidates, c)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.GroupKey != b.GroupKey {
			return a.GroupKey < b.GroupKey
		}
		if a.Orders != b.Orders {
			return a.Orders > b.Orders
		}
		return strings.ToLower(a.SearchTerm) < strings.ToLower(b.SearchTerm)
	})

	return domain.Found(candidates, domain.EmptyReasonNoCandidates)
}
