package optimizing

import (
	"fmt"
	"strings"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

// NegationRule identifica qual critério marcou o termo
type NegationRule string

const (
	NegationRuleSpend  NegationRule = "spend"
	NegationRuleClicks NegationRule = "clicks"
)

// SpendThreshold é o gasto máximo tolerado para um termo sem vendas
func SpendThreshold(aov float64, settings domain.Settings) float64 {
	return aov * settings.TargetACOS * settings.NegationMultiplier
}

// ClickThreshold é o número de cliques acima do qual a conversão é improvável
func ClickThreshold(conversion float64, t domain.Thresholds) float64 {
	return t.ClicksToConversionFactor * domain.SafeDivide(1, conversion)
}

// ShouldNegate avalia um termo sem vendas contra o agregado do grupo, com a
// conta inteira como fallback
func ShouldNegate(row domain.Metrics, group, account domain.AggregateSummary, settings domain.Settings) (NegationRule, string, bool) {
	aov := group.AOV
	if aov <= 0 {
		aov = account.AOV
	}
	if aov > 0 {
		threshold := SpendThreshold(aov, settings)
		if row.Spend > threshold {
			return NegationRuleSpend, fmt.Sprintf("Spend %.2f above threshold %.2f", row.Spend, threshold), true
		}
	}

	conversion := group.Conversion
	if !group.HasOrders() {
		conversion = account.Conversion
	}
	if conversion > 0 {
		threshold := ClickThreshold(conversion, settings.Thresholds)
		if row.Clicks > threshold {
			return NegationRuleClicks, fmt.Sprintf("Clicks %.0f above threshold %.2f", row.Clicks, threshold), true
		}
	}

	return "", "", false
}

// NegativeFor monta a referência da negativação: Negative Product Targeting
// para ASIN, Negative Keyword exata para o resto
func NegativeFor(term string, row domain.SearchTermRow, campaignName string, product domain.AdProduct) domain.EntityRef {
	ref := domain.EntityRef{
		Product:      product.ProductLabel(),
		CampaignID:   row.CampaignID,
		AdGroupID:    row.AdGroupID,
		CampaignName: campaignName,
		AdGroupName:  row.AdGroupName,
	}

	if domain.LooksLikeASIN(term) {
		ref.EntityType = domain.EntityNegativeProductTargeting
		ref.ProductTargetingExpression = domain.ASINTargetExpression(term)
		return ref
	}

	ref.EntityType = domain.EntityNegativeKeyword
	ref.KeywordText = term
	ref.MatchType = domain.MatchNegativeExact
	return ref
}

// OptimizeNegations marca termos sem vendas que gastaram demais ou acumularam
// cliques sem converter. Termos vindos de alvos exatos ou de ASIN ficam de fora
// e nenhuma negativação já existente é emitida de novo.
func OptimizeNegations(rows []domain.SearchTermRow, cohort Cohort, account *AccountContext, settings domain.Settings) domain.Result[domain.Directive] {
	if len(rows) == 0 {
		return domain.Empty[domain.Directive](domain.EmptyReasonNoRows)
	}

	groups := Aggregate(rows, func(r domain.SearchTermRow) domain.GroupKey {
		return domain.GroupKey{Group: cohort.GroupKey(account.CampaignName(r.CampaignID, r.CampaignName))}
	})

	seen := make(map[string]bool)
	directives := make([]domain.Directive, 0)
	for _, row := range rows {
		term := strings.TrimSpace(row.CustomerSearchTerm)
		if term == "" || row.Sales != 0 {
			continue
		}
		if row.MatchType.IsExact() || domain.IsASINExpression(row.ProductTargetingExpression) {
			continue
		}

		campaignName := account.CampaignName(row.CampaignID, row.CampaignName)
		group, _ := groups.Get(cohort.GroupKey(campaignName), domain.PlacementNone)

		_, remark, flagged := ShouldNegate(row.Metrics, group, account.SearchTerms, settings)
		if !flagged {
			continue
		}

		ref := NegativeFor(term, row, campaignName, settings.AdProduct)
		text := ref.KeywordText
		if text == "" {
			text = ref.ProductTargetingExpression
		}

		key := negativeKey(ref.CampaignID, ref.AdGroupID, text)
		if seen[key] || account.HasNegative(ref.CampaignID, ref.AdGroupID, text) {
			continue
		}
		seen[key] = true

		directives = append(directives, domain.Directive{
			Stage:     domain.StageNegation,
			Operation: domain.OperationCreate,
			Target:    ref,
			State:     domain.StateEnabled,
			Remark:    remark,
		})
	}

	domain.SortDirectives(directives)
	return domain.Found(directives, domain.EmptyReasonNoCandidates)
}
