package optimizing

import (
	"strings"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

const accountGroup = "account"

// AccountContext reúne as visões da conta inteira que as etapas consultam:
// agregados de fallback e índices do bulk completo. É montado uma vez por
// execução e nunca alterado depois.
type AccountContext struct {
	Targeting          domain.AggregateSummary
	SearchTerms        domain.AggregateSummary
	CampaignNames      map[string]string
	AdGroupDefaultBids map[string]float64
	ExistingNegatives  map[string]bool
	ExplicitKeywords   map[string]bool
	ExplicitASINs      map[string]bool
}

// NewAccountContext indexa o bulk completo, antes da segmentação
func NewAccountContext(bulk []domain.BulkRow, searchTerms []domain.SearchTermRow) *AccountContext {
	ctx := &AccountContext{
		SearchTerms:        Total(searchTerms, accountGroup),
		CampaignNames:      make(map[string]string),
		AdGroupDefaultBids: make(map[string]float64),
		ExistingNegatives:  make(map[string]bool),
		ExplicitKeywords:   make(map[string]bool),
		ExplicitASINs:      make(map[string]bool),
	}

	targeting := make([]domain.BulkRow, 0, len(bulk))
	for _, row := range bulk {
		if row.CampaignID != "" && row.CampaignName != "" {
			if _, ok := ctx.CampaignNames[row.CampaignID]; !ok {
				ctx.CampaignNames[row.CampaignID] = row.CampaignName
			}
		}

		if row.AdGroupID != "" && row.AdGroupDefaultBid != nil {
			if _, ok := ctx.AdGroupDefaultBids[row.AdGroupID]; !ok || row.EntityType == domain.EntityAdGroup {
				ctx.AdGroupDefaultBids[row.AdGroupID] = *row.AdGroupDefaultBid
			}
		}

		switch {
		case row.EntityType.IsNegative():
			adGroupID := row.AdGroupID
			if row.EntityType == domain.EntityCampaignNegativeKeyword || row.EntityType == domain.EntityCampaignNegativeProductTargeting {
				adGroupID = ""
			}
			ctx.ExistingNegatives[negativeKey(row.CampaignID, adGroupID, row.TargetText())] = true

		case row.EntityType == domain.EntityKeyword:
			targeting = append(targeting, row)
			if row.MatchType.IsExact() && row.State != domain.StateArchived {
				ctx.ExplicitKeywords[strings.ToLower(strings.TrimSpace(row.KeywordText))] = true
			}

		case row.EntityType == domain.EntityProductTargeting:
			targeting = append(targeting, row)
			if domain.IsASINExpression(row.ProductTargetingExpression) && row.State != domain.StateArchived {
				ctx.ExplicitASINs[domain.ASINTargetExpression(expressionASIN(row.ProductTargetingExpression))] = true
			}
		}
	}
	ctx.Targeting = Total(targeting, accountGroup)

	return ctx
}

// CampaignName resolve o nome da campanha de uma linha do relatório de termos
func (a *AccountContext) CampaignName(campaignID, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return a.CampaignNames[campaignID]
}

// OldBid devolve o lance atual da linha ou o lance padrão do ad group
func (a *AccountContext) OldBid(row domain.BulkRow) (float64, bool) {
	if row.Bid != nil {
		return *row.Bid, true
	}
	if row.AdGroupDefaultBid != nil {
		return *row.AdGroupDefaultBid, true
	}
	if bid, ok := a.AdGroupDefaultBids[row.AdGroupID]; ok {
		return bid, true
	}
	return 0, false
}

// HasNegative indica se o texto já está negativado no ad group ou na campanha inteira
func (a *AccountContext) HasNegative(campaignID, adGroupID, text string) bool {
	return a.ExistingNegatives[negativeKey(campaignID, adGroupID, text)] ||
		a.ExistingNegatives[negativeKey(campaignID, "", text)]
}

// IsExplicitlyTargeted indica se o termo já é alvo exato ou ASIN em qualquer lugar da conta
func (a *AccountContext) IsExplicitlyTargeted(term string) bool {
	if domain.LooksLikeASIN(term) {
		return a.ExplicitASINs[domain.ASINTargetExpression(term)]
	}
	return a.ExplicitKeywords[strings.ToLower(strings.TrimSpace(term))]
}

func negativeKey(campaignID, adGroupID, text string) string {
	return campaignID + "|" + adGroupID + "|" + text
}

// expressionASIN extrai o ASIN de asin="B0..."
func expressionASIN(expression string) string {
	value := strings.TrimSpace(expression)
	if i := strings.Index(value, "="); i >= 0 {
		value = value[i+1:]
	}
	return strings.Trim(value, `" `)
}
