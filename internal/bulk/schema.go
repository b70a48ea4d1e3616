package bulk

import "github.com/vfg2006/ads-optimizer-api/internal/domain"

// Colunas do arquivo bulk da Amazon, na ordem exigida pelo re-upload
const (
	ColProduct                    = "Product"
	ColEntity                     = "Entity"
	ColOperation                  = "Operation"
	ColCampaignID                 = "Campaign ID"
	ColAdGroupID                  = "Ad Group ID"
	ColPortfolioID                = "Portfolio ID"
	ColAdID                       = "Ad ID"
	ColKeywordID                  = "Keyword ID"
	ColProductTargetingID         = "Product Targeting ID"
	ColCampaignName               = "Campaign Name"
	ColAdGroupName                = "Ad Group Name"
	ColCampaignNameInfo           = "Campaign Name (Informational only)"
	ColAdGroupNameInfo            = "Ad Group Name (Informational only)"
	ColPortfolioNameInfo          = "Portfolio Name (Informational only)"
	ColStartDate                  = "Start Date"
	ColEndDate                    = "End Date"
	ColTargetingType              = "Targeting Type"
	ColState                      = "State"
	ColCampaignStateInfo          = "Campaign State (Informational only)"
	ColAdGroupStateInfo           = "Ad Group State (Informational only)"
	ColDailyBudget                = "Daily Budget"
	ColSKU                        = "SKU"
	ColASINInfo                   = "ASIN (Informational only)"
	ColEligibilityStatusInfo      = "Eligibility Status (Informational only)"
	ColIneligibilityReasonInfo    = "Reason for Ineligibility (Informational only)"
	ColAdGroupDefaultBid          = "Ad Group Default Bid"
	ColAdGroupDefaultBidInfo      = "Ad Group Default Bid (Informational only)"
	ColBid                        = "Bid"
	ColKeywordText                = "Keyword Text"
	ColNativeLanguageKeyword      = "Native Language Keyword"
	ColNativeLanguageLocale       = "Native Language Locale"
	ColMatchType                  = "Match Type"
	ColBiddingStrategy            = "Bidding Strategy"
	ColPlacement                  = "Placement"
	ColPercentage                 = "Percentage"
	ColProductTargetingExpression = "Product Targeting Expression"
	ColResolvedExpressionInfo     = "Resolved Product Targeting Expression (Informational only)"
	ColImpressions                = "Impressions"
	ColClicks                     = "Clicks"
	ColClickThroughRate           = "Click-through Rate"
	ColSpend                      = "Spend"
	ColSales                      = "Sales"
	ColOrders                     = "Orders"
	ColUnits                      = "Units"
	ColConversionRate             = "Conversion Rate"
	ColACOS                       = "ACOS"
	ColCPC                        = "CPC"
	ColROAS                       = "ROAS"

	ColCustomerSearchTerm = "Customer Search Term"

	// ColBudget é o nome do orçamento nas abas de Sponsored Brands e Sponsored Display
	ColBudget = "Budget"
)

// BulkColumns é o esquema canônico da aba de campanhas, na ordem do re-upload
var BulkColumns = []string{
	ColProduct,
	ColEntity,
	ColOperation,
	ColCampaignID,
	ColAdGroupID,
	ColPortfolioID,
	ColAdID,
	ColKeywordID,
	ColProductTargetingID,
	ColCampaignName,
	ColAdGroupName,
	ColCampaignNameInfo,
	ColAdGroupNameInfo,
	ColPortfolioNameInfo,
	ColStartDate,
	ColEndDate,
	ColTargetingType,
	ColState,
	ColCampaignStateInfo,
	ColAdGroupStateInfo,
	ColDailyBudget,
	ColSKU,
	ColASINInfo,
	ColEligibilityStatusInfo,
	ColIneligibilityReasonInfo,
	ColAdGroupDefaultBid,
	ColAdGroupDefaultBidInfo,
	ColBid,
	ColKeywordText,
	ColNativeLanguageKeyword,
	ColNativeLanguageLocale,
	ColMatchType,
	ColBiddingStrategy,
	ColPlacement,
	ColPercentage,
	ColProductTargetingExpression,
	ColResolvedExpressionInfo,
	ColImpressions,
	ColClicks,
	ColClickThroughRate,
	ColSpend,
	ColSales,
	ColOrders,
	ColUnits,
	ColConversionRate,
	ColACOS,
	ColCPC,
	ColROAS,
}

// SearchTermColumns é o esquema canônico da aba de termos de pesquisa
var SearchTermColumns = []string{
	ColProduct,
	ColCampaignID,
	ColAdGroupID,
	ColKeywordID,
	ColProductTargetingID,
	ColCampaignNameInfo,
	ColAdGroupNameInfo,
	ColPortfolioNameInfo,
	ColState,
	ColCampaignStateInfo,
	ColBid,
	ColKeywordText,
	ColMatchType,
	ColProductTargetingExpression,
	ColResolvedExpressionInfo,
	ColCustomerSearchTerm,
	ColImpressions,
	ColClicks,
	ColClickThroughRate,
	ColSpend,
	ColSales,
	ColOrders,
	ColUnits,
	ColConversionRate,
	ColACOS,
	ColCPC,
	ColROAS,
}

// Schema é o esquema canônico de uma aba mais os nomes alternativos aceitos
// para algumas colunas (alias -> nome canônico)
type Schema struct {
	Columns []string
	Aliases map[string]string
}

// SearchTermSchema é o esquema do relatório de termos, igual em todos os produtos
var SearchTermSchema = Schema{Columns: SearchTermColumns}

// BulkSchema devolve o esquema da aba de campanhas do produto
func BulkSchema(product domain.AdProduct) Schema {
	schema := Schema{Columns: BulkColumns}
	if usesBudgetColumn(product) {
		schema.Aliases = map[string]string{ColBudget: ColDailyBudget}
	}
	return schema
}

// BulkHeader é o cabeçalho de re-upload do produto, na ordem de BulkColumns
func BulkHeader(product domain.AdProduct) []string {
	header := make([]string, len(BulkColumns))
	copy(header, BulkColumns)
	if !usesBudgetColumn(product) {
		return header
	}

	for i, column := range header {
		if column == ColDailyBudget {
			header[i] = ColBudget
		}
	}
	return header
}

func usesBudgetColumn(product domain.AdProduct) bool {
	return product == domain.AdProductSponsoredBrands || product == domain.AdProductSponsoredDisplay
}

var (
	bulkRequired       = []string{ColEntity, ColCampaignID, ColState, ColClicks, ColSpend, ColSales, ColOrders}
	searchTermRequired = []string{ColCampaignID, ColAdGroupID, ColCustomerSearchTerm, ColClicks, ColSpend, ColSales, ColOrders}
)
