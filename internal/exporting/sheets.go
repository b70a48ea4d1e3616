package exporting

import (
	"math"

	"github.com/vfg2006/ads-optimizer-api/internal/bulk"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

// Nomes das abas da planilha gerada
const (
	SheetNewCampaigns     = "New campaigns"
	SheetNegation         = "Product-Keyword Negation"
	SheetBidsOptimized    = "Bids Optimized"
	SheetRPCBids          = "RPC & Bids"
	SheetASINSummary      = "ASIN Summary"
	SheetBidChanges       = "Bid Changes"
	SheetBudgetChanges    = "Budget Changes"
	SheetPlacementChanges = "Placement Changes"
)

// SheetOrder é a ordem das abas na planilha
var SheetOrder = []string{
	SheetNewCampaigns,
	SheetNegation,
	SheetBidsOptimized,
	SheetRPCBids,
	SheetASINSummary,
	SheetBidChanges,
	SheetBudgetChanges,
	SheetPlacementChanges,
}

// sheet é o conteúdo de uma aba. Note só é escrita quando não há linhas.
type sheet struct {
	name   string
	header []string
	rows   [][]interface{}
	note   string
}

var harvestHeader = []string{
	"Group", "Campaign ID", "Campaign Name", "Ad Group ID", "Ad Group Name",
	"Customer Search Term", "Target Type", "Target", "Impressions", "Clicks",
	"Spend", "Sales", "Orders", "ACOS", "CPC", "RPC", "Ideal Bid", "Remark",
}

var diagnosticHeader = []string{
	"Group", "Campaign ID", "Campaign Name", "Placement", "Impressions", "Clicks",
	"Spend", "Sales", "Orders", "RPC", "CPC", "ACOS", "Ideal Bid", "Percentage", "Rule",
}

var summaryHeader = []string{
	"Group", "Rows", "Impressions", "Clicks", "Spend", "Sales", "Orders", "Units",
	"CPC", "RPC", "AOV", "Conversion Rate", "ACOS", "Clicks To Conversion",
}

var (
	bidChangesHeader       = []string{"Entity", "Campaign ID", "Campaign Name", "Ad Group Name", "Keyword Text", "Match Type", "Product Targeting Expression", "Old Bid", "New Bid", "Remark"}
	budgetChangesHeader    = []string{"Campaign ID", "Campaign Name", "Old Budget", "New Budget", "Bidding Strategy", "Remark"}
	placementChangesHeader = []string{"Campaign ID", "Campaign Name", "Placement", "Old Percentage", "New Percentage", "Remark"}
)

// BulkRow converte uma diretiva numa linha do esquema de re-upload, na ordem de bulk.BulkColumns
func BulkRow(d domain.Directive) []interface{} {
	values := map[string]interface{}{
		bulk.ColProduct:                    d.Target.Product,
		bulk.ColEntity:                     string(d.Target.EntityType),
		bulk.ColOperation:                  string(d.Operation),
		bulk.ColCampaignID:                 d.Target.CampaignID,
		bulk.ColAdGroupID:                  d.Target.AdGroupID,
		bulk.ColKeywordID:                  d.Target.KeywordID,
		bulk.ColProductTargetingID:         d.Target.ProductTargetingID,
		bulk.ColCampaignNameInfo:           d.Target.CampaignName,
		bulk.ColAdGroupNameInfo:            d.Target.AdGroupName,
		bulk.ColState:                      string(d.State),
		bulk.ColKeywordText:                d.Target.KeywordText,
		bulk.ColMatchType:                  d.Target.MatchType.BulkValue(),
		bulk.ColBiddingStrategy:            d.BiddingStrategy,
		bulk.ColPlacement:                  string(d.Target.Placement),
		bulk.ColProductTargetingExpression: d.Target.ProductTargetingExpression,
		bulk.ColDailyBudget:                floatOrBlank(d.NewBudget),
		bulk.ColBid:                        floatOrBlank(d.NewBid),
		bulk.ColPercentage:                 intOrBlank(d.NewPercentage),
	}

	// o nome editável só existe nas linhas de campanha e de ad group
	if d.Target.EntityType == domain.EntityCampaign {
		values[bulk.ColCampaignName] = d.Target.CampaignName
	}

	row := make([]interface{}, len(bulk.BulkColumns))
	for i, column := range bulk.BulkColumns {
		if value, ok := values[column]; ok {
			row[i] = value
			continue
		}
		row[i] = ""
	}

	return row
}

// bulkSheet usa o cabeçalho do produto; SB e SD chamam o orçamento de "Budget"
func bulkSheet(name string, product domain.AdProduct, directives []domain.Directive) sheet {
	s := sheet{name: name, header: bulk.BulkHeader(product)}
	for _, d := range directives {
		s.rows = append(s.rows, BulkRow(d))
	}
	return s
}

func harvestSheet(result domain.Result[domain.HarvestCandidate]) sheet {
	s := sheet{name: SheetNewCampaigns, header: harvestHeader, note: noteFor(result.Reason, domain.EmptyReasonNoCandidates)}
	for _, c := range result.Items {
		s.rows = append(s.rows, []interface{}{
			c.GroupKey, c.CampaignID, c.CampaignName, c.AdGroupID, c.AdGroupName,
			c.SearchTerm, string(c.Target), c.Expression, c.Impressions, c.Clicks,
			money(c.Spend), money(c.Sales), c.Orders, ratio(c.ACOS), money(c.CPC), money(c.RPC),
			c.IdealBid, c.Remark,
		})
	}
	return s
}

func diagnosticSheet(result domain.Result[domain.PlacementDiagnostic]) sheet {
	s := sheet{name: SheetRPCBids, header: diagnosticHeader, note: noteFor(result.Reason, domain.EmptyReasonNoRows)}
	for _, d := range result.Items {
		idealBid := interface{}("")
		if d.HasIdealBid() {
			idealBid = money(d.IdealBid)
		}

		s.rows = append(s.rows, []interface{}{
			d.GroupKey, d.CampaignID, d.CampaignName, string(d.Placement), d.Impressions, d.Clicks,
			money(d.Spend), money(d.Sales), d.Orders, money(d.RPC), money(d.CPC), ratio(d.ACOS),
			idealBid, intOrBlank(d.Percentage), d.Rule,
		})
	}
	return s
}

func summarySheet(result domain.Result[domain.AggregateSummary]) sheet {
	s := sheet{name: SheetASINSummary, header: summaryHeader, note: noteFor(result.Reason, domain.EmptyReasonNoRows)}
	for _, a := range result.Items {
		s.rows = append(s.rows, []interface{}{
			a.Key.Group, a.Rows, a.Impressions, a.Clicks, money(a.Spend), money(a.Sales), a.Orders, a.Units,
			money(a.CPC), money(a.RPC), money(a.AOV), ratio(a.Conversion), ratio(a.ACOS), money(a.ClicksToConversion),
		})
	}
	return s
}

func bidChangesSheet(result domain.Result[domain.Directive]) sheet {
	s := sheet{name: SheetBidChanges, header: bidChangesHeader, note: noteFor(result.Reason, domain.EmptyReasonNoChanges)}
	for _, d := range result.Items {
		s.rows = append(s.rows, []interface{}{
			string(d.Target.EntityType), d.Target.CampaignID, d.Target.CampaignName, d.Target.AdGroupName,
			d.Target.KeywordText, string(d.Target.MatchType), d.Target.ProductTargetingExpression,
			floatOrBlank(d.OldBid), floatOrBlank(d.NewBid), d.Remark,
		})
	}
	return s
}

func budgetChangesSheet(result domain.Result[domain.Directive]) sheet {
	s := sheet{name: SheetBudgetChanges, header: budgetChangesHeader, note: noteFor(result.Reason, domain.EmptyReasonNoChanges)}
	for _, d := range result.Items {
		s.rows = append(s.rows, []interface{}{
			d.Target.CampaignID, d.Target.CampaignName,
			floatOrBlank(d.OldBudget), floatOrBlank(d.NewBudget), d.BiddingStrategy, d.Remark,
		})
	}
	return s
}

func placementChangesSheet(result domain.Result[domain.Directive]) sheet {
	s := sheet{name: SheetPlacementChanges, header: placementChangesHeader, note: noteFor(result.Reason, domain.EmptyReasonNoChanges)}
	for _, d := range result.Items {
		s.rows = append(s.rows, []interface{}{
			d.Target.CampaignID, d.Target.CampaignName, string(d.Target.Placement),
			intOrBlank(d.OldPercentage), intOrBlank(d.NewPercentage), d.Remark,
		})
	}
	return s
}

func noteFor(reason, fallback domain.EmptyReason) string {
	if reason == domain.EmptyReasonNone {
		return string(fallback)
	}
	return string(reason)
}

func floatOrBlank(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func intOrBlank(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func money(v float64) float64 {
	return utils.RoundWithTwoDecimalPlace(v)
}

func ratio(v float64) float64 {
	return math.Round(v*10000) / 10000
}
