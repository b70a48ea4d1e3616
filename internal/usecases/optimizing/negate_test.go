package optimizing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-optimizer-api/internal/bulk"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/internal/exporting"
)

func negationFixture() ([]domain.BulkRow, []domain.SearchTermRow) {
	bulkRows := []domain.BulkRow{
		keywordRow("C1", "Catalog A", "AG1", "shoes", 1, domain.Metrics{}),
		{
			Product:      "Sponsored Products",
			EntityType:   domain.EntityCampaignNegativeKeyword,
			CampaignID:   "C1",
			CampaignName: "Catalog A",
			State:        domain.StateEnabled,
			KeywordText:  "dupe term",
			MatchType:    domain.MatchNegativeExact,
		},
	}

	asinTarget := searchTerm("C1", "Catalog A", "AG1", "b0qqqqqqqq", domain.MatchType(""), domain.Metrics{Clicks: 5, Spend: 50})
	asinTarget.KeywordText = ""
	asinTarget.ProductTargetingExpression = `asin="B0AAAAAAAA"`

	terms := []domain.SearchTermRow{
		searchTerm("C1", "Catalog A", "AG1", "running shoes", domain.MatchBroad, domain.Metrics{Clicks: 100, Spend: 30, Sales: 200, Orders: 10, Units: 10}),
		searchTerm("C1", "Catalog A", "AG1", "cheap sandals", domain.MatchBroad, domain.Metrics{Clicks: 5, Spend: 10}),
		searchTerm("C1", "Catalog A", "AG1", "cheap sandals", domain.MatchPhrase, domain.Metrics{Clicks: 5, Spend: 10}),
		searchTerm("C1", "Catalog A", "AG1", "flip flops", domain.MatchBroad, domain.Metrics{Clicks: 5, Spend: 8}),
		searchTerm("C1", "Catalog A", "AG1", "exact term", domain.MatchExact, domain.Metrics{Clicks: 5, Spend: 20}),
		searchTerm("C1", "Catalog A", "AG1", "b0zzzzzzzz", domain.MatchBroad, domain.Metrics{Clicks: 2, Spend: 12}),
		searchTerm("C1", "Catalog A", "AG1", "dupe term", domain.MatchBroad, domain.Metrics{Clicks: 5, Spend: 15}),
		asinTarget,
	}

	return bulkRows, terms
}

func TestOptimizeNegations(t *testing.T) {
	bulkRows, terms := negationFixture()
	account := NewAccountContext(bulkRows, terms)

	result := OptimizeNegations(terms, CohortMultiSKU, account, testSettings())
	require.Len(t, result.Items, 2)

	asin := result.Items[0]
	assert.Equal(t, domain.StageNegation, asin.Stage)
	assert.Equal(t, domain.OperationCreate, asin.Operation)
	assert.Equal(t, domain.StateEnabled, asin.State)
	assert.Equal(t, domain.EntityNegativeProductTargeting, asin.Target.EntityType)
	assert.Equal(t, `asin="B0ZZZZZZZZ"`, asin.Target.ProductTargetingExpression)
	assert.Equal(t, "C1", asin.Target.CampaignID)
	assert.Equal(t, "AG1", asin.Target.AdGroupID)

	keyword := result.Items[1]
	assert.Equal(t, domain.EntityNegativeKeyword, keyword.Target.EntityType)
	assert.Equal(t, "cheap sandals", keyword.Target.KeywordText)
	assert.Equal(t, domain.MatchNegativeExact, keyword.Target.MatchType)
	assert.Equal(t, "Catalog A", keyword.Target.CampaignName)
	assert.Contains(t, keyword.Remark, "threshold 9.00")
}

func TestOptimizeNegations_Idempotent(t *testing.T) {
	bulkRows, terms := negationFixture()
	settings := testSettings()

	first := OptimizeNegations(terms, CohortMultiSKU, NewAccountContext(bulkRows, terms), settings)
	require.NotEmpty(t, first.Items)

	for _, d := range first.Items {
		bulkRows = append(bulkRows, domain.BulkRow{
			Product:                    d.Target.Product,
			EntityType:                 d.Target.EntityType,
			CampaignID:                 d.Target.CampaignID,
			AdGroupID:                  d.Target.AdGroupID,
			CampaignName:               d.Target.CampaignName,
			State:                      d.State,
			KeywordText:                d.Target.KeywordText,
			MatchType:                  d.Target.MatchType,
			ProductTargetingExpression: d.Target.ProductTargetingExpression,
		})
	}

	second := OptimizeNegations(terms, CohortMultiSKU, NewAccountContext(bulkRows, terms), settings)
	assert.Empty(t, second.Items)
	assert.Equal(t, domain.EmptyReasonNoCandidates, second.Reason)
}

func TestOptimizeNegations_IdempotentAfterBulkRoundTrip(t *testing.T) {
	bulkRows, terms := negationFixture()
	settings := testSettings()
	product := domain.AdProductSponsoredProducts

	first := OptimizeNegations(terms, CohortMultiSKU, NewAccountContext(bulkRows, terms), settings)
	require.Len(t, first.Items, 2)

	exported := make([][]string, 0, len(first.Items))
	for _, d := range first.Items {
		values := exporting.BulkRow(d)
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = fmt.Sprint(v)
		}
		exported = append(exported, row)
	}

	uploaded := bulk.NewTable(exporting.SheetNegation, bulk.BulkHeader(product), exported, bulk.BulkSchema(product), bulk.DefaultMatchThreshold)
	negatives, err := bulk.ReadBulkRows(uploaded, product)
	require.NoError(t, err)
	require.Len(t, negatives, 2)
	for _, row := range negatives {
		assert.True(t, row.EntityType.IsNegative())
	}

	bulkRows = append(bulkRows, negatives...)
	second := OptimizeNegations(terms, CohortMultiSKU, NewAccountContext(bulkRows, terms), settings)
	assert.Empty(t, second.Items)
	assert.Equal(t, domain.EmptyReasonNoCandidates, second.Reason)
}

func TestOptimizeNegations_NoSearchTerms(t *testing.T) {
	result := OptimizeNegations(nil, CohortMultiSKU, NewAccountContext(nil, nil), testSettings())
	assert.Equal(t, domain.EmptyReasonNoRows, result.Reason)
}

func TestShouldNegate(t *testing.T) {
	settings := testSettings()
	group := domain.NewAggregateSummary(domain.GroupKey{Group: "G"}, 1, domain.Metrics{Clicks: 100, Orders: 10, Sales: 200, Units: 10})
	empty := domain.AggregateSummary{}

	tests := []struct {
		name    string
		row     domain.Metrics
		group   domain.AggregateSummary
		account domain.AggregateSummary
		rule    NegationRule
		flagged bool
	}{
		{name: "gasto acima do limite", row: domain.Metrics{Clicks: 2, Spend: 10}, group: group, rule: NegationRuleSpend, flagged: true},
		{name: "gasto abaixo do limite", row: domain.Metrics{Clicks: 2, Spend: 8}, group: group},
		{name: "cliques acima do limite", row: domain.Metrics{Clicks: 31}, group: group, rule: NegationRuleClicks, flagged: true},
		{name: "cliques no limite", row: domain.Metrics{Clicks: 30}, group: group},
		{name: "fallback para a conta", row: domain.Metrics{Clicks: 2, Spend: 10}, group: empty, account: group, rule: NegationRuleSpend, flagged: true},
		{name: "sem dados", row: domain.Metrics{Clicks: 500, Spend: 500}, group: empty, account: empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, _, flagged := ShouldNegate(tt.row, tt.group, tt.account, settings)
			assert.Equal(t, tt.flagged, flagged)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestNegativeFor(t *testing.T) {
	row := searchTerm("C1", "Catalog A", "AG1", "x", domain.MatchBroad, domain.Metrics{})

	ref := NegativeFor("B0ABCDEFGH", row, "Catalog A", domain.AdProductSponsoredBrands)
	assert.Equal(t, domain.EntityNegativeProductTargeting, ref.EntityType)
	assert.Equal(t, `asin="B0ABCDEFGH"`, ref.ProductTargetingExpression)
	assert.Equal(t, "Sponsored Brands", ref.Product)

	ref = NegativeFor("garden hose", row, "Catalog A", domain.AdProductSponsoredProducts)
	assert.Equal(t, domain.EntityNegativeKeyword, ref.EntityType)
	assert.Equal(t, "garden hose", ref.KeywordText)
	assert.Equal(t, domain.MatchNegativeExact, ref.MatchType)
}
