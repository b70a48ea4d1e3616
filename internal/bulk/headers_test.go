package bulk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 100.0, Similarity("Clicks", " clicks "))
	assert.Equal(t, 100.0, Similarity("", ""))
	assert.InDelta(t, 90.9, Similarity("Impresions", "Impressions"), 0.1)
	assert.Less(t, Similarity("Campaign Name", "Campaign Name (Informational only)"), DefaultMatchThreshold)
}

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		expected map[string]string
	}{
		{
			name:     "correspondência exata ignora caixa e espaços",
			raw:      []string{"clicks", " Spend "},
			expected: map[string]string{"clicks": ColClicks, " Spend ": ColSpend},
		},
		{
			name:     "erro de digitação é corrigido acima do limiar",
			raw:      []string{"Impresions", "Click-thru Rate"},
			expected: map[string]string{"Impresions": ColImpressions, "Click-thru Rate": ColClickThroughRate},
		},
		{
			name:     "coluna desconhecida segue com o nome original",
			raw:      []string{"Foo Bar"},
			expected: map[string]string{"Foo Bar": "Foo Bar"},
		},
		{
			name:     "nome canônico não é atribuído duas vezes",
			raw:      []string{"Clicks", "Click"},
			expected: map[string]string{"Clicks": ColClicks, "Click": "Click"},
		},
		{
			name: "colunas informativas não colidem com as editáveis",
			raw:  []string{"Campaign Name", "Campaign Name (Informational only)"},
			expected: map[string]string{
				"Campaign Name":                      ColCampaignName,
				"Campaign Name (Informational only)": ColCampaignNameInfo,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeHeaders(tt.raw, Schema{Columns: BulkColumns}, DefaultMatchThreshold)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTable_MissingColumnsAreAbsentNotZero(t *testing.T) {
	table := NewTable("test", []string{"Clicks", "Sales"}, [][]string{{"10", ""}}, Schema{Columns: BulkColumns}, DefaultMatchThreshold)

	assert.True(t, table.Has(ColClicks))
	assert.False(t, table.Has(ColUnits))
	assert.Equal(t, []string{ColUnits, ColOrders}, table.Missing(ColUnits, ColClicks, ColOrders))
	assert.Nil(t, table.FloatPtr(0, ColSales))
	assert.Nil(t, table.FloatPtr(0, ColUnits))
	assert.Equal(t, 10.0, table.Float(0, ColClicks))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw   string
		value float64
		ok    bool
	}{
		{"1,234.50", 1234.5, true},
		{"$0.75", 0.75, true},
		{"35%", 35, true},
		{"", 0, false},
		{"-", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		v, ok := parseNumber(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.value, v, tt.raw)
	}
}

func TestNormalizeHeaders_ProductAliases(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		product  domain.AdProduct
		expected map[string]string
	}{
		{
			name:     "Budget vira Daily Budget em SB",
			raw:      []string{"Budget", "Clicks"},
			product:  domain.AdProductSponsoredBrands,
			expected: map[string]string{"Budget": ColDailyBudget, "Clicks": ColClicks},
		},
		{
			name:     "Budget vira Daily Budget em SD ignorando caixa",
			raw:      []string{" budget "},
			product:  domain.AdProductSponsoredDisplay,
			expected: map[string]string{" budget ": ColDailyBudget},
		},
		{
			name:     "SP não reconhece Budget",
			raw:      []string{"Budget"},
			product:  domain.AdProductSponsoredProducts,
			expected: map[string]string{"Budget": "Budget"},
		},
		{
			name:     "Daily Budget explícito prevalece sobre o alias",
			raw:      []string{"Budget", "Daily Budget"},
			product:  domain.AdProductSponsoredBrands,
			expected: map[string]string{"Budget": "Budget", "Daily Budget": ColDailyBudget},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeHeaders(tt.raw, BulkSchema(tt.product), DefaultMatchThreshold)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBulkHeader(t *testing.T) {
	assert.Equal(t, BulkColumns, BulkHeader(domain.AdProductSponsoredProducts))

	sb := BulkHeader(domain.AdProductSponsoredBrands)
	assert.Len(t, sb, len(BulkColumns))
	assert.Contains(t, sb, ColBudget)
	assert.NotContains(t, sb, ColDailyBudget)
	assert.Contains(t, BulkColumns, ColDailyBudget)
}
