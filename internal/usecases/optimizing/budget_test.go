package optimizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-optimizer-api/internal/bulk"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

func campaignRow(id string, budget float64, m domain.Metrics) domain.BulkRow {
	return domain.BulkRow{
		Product:      "Sponsored Products",
		EntityType:   domain.EntityCampaign,
		CampaignID:   id,
		CampaignName: "Campaign " + id,
		State:        domain.StateEnabled,
		DailyBudget:  ptr(budget),
		Metrics:      m,
	}
}

func TestDecideBudget(t *testing.T) {
	settings := testSettings()

	tests := []struct {
		name   string
		row    domain.Metrics
		budget float64
		want   float64
	}{
		{name: "ACOS abaixo de metade do alvo dobra o orçamento", row: domain.Metrics{Spend: 20, Sales: 200}, budget: 100, want: 200},
		{name: "faixa de 1.5x", row: domain.Metrics{Spend: 100, Sales: 500}, budget: 300, want: 450},
		{name: "faixa de 1.1x", row: domain.Metrics{Spend: 130, Sales: 500}, budget: 300, want: 330},
		{name: "teto de 10x o gasto", row: domain.Metrics{Spend: 30, Sales: 1000}, budget: 500, want: 300},
		{name: "ACOS alto mantém com piso", row: domain.Metrics{Spend: 50, Sales: 100}, budget: 150, want: 200},
		{name: "sem vendas mantém", row: domain.Metrics{Spend: 50}, budget: 300, want: 300},
		{name: "piso de 200 após aumento", row: domain.Metrics{Spend: 5, Sales: 100}, budget: 40, want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := DecideBudget(tt.row, tt.budget, settings)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBudgetMultiplier(t *testing.T) {
	th := domain.DefaultThresholds()

	assert.Equal(t, 0.0, BudgetMultiplier(0, 0.3, th))
	assert.Equal(t, 2.0, BudgetMultiplier(0.149, 0.3, th))
	assert.Equal(t, 1.5, BudgetMultiplier(0.15, 0.3, th))
	assert.Equal(t, 1.1, BudgetMultiplier(0.225, 0.3, th))
	assert.Equal(t, 0.0, BudgetMultiplier(0.27, 0.3, th))
	assert.Equal(t, 0.0, BudgetMultiplier(0.9, 0.3, th))
}

func TestOptimizeBudgets(t *testing.T) {
	paused := campaignRow("C3", 100, domain.Metrics{Spend: 20, Sales: 200})
	paused.State = domain.StatePaused

	noBudget := campaignRow("C4", 0, domain.Metrics{})
	noBudget.DailyBudget = nil

	rows := []domain.BulkRow{
		campaignRow("C1", 100, domain.Metrics{Spend: 20, Sales: 200}),
		campaignRow("C2", 300, domain.Metrics{Spend: 50, Sales: 100}),
		paused,
		noBudget,
		keywordRow("C1", "Campaign C1", "AG1", "shoes", 1, domain.Metrics{}),
	}

	result := OptimizeBudgets(rows, testSettings())
	require.Len(t, result.Items, 2)

	for _, d := range result.Items {
		assert.Equal(t, domain.StageBudget, d.Stage)
		assert.Equal(t, domain.BiddingStrategyDownOnly, d.BiddingStrategy)
		require.NotNil(t, d.OldBudget)
		require.NotNil(t, d.NewBudget)
	}

	assert.Equal(t, "C1", result.Items[0].Target.CampaignID)
	assert.Equal(t, 200.0, *result.Items[0].NewBudget)
	assert.Equal(t, "Budget Optimized (x2.00)", result.Items[0].Remark)
	assert.Equal(t, 300.0, *result.Items[1].NewBudget)
	assert.Equal(t, "Budget unchanged", result.Items[1].Remark)
}

func TestOptimizeBudgets_NoCampaigns(t *testing.T) {
	result := OptimizeBudgets(nil, testSettings())
	assert.Equal(t, domain.EmptyReasonNoRows, result.Reason)
}

func TestOptimizeBudgets_SponsoredBrandsBudgetColumn(t *testing.T) {
	product := domain.AdProductSponsoredBrands
	table := bulk.NewTable(product.BulkSheet(),
		[]string{"Product", "Entity", "Campaign ID", "Campaign Name", "State", "Budget", "Clicks", "Spend", "Sales", "Orders"},
		[][]string{{"Sponsored Brands", "Campaign", "C1", "Brand Store", "enabled", "100", "40", "20", "200", "6"}},
		bulk.BulkSchema(product), bulk.DefaultMatchThreshold)

	rows, err := bulk.ReadBulkRows(table, product)
	require.NoError(t, err)

	result := OptimizeBudgets(rows, testSettings())
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Sponsored Brands", result.Items[0].Target.Product)
	assert.Equal(t, 100.0, *result.Items[0].OldBudget)
	assert.Equal(t, 200.0, *result.Items[0].NewBudget)
}
