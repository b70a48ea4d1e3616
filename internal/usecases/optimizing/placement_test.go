package optimizing

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

func percentages(directives []domain.Directive) map[domain.Placement]int {
	out := make(map[domain.Placement]int)
	for _, d := range directives {
		out[d.Target.Placement] = *d.NewPercentage
	}
	return out
}

func diagnosticsByPlacement(campaignID string, diagnostics []domain.PlacementDiagnostic) map[domain.Placement]domain.PlacementDiagnostic {
	out := make(map[domain.Placement]domain.PlacementDiagnostic)
	for _, d := range diagnostics {
		if d.CampaignID == campaignID {
			out[d.Placement] = d
		}
	}
	return out
}

func TestOptimizePlacements_AllProfitable(t *testing.T) {
	rows := []domain.BulkRow{
		adjustmentRow("C1", "Catalog A", domain.PlacementTop, 50, domain.Metrics{Clicks: 10, Spend: 10, Sales: 50, Orders: 2}),
		adjustmentRow("C1", "Catalog A", domain.PlacementProductPage, 20, domain.Metrics{Clicks: 20, Spend: 20, Sales: 40, Orders: 2}),
		adjustmentRow("C1", "Catalog A", domain.PlacementRestOfSearch, 0, domain.Metrics{Clicks: 10, Spend: 5, Sales: 10, Orders: 1}),
	}

	outcome := OptimizePlacements(rows, CohortMultiSKU, testSettings())
	require.Len(t, outcome.Directives.Items, 3)

	got := percentages(outcome.Directives.Items)
	assert.Equal(t, 267, got[domain.PlacementTop])
	assert.Equal(t, 100, got[domain.PlacementProductPage])
	assert.Equal(t, 0, got[domain.PlacementRestOfSearch])

	diag := diagnosticsByPlacement("C1", outcome.Diagnostics)
	assert.InDelta(t, 1.1, diag[domain.PlacementTop].IdealBid, 1e-9)
	assert.Equal(t, PlacementRuleLowACOS, diag[domain.PlacementTop].Rule)
	assert.InDelta(t, 0.6, diag[domain.PlacementProductPage].IdealBid, 1e-9)
	assert.Equal(t, PlacementRuleHighACOS, diag[domain.PlacementProductPage].Rule)
	assert.InDelta(t, 0.3, diag[domain.PlacementRestOfSearch].IdealBid, 1e-9)

	for _, d := range outcome.Directives.Items {
		assert.Equal(t, domain.StagePlacement, d.Stage)
		assert.Equal(t, domain.EntityBiddingAdjustment, d.Target.EntityType)
		require.NotNil(t, d.OldPercentage)
	}
}

func TestOptimizePlacements_RatioScaling(t *testing.T) {
	rows := []domain.BulkRow{
		adjustmentRow("C1", "Catalog B", domain.PlacementTop, 0, domain.Metrics{Clicks: 10, Spend: 10, Sales: 50, Orders: 2}),
		adjustmentRow("C1", "Catalog B", domain.PlacementProductPage, 0, domain.Metrics{Clicks: 10, Spend: 20}),
		adjustmentRow("C1", "Catalog B", domain.PlacementRestOfSearch, 0, domain.Metrics{}),
	}

	t.Run("placement sem CPC fica sem diretiva", func(t *testing.T) {
		outcome := OptimizePlacements(rows, CohortMultiSKU, testSettings())
		require.Len(t, outcome.Directives.Items, 2)

		got := percentages(outcome.Directives.Items)
		assert.Equal(t, 0, got[domain.PlacementTop])
		assert.Equal(t, 100, got[domain.PlacementProductPage])

		diag := diagnosticsByPlacement("C1", outcome.Diagnostics)
		assert.InDelta(t, 2.2, diag[domain.PlacementProductPage].IdealBid, 1e-9)
		assert.Equal(t, PlacementRuleRatioScaled, diag[domain.PlacementProductPage].Rule)
		assert.False(t, diag[domain.PlacementRestOfSearch].HasIdealBid())
		assert.Nil(t, diag[domain.PlacementRestOfSearch].Percentage)
		assert.Equal(t, PlacementRuleNoCPC, diag[domain.PlacementRestOfSearch].Rule)
	})

	t.Run("CPC médio entre campanhas supre o placement sem dados", func(t *testing.T) {
		withPeer := append([]domain.BulkRow{}, rows...)
		withPeer = append(withPeer, adjustmentRow("C2", "Catalog C", domain.PlacementRestOfSearch, 0, domain.Metrics{Clicks: 10, Spend: 3}))

		outcome := OptimizePlacements(withPeer, CohortMultiSKU, testSettings())

		got := percentages(outcome.Directives.Items)
		assert.Equal(t, 233, got[domain.PlacementTop])
		assert.Equal(t, 567, got[domain.PlacementProductPage])
		assert.Equal(t, 0, got[domain.PlacementRestOfSearch])

		diag := diagnosticsByPlacement("C1", outcome.Diagnostics)
		assert.InDelta(t, 0.33, diag[domain.PlacementRestOfSearch].IdealBid, 1e-9)

		// Catalog C não tem placement lucrativo
		peer := diagnosticsByPlacement("C2", outcome.Diagnostics)
		assert.Equal(t, PlacementRuleInsufficient, peer[domain.PlacementRestOfSearch].Rule)
	})
}

func TestOptimizePlacements_NoProfitablePlacement(t *testing.T) {
	rows := []domain.BulkRow{
		adjustmentRow("C1", "B0ABCDEFGH exact", domain.PlacementTop, 30, domain.Metrics{Clicks: 10, Spend: 10}),
		adjustmentRow("C1", "B0ABCDEFGH exact", domain.PlacementProductPage, 10, domain.Metrics{}),
	}

	outcome := OptimizePlacements(rows, CohortSingleSKU, testSettings())
	assert.True(t, outcome.Directives.IsEmpty())
	assert.Equal(t, domain.EmptyReasonNoChanges, outcome.Directives.Reason)

	require.Len(t, outcome.Diagnostics, 2)
	for _, d := range outcome.Diagnostics {
		assert.True(t, math.IsNaN(d.IdealBid))
		assert.Equal(t, "B0ABCDEFGH", d.GroupKey)
		assert.Equal(t, PlacementRuleInsufficient, d.Rule)
	}
}

func TestOptimizePlacements_NoAdjustmentRows(t *testing.T) {
	paused := adjustmentRow("C1", "Catalog", domain.PlacementTop, 0, domain.Metrics{Clicks: 10, Sales: 10})
	paused.CampaignState = domain.StatePaused

	outcome := OptimizePlacements([]domain.BulkRow{
		keywordRow("C1", "Catalog", "AG1", "shoes", 1, domain.Metrics{}),
		paused,
	}, CohortMultiSKU, testSettings())

	assert.True(t, outcome.Directives.IsEmpty())
	assert.Equal(t, domain.EmptyReasonNoRows, outcome.Directives.Reason)
	assert.Empty(t, outcome.Diagnostics)
}

func TestOptimizePlacements_PercentageBounds(t *testing.T) {
	settings := testSettings()
	rows := make([]domain.BulkRow, 0)

	for c := 0; c < 30; c++ {
		campaign := fmt.Sprintf("Catalog %02d", c)
		for p, placement := range domain.Placements {
			clicks := float64((c*7+p*3)%40 + 1)
			sales := float64(((c + 1) * (p + 2) * 37) % 400)
			if (c+p)%3 == 0 {
				sales = 0
			}
			spend := clicks * (0.05 + float64((c*p)%25)*0.4)
			rows = append(rows, adjustmentRow(fmt.Sprintf("C%02d", c), campaign, placement, 0,
				domain.Metrics{Clicks: clicks, Spend: spend, Sales: sales, Orders: math.Ceil(sales / 30)}))
		}
	}

	outcome := OptimizePlacements(rows, CohortMultiSKU, settings)
	require.NotEmpty(t, outcome.Directives.Items)

	for _, d := range outcome.Directives.Items {
		require.NotNil(t, d.NewPercentage)
		assert.GreaterOrEqual(t, *d.NewPercentage, 0)
		assert.LessOrEqual(t, *d.NewPercentage, settings.Thresholds.MaxPlacementPercentage)
	}

	// cada campanha com diretivas tem exatamente um placement base
	bases := make(map[string]int)
	for _, d := range outcome.Directives.Items {
		if *d.NewPercentage == 0 {
			bases[d.Target.CampaignID]++
		}
	}
	for _, d := range outcome.Directives.Items {
		assert.GreaterOrEqual(t, bases[d.Target.CampaignID], 1)
	}
}
