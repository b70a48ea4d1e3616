package exporting

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-optimizer-api/internal/bulk"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

func ptr[T any](v T) *T {
	return &v
}

func sampleReport() *domain.Report {
	keyword := domain.Directive{
		Stage:     domain.StageBid,
		Operation: domain.OperationUpdate,
		Target: domain.EntityRef{
			Product:      "Sponsored Products",
			EntityType:   domain.EntityKeyword,
			CampaignID:   "C1",
			AdGroupID:    "AG1",
			KeywordID:    "K1",
			CampaignName: "B0ABCDEFGH exact",
			AdGroupName:  "AG",
			KeywordText:  "shoes",
			MatchType:    domain.MatchExact,
		},
		State:  domain.StateEnabled,
		OldBid: ptr(0.80),
		NewBid: ptr(1.10),
		Remark: "0 clicks Optimized",
	}
	campaign := domain.Directive{
		Stage:     domain.StageBudget,
		Operation: domain.OperationUpdate,
		Target: domain.EntityRef{
			Product:      "Sponsored Products",
			EntityType:   domain.EntityCampaign,
			CampaignID:   "C1",
			CampaignName: "B0ABCDEFGH exact",
		},
		State:           domain.StateEnabled,
		OldBudget:       ptr(100.0),
		NewBudget:       ptr(200.0),
		BiddingStrategy: domain.BiddingStrategyDownOnly,
	}
	negative := domain.Directive{
		Stage:     domain.StageNegation,
		Operation: domain.OperationCreate,
		Target: domain.EntityRef{
			Product:     "Sponsored Products",
			EntityType:  domain.EntityNegativeKeyword,
			CampaignID:  "C2",
			AdGroupID:   "AG2",
			KeywordText: "free shoes",
			MatchType:   domain.MatchNegativeExact,
		},
		State: domain.StateEnabled,
	}

	return &domain.Report{
		RunID:       "run",
		GeneratedAt: time.Date(2024, 5, 10, 15, 4, 5, 0, time.UTC),
		Settings:    domain.DefaultSettings(),
		Bids:        domain.Found([]domain.Directive{keyword}, domain.EmptyReasonNoRows),
		Budgets:     domain.Found([]domain.Directive{campaign}, domain.EmptyReasonNoRows),
		Placements:  domain.Empty[domain.Directive](domain.EmptyReasonNoRows),
		Negations:   domain.Found([]domain.Directive{negative}, domain.EmptyReasonNoCandidates),
		Harvest:     domain.Empty[domain.HarvestCandidate](domain.EmptyReasonNoCandidates),
		PlacementDiagnostics: domain.Found([]domain.PlacementDiagnostic{{
			GroupKey:  "B0ABCDEFGH",
			Placement: domain.PlacementTop,
			IdealBid:  math.NaN(),
			Rule:      "insufficient data",
		}}, domain.EmptyReasonNoRows),
		Summaries: domain.Empty[domain.AggregateSummary](domain.EmptyReasonNoRows),
	}
}

func openExport(t *testing.T, report *domain.Report) *excelize.File {
	t.Helper()

	data, err := NewExporter().Export(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	return f
}

func TestExport_SheetsAndOrder(t *testing.T) {
	f := openExport(t, sampleReport())
	assert.Equal(t, SheetOrder, f.GetSheetList())
}

func TestExport_BidsOptimizedFollowsBulkSchema(t *testing.T) {
	f := openExport(t, sampleReport())

	rows, err := f.GetRows(SheetBidsOptimized)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, bulk.BulkColumns, rows[0])

	column := func(name string) int {
		for i, c := range bulk.BulkColumns {
			if c == name {
				return i
			}
		}
		t.Fatalf("coluna %s não existe", name)
		return -1
	}

	// keyword vem antes da campanha
	assert.Equal(t, "Keyword", rows[1][column(bulk.ColEntity)])
	assert.Equal(t, "1.1", rows[1][column(bulk.ColBid)])
	assert.Equal(t, "Campaign", rows[2][column(bulk.ColEntity)])
	assert.Equal(t, "200", rows[2][column(bulk.ColDailyBudget)])
	assert.Equal(t, domain.BiddingStrategyDownOnly, rows[2][column(bulk.ColBiddingStrategy)])
	assert.Equal(t, "B0ABCDEFGH exact", rows[2][column(bulk.ColCampaignName)])
}

func TestExport_SponsoredBrandsUsesBudgetColumn(t *testing.T) {
	report := sampleReport()
	report.Settings.AdProduct = domain.AdProductSponsoredBrands
	for i := range report.Budgets.Items {
		report.Budgets.Items[i].Target.Product = "Sponsored Brands"
	}

	f := openExport(t, report)

	rows, err := f.GetRows(SheetBidsOptimized)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, bulk.BulkHeader(domain.AdProductSponsoredBrands), rows[0])
	assert.Contains(t, rows[0], bulk.ColBudget)
	assert.NotContains(t, rows[0], bulk.ColDailyBudget)

	// a aba exportada volta pelo leitor com o orçamento preservado
	table := bulk.NewTable(SheetBidsOptimized, rows[0], rows[1:], bulk.BulkSchema(domain.AdProductSponsoredBrands), bulk.DefaultMatchThreshold)
	read, err := bulk.ReadBulkRows(table, domain.AdProductSponsoredBrands)
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, domain.EntityCampaign, read[1].EntityType)
	assert.Equal(t, "Sponsored Brands", read[1].Product)
	require.NotNil(t, read[1].DailyBudget)
	assert.Equal(t, 200.0, *read[1].DailyBudget)
}

func TestExport_Negations(t *testing.T) {
	f := openExport(t, sampleReport())

	rows, err := f.GetRows(SheetNegation)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := BulkRow(sampleReport().Negations.Items[0])
	assert.Equal(t, "Negative Keyword", row[1])
	assert.Equal(t, "Create", row[2])
	assert.Contains(t, rows[1], "Negative Exact")
	assert.Contains(t, rows[1], "free shoes")
}

func TestExport_EmptyStages(t *testing.T) {
	f := openExport(t, sampleReport())

	t.Run("colheita vazia recebe a nota", func(t *testing.T) {
		rows, err := f.GetRows(SheetNewCampaigns)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{string(domain.EmptyReasonNoCandidates)}, rows[1])
	})

	t.Run("placement vazio recebe o motivo", func(t *testing.T) {
		rows, err := f.GetRows(SheetPlacementChanges)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, string(domain.EmptyReasonNoRows), rows[1][0])
	})

	t.Run("lance ideal NaN fica em branco", func(t *testing.T) {
		rows, err := f.GetRows(SheetRPCBids)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Placement Top", rows[1][3])
		assert.Equal(t, "insufficient data", rows[1][len(rows[1])-1])
		assert.Equal(t, "", rows[1][12])
	})
}

func TestExport_EverythingEmpty(t *testing.T) {
	report := &domain.Report{Settings: domain.DefaultSettings()}

	f := openExport(t, report)
	assert.Equal(t, SheetOrder, f.GetSheetList())

	rows, err := f.GetRows(SheetBidsOptimized)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFileName(t *testing.T) {
	report := sampleReport()
	assert.Equal(t, "optimized_bulk_sp_20240510_150405.xlsx", FileName(report))

	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	report.Settings.StartDate, report.Settings.EndDate = &start, &end
	assert.Equal(t, "optimized_bulk_sp_20240401_20240430_20240510_150405.xlsx", FileName(report))
}
