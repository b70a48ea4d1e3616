package optimizing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

func TestIsSingleSKU(t *testing.T) {
	assert.True(t, IsSingleSKU("B0ABCDEFGH - Exact"))
	assert.True(t, IsSingleSKU("  b0abcdefgh auto"))
	assert.False(t, IsSingleSKU("Catalog - Shoes"))
	assert.False(t, IsSingleSKU(""))
}

func TestSegment_PartitionIsComplete(t *testing.T) {
	names := []string{"B0ABCDEFGH exact", "Catalog", "b0zzzzzzzz", "", "Brand B0", "B0", "shoes b0abcdefgh"}

	rows := make([]domain.BulkRow, 0)
	for i := 0; i < 50; i++ {
		rows = append(rows, domain.BulkRow{
			CampaignID:   fmt.Sprintf("C%d", i),
			CampaignName: names[i%len(names)],
		})
	}

	single, multi := Segment(rows, func(r domain.BulkRow) string { return r.CampaignName })
	assert.Equal(t, len(rows), len(single)+len(multi))

	seen := make(map[string]bool)
	for _, r := range single {
		assert.True(t, IsSingleSKU(r.CampaignName))
		seen[r.CampaignID] = true
	}
	for _, r := range multi {
		assert.False(t, IsSingleSKU(r.CampaignName))
		assert.False(t, seen[r.CampaignID], "linha nas duas coortes: %s", r.CampaignID)
		seen[r.CampaignID] = true
	}
	assert.Len(t, seen, len(rows))
}

func TestSegment_Empty(t *testing.T) {
	single, multi := Segment([]domain.SearchTermRow{}, func(r domain.SearchTermRow) string { return r.CampaignName })
	assert.Empty(t, single)
	assert.Empty(t, multi)
}

func TestCohort_GroupKey(t *testing.T) {
	assert.Equal(t, "B0ABCDEFGH", CohortSingleSKU.GroupKey("b0abcdefgh - exact"))
	assert.Equal(t, "Catalog - Shoes", CohortMultiSKU.GroupKey(" Catalog - Shoes "))
	assert.Equal(t, CohortSingleSKU, CohortOf("B0ABCDEFGH"))
	assert.Equal(t, CohortMultiSKU, CohortOf("Catalog"))
}
