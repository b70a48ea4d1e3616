package optimizing

import (
	"strings"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

// Cohort separa campanhas de um único SKU das campanhas de catálogo
type Cohort string

const (
	CohortSingleSKU Cohort = "single-sku"
	CohortMultiSKU  Cohort = "multi-sku"
)

// IsSingleSKU segue a convenção de nomes: campanhas single-SKU começam pelo ASIN
func IsSingleSKU(campaignName string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(campaignName)), "b0")
}

// CohortOf devolve a coorte de uma campanha pelo nome
func CohortOf(campaignName string) Cohort {
	if IsSingleSKU(campaignName) {
		return CohortSingleSKU
	}
	return CohortMultiSKU
}

// GroupKey é a chave de agregação da coorte: ASIN para single-SKU, nome da campanha para multi-SKU
func (c Cohort) GroupKey(campaignName string) string {
	if c == CohortSingleSKU {
		return domain.CampaignASIN(campaignName)
	}
	return strings.TrimSpace(campaignName)
}

// Segment particiona as linhas pelas coortes sem descartar nem duplicar nenhuma
func Segment[T any](rows []T, campaignName func(T) string) (single []T, multi []T) {
	single = make([]T, 0)
	multi = make([]T, 0)
	for _, row := range rows {
		if IsSingleSKU(campaignName(row)) {
			single = append(single, row)
			continue
		}
		multi = append(multi, row)
	}
	return single, multi
}
