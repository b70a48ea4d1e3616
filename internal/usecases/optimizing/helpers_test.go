package optimizing

import "github.com/vfg2006/ads-optimizer-api/internal/domain"

func ptr[T any](v T) *T {
	return &v
}

func testSettings() domain.Settings {
	return domain.DefaultSettings()
}

func keywordRow(campaignID, campaignName, adGroupID, text string, bid float64, m domain.Metrics) domain.BulkRow {
	return domain.BulkRow{
		Product:      "Sponsored Products",
		EntityType:   domain.EntityKeyword,
		CampaignID:   campaignID,
		AdGroupID:    adGroupID,
		KeywordID:    "K-" + text,
		CampaignName: campaignName,
		AdGroupName:  "AG " + adGroupID,
		State:        domain.StateEnabled,
		Bid:          ptr(bid),
		KeywordText:  text,
		MatchType:    domain.MatchBroad,
		Metrics:      m,
	}
}

func adjustmentRow(campaignID, campaignName string, placement domain.Placement, percentage int, m domain.Metrics) domain.BulkRow {
	return domain.BulkRow{
		Product:       "Sponsored Products",
		EntityType:    domain.EntityBiddingAdjustment,
		CampaignID:    campaignID,
		CampaignName:  campaignName,
		State:         domain.StateEnabled,
		CampaignState: domain.StateEnabled,
		Placement:     placement,
		Percentage:    ptr(percentage),
		Metrics:       m,
	}
}

func searchTerm(campaignID, campaignName, adGroupID, term string, match domain.MatchType, m domain.Metrics) domain.SearchTermRow {
	return domain.SearchTermRow{
		CampaignID:         campaignID,
		AdGroupID:          adGroupID,
		CampaignName:       campaignName,
		AdGroupName:        "AG " + adGroupID,
		KeywordText:        "seed",
		MatchType:          match,
		CustomerSearchTerm: term,
		Metrics:            m,
	}
}
