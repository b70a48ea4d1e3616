package domain

import (
	"math"
	"sort"
)

// Stage identifica a etapa do otimizador que produziu uma diretiva
type Stage string

const (
	StageBid       Stage = "bid"
	StageBudget    Stage = "budget"
	StagePlacement Stage = "placement"
	StageNegation  Stage = "negation"
	StageHarvest   Stage = "harvest"
)

// EntityRef identifica a entidade do bulk alvo de uma diretiva
type EntityRef struct {
	Product                    string
	EntityType                 EntityType
	CampaignID                 string
	AdGroupID                  string
	KeywordID                  string
	ProductTargetingID         string
	CampaignName               string
	AdGroupName                string
	KeywordText                string
	MatchType                  MatchType
	ProductTargetingExpression string
	Placement                  Placement
}

// RefFromBulkRow copia os campos de identidade de uma linha do bulk
func RefFromBulkRow(row BulkRow) EntityRef {
	return EntityRef{
		Product:                    row.Product,
		EntityType:                 row.EntityType,
		CampaignID:                 row.CampaignID,
		AdGroupID:                  row.AdGroupID,
		KeywordID:                  row.KeywordID,
		ProductTargetingID:         row.ProductTargetingID,
		CampaignName:               row.CampaignName,
		AdGroupName:                row.AdGroupName,
		KeywordText:                row.KeywordText,
		MatchType:                  row.MatchType,
		ProductTargetingExpression: row.ProductTargetingExpression,
		Placement:                  row.Placement,
	}
}

// Directive é a unidade de saída do otimizador. Só o exportador consome.
// Uma negativação é uma Directive com Operation Create e entidade negativa.
type Directive struct {
	Stage           Stage
	Operation       Operation
	Target          EntityRef
	State           State
	OldBid          *float64
	NewBid          *float64
	OldBudget       *float64
	NewBudget       *float64
	OldPercentage   *int
	NewPercentage   *int
	BiddingStrategy string
	Remark          string
}

// EntityPriority define a ordem das linhas na aba "Bids Optimized"
func EntityPriority(entity EntityType) int {
	switch entity {
	case EntityKeyword:
		return 0
	case EntityProductTargeting:
		return 1
	case EntityBiddingAdjustment:
		return 2
	case EntityCampaign:
		return 3
	}
	return 4
}

// SortDirectives ordena por prioridade de entidade, campanha, ad group e alvo
func SortDirectives(directives []Directive) {
	sort.SliceStable(directives, func(i, j int) bool {
		a, b := directives[i].Target, directives[j].Target
		if pa, pb := EntityPriority(a.EntityType), EntityPriority(b.EntityType); pa != pb {
			return pa < pb
		}
		if a.CampaignName != b.CampaignName {
			return a.CampaignName < b.CampaignName
		}
		if a.AdGroupName != b.AdGroupName {
			return a.AdGroupName < b.AdGroupName
		}
		if a.KeywordText != b.KeywordText {
			return a.KeywordText < b.KeywordText
		}
		if a.ProductTargetingExpression != b.ProductTargetingExpression {
			return a.ProductTargetingExpression < b.ProductTargetingExpression
		}
		return a.Placement.Order() < b.Placement.Order()
	})
}

// HarvestTarget é o tipo de alvo sugerido para um termo colhido
type HarvestTarget string

const (
	HarvestKeywordExact HarvestTarget = "Keyword (exact)"
	HarvestProductASIN  HarvestTarget = "Product Targeting (asin)"
)

// HarvestCandidate é um termo convertido que deve virar alvo explícito
type HarvestCandidate struct {
	GroupKey     string
	CampaignID   string
	CampaignName string
	AdGroupID    string
	AdGroupName  string
	SearchTerm   string
	Target       HarvestTarget
	Expression   string
	Metrics
	ACOS     float64
	CPC      float64
	RPC      float64
	IdealBid float64
	Remark   string
}

// PlacementDiagnostic é uma linha da aba "RPC & Bids"
type PlacementDiagnostic struct {
	GroupKey     string
	CampaignID   string
	CampaignName string
	Placement    Placement
	Metrics
	RPC        float64
	CPC        float64
	ACOS       float64
	IdealBid   float64
	Percentage *int
	Rule       string
}

// HasIdealBid indica que o placement tem dados suficientes
func (d PlacementDiagnostic) HasIdealBid() bool {
	return !math.IsNaN(d.IdealBid)
}
