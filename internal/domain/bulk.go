package domain

import "strings"

// EntityType representa a coluna "Entity" do arquivo bulk da Amazon
type EntityType string

const (
	EntityCampaign                         EntityType = "Campaign"
	EntityAdGroup                          EntityType = "Ad Group"
	EntityProductAd                        EntityType = "Product Ad"
	EntityKeyword                          EntityType = "Keyword"
	EntityProductTargeting                 EntityType = "Product Targeting"
	EntityBiddingAdjustment                EntityType = "Bidding Adjustment"
	EntityNegativeKeyword                  EntityType = "Negative Keyword"
	EntityNegativeProductTargeting         EntityType = "Negative Product Targeting"
	EntityCampaignNegativeKeyword          EntityType = "Campaign Negative Keyword"
	EntityCampaignNegativeProductTargeting EntityType = "Campaign Negative Product Targeting"
)

// IsTargeting indica se a entidade recebe lance próprio (keyword ou product targeting)
func (e EntityType) IsTargeting() bool {
	return e == EntityKeyword || e == EntityProductTargeting
}

// IsNegative indica se a entidade é uma negativação (nível de ad group ou campanha)
func (e EntityType) IsNegative() bool {
	switch e {
	case EntityNegativeKeyword, EntityNegativeProductTargeting,
		EntityCampaignNegativeKeyword, EntityCampaignNegativeProductTargeting:
		return true
	}
	return false
}

// Placement representa a coluna "Placement" das linhas de Bidding Adjustment
type Placement string

const (
	PlacementNone           Placement = ""
	PlacementTop            Placement = "Placement Top"
	PlacementProductPage    Placement = "Placement Product Page"
	PlacementRestOfSearch   Placement = "Placement Rest Of Search"
	PlacementAmazonBusiness Placement = "Placement Amazon Business"
)

// Placements lista os placements na ordem em que aparecem na planilha exportada
var Placements = []Placement{
	PlacementTop,
	PlacementProductPage,
	PlacementRestOfSearch,
	PlacementAmazonBusiness,
}

// Order é a posição do placement em Placements; placements desconhecidos vão para o fim
func (p Placement) Order() int {
	for i, placement := range Placements {
		if placement == p {
			return i
		}
	}
	return len(Placements)
}

// ParsePlacement aceita tanto o valor do bulk quanto variações comuns dos relatórios
func ParsePlacement(raw string) Placement {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.TrimPrefix(value, "placement ")
	switch value {
	case "top", "top of search", "top of search on-amazon", "top of search (first page)":
		return PlacementTop
	case "product page", "product pages", "detail page on-amazon":
		return PlacementProductPage
	case "rest of search", "other on-amazon":
		return PlacementRestOfSearch
	case "amazon business":
		return PlacementAmazonBusiness
	}
	return PlacementNone
}

// MatchType representa a coluna "Match Type"
type MatchType string

const (
	MatchExact          MatchType = "exact"
	MatchPhrase         MatchType = "phrase"
	MatchBroad          MatchType = "broad"
	MatchNegativeExact  MatchType = "negative exact"
	MatchNegativePhrase MatchType = "negative phrase"
)

// ParseMatchType normaliza o texto do tipo de correspondência
func ParseMatchType(raw string) MatchType {
	return MatchType(strings.ToLower(strings.TrimSpace(raw)))
}

// BulkValue devolve o texto aceito pelo upload do bulk
func (m MatchType) BulkValue() string {
	switch m {
	case MatchNegativeExact:
		return "Negative Exact"
	case MatchNegativePhrase:
		return "Negative Phrase"
	}
	return string(m)
}

func (m MatchType) IsExact() bool {
	return m == MatchExact
}

func (m MatchType) IsNegative() bool {
	return strings.HasPrefix(string(m), "negative")
}

// State representa a coluna "State"
type State string

const (
	StateEnabled  State = "enabled"
	StatePaused   State = "paused"
	StateArchived State = "archived"
)

func ParseState(raw string) State {
	return State(strings.ToLower(strings.TrimSpace(raw)))
}

// Operation representa a coluna "Operation" do bulk
type Operation string

const (
	OperationCreate Operation = "Create"
	OperationUpdate Operation = "Update"
)

// BiddingStrategyDownOnly é a estratégia forçada em toda campanha com orçamento ajustado
const BiddingStrategyDownOnly = "Dynamic bids - down only"

// Metrics agrupa as métricas de performance comuns ao bulk e ao relatório de termos
type Metrics struct {
	Impressions float64
	Clicks      float64
	Spend       float64
	Sales       float64
	Orders      float64
	Units       float64
}

// Add soma as métricas de outra linha
func (m *Metrics) Add(other Metrics) {
	m.Impressions += other.Impressions
	m.Clicks += other.Clicks
	m.Spend += other.Spend
	m.Sales += other.Sales
	m.Orders += other.Orders
	m.Units += other.Units
}

// BulkRow é uma linha do arquivo de operações em massa
type BulkRow struct {
	Product                    string
	EntityType                 EntityType
	Operation                  Operation
	CampaignID                 string
	AdGroupID                  string
	PortfolioID                string
	AdID                       string
	KeywordID                  string
	ProductTargetingID         string
	CampaignName               string
	AdGroupName                string
	PortfolioName              string
	StartDate                  string
	EndDate                    string
	TargetingType              string
	State                      State
	CampaignState              State
	AdGroupState               State
	DailyBudget                *float64
	SKU                        string
	ASIN                       string
	AdGroupDefaultBid          *float64
	Bid                        *float64
	KeywordText                string
	MatchType                  MatchType
	BiddingStrategy            string
	Placement                  Placement
	Percentage                 *int
	ProductTargetingExpression string
	Metrics
}

// Performance implementa Measurable
func (r BulkRow) Performance() Metrics {
	return r.Metrics
}

// IsEnabled considera também o estado informativo de campanha e ad group quando presente
func (r BulkRow) IsEnabled() bool {
	if r.State != StateEnabled {
		return false
	}
	if r.CampaignState != "" && r.CampaignState != StateEnabled {
		return false
	}
	if r.AdGroupState != "" && r.AdGroupState != StateEnabled {
		return false
	}
	return true
}

// TargetText devolve o texto que identifica o alvo (keyword ou expressão)
func (r BulkRow) TargetText() string {
	if r.KeywordText != "" {
		return r.KeywordText
	}
	return r.ProductTargetingExpression
}

// SearchTermRow é uma linha do relatório de termos de pesquisa
type SearchTermRow struct {
	CampaignID                 string
	AdGroupID                  string
	KeywordID                  string
	ProductTargetingID         string
	CampaignName               string
	AdGroupName                string
	State                      State
	Bid                        *float64
	KeywordText                string
	MatchType                  MatchType
	ProductTargetingExpression string
	CustomerSearchTerm         string
	Metrics
}

// Performance implementa Measurable
func (r SearchTermRow) Performance() Metrics {
	return r.Metrics
}

// Measurable é qualquer linha que carrega métricas de performance
type Measurable interface {
	Performance() Metrics
}
