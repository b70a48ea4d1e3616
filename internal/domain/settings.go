package domain

import (
	"math"
	"strings"
	"time"
)

// AdProduct identifica o produto de anúncio do arquivo bulk
type AdProduct string

const (
	AdProductSponsoredProducts AdProduct = "sp"
	AdProductSponsoredBrands   AdProduct = "sb"
	AdProductSponsoredDisplay  AdProduct = "sd"
)

// ParseAdProduct aceita "sp", "sb", "sd" e os nomes por extenso
func ParseAdProduct(raw string) (AdProduct, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "sp", "sponsored products":
		return AdProductSponsoredProducts, nil
	case "sb", "sponsored brands":
		return AdProductSponsoredBrands, nil
	case "sd", "sponsored display":
		return AdProductSponsoredDisplay, nil
	}
	return "", NewValidationError("ad_product", raw, "must be one of sp, sb, sd")
}

// BulkSheet é o nome da aba de campanhas no arquivo bulk
func (p AdProduct) BulkSheet() string {
	switch p {
	case AdProductSponsoredBrands:
		return "Sponsored Brands Campaigns"
	case AdProductSponsoredDisplay:
		return "Sponsored Display Campaigns"
	}
	return "Sponsored Products Campaigns"
}

// SearchTermSheet é o nome da aba do relatório de termos. Sponsored Display não tem.
func (p AdProduct) SearchTermSheet() string {
	switch p {
	case AdProductSponsoredBrands:
		return "SB Search Term Report"
	case AdProductSponsoredDisplay:
		return ""
	}
	return "SP Search Term Report"
}

// ProductLabel é o valor da coluna "Product" nas linhas exportadas
func (p AdProduct) ProductLabel() string {
	switch p {
	case AdProductSponsoredBrands:
		return "Sponsored Brands"
	case AdProductSponsoredDisplay:
		return "Sponsored Display"
	}
	return "Sponsored Products"
}

// Thresholds reúne as constantes de negócio usadas pelos otimizadores
type Thresholds struct {
	StrongBand      float64 // ACOS abaixo de StrongBand*target
	MediumBand      float64 // ACOS abaixo de MediumBand*target
	BudgetLightBand float64 // orçamento só cresce abaixo de BudgetLightBand*target

	StrongMultiplier float64
	MediumMultiplier float64
	LightMultiplier  float64

	BudgetStrongMultiplier float64
	BudgetMediumMultiplier float64
	BudgetLightMultiplier  float64
	BudgetSpendCap         float64
	MinBudget              float64

	ZeroClickNudge           float64
	RowCPCCap                float64
	ClicksToConversionFactor float64
	MaxPlacementPercentage   int
	MinBid                   float64
	HarvestMinOrders         float64
}

// DefaultThresholds devolve os valores calibrados pelo time de performance
func DefaultThresholds() Thresholds {
	return Thresholds{
		StrongBand:               0.5,
		MediumBand:               0.75,
		BudgetLightBand:          0.9,
		StrongMultiplier:         1.5,
		MediumMultiplier:         1.25,
		LightMultiplier:          1.1,
		BudgetStrongMultiplier:   2,
		BudgetMediumMultiplier:   1.5,
		BudgetLightMultiplier:    1.1,
		BudgetSpendCap:           10,
		MinBudget:                200,
		ZeroClickNudge:           1.1,
		RowCPCCap:                1.1,
		ClicksToConversionFactor: 3,
		MaxPlacementPercentage:   900,
		MinBid:                   1.00,
		HarvestMinOrders:         2,
	}
}

// BandMultiplier é o multiplicador escalonado aplicado quando ACOS <= target
func (t Thresholds) BandMultiplier(acos, target float64) float64 {
	switch {
	case acos < t.StrongBand*target:
		return t.StrongMultiplier
	case acos < t.MediumBand*target:
		return t.MediumMultiplier
	}
	return t.LightMultiplier
}

const (
	DefaultTargetACOS         = 0.30
	DefaultNegationMultiplier = 1.5
)

// Settings são os parâmetros de uma execução do otimizador
type Settings struct {
	TargetACOS         float64
	NegationMultiplier float64
	MinSearchVolume    int
	LookbackDays       int
	AdProduct          AdProduct
	StartDate          *time.Time
	EndDate            *time.Time
	Thresholds         Thresholds
}

// DefaultSettings devolve a configuração padrão do domínio
func DefaultSettings() Settings {
	return Settings{
		TargetACOS:         DefaultTargetACOS,
		NegationMultiplier: DefaultNegationMultiplier,
		AdProduct:          AdProductSponsoredProducts,
		Thresholds:         DefaultThresholds(),
	}
}

// Validate rejeita parâmetros inválidos antes de qualquer cálculo
func (s Settings) Validate() error {
	if math.IsNaN(s.TargetACOS) || s.TargetACOS <= 0 {
		return NewValidationError("target_acos", s.TargetACOS, "must be greater than 0")
	}

	if math.IsNaN(s.NegationMultiplier) || s.NegationMultiplier <= 0 {
		return NewValidationError("multiplier", s.NegationMultiplier, "must be greater than 0")
	}

	if s.MinSearchVolume < 0 {
		return NewValidationError("min_search_volume", s.MinSearchVolume, "must not be negative")
	}

	if s.LookbackDays < 0 {
		return NewValidationError("lookback_days", s.LookbackDays, "must not be negative")
	}

	if (s.StartDate == nil) != (s.EndDate == nil) {
		return NewValidationError("date_range", nil, "start_date and end_date must be informed together")
	}

	if s.StartDate != nil && s.StartDate.After(*s.EndDate) {
		return NewValidationError("date_range", s.StartDate.Format(time.DateOnly), "start_date must not be after end_date")
	}

	if _, err := ParseAdProduct(string(s.AdProduct)); err != nil {
		return err
	}

	return nil
}
