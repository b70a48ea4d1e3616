package config

import "github.com/vfg2006/ads-optimizer-api/internal/domain"

// Settings converte a configuração do ambiente nos parâmetros padrão de execução
func (o Optimizer) Settings() domain.Settings {
	settings := domain.DefaultSettings()

	if o.TargetACOS > 0 {
		settings.TargetACOS = o.TargetACOS
	}
	if o.NegationMultiplier > 0 {
		settings.NegationMultiplier = o.NegationMultiplier
	}
	if o.MinBid > 0 {
		settings.Thresholds.MinBid = o.MinBid
	}
	if o.MinBudget > 0 {
		settings.Thresholds.MinBudget = o.MinBudget
	}
	if o.MaxPlacementPercentage > 0 {
		settings.Thresholds.MaxPlacementPercentage = o.MaxPlacementPercentage
	}
	settings.MinSearchVolume = o.MinSearchVolume
	settings.LookbackDays = o.LookbackDays

	return settings
}
