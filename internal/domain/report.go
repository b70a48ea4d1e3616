package domain

import "time"

// Report é o resultado completo de uma execução do pipeline
type Report struct {
	RunID                string
	GeneratedAt          time.Time
	Settings             Settings
	Bids                 Result[Directive]
	Budgets              Result[Directive]
	Placements           Result[Directive]
	Negations            Result[Directive]
	Harvest              Result[HarvestCandidate]
	PlacementDiagnostics Result[PlacementDiagnostic]
	Summaries            Result[AggregateSummary]
}

// Optimized concatena as diretivas de lance, orçamento e placement
func (r *Report) Optimized() []Directive {
	out := make([]Directive, 0, len(r.Bids.Items)+len(r.Budgets.Items)+len(r.Placements.Items))
	out = append(out, r.Bids.Items...)
	out = append(out, r.Budgets.Items...)
	out = append(out, r.Placements.Items...)
	return out
}

// ReportSummary é o resumo devolvido pela API após uma execução
type ReportSummary struct {
	RunID        string            `json:"run_id"`
	Bids         int               `json:"bids"`
	Budgets      int               `json:"budgets"`
	Placements   int               `json:"placements"`
	Negations    int               `json:"negations"`
	Harvest      int               `json:"harvest"`
	EmptyReasons map[string]string `json:"empty_reasons,omitempty"`
}

// Summary monta o resumo com as contagens e os motivos de etapas vazias
func (r *Report) Summary() ReportSummary {
	summary := ReportSummary{
		RunID:        r.RunID,
		Bids:         len(r.Bids.Items),
		Budgets:      len(r.Budgets.Items),
		Placements:   len(r.Placements.Items),
		Negations:    len(r.Negations.Items),
		Harvest:      len(r.Harvest.Items),
		EmptyReasons: map[string]string{},
	}

	reasons := map[Stage]EmptyReason{
		StageBid:       r.Bids.Reason,
		StageBudget:    r.Budgets.Reason,
		StagePlacement: r.Placements.Reason,
		StageNegation:  r.Negations.Reason,
		StageHarvest:   r.Harvest.Reason,
	}
	for stage, reason := range reasons {
		if reason != EmptyReasonNone {
			summary.EmptyReasons[string(stage)] = string(reason)
		}
	}

	return summary
}
