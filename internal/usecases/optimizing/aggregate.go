package optimizing

import (
	"sort"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

// Summaries indexa os resumos de um agregado por chave
type Summaries map[domain.GroupKey]domain.AggregateSummary

// Aggregate soma as métricas das linhas por chave e calcula as razões derivadas
func Aggregate[T domain.Measurable](rows []T, key func(T) domain.GroupKey) Summaries {
	totals := make(map[domain.GroupKey]*domain.Metrics)
	counts := make(map[domain.GroupKey]int)

	for _, row := range rows {
		k := key(row)
		if _, ok := totals[k]; !ok {
			totals[k] = &domain.Metrics{}
		}
		totals[k].Add(row.Performance())
		counts[k]++
	}

	summaries := make(Summaries, len(totals))
	for k, m := range totals {
		summaries[k] = domain.NewAggregateSummary(k, counts[k], *m)
	}

	return summaries
}

// Total agrega todas as linhas num único resumo
func Total[T domain.Measurable](rows []T, label string) domain.AggregateSummary {
	key := domain.GroupKey{Group: label}
	if summary, ok := Aggregate(rows, func(T) domain.GroupKey { return key })[key]; ok {
		return summary
	}
	return domain.NewAggregateSummary(key, 0, domain.Metrics{})
}

// Get devolve o resumo da chave; o booleano é falso quando o grupo não existe
func (s Summaries) Get(group string, placement domain.Placement) (domain.AggregateSummary, bool) {
	summary, ok := s[domain.GroupKey{Group: group, Placement: placement}]
	return summary, ok
}

// Sorted devolve os resumos ordenados por grupo e placement
func (s Summaries) Sorted() []domain.AggregateSummary {
	out := make([]domain.AggregateSummary, 0, len(s))
	for _, summary := range s {
		out = append(out, summary)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Group != out[j].Key.Group {
			return out[i].Key.Group < out[j].Key.Group
		}
		return out[i].Key.Placement.Order() < out[j].Key.Placement.Order()
	})

	return out
}
