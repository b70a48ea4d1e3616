package domain

// EmptyReason explica por que uma etapa não produziu linhas
type EmptyReason string

const (
	EmptyReasonNone         EmptyReason = ""
	EmptyReasonNoRows       EmptyReason = "no usable rows for this stage"
	EmptyReasonNoSheet      EmptyReason = "sheet not found in workbook"
	EmptyReasonNoCandidates EmptyReason = "No keywords found that meet analysis criteria"
	EmptyReasonNoChanges    EmptyReason = "no changes recommended"
)

// Result carrega o resultado de uma etapa ou o motivo de estar vazio
type Result[T any] struct {
	Items  []T
	Reason EmptyReason
}

// Found devolve os itens, usando whenEmpty como motivo se não houver nenhum
func Found[T any](items []T, whenEmpty EmptyReason) Result[T] {
	if len(items) == 0 {
		return Result[T]{Reason: whenEmpty}
	}
	return Result[T]{Items: items}
}

// Empty devolve um resultado vazio com o motivo informado
func Empty[T any](reason EmptyReason) Result[T] {
	return Result[T]{Reason: reason}
}

func (r Result[T]) IsEmpty() bool {
	return len(r.Items) == 0
}

// Merge concatena resultados de coortes diferentes. O motivo só é mantido
// quando nenhum deles trouxe itens.
func Merge[T any](results ...Result[T]) Result[T] {
	var merged Result[T]
	for _, r := range results {
		merged.Items = append(merged.Items, r.Items...)
		if merged.Reason == EmptyReasonNone {
			merged.Reason = r.Reason
		}
	}
	if len(merged.Items) > 0 {
		merged.Reason = EmptyReasonNone
	}
	return merged
}
