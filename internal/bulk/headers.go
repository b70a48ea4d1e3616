package bulk

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultMatchThreshold é a similaridade mínima (0-100) para aceitar um cabeçalho
const DefaultMatchThreshold = 80.0

// Similarity devolve a razão de Levenshtein entre dois textos numa escala de 0 a 100.
// A comparação ignora caixa e espaços nas pontas.
func Similarity(a, b string) float64 {
	a = normalizeName(a)
	b = normalizeName(b)

	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(distance)/float64(longest))
}

// NormalizeHeaders mapeia cada coluna recebida para o nome canônico mais parecido.
// Correspondências exatas vêm primeiro, depois os aliases do esquema e só então a
// busca aproximada. Colunas sem correspondência acima do limiar seguem com o nome
// original, e cada nome canônico é atribuído a no máximo uma coluna.
func NormalizeHeaders(raw []string, schema Schema, threshold float64) map[string]string {
	mapping := make(map[string]string, len(raw))
	claimed := make(map[string]bool, len(schema.Columns))

	byLower := make(map[string]string, len(schema.Columns))
	for _, name := range schema.Columns {
		byLower[normalizeName(name)] = name
	}

	aliases := make(map[string]string, len(schema.Aliases))
	for alias, name := range schema.Aliases {
		aliases[normalizeName(alias)] = name
	}

	// Uma coluna parecida não pode roubar o nome canônico de outra que já existe na planilha
	pending := make([]string, 0, len(raw))
	for _, column := range raw {
		if name, ok := byLower[normalizeName(column)]; ok && !claimed[name] {
			mapping[column] = name
			claimed[name] = true
			continue
		}
		pending = append(pending, column)
	}

	fuzzy := make([]string, 0, len(pending))
	for _, column := range pending {
		if name, ok := aliases[normalizeName(column)]; ok && !claimed[name] {
			mapping[column] = name
			claimed[name] = true
			continue
		}
		fuzzy = append(fuzzy, column)
	}

	for _, column := range fuzzy {
		best, bestScore := "", -1.0
		for _, name := range schema.Columns {
			if claimed[name] {
				continue
			}
			if score := Similarity(column, name); score > bestScore {
				best, bestScore = name, score
			}
		}

		if best != "" && bestScore > threshold {
			mapping[column] = best
			claimed[best] = true
			continue
		}

		mapping[column] = column
	}

	return mapping
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
