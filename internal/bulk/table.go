package bulk

import (
	"math"
	"strconv"
	"strings"
)

// Table é uma aba da planilha com os cabeçalhos já normalizados
type Table struct {
	Name    string
	Header  []string
	Rows    [][]string
	Mapping map[string]string
	index   map[string]int
}

// NewTable normaliza o cabeçalho contra o esquema e indexa as colunas
func NewTable(name string, header []string, rows [][]string, schema Schema, threshold float64) *Table {
	mapping := NormalizeHeaders(header, schema, threshold)

	normalized := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, column := range header {
		normalized[i] = mapping[column]
		if _, exists := index[normalized[i]]; !exists {
			index[normalized[i]] = i
		}
	}

	return &Table{
		Name:    name,
		Header:  normalized,
		Rows:    rows,
		Mapping: mapping,
		index:   index,
	}
}

// Has indica se a coluna canônica existe na aba
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Missing devolve as colunas obrigatórias ausentes
func (t *Table) Missing(required ...string) []string {
	var missing []string
	for _, column := range required {
		if !t.Has(column) {
			missing = append(missing, column)
		}
	}
	return missing
}

// Len devolve a quantidade de linhas de dados
func (t *Table) Len() int {
	return len(t.Rows)
}

// Value devolve o texto da célula ou "" quando a coluna ou a célula não existem
func (t *Table) Value(row int, column string) string {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][i])
}

// First devolve o primeiro valor não vazio entre as colunas informadas
func (t *Table) First(row int, columns ...string) string {
	for _, column := range columns {
		if v := t.Value(row, column); v != "" {
			return v
		}
	}
	return ""
}

// Float converte a célula para número; células vazias ou inválidas valem 0
func (t *Table) Float(row int, column string) float64 {
	v, ok := parseNumber(t.Value(row, column))
	if !ok {
		return 0
	}
	return v
}

// FloatPtr devolve nil quando a célula está vazia
func (t *Table) FloatPtr(row int, column string) *float64 {
	v, ok := parseNumber(t.Value(row, column))
	if !ok {
		return nil
	}
	return &v
}

// IntPtr devolve nil quando a célula está vazia
func (t *Table) IntPtr(row int, column string) *int {
	v, ok := parseNumber(t.Value(row, column))
	if !ok {
		return nil
	}
	n := int(math.Round(v))
	return &n
}

// parseNumber aceita separador de milhar, símbolo de moeda e sinal de porcentagem
func parseNumber(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || cleaned == "-" {
		return 0, false
	}

	cleaned = strings.NewReplacer(",", "", "$", "", "€", "", "£", "", "₹", "", "%", "", " ", "").Replace(cleaned)

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
