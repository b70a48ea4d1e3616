package domain

// GroupKey identifica um agrupamento do agregador. Placement fica vazio nas
// granularidades que não separam por placement.
type GroupKey struct {
	Group     string
	Placement Placement
}

// AggregateSummary é o resumo de métricas de um grupo, com as razões derivadas
type AggregateSummary struct {
	Key  GroupKey
	Rows int
	Metrics
	CPC                float64
	RPC                float64
	AOV                float64
	Conversion         float64
	ACOS               float64
	ClicksToConversion float64
}

// NewAggregateSummary calcula as razões derivadas sem nunca dividir por zero
func NewAggregateSummary(key GroupKey, rows int, m Metrics) AggregateSummary {
	return AggregateSummary{
		Key:                key,
		Rows:               rows,
		Metrics:            m,
		CPC:                SafeDivide(m.Spend, m.Clicks),
		RPC:                SafeDivide(m.Sales, m.Clicks),
		AOV:                AverageOrderValue(m),
		Conversion:         SafeDivide(m.Orders, m.Clicks),
		ACOS:               SafeDivide(m.Spend, m.Sales),
		ClicksToConversion: SafeDivide(m.Clicks, m.Orders),
	}
}

// HasOrders indica se o grupo tem conversões suficientes para servir de base
func (s AggregateSummary) HasOrders() bool {
	return s.Orders > 0 && s.Clicks > 0
}

// SafeDivide devolve 0 quando o denominador é 0
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// AverageOrderValue usa unidades e, na ausência delas, pedidos
func AverageOrderValue(m Metrics) float64 {
	if m.Units > 0 {
		return m.Sales / m.Units
	}
	return SafeDivide(m.Sales, m.Orders)
}

// ACOS da própria linha (spend / sales)
func (m Metrics) ACOS() float64 {
	return SafeDivide(m.Spend, m.Sales)
}

// RPC da própria linha (sales / clicks)
func (m Metrics) RPC() float64 {
	return SafeDivide(m.Sales, m.Clicks)
}

// CPC da própria linha (spend / clicks)
func (m Metrics) CPC() float64 {
	return SafeDivide(m.Spend, m.Clicks)
}
