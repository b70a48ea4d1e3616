package bulk

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Workbook encapsula uma planilha xlsx recebida no upload
type Workbook struct {
	file      *excelize.File
	threshold float64
}

// OpenWorkbook lê a planilha inteira em memória
func OpenWorkbook(r io.Reader) (*Workbook, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir a planilha")
	}

	return &Workbook{file: file, threshold: DefaultMatchThreshold}, nil
}

// Close libera os arquivos temporários do excelize
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames lista as abas da planilha
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// resolveSheet procura a aba pelo nome exato e, em seguida, pelo nome mais
// parecido entre as abas do mesmo produto. "SB Search Term Report" nunca cai em
// "SP Search Term Report", por mais parecidos que os nomes sejam.
func (w *Workbook) resolveSheet(name string) (string, bool) {
	sheets := w.file.GetSheetList()
	for _, sheet := range sheets {
		if normalizeName(sheet) == normalizeName(name) {
			return sheet, true
		}
	}

	family := sheetFamily(name)
	best, bestScore := "", -1.0
	for _, sheet := range sheets {
		if Similarity(sheetFamily(sheet), family) <= w.threshold {
			continue
		}
		if score := Similarity(sheet, name); score > bestScore {
			best, bestScore = sheet, score
		}
	}
	if bestScore > w.threshold {
		return best, true
	}

	return "", false
}

// sheetFamily é o trecho do nome da aba que identifica o produto:
// "sp" em "SP Search Term Report", "sponsored brands" em "Sponsored Brands Campaigns"
func sheetFamily(name string) string {
	fields := strings.Fields(normalizeName(name))
	switch {
	case len(fields) == 0:
		return ""
	case fields[0] == "sponsored" && len(fields) > 1:
		return fields[0] + " " + fields[1]
	}
	return fields[0]
}

// Table carrega a aba pedida e normaliza os cabeçalhos contra o esquema informado.
// O booleano é falso quando a aba não existe.
func (w *Workbook) Table(name string, schema Schema) (*Table, bool, error) {
	sheet, ok := w.resolveSheet(name)
	if !ok {
		return nil, false, nil
	}

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, false, errors.Wrapf(err, "erro ao ler a aba %q", sheet)
	}

	var header []string
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		data = append(data, row)
	}

	return NewTable(sheet, header, data, schema, w.threshold), true, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ReadBulkRows converte a aba de campanhas em linhas tipadas
func ReadBulkRows(t *Table, product domain.AdProduct) ([]domain.BulkRow, error) {
	if missing := t.Missing(bulkRequired...); len(missing) > 0 {
		return nil, &domain.InputSchemaError{Sheet: t.Name, Columns: missing}
	}
	if !t.Has(ColCampaignName) && !t.Has(ColCampaignNameInfo) {
		return nil, &domain.InputSchemaError{Sheet: t.Name, Columns: []string{ColCampaignName}}
	}

	rows := make([]domain.BulkRow, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		entity := domain.EntityType(t.Value(i, ColEntity))
		if entity == "" {
			continue
		}

		productLabel := t.Value(i, ColProduct)
		if productLabel == "" {
			productLabel = product.ProductLabel()
		}

		defaultBid := t.FloatPtr(i, ColAdGroupDefaultBid)
		if defaultBid == nil {
			defaultBid = t.FloatPtr(i, ColAdGroupDefaultBidInfo)
		}

		rows = append(rows, domain.BulkRow{
			Product:                    productLabel,
			EntityType:                 entity,
			Operation:                  domain.Operation(t.Value(i, ColOperation)),
			CampaignID:                 t.Value(i, ColCampaignID),
			AdGroupID:                  t.Value(i, ColAdGroupID),
			PortfolioID:                t.Value(i, ColPortfolioID),
			AdID:                       t.Value(i, ColAdID),
			KeywordID:                  t.Value(i, ColKeywordID),
			ProductTargetingID:         t.Value(i, ColProductTargetingID),
			CampaignName:               t.First(i, ColCampaignName, ColCampaignNameInfo),
			AdGroupName:                t.First(i, ColAdGroupName, ColAdGroupNameInfo),
			PortfolioName:              t.Value(i, ColPortfolioNameInfo),
			StartDate:                  t.Value(i, ColStartDate),
			EndDate:                    t.Value(i, ColEndDate),
			TargetingType:              t.Value(i, ColTargetingType),
			State:                      domain.ParseState(t.Value(i, ColState)),
			CampaignState:              domain.ParseState(t.Value(i, ColCampaignStateInfo)),
			AdGroupState:               domain.ParseState(t.Value(i, ColAdGroupStateInfo)),
			DailyBudget:                t.FloatPtr(i, ColDailyBudget),
			SKU:                        t.Value(i, ColSKU),
			ASIN:                       t.Value(i, ColASINInfo),
			AdGroupDefaultBid:          defaultBid,
			Bid:                        t.FloatPtr(i, ColBid),
			KeywordText:                t.Value(i, ColKeywordText),
			MatchType:                  domain.ParseMatchType(t.Value(i, ColMatchType)),
			BiddingStrategy:            t.Value(i, ColBiddingStrategy),
			Placement:                  domain.ParsePlacement(t.Value(i, ColPlacement)),
			Percentage:                 t.IntPtr(i, ColPercentage),
			ProductTargetingExpression: t.Value(i, ColProductTargetingExpression),
			Metrics:                    readMetrics(t, i),
		})
	}

	return rows, nil
}

// ReadSearchTermRows converte a aba do relatório de termos de pesquisa
func ReadSearchTermRows(t *Table) ([]domain.SearchTermRow, error) {
	if missing := t.Missing(searchTermRequired...); len(missing) > 0 {
		return nil, &domain.InputSchemaError{Sheet: t.Name, Columns: missing}
	}

	rows := make([]domain.SearchTermRow, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		term := t.Value(i, ColCustomerSearchTerm)
		if term == "" {
			continue
		}

		rows = append(rows, domain.SearchTermRow{
			CampaignID:                 t.Value(i, ColCampaignID),
			AdGroupID:                  t.Value(i, ColAdGroupID),
			KeywordID:                  t.Value(i, ColKeywordID),
			ProductTargetingID:         t.Value(i, ColProductTargetingID),
			CampaignName:               t.First(i, ColCampaignNameInfo, ColCampaignName),
			AdGroupName:                t.First(i, ColAdGroupNameInfo, ColAdGroupName),
			State:                      domain.ParseState(t.Value(i, ColState)),
			Bid:                        t.FloatPtr(i, ColBid),
			KeywordText:                t.Value(i, ColKeywordText),
			MatchType:                  domain.ParseMatchType(t.Value(i, ColMatchType)),
			ProductTargetingExpression: t.Value(i, ColProductTargetingExpression),
			CustomerSearchTerm:         term,
			Metrics:                    readMetrics(t, i),
		})
	}

	return rows, nil
}

func readMetrics(t *Table, row int) domain.Metrics {
	return domain.Metrics{
		Impressions: t.Float(row, ColImpressions),
		Clicks:      t.Float(row, ColClicks),
		Spend:       t.Float(row, ColSpend),
		Sales:       t.Float(row, ColSales),
		Orders:      t.Float(row, ColOrders),
		Units:       t.Float(row, ColUnits),
	}
}
