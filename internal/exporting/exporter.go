package exporting

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const headerColumnWidth = 18

// Exporter transforma o relatório de uma execução na planilha final
type Exporter interface {
	Export(report *domain.Report) ([]byte, error)
}

type workbookExporter struct{}

func NewExporter() Exporter {
	return &workbookExporter{}
}

// buildSheets monta o conteúdo de todas as abas na ordem de SheetOrder
func buildSheets(report *domain.Report) []sheet {
	optimized := report.Optimized()
	domain.SortDirectives(optimized)
	product := report.Settings.AdProduct

	return []sheet{
		harvestSheet(report.Harvest),
		bulkSheet(SheetNegation, product, report.Negations.Items),
		bulkSheet(SheetBidsOptimized, product, optimized),
		diagnosticSheet(report.PlacementDiagnostics),
		summarySheet(report.Summaries),
		bidChangesSheet(report.Bids),
		budgetChangesSheet(report.Budgets),
		placementChangesSheet(report.Placements),
	}
}

// Export escreve uma aba por etapa mais a aba combinada de re-upload. Etapas
// vazias geram abas vazias (ou com a nota do motivo), nunca uma falha.
func (e *workbookExporter) Export(report *domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar estilo do cabeçalho")
	}

	for i, s := range buildSheets(report) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return nil, errors.Wrapf(err, "erro ao renomear a aba %q", s.name)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, errors.Wrapf(err, "erro ao criar a aba %q", s.name)
		}

		if err := writeSheet(f, s, headerStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar a planilha")
	}

	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	sw, err := f.NewStreamWriter(s.name)
	if err != nil {
		return errors.Wrapf(err, "erro ao abrir a aba %q", s.name)
	}

	if err := sw.SetColWidth(1, len(s.header), headerColumnWidth); err != nil {
		return errors.Wrapf(err, "erro ao ajustar colunas da aba %q", s.name)
	}

	header := make([]interface{}, len(s.header))
	for i, column := range s.header {
		header[i] = column
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return errors.Wrapf(err, "erro ao escrever cabeçalho da aba %q", s.name)
	}

	rows := s.rows
	if len(rows) == 0 && s.note != "" {
		rows = [][]interface{}{{s.note}}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return errors.Wrapf(err, "erro ao escrever linha %d da aba %q", i+2, s.name)
		}
	}

	return sw.Flush()
}

// FileName nomeia a planilha pelo produto, período analisado e horário da execução
func FileName(report *domain.Report) string {
	settings := report.Settings
	period := ""
	if settings.StartDate != nil && settings.EndDate != nil {
		period = fmt.Sprintf("_%s_%s", settings.StartDate.Format("20060102"), settings.EndDate.Format("20060102"))
	}

	generatedAt := report.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	return fmt.Sprintf("optimized_bulk_%s%s_%s.xlsx", settings.AdProduct, period, generatedAt.Format("20060102_150405"))
}
