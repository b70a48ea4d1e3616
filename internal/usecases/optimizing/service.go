package optimizing

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/blobstore"
	"github.com/vfg2006/ads-optimizer-api/internal/bulk"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/internal/exporting"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
	"github.com/vfg2006/ads-optimizer-api/pkg/metrics"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

// Input é um upload a ser otimizado. SearchTerms é opcional: sem ele o
// relatório de termos é procurado dentro da própria planilha bulk.
type Input struct {
	Bulk        io.Reader
	SearchTerms io.Reader
	Settings    domain.Settings
}

// StoredReport identifica a planilha gerada e guardada para download
type StoredReport struct {
	ID        string               `json:"id"`
	FileName  string               `json:"file_name"`
	ExpiresAt time.Time            `json:"expires_at"`
	Summary   domain.ReportSummary `json:"summary"`
}

//go:generate mockgen -source=service.go -destination=mocks/mock_optimizer.go -package=mocks

// Optimizer é o ponto de entrada usado pela API
type Optimizer interface {
	Optimize(ctx context.Context, in Input) (*domain.Report, error)
	OptimizeAndStore(ctx context.Context, in Input) (*StoredReport, error)
	Download(ctx context.Context, id string) (*blobstore.Blob, error)
}

type Service struct {
	store    blobstore.Store
	exporter exporting.Exporter
	ttl      time.Duration
	now      func() time.Time
}

func NewService(store blobstore.Store, exporter exporting.Exporter, ttl time.Duration) Optimizer {
	return &Service{
		store:    store,
		exporter: exporter,
		ttl:      ttl,
		now:      time.Now,
	}
}

// cohortOutput é o resultado das etapas de uma coorte
type cohortOutput struct {
	bids       domain.Result[domain.Directive]
	budgets    domain.Result[domain.Directive]
	placements PlacementOutcome
	negations  domain.Result[domain.Directive]
	harvest    domain.Result[domain.HarvestCandidate]
	summaries  []domain.AggregateSummary
}

type cohortInput struct {
	cohort      Cohort
	bulk        []domain.BulkRow
	searchTerms []domain.SearchTermRow
}

// Optimize executa o pipeline completo: leitura, segmentação, as etapas de cada
// coorte em paralelo e a consolidação do relatório
func (s *Service) Optimize(ctx context.Context, in Input) (*domain.Report, error) {
	started := s.now()
	settings := in.Settings
	runID := utils.NewRunID()

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"run_id":      runID,
		"ad_product":  settings.AdProduct,
		"target_acos": settings.TargetACOS,
	})

	if err := settings.Validate(); err != nil {
		metrics.RecordRun(string(settings.AdProduct), metrics.OutcomeValidationError, started)
		logger.WithError(err).Warn("Parâmetros de otimização inválidos")
		return nil, err
	}

	bulkRows, searchTerms, searchTermsReason, err := s.load(in)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, domain.ErrInputSchema) {
			outcome = metrics.OutcomeSchemaError
			logger.WithError(err).Warn("Planilha enviada fora do esquema esperado")
		} else {
			logger.WithError(err).Error("Erro ao ler a planilha enviada")
		}
		metrics.RecordRun(string(settings.AdProduct), outcome, started)
		return nil, err
	}

	account := NewAccountContext(bulkRows, searchTerms)

	singleBulk, multiBulk := Segment(bulkRows, func(r domain.BulkRow) string { return r.CampaignName })
	singleTerms, multiTerms := Segment(searchTerms, func(r domain.SearchTermRow) string {
		return account.CampaignName(r.CampaignID, r.CampaignName)
	})

	logger.WithFields(log.Fields{
		"single_sku_rows":  len(singleBulk),
		"multi_sku_rows":   len(multiBulk),
		"search_term_rows": len(searchTerms),
	}).Info("Iniciando otimização")

	cohorts := []cohortInput{
		{cohort: CohortSingleSKU, bulk: singleBulk, searchTerms: singleTerms},
		{cohort: CohortMultiSKU, bulk: multiBulk, searchTerms: multiTerms},
	}

	// As coortes não compartilham estado mutável; o AccountContext é só leitura
	outputs := make([]cohortOutput, len(cohorts))
	wg := sync.WaitGroup{}
	for i, c := range cohorts {
		i, c := i, c
		wg.Add(1)
		go func() {
			defer wg.Done()
			outputs[i] = runCohort(c, account, settings)
		}()
	}
	wg.Wait()

	report := &domain.Report{
		RunID:       runID,
		GeneratedAt: started,
		Settings:    settings,
	}
	s.merge(report, outputs)

	if searchTermsReason != domain.EmptyReasonNone {
		report.Negations = domain.Empty[domain.Directive](searchTermsReason)
		report.Harvest = domain.Empty[domain.HarvestCandidate](searchTermsReason)
	}

	s.logStages(logger, report)
	metrics.RecordRun(string(settings.AdProduct), metrics.OutcomeSuccess, started)

	return report, nil
}

func runCohort(in cohortInput, account *AccountContext, settings domain.Settings) cohortOutput {
	targeting := make([]domain.BulkRow, 0)
	for _, row := range in.bulk {
		if row.EntityType.IsTargeting() {
			targeting = append(targeting, row)
		}
	}

	summaries := Aggregate(targeting, func(r domain.BulkRow) domain.GroupKey {
		return domain.GroupKey{Group: in.cohort.GroupKey(r.CampaignName)}
	})

	return cohortOutput{
		bids:       OptimizeBids(in.bulk, in.cohort, account, settings),
		budgets:    OptimizeBudgets(in.bulk, settings),
		placements: OptimizePlacements(in.bulk, in.cohort, settings),
		negations:  OptimizeNegations(in.searchTerms, in.cohort, account, settings),
		harvest:    Harvest(in.searchTerms, in.cohort, account, settings),
		summaries:  summaries.Sorted(),
	}
}

func (s *Service) merge(report *domain.Report, outputs []cohortOutput) {
	var (
		bids, budgets, placements, negations []domain.Result[domain.Directive]
		harvest                              []domain.Result[domain.HarvestCandidate]
		diagnostics                          []domain.PlacementDiagnostic
		summaries                            []domain.AggregateSummary
	)

	for _, out := range outputs {
		bids = append(bids, out.bids)
		budgets = append(budgets, out.budgets)
		placements = append(placements, out.placements.Directives)
		negations = append(negations, out.negations)
		harvest = append(harvest, out.harvest)
		diagnostics = append(diagnostics, out.placements.Diagnostics...)
		summaries = append(summaries, out.summaries...)
	}

	report.Bids = sorted(domain.Merge(bids...))
	report.Budgets = sorted(domain.Merge(budgets...))
	report.Placements = sorted(domain.Merge(placements...))
	report.Negations = sorted(domain.Merge(negations...))
	report.Harvest = domain.Merge(harvest...)
	report.PlacementDiagnostics = domain.Found(diagnostics, domain.EmptyReasonNoRows)
	report.Summaries = domain.Found(summaries, domain.EmptyReasonNoRows)
}

func sorted(result domain.Result[domain.Directive]) domain.Result[domain.Directive] {
	domain.SortDirectives(result.Items)
	return result
}

func (s *Service) logStages(logger log.Logger, report *domain.Report) {
	stages := []struct {
		stage  domain.Stage
		count  int
		reason domain.EmptyReason
	}{
		{domain.StageBid, len(report.Bids.Items), report.Bids.Reason},
		{domain.StageBudget, len(report.Budgets.Items), report.Budgets.Reason},
		{domain.StagePlacement, len(report.Placements.Items), report.Placements.Reason},
		{domain.StageNegation, len(report.Negations.Items), report.Negations.Reason},
		{domain.StageHarvest, len(report.Harvest.Items), report.Harvest.Reason},
	}

	for _, st := range stages {
		metrics.RecordStage(string(st.stage), st.count, string(st.reason))
		if st.count == 0 {
			logger.Infof("Etapa %s sem linhas: %s", st.stage, st.reason)
			continue
		}
		logger.Infof("Etapa %s gerou %d linhas", st.stage, st.count)
	}

	logger.Debugf("Resumo da execução: %s", utils.PrettyJson(report.Summary()))
}

// load lê a aba de campanhas e o relatório de termos. A ausência do relatório
// de termos não é erro: só deixa negativação e colheita vazias com o motivo.
func (s *Service) load(in Input) ([]domain.BulkRow, []domain.SearchTermRow, domain.EmptyReason, error) {
	product := in.Settings.AdProduct

	book, err := bulk.OpenWorkbook(in.Bulk)
	if err != nil {
		return nil, nil, domain.EmptyReasonNone, err
	}
	defer book.Close()

	table, ok, err := book.Table(product.BulkSheet(), bulk.BulkSchema(product))
	if err != nil {
		return nil, nil, domain.EmptyReasonNone, err
	}
	if !ok {
		return nil, nil, domain.EmptyReasonNone, fmt.Errorf("%w: sheet %q not found", domain.ErrInputSchema, product.BulkSheet())
	}

	bulkRows, err := bulk.ReadBulkRows(table, product)
	if err != nil {
		return nil, nil, domain.EmptyReasonNone, err
	}

	termsBook := book
	if in.SearchTerms != nil {
		termsBook, err = bulk.OpenWorkbook(in.SearchTerms)
		if err != nil {
			return nil, nil, domain.EmptyReasonNone, err
		}
		defer termsBook.Close()
	}

	termsTable, ok, err := searchTermTable(termsBook, product, in.SearchTerms != nil)
	if err != nil {
		return nil, nil, domain.EmptyReasonNone, err
	}
	if !ok {
		return bulkRows, nil, domain.EmptyReasonNoSheet, nil
	}

	searchTerms, err := bulk.ReadSearchTermRows(termsTable)
	if err != nil {
		return nil, nil, domain.EmptyReasonNone, err
	}

	return bulkRows, searchTerms, domain.EmptyReasonNone, nil
}

// searchTermTable procura a aba do relatório de termos. Num arquivo enviado à
// parte com uma aba só, essa aba é usada qualquer que seja o nome.
func searchTermTable(book *bulk.Workbook, product domain.AdProduct, standalone bool) (*bulk.Table, bool, error) {
	if name := product.SearchTermSheet(); name != "" {
		table, ok, err := book.Table(name, bulk.SearchTermSchema)
		if err != nil || ok {
			return table, ok, err
		}
	}

	if sheets := book.SheetNames(); standalone && len(sheets) == 1 {
		return book.Table(sheets[0], bulk.SearchTermSchema)
	}

	return nil, false, nil
}

// OptimizeAndStore otimiza, gera a planilha e a guarda para download
func (s *Service) OptimizeAndStore(ctx context.Context, in Input) (*StoredReport, error) {
	report, err := s.Optimize(ctx, in)
	if err != nil {
		return nil, err
	}

	data, err := s.exporter.Export(report)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao exportar a planilha otimizada")
	}

	blob, err := s.store.Put(ctx, exporting.FileName(report), data, s.ttl)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao guardar a planilha otimizada")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"run_id":  report.RunID,
		"blob_id": blob.ID,
	}).Infof("Planilha %s disponível até %s", blob.Name, blob.ExpiresAt.Format(time.RFC3339))

	return &StoredReport{
		ID:        blob.ID,
		FileName:  blob.Name,
		ExpiresAt: blob.ExpiresAt,
		Summary:   report.Summary(),
	}, nil
}

// Download devolve a planilha guardada; expirada ou inexistente vira ErrBlobNotFound
func (s *Service) Download(ctx context.Context, id string) (*blobstore.Blob, error) {
	return s.store.Get(ctx, id)
}
