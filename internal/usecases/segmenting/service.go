package segmenting

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rfm-segmentation-api/infrastructure/repository"
	"github.com/vfg2006/rfm-segmentation-api/internal/config"
	"github.com/vfg2006/rfm-segmentation-api/internal/domain"
	"github.com/vfg2006/rfm-segmentation-api/pkg/utils"
)

// Segmenter expõe a segmentação RFM para a API e para o agendador
type Segmenter interface {
	RunSegmentation(opts RunOptions) (*domain.SegmentationResult, error)
	ListRuns() ([]*domain.SegmentationRun, error)
	SegmentsByRun(runID string, segmentLabel string) ([]*domain.CustomerSegment, error)
	SummaryByRun(runID string) ([]*domain.SegmentSummary, error)
}

// RunOptions parametriza uma execução. ReferenceDate zero cai para a data
// configurada e, na ausência dela, para a data derivada do ledger
type RunOptions struct {
	ReferenceDate time.Time
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
}

// Options parametriza o núcleo puro da segmentação
type Options struct {
	// ReferenceDate zero → derivada como max(invoice_date) + 1 dia
	ReferenceDate time.Time
	// QuantileCount <= 0 → DefaultQuantileCount
	QuantileCount int
}

type Service struct {
	cfg              *config.Config
	transactionRepo  repository.TransactionRepository
	segmentationRepo repository.SegmentationRepository
	runMutex         sync.Mutex
}

func NewService(
	cfg *config.Config,
	transactionRepo repository.TransactionRepository,
	segmentationRepo repository.SegmentationRepository,
) Segmenter {
	return &Service{
		cfg:              cfg,
		transactionRepo:  transactionRepo,
		segmentationRepo: segmentationRepo,
	}
}

// RunSegmentation carrega o ledger, executa o pipeline completo e persiste a
// execução com os segmentos por cliente. Apenas uma execução por vez
func (s *Service) RunSegmentation(opts RunOptions) (*domain.SegmentationResult, error) {
	if !s.runMutex.TryLock() {
		return nil, ErrRunInFlight
	}
	defer s.runMutex.Unlock()

	referenceDate, err := s.resolveReferenceDate(opts.ReferenceDate)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.ListTransactions(opts.PeriodStart, opts.PeriodEnd)
	if err != nil {
		return nil, NewSegmentationError(ErrDatabaseOperation, "", "", "etapa", "carga do ledger")
	}

	logrus.WithFields(logrus.Fields{
		"transactions":   len(transactions),
		"reference_date": formatReferenceDate(referenceDate),
	}).Info("Iniciando execução da segmentação RFM")

	startedAt := time.Now()

	result, err := Segment(transactions, Options{
		ReferenceDate: referenceDate,
		QuantileCount: s.cfg.Segmentation.QuantileCount,
	})
	if err != nil {
		return nil, err
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, ErrGenerateRunID
	}

	result.Run.ID = runID
	result.Run.StartedAt = startedAt
	result.Run.CompletedAt = time.Now()

	if err := s.segmentationRepo.SaveRun(result.Run); err != nil {
		return nil, err
	}
	if err := s.segmentationRepo.SaveSegments(runID, result.Segments); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"run_id":         runID,
		"customers":      result.Run.CustomerCount,
		"reference_date": result.Run.ReferenceDate.Format(time.DateOnly),
		"derived":        result.Run.DerivedRefDate,
		"duration_ms":    result.Run.CompletedAt.Sub(startedAt).Milliseconds(),
	}).Info("Execução da segmentação RFM concluída")

	return result, nil
}

func (s *Service) ListRuns() ([]*domain.SegmentationRun, error) {
	return s.segmentationRepo.ListRuns()
}

func (s *Service) SegmentsByRun(runID string, segmentLabel string) ([]*domain.CustomerSegment, error) {
	run, err := s.segmentationRepo.GetRunByID(runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}

	return s.segmentationRepo.GetSegmentsByRun(runID, segmentLabel)
}

// SummaryByRun recompõe o resumo por segmento a partir dos segmentos
// persistidos de uma execução
func (s *Service) SummaryByRun(runID string) ([]*domain.SegmentSummary, error) {
	segments, err := s.SegmentsByRun(runID, "")
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[string]*domain.CustomerSegment, len(segments))
	for _, segment := range segments {
		byCustomer[segment.CustomerID] = segment
	}

	return computeSummary(byCustomer), nil
}

// resolveReferenceDate aplica a precedência: parâmetro explícito > data
// configurada > derivação do ledger (sinalizada pelo zero). Nunca cai
// silenciosamente para "agora"
func (s *Service) resolveReferenceDate(explicit time.Time) (time.Time, error) {
	if !explicit.IsZero() {
		return explicit, nil
	}

	configured, err := s.cfg.ParseReferenceDate()
	if err != nil {
		return time.Time{}, NewSegmentationError(ErrInvalidReferenceDate, "", "", "valor", s.cfg.Segmentation.ReferenceDate)
	}

	return configured, nil
}

// Segment é o núcleo puro do pipeline: agrega, pontua, classifica e resume.
// Não toca banco nem rede; toda a população precisa estar materializada em
// transactions antes da chamada (barreira global do scorer)
func Segment(transactions []domain.Transaction, opts Options) (*domain.SegmentationResult, error) {
	referenceDate := opts.ReferenceDate
	derived := false

	if referenceDate.IsZero() && len(transactions) > 0 {
		// mesmo snapshot do analisador original: última compra + 1 dia
		referenceDate = latestInvoiceDate(transactions).AddDate(0, 0, 1)
		derived = true

		logrus.WithField("reference_date", referenceDate.Format(time.DateOnly)).
			Info("Data de referência derivada do ledger (última compra + 1 dia)")
	}

	metrics, err := Aggregate(transactions, referenceDate)
	if err != nil {
		return nil, err
	}

	scored := Score(metrics, opts.QuantileCount)

	segments := make(map[string]*domain.CustomerSegment, len(scored))
	for customerID, sm := range scored {
		segments[customerID] = Classify(sm)
	}

	periodStart, periodEnd := ledgerPeriod(transactions)

	return &domain.SegmentationResult{
		Run: &domain.SegmentationRun{
			ReferenceDate:  referenceDate,
			DerivedRefDate: derived,
			CustomerCount:  len(segments),
			PeriodStart:    periodStart,
			PeriodEnd:      periodEnd,
		},
		Segments: segments,
		Summary:  computeSummary(segments),
		Stats:    computeStats(metrics, referenceDate, periodStart, periodEnd),
	}, nil
}

func latestInvoiceDate(transactions []domain.Transaction) time.Time {
	latest := transactions[0].InvoiceDate
	for _, tx := range transactions[1:] {
		if tx.InvoiceDate.After(latest) {
			latest = tx.InvoiceDate
		}
	}
	return latest
}

func ledgerPeriod(transactions []domain.Transaction) (time.Time, time.Time) {
	if len(transactions) == 0 {
		return time.Time{}, time.Time{}
	}

	start, end := transactions[0].InvoiceDate, transactions[0].InvoiceDate
	for _, tx := range transactions[1:] {
		if tx.InvoiceDate.Before(start) {
			start = tx.InvoiceDate
		}
		if tx.InvoiceDate.After(end) {
			end = tx.InvoiceDate
		}
	}
	return start, end
}

func formatReferenceDate(t time.Time) string {
	if t.IsZero() {
		return "derivada do ledger"
	}
	return t.Format(time.DateOnly)
}
