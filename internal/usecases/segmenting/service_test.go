package segmenting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/rfm-segmentation-api/infrastructure/repository/mocks"
	"github.com/vfg2006/rfm-segmentation-api/internal/config"
	"github.com/vfg2006/rfm-segmentation-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// ledgerFixture monta o ledger de três clientes usado nos testes de ponta a
// ponta do pipeline:
//
//	A001 comprou ontem, uma vez, valor médio       -> New Customers
//	B002 compra sempre, gasta muito                -> Loyal Customers
//	C003 comprou uma vez há meses, valor baixo     -> Lost
func ledgerFixture() []domain.Transaction {
	return []domain.Transaction{
		{CustomerID: "A001", InvoiceID: "INV-A1", InvoiceDate: day(2011, 12, 9), UnitPrice: 100.0, Quantity: 1},

		{CustomerID: "B002", InvoiceID: "INV-B1", InvoiceDate: day(2011, 7, 15), UnitPrice: 100.0, Quantity: 1},
		{CustomerID: "B002", InvoiceID: "INV-B2", InvoiceDate: day(2011, 8, 20), UnitPrice: 100.0, Quantity: 1},
		{CustomerID: "B002", InvoiceID: "INV-B3", InvoiceDate: day(2011, 9, 25), UnitPrice: 100.0, Quantity: 1},
		{CustomerID: "B002", InvoiceID: "INV-B4", InvoiceDate: day(2011, 10, 30), UnitPrice: 100.0, Quantity: 1},
		{CustomerID: "B002", InvoiceID: "INV-B5", InvoiceDate: day(2011, 11, 30), UnitPrice: 100.0, Quantity: 1},

		{CustomerID: "C003", InvoiceID: "INV-C1", InvoiceDate: day(2011, 6, 13), UnitPrice: 20.0, Quantity: 1},
	}
}

func TestSegment_CenarioTresClientes(t *testing.T) {
	result, err := Segment(ledgerFixture(), Options{
		ReferenceDate: day(2011, 12, 10),
		QuantileCount: 5,
	})

	assert.NoError(t, err)
	assert.Len(t, result.Segments, 3)

	a := result.Segments["A001"]
	assert.Equal(t, 5, a.RScore)
	assert.Equal(t, 1, a.FScore)
	assert.Equal(t, 3, a.MScore)
	assert.Equal(t, "513", a.RFMCell)
	assert.Equal(t, domain.SegmentNewCustomers, a.SegmentLabel)

	b := result.Segments["B002"]
	assert.Equal(t, 3, b.RScore)
	assert.Equal(t, 5, b.FScore)
	assert.Equal(t, 5, b.MScore)
	assert.Equal(t, "355", b.RFMCell)
	assert.Equal(t, domain.SegmentLoyalCustomers, b.SegmentLabel)

	c := result.Segments["C003"]
	assert.Equal(t, 1, c.RScore)
	assert.Equal(t, 1, c.FScore)
	assert.Equal(t, 1, c.MScore)
	assert.Equal(t, "111", c.RFMCell)
	assert.Equal(t, domain.SegmentLost, c.SegmentLabel)

	// metadados da execução
	assert.Equal(t, day(2011, 12, 10), result.Run.ReferenceDate)
	assert.False(t, result.Run.DerivedRefDate)
	assert.Equal(t, 3, result.Run.CustomerCount)
	assert.Equal(t, day(2011, 6, 13), result.Run.PeriodStart)
	assert.Equal(t, day(2011, 12, 9), result.Run.PeriodEnd)

	// resumo: três segmentos com um cliente cada
	assert.Len(t, result.Summary, 3)
	for _, summary := range result.Summary {
		assert.Equal(t, 1, summary.CustomerCount)
		assert.Equal(t, 33.33, summary.CustomerPercentage)
	}

	assert.Equal(t, 3, result.Stats.TotalCustomers)
	assert.Equal(t, 1, result.Stats.MinRecency)
	assert.Equal(t, 180, result.Stats.MaxRecency)
	assert.Equal(t, 20.0, result.Stats.MinMonetary)
	assert.Equal(t, 500.0, result.Stats.MaxMonetary)
}

func TestSegment_DataDeReferenciaDerivadaDoLedger(t *testing.T) {
	// sem data explícita: deriva última compra + 1 dia (09/12 -> 10/12)
	result, err := Segment(ledgerFixture(), Options{QuantileCount: 5})

	assert.NoError(t, err)
	assert.True(t, result.Run.DerivedRefDate)
	assert.Equal(t, day(2011, 12, 10), result.Run.ReferenceDate)

	// os scores ficam idênticos aos da data explícita equivalente
	assert.Equal(t, domain.SegmentNewCustomers, result.Segments["A001"].SegmentLabel)
	assert.Equal(t, domain.SegmentLoyalCustomers, result.Segments["B002"].SegmentLabel)
	assert.Equal(t, domain.SegmentLost, result.Segments["C003"].SegmentLabel)
}

func TestSegment_LedgerVazio(t *testing.T) {
	result, err := Segment(nil, Options{QuantileCount: 5})

	assert.NoError(t, err)
	assert.Empty(t, result.Segments)
	assert.Empty(t, result.Summary)
	assert.Equal(t, 0, result.Run.CustomerCount)
	assert.Equal(t, 0, result.Stats.TotalCustomers)
}

func TestSegment_Idempotente(t *testing.T) {
	opts := Options{ReferenceDate: day(2011, 12, 10), QuantileCount: 5}

	first, err := Segment(ledgerFixture(), opts)
	assert.NoError(t, err)

	second, err := Segment(ledgerFixture(), opts)
	assert.NoError(t, err)

	for customerID, segment := range first.Segments {
		again := second.Segments[customerID]
		assert.Equal(t, segment.RFMCell, again.RFMCell)
		assert.Equal(t, segment.SegmentLabel, again.SegmentLabel)
	}
}

func segmentationConfig(referenceDate string) *config.Config {
	return &config.Config{
		Segmentation: config.Segmentation{
			ReferenceDate: referenceDate,
			QuantileCount: 5,
		},
	}
}

func TestService_RunSegmentation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTransactionRepo := mocks.NewMockTransactionRepository(ctrl)
	mockSegmentationRepo := mocks.NewMockSegmentationRepository(ctrl)

	service := &Service{
		cfg:              segmentationConfig("2011-12-10"),
		transactionRepo:  mockTransactionRepo,
		segmentationRepo: mockSegmentationRepo,
	}

	mockTransactionRepo.EXPECT().
		ListTransactions(gomock.Nil(), gomock.Nil()).
		Return(ledgerFixture(), nil)

	var savedRun *domain.SegmentationRun
	mockSegmentationRepo.EXPECT().
		SaveRun(gomock.Any()).
		DoAndReturn(func(run *domain.SegmentationRun) error {
			savedRun = run
			return nil
		})

	mockSegmentationRepo.EXPECT().
		SaveSegments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(runID string, segments map[string]*domain.CustomerSegment) error {
			assert.Len(t, segments, 3)
			return nil
		})

	result, err := service.RunSegmentation(RunOptions{})

	assert.NoError(t, err)
	assert.NotNil(t, savedRun)
	assert.Len(t, savedRun.ID, 6)
	assert.Equal(t, savedRun.ID, result.Run.ID)
	assert.Equal(t, day(2011, 12, 10), result.Run.ReferenceDate)
	assert.False(t, result.Run.DerivedRefDate)
	assert.False(t, result.Run.StartedAt.IsZero())
	assert.False(t, result.Run.CompletedAt.IsZero())
}

func TestService_RunSegmentation_ErroNoBanco(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTransactionRepo := mocks.NewMockTransactionRepository(ctrl)
	mockSegmentationRepo := mocks.NewMockSegmentationRepository(ctrl)

	service := &Service{
		cfg:              segmentationConfig(""),
		transactionRepo:  mockTransactionRepo,
		segmentationRepo: mockSegmentationRepo,
	}

	mockTransactionRepo.EXPECT().
		ListTransactions(gomock.Nil(), gomock.Nil()).
		Return(nil, assert.AnError)

	result, err := service.RunSegmentation(RunOptions{})

	assert.ErrorIs(t, err, ErrDatabaseOperation)
	assert.Nil(t, result)
}

func TestService_RunSegmentation_DataConfiguradaInvalida(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := &Service{
		cfg:              segmentationConfig("10/12/2011"),
		transactionRepo:  mocks.NewMockTransactionRepository(ctrl),
		segmentationRepo: mocks.NewMockSegmentationRepository(ctrl),
	}

	result, err := service.RunSegmentation(RunOptions{})

	assert.ErrorIs(t, err, ErrInvalidReferenceDate)
	assert.True(t, IsConfigurationError(err))
	assert.Nil(t, result)
}

func TestService_RunSegmentation_ExecucaoEmAndamento(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := &Service{
		cfg:              segmentationConfig(""),
		transactionRepo:  mocks.NewMockTransactionRepository(ctrl),
		segmentationRepo: mocks.NewMockSegmentationRepository(ctrl),
	}

	// simula outra execução segurando o mutex
	service.runMutex.Lock()
	defer service.runMutex.Unlock()

	result, err := service.RunSegmentation(RunOptions{})

	assert.ErrorIs(t, err, ErrRunInFlight)
	assert.Nil(t, result)
}

func TestService_SegmentsByRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSegmentationRepo := mocks.NewMockSegmentationRepository(ctrl)
	service := &Service{
		cfg:              segmentationConfig(""),
		segmentationRepo: mockSegmentationRepo,
	}

	tests := []struct {
		name     string
		runID    string
		label    string
		setup    func()
		validate func(t *testing.T, segments []*domain.CustomerSegment, err error)
	}{
		{
			name:  "Execução inexistente deve retornar erro",
			runID: "naoexiste",
			setup: func() {
				mockSegmentationRepo.EXPECT().
					GetRunByID("naoexiste").
					Return(nil, nil)
			},
			validate: func(t *testing.T, segments []*domain.CustomerSegment, err error) {
				assert.ErrorIs(t, err, ErrRunNotFound)
				assert.Nil(t, segments)
			},
		},
		{
			name:  "Execução existente deve repassar o filtro de segmento",
			runID: "run001",
			label: domain.SegmentLost,
			setup: func() {
				mockSegmentationRepo.EXPECT().
					GetRunByID("run001").
					Return(&domain.SegmentationRun{ID: "run001"}, nil)

				mockSegmentationRepo.EXPECT().
					GetSegmentsByRun("run001", domain.SegmentLost).
					Return([]*domain.CustomerSegment{
						{SegmentLabel: domain.SegmentLost},
					}, nil)
			},
			validate: func(t *testing.T, segments []*domain.CustomerSegment, err error) {
				assert.NoError(t, err)
				assert.Len(t, segments, 1)
				assert.Equal(t, domain.SegmentLost, segments[0].SegmentLabel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			segments, err := service.SegmentsByRun(tt.runID, tt.label)
			tt.validate(t, segments, err)
		})
	}
}

func TestService_SummaryByRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSegmentationRepo := mocks.NewMockSegmentationRepository(ctrl)
	service := &Service{
		cfg:              segmentationConfig(""),
		segmentationRepo: mockSegmentationRepo,
	}

	mockSegmentationRepo.EXPECT().
		GetRunByID("run001").
		Return(&domain.SegmentationRun{ID: "run001"}, nil)

	mockSegmentationRepo.EXPECT().
		GetSegmentsByRun("run001", "").
		Return([]*domain.CustomerSegment{
			{
				ScoredMetrics: domain.ScoredMetrics{
					CustomerMetrics: domain.CustomerMetrics{CustomerID: "A001", RecencyDays: 1, Frequency: 1, Monetary: 100.0},
				},
				SegmentLabel: domain.SegmentNewCustomers,
			},
			{
				ScoredMetrics: domain.ScoredMetrics{
					CustomerMetrics: domain.CustomerMetrics{CustomerID: "B002", RecencyDays: 10, Frequency: 5, Monetary: 300.0},
				},
				SegmentLabel: domain.SegmentLoyalCustomers,
			},
		}, nil)

	summary, err := service.SummaryByRun("run001")

	assert.NoError(t, err)
	assert.Len(t, summary, 2)

	for _, s := range summary {
		assert.Equal(t, 1, s.CustomerCount)
		assert.Equal(t, 50.0, s.CustomerPercentage)
	}
}
