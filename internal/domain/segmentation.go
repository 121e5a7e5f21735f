package domain

import "time"

// Rótulos de segmento atribuídos pela tabela de regras do classificador
const (
	SegmentChampions          = "Champions"
	SegmentLoyalCustomers     = "Loyal Customers"
	SegmentBigSpenders        = "Big Spenders"
	SegmentNewCustomers       = "New Customers"
	SegmentPotentialLoyalists = "Potential Loyalists"
	SegmentNeedAttention      = "Need Attention"
	SegmentAtRisk             = "At Risk"
	SegmentHibernating        = "Hibernating"
	SegmentLost               = "Lost"
)

// CustomerMetrics é o triplo (Recency, Frequency, Monetary) de um cliente,
// calculado sobre todas as suas transações em relação à data de referência
type CustomerMetrics struct {
	CustomerID   string    `json:"customer_id"`
	RecencyDays  int       `json:"recency_days"`
	Frequency    int       `json:"frequency"`
	Monetary     float64   `json:"monetary"`
	LastPurchase time.Time `json:"last_purchase"`
}

// ScoredMetrics adiciona os scores ordinais 1-5 calculados sobre a
// distribuição da população inteira — os scores são relativos, não absolutos
type ScoredMetrics struct {
	CustomerMetrics
	RScore int `json:"r_score"`
	FScore int `json:"f_score"`
	MScore int `json:"m_score"`
}

// CustomerSegment é o artefato final por cliente de uma execução de
// segmentação
type CustomerSegment struct {
	ScoredMetrics
	RFMCell      string `json:"rfm_cell"`
	SegmentLabel string `json:"segment_label"`
}

// SegmentationRun registra uma execução completa da segmentação
type SegmentationRun struct {
	ID             string    `json:"id"`
	ReferenceDate  time.Time `json:"reference_date"`
	DerivedRefDate bool      `json:"derived_reference_date"`
	CustomerCount  int       `json:"customer_count"`
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// SegmentSummary agrega estatísticas de um segmento para o relatório final
type SegmentSummary struct {
	SegmentLabel       string  `json:"segment_label"`
	CustomerCount      int     `json:"customer_count"`
	CustomerPercentage float64 `json:"customer_percentage"`
	AvgRecency         float64 `json:"avg_recency"`
	MedianRecency      float64 `json:"median_recency"`
	AvgFrequency       float64 `json:"avg_frequency"`
	MedianFrequency    float64 `json:"median_frequency"`
	AvgMonetary        float64 `json:"avg_monetary"`
	MedianMonetary     float64 `json:"median_monetary"`
	TotalRevenue       float64 `json:"total_revenue"`
	RevenuePercentage  float64 `json:"revenue_percentage"`
}

// PopulationStats resume a população de clientes de uma execução
type PopulationStats struct {
	TotalCustomers int       `json:"total_customers"`
	ReferenceDate  time.Time `json:"reference_date"`
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
	MinRecency     int       `json:"min_recency"`
	MaxRecency     int       `json:"max_recency"`
	AvgRecency     float64   `json:"avg_recency"`
	MinFrequency   int       `json:"min_frequency"`
	MaxFrequency   int       `json:"max_frequency"`
	AvgFrequency   float64   `json:"avg_frequency"`
	MinMonetary    float64   `json:"min_monetary"`
	MaxMonetary    float64   `json:"max_monetary"`
	AvgMonetary    float64   `json:"avg_monetary"`
}

// SegmentationResult é a saída completa de uma execução, consumida pelos
// colaboradores de relatório
type SegmentationResult struct {
	Run      *SegmentationRun            `json:"run"`
	Segments map[string]*CustomerSegment `json:"segments"`
	Summary  []*SegmentSummary           `json:"summary"`
	Stats    *PopulationStats            `json:"stats"`
}
