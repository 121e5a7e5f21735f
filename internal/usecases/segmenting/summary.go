package segmenting

import (
	"sort"
	"time"

	"github.com/vfg2006/rfm-segmentation-api/internal/domain"
	"github.com/vfg2006/rfm-segmentation-api/pkg/utils"
)

// computeSummary agrega os segmentos em um resumo por rótulo: contagem de
// clientes, médias e medianas de R/F/M, receita total e os percentuais de
// clientes e de receita. Ordenado por contagem de clientes, decrescente
func computeSummary(segments map[string]*domain.CustomerSegment) []*domain.SegmentSummary {
	type bucket struct {
		recency   []float64
		frequency []float64
		monetary  []float64
	}

	buckets := make(map[string]*bucket)
	totalRevenue := 0.0

	for _, segment := range segments {
		b, ok := buckets[segment.SegmentLabel]
		if !ok {
			b = &bucket{}
			buckets[segment.SegmentLabel] = b
		}

		b.recency = append(b.recency, float64(segment.RecencyDays))
		b.frequency = append(b.frequency, float64(segment.Frequency))
		b.monetary = append(b.monetary, segment.Monetary)
		totalRevenue += segment.Monetary
	}

	summaries := make([]*domain.SegmentSummary, 0, len(buckets))
	for label, b := range buckets {
		revenue := sum(b.monetary)

		summary := &domain.SegmentSummary{
			SegmentLabel:    label,
			CustomerCount:   len(b.monetary),
			AvgRecency:      utils.RoundWithTwoDecimalPlace(mean(b.recency)),
			MedianRecency:   utils.RoundWithTwoDecimalPlace(median(b.recency)),
			AvgFrequency:    utils.RoundWithTwoDecimalPlace(mean(b.frequency)),
			MedianFrequency: utils.RoundWithTwoDecimalPlace(median(b.frequency)),
			AvgMonetary:     utils.RoundWithTwoDecimalPlace(mean(b.monetary)),
			MedianMonetary:  utils.RoundWithTwoDecimalPlace(median(b.monetary)),
			TotalRevenue:    utils.RoundWithTwoDecimalPlace(revenue),
		}

		if len(segments) > 0 {
			summary.CustomerPercentage = utils.RoundWithTwoDecimalPlace(
				float64(summary.CustomerCount) / float64(len(segments)) * 100,
			)
		}
		if totalRevenue > 0 {
			summary.RevenuePercentage = utils.RoundWithTwoDecimalPlace(revenue / totalRevenue * 100)
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CustomerCount != summaries[j].CustomerCount {
			return summaries[i].CustomerCount > summaries[j].CustomerCount
		}
		return summaries[i].SegmentLabel < summaries[j].SegmentLabel
	})

	return summaries
}

// computeStats resume a distribuição das métricas da população inteira
func computeStats(
	metrics map[string]*domain.CustomerMetrics,
	referenceDate time.Time,
	periodStart, periodEnd time.Time,
) *domain.PopulationStats {
	stats := &domain.PopulationStats{
		TotalCustomers: len(metrics),
		ReferenceDate:  referenceDate,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
	}

	if len(metrics) == 0 {
		return stats
	}

	recency := make([]float64, 0, len(metrics))
	frequency := make([]float64, 0, len(metrics))
	monetary := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		recency = append(recency, float64(m.RecencyDays))
		frequency = append(frequency, float64(m.Frequency))
		monetary = append(monetary, m.Monetary)
	}

	stats.MinRecency = int(minOf(recency))
	stats.MaxRecency = int(maxOf(recency))
	stats.AvgRecency = utils.RoundWithTwoDecimalPlace(mean(recency))
	stats.MinFrequency = int(minOf(frequency))
	stats.MaxFrequency = int(maxOf(frequency))
	stats.AvgFrequency = utils.RoundWithTwoDecimalPlace(mean(frequency))
	stats.MinMonetary = minOf(monetary)
	stats.MaxMonetary = maxOf(monetary)
	stats.AvgMonetary = utils.RoundWithTwoDecimalPlace(mean(monetary))

	return stats
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
