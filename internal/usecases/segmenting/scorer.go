package segmenting

import (
	"math"
	"sort"

	"github.com/vfg2006/rfm-segmentation-api/internal/domain"
)

// DefaultQuantileCount é o número de faixas usado na pontuação (quintis)
const DefaultQuantileCount = 5

// Score converte as métricas brutas de toda a população em scores ordinais
// [1, bins] por métrica. Os scores são relativos à distribuição da população
// da execução atual: a mesma métrica bruta pode receber scores diferentes em
// populações diferentes.
//
// Recency é invertida: quanto mais recente a compra (menor o valor bruto),
// maior o score. Frequency e Monetary crescem junto com o valor bruto.
//
// Clientes com valores idênticos recebem sempre o mesmo score — o corte por
// quantil é feito sobre valores, nunca sobre posições, então empates jamais
// são divididos entre faixas vizinhas.
func Score(metrics map[string]*domain.CustomerMetrics, bins int) map[string]*domain.ScoredMetrics {
	if bins <= 0 {
		bins = DefaultQuantileCount
	}

	scored := make(map[string]*domain.ScoredMetrics, len(metrics))
	if len(metrics) == 0 {
		return scored
	}

	recency := make([]float64, 0, len(metrics))
	frequency := make([]float64, 0, len(metrics))
	monetary := make([]float64, 0, len(metrics))
	for _, m := range metrics {
		recency = append(recency, float64(m.RecencyDays))
		frequency = append(frequency, float64(m.Frequency))
		monetary = append(monetary, float64(m.Monetary))
	}

	recencyScores := scoreByValue(recency, bins)
	frequencyScores := scoreByValue(frequency, bins)
	monetaryScores := scoreByValue(monetary, bins)

	for customerID, m := range metrics {
		scored[customerID] = &domain.ScoredMetrics{
			CustomerMetrics: *m,
			// recency invertida: score ascendente no valor bruto vira bins+1-s
			RScore: bins + 1 - recencyScores[float64(m.RecencyDays)],
			FScore: frequencyScores[float64(m.Frequency)],
			MScore: monetaryScores[float64(m.Monetary)],
		}
	}

	return scored
}

// scoreByValue atribui um score ascendente [1, bins] a cada valor distinto.
//
// Com bins ou mais valores distintos, o score é o percentil acumulado de
// clientes com valor <= v: ceil(bins × acumulado / N), limitado a [1, bins].
// Com menos valores distintos que bins (caso degenerado, comum em Frequency),
// os valores distintos ordenados são espalhados uniformemente sobre [1, bins];
// um único valor distinto recebe o score neutro do meio da faixa.
func scoreByValue(values []float64, bins int) map[float64]int {
	distinct := distinctSorted(values)

	scores := make(map[float64]int, len(distinct))
	switch {
	case len(distinct) == 0:
		return scores

	case len(distinct) == 1:
		scores[distinct[0]] = (bins + 1) / 2

	case len(distinct) < bins:
		step := float64(bins-1) / float64(len(distinct)-1)
		for i, v := range distinct {
			scores[v] = 1 + int(math.Round(float64(i)*step))
		}

	default:
		counts := make(map[float64]int, len(distinct))
		for _, v := range values {
			counts[v]++
		}

		total := len(values)
		cumulative := 0
		for _, v := range distinct {
			cumulative += counts[v]

			score := int(math.Ceil(float64(bins) * float64(cumulative) / float64(total)))
			if score < 1 {
				score = 1
			}
			if score > bins {
				score = bins
			}
			scores[v] = score
		}
	}

	return scores
}

func distinctSorted(values []float64) []float64 {
	seen := make(map[float64]struct{}, len(values))
	distinct := make([]float64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}

	sort.Float64s(distinct)
	return distinct
}
