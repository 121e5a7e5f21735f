package segmenting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/rfm-segmentation-api/internal/domain"
)

// metricsFixture monta uma população a partir de triplas (recency, frequency,
// monetary), com IDs sequenciais C001, C002, ...
func metricsFixture(triples [][3]float64) map[string]*domain.CustomerMetrics {
	metrics := make(map[string]*domain.CustomerMetrics, len(triples))
	for i, triple := range triples {
		id := fmt.Sprintf("C%03d", i+1)
		metrics[id] = &domain.CustomerMetrics{
			CustomerID:  id,
			RecencyDays: int(triple[0]),
			Frequency:   int(triple[1]),
			Monetary:    triple[2],
		}
	}
	return metrics
}

func TestScore_PopulacaoVazia(t *testing.T) {
	scored := Score(map[string]*domain.CustomerMetrics{}, DefaultQuantileCount)
	assert.Empty(t, scored)
}

func TestScore_ScoresDentroDaFaixa(t *testing.T) {
	triples := make([][3]float64, 0, 20)
	for i := 0; i < 20; i++ {
		triples = append(triples, [3]float64{float64(i * 7), float64(1 + i%4), float64(100 + i*13)})
	}

	scored := Score(metricsFixture(triples), DefaultQuantileCount)
	assert.Len(t, scored, 20)

	for id, s := range scored {
		assert.GreaterOrEqual(t, s.RScore, 1, "RScore fora da faixa para %s", id)
		assert.LessOrEqual(t, s.RScore, 5, "RScore fora da faixa para %s", id)
		assert.GreaterOrEqual(t, s.FScore, 1, "FScore fora da faixa para %s", id)
		assert.LessOrEqual(t, s.FScore, 5, "FScore fora da faixa para %s", id)
		assert.GreaterOrEqual(t, s.MScore, 1, "MScore fora da faixa para %s", id)
		assert.LessOrEqual(t, s.MScore, 5, "MScore fora da faixa para %s", id)
	}
}

func TestScore_InversaoDaRecencia(t *testing.T) {
	// 5 clientes com recencies crescentes: quanto mais recente, maior o score
	triples := [][3]float64{
		{0, 1, 100},
		{10, 1, 100},
		{20, 1, 100},
		{30, 1, 100},
		{40, 1, 100},
	}

	scored := Score(metricsFixture(triples), DefaultQuantileCount)

	assert.Equal(t, 5, scored["C001"].RScore) // compra mais recente
	assert.Equal(t, 4, scored["C002"].RScore)
	assert.Equal(t, 3, scored["C003"].RScore)
	assert.Equal(t, 2, scored["C004"].RScore)
	assert.Equal(t, 1, scored["C005"].RScore) // compra mais antiga
}

func TestScore_MonotoniaNoValorBruto(t *testing.T) {
	triples := make([][3]float64, 0, 50)
	for i := 0; i < 50; i++ {
		triples = append(triples, [3]float64{float64(i), float64(i % 12), float64(10 + i*i)})
	}

	scored := Score(metricsFixture(triples), DefaultQuantileCount)

	for idA, a := range scored {
		for idB, b := range scored {
			if a.Monetary > b.Monetary {
				assert.GreaterOrEqual(t, a.MScore, b.MScore,
					"monetary %v (%s) >= %v (%s) mas MScore %d < %d",
					a.Monetary, idA, b.Monetary, idB, a.MScore, b.MScore)
			}
			if a.RecencyDays > b.RecencyDays {
				assert.LessOrEqual(t, a.RScore, b.RScore,
					"recency %v (%s) > %v (%s) mas RScore %d > %d",
					a.RecencyDays, idA, b.RecencyDays, idB, a.RScore, b.RScore)
			}
		}
	}
}

func TestScore_EmpatesRecebemOMesmoScore(t *testing.T) {
	// metade da população com monetary 50, metade com 500
	triples := make([][3]float64, 0, 10)
	for i := 0; i < 5; i++ {
		triples = append(triples, [3]float64{float64(i), 1, 50})
	}
	for i := 0; i < 5; i++ {
		triples = append(triples, [3]float64{float64(50 + i), 1, 500})
	}

	scored := Score(metricsFixture(triples), DefaultQuantileCount)

	lowScore := scored["C001"].MScore
	highScore := scored["C006"].MScore

	for i := 1; i <= 5; i++ {
		assert.Equal(t, lowScore, scored[fmt.Sprintf("C%03d", i)].MScore)
	}
	for i := 6; i <= 10; i++ {
		assert.Equal(t, highScore, scored[fmt.Sprintf("C%03d", i)].MScore)
	}
	assert.Less(t, lowScore, highScore)
}

func TestScoreByValue(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		bins     int
		expected map[float64]int
	}{
		{
			name:     "Dez valores distintos espalham dois por faixa",
			values:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			bins:     5,
			expected: map[float64]int{10: 1, 20: 1, 30: 2, 40: 2, 50: 3, 60: 3, 70: 4, 80: 4, 90: 5, 100: 5},
		},
		{
			name:     "Cinco valores distintos caem um por faixa",
			values:   []float64{1, 2, 3, 4, 5},
			bins:     5,
			expected: map[float64]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5},
		},
		{
			name:     "Dois valores distintos ocupam os extremos",
			values:   []float64{1, 1, 1, 7, 7},
			bins:     5,
			expected: map[float64]int{1: 1, 7: 5},
		},
		{
			name:     "Três valores distintos espalham uniformemente",
			values:   []float64{1, 1, 2, 2, 3, 3},
			bins:     5,
			expected: map[float64]int{1: 1, 2: 3, 3: 5},
		},
		{
			name:     "Valor único recebe o score neutro",
			values:   []float64{4, 4, 4, 4},
			bins:     5,
			expected: map[float64]int{4: 3},
		},
		{
			name:     "Sem valores retorna mapa vazio",
			values:   []float64{},
			bins:     5,
			expected: map[float64]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scoreByValue(tt.values, tt.bins))
		})
	}
}

func TestScore_BinsInvalidoUsaPadrao(t *testing.T) {
	triples := [][3]float64{
		{0, 1, 100},
		{10, 2, 200},
		{20, 3, 300},
		{30, 4, 400},
		{40, 5, 500},
	}

	scored := Score(metricsFixture(triples), 0)

	// com o padrão de 5 faixas, 5 valores distintos ocupam 1..5
	assert.Equal(t, 5, scored["C005"].MScore)
	assert.Equal(t, 1, scored["C001"].MScore)
}

func TestScore_MesmoValorBrutoEmPopulacoesDiferentes(t *testing.T) {
	// o mesmo monetary bruto (300) muda de score conforme a população
	richPopulation := metricsFixture([][3]float64{
		{0, 1, 300},
		{1, 1, 1000},
		{2, 1, 2000},
		{3, 1, 3000},
		{4, 1, 4000},
	})
	poorPopulation := metricsFixture([][3]float64{
		{0, 1, 300},
		{1, 1, 10},
		{2, 1, 20},
		{3, 1, 30},
		{4, 1, 40},
	})

	rich := Score(richPopulation, DefaultQuantileCount)
	poor := Score(poorPopulation, DefaultQuantileCount)

	assert.Equal(t, 1, rich["C001"].MScore) // menor valor da população rica
	assert.Equal(t, 5, poor["C001"].MScore) // maior valor da população pobre
}
