package segmenting

import (
	"fmt"

	"github.com/vfg2006/rfm-segmentation-api/internal/domain"
)

// scoreRange é um intervalo fechado de scores aceitos por uma regra
type scoreRange struct {
	min, max int
}

func (sr scoreRange) contains(score int) bool {
	return score >= sr.min && score <= sr.max
}

// segmentRule liga intervalos de (R, F, M) a um rótulo de segmento
type segmentRule struct {
	label string
	r     scoreRange
	f     scoreRange
	m     scoreRange
}

func (rule segmentRule) matches(s *domain.ScoredMetrics) bool {
	return rule.r.contains(s.RScore) && rule.f.contains(s.FScore) && rule.m.contains(s.MScore)
}

var anyScore = scoreRange{1, 5}

// segmentRules é a tabela de regras do classificador, avaliada em ordem —
// a primeira regra que casa vence. A tabela é total sobre [1,5]³: toda
// combinação de scores cai em exatamente um rótulo (verificado por teste
// exaustivo das 125 células).
var segmentRules = []segmentRule{
	{label: domain.SegmentChampions, r: scoreRange{4, 5}, f: scoreRange{4, 5}, m: scoreRange{4, 5}},
	{label: domain.SegmentLoyalCustomers, r: scoreRange{3, 5}, f: scoreRange{4, 5}, m: anyScore},
	{label: domain.SegmentBigSpenders, r: scoreRange{4, 5}, f: anyScore, m: scoreRange{4, 5}},
	{label: domain.SegmentNewCustomers, r: scoreRange{4, 5}, f: scoreRange{1, 2}, m: anyScore},
	{label: domain.SegmentPotentialLoyalists, r: scoreRange{4, 5}, f: anyScore, m: anyScore},
	{label: domain.SegmentNeedAttention, r: scoreRange{3, 3}, f: anyScore, m: anyScore},
	{label: domain.SegmentAtRisk, r: scoreRange{1, 2}, f: scoreRange{3, 5}, m: anyScore},
	{label: domain.SegmentHibernating, r: scoreRange{2, 2}, f: scoreRange{1, 2}, m: anyScore},
	{label: domain.SegmentLost, r: scoreRange{1, 1}, f: scoreRange{1, 2}, m: anyScore},
}

// Classify atribui o rótulo de segmento e a célula RFM de um cliente a partir
// dos seus scores. Função pura, sem efeitos colaterais.
func Classify(scored *domain.ScoredMetrics) *domain.CustomerSegment {
	segment := &domain.CustomerSegment{
		ScoredMetrics: *scored,
		RFMCell:       RFMCell(scored.RScore, scored.FScore, scored.MScore),
	}

	for _, rule := range segmentRules {
		if rule.matches(scored) {
			segment.SegmentLabel = rule.label
			return segment
		}
	}

	// inalcançável com a tabela total acima; protege contra edição futura
	segment.SegmentLabel = domain.SegmentNeedAttention
	return segment
}

// RFMCell concatena os três scores na ordem R-F-M (ex.: "543")
func RFMCell(r, f, m int) string {
	return fmt.Sprintf("%d%d%d", r, f, m)
}
