package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/rfm-segmentation-api/infrastructure/database/postgres"
	"github.com/vfg2006/rfm-segmentation-api/internal/domain"
)

const (
	segmentationRunsTable = "segmentation_runs"
	customerSegmentsTable = "customer_segments"
)

// SegmentationRepository persiste execuções de segmentação e os segmentos por
// cliente, consumidos pelas fases de relatório
type SegmentationRepository interface {
	SaveRun(run *domain.SegmentationRun) error
	GetRunByID(runID string) (*domain.SegmentationRun, error)
	ListRuns() ([]*domain.SegmentationRun, error)
	SaveSegments(runID string, segments map[string]*domain.CustomerSegment) error
	GetSegmentsByRun(runID string, segmentLabel string) ([]*domain.CustomerSegment, error)
}

type segmentationRepository struct {
	conn *postgres.Connection
}

func NewSegmentationRepository(conn *postgres.Connection) SegmentationRepository {
	return &segmentationRepository{
		conn: conn,
	}
}

func (r *segmentationRepository) SaveRun(run *domain.SegmentationRun) error {
	query, args, err := squirrel.
		Insert(segmentationRunsTable).
		Columns(
			"id", "reference_date", "derived_reference_date", "customer_count",
			"period_start", "period_end", "started_at", "completed_at",
		).
		Values(
			run.ID,
			run.ReferenceDate.Format(time.DateOnly),
			run.DerivedRefDate,
			run.CustomerCount,
			run.PeriodStart,
			run.PeriodEnd,
			run.StartedAt,
			run.CompletedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao salvar execução: %w", err)
	}

	return nil
}

func (r *segmentationRepository) GetRunByID(runID string) (*domain.SegmentationRun, error) {
	query, args, err := squirrel.
		Select("id, reference_date, derived_reference_date, customer_count, period_start, period_end, started_at, completed_at, created_at").
		From(segmentationRunsTable).
		Where(squirrel.Eq{"id": runID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	run, err := r.scanRun(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear execução: %w", err)
	}

	return run, nil
}

func (r *segmentationRepository) ListRuns() ([]*domain.SegmentationRun, error) {
	query, args, err := squirrel.
		Select("id, reference_date, derived_reference_date, customer_count, period_start, period_end, started_at, completed_at, created_at").
		From(segmentationRunsTable).
		OrderBy("started_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.SegmentationRun, 0)
	for rows.Next() {
		run, err := r.scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear execução: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return runs, nil
}

// SaveSegments grava os segmentos de uma execução em lote, com upsert em
// (run_id, customer_id) para tornar a gravação idempotente
func (r *segmentationRepository) SaveSegments(runID string, segments map[string]*domain.CustomerSegment) error {
	if len(segments) == 0 {
		return nil
	}

	builder := squirrel.StatementBuilder.
		Insert(customerSegmentsTable).
		Columns(
			"run_id", "customer_id", "recency_days", "frequency", "monetary",
			"r_score", "f_score", "m_score", "rfm_cell", "segment_label",
		).
		Suffix(`
			ON CONFLICT (run_id, customer_id) DO UPDATE SET
				recency_days = EXCLUDED.recency_days,
				frequency = EXCLUDED.frequency,
				monetary = EXCLUDED.monetary,
				r_score = EXCLUDED.r_score,
				f_score = EXCLUDED.f_score,
				m_score = EXCLUDED.m_score,
				rfm_cell = EXCLUDED.rfm_cell,
				segment_label = EXCLUDED.segment_label
		`).
		PlaceholderFormat(squirrel.Dollar)

	for _, segment := range segments {
		builder = builder.Values(
			runID,
			segment.CustomerID,
			segment.RecencyDays,
			segment.Frequency,
			segment.Monetary,
			segment.RScore,
			segment.FScore,
			segment.MScore,
			segment.RFMCell,
			segment.SegmentLabel,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao salvar segmentos: %w", err)
	}

	return nil
}

func (r *segmentationRepository) GetSegmentsByRun(runID string, segmentLabel string) ([]*domain.CustomerSegment, error) {
	builder := squirrel.
		Select("customer_id, recency_days, frequency, monetary, r_score, f_score, m_score, rfm_cell, segment_label").
		From(customerSegmentsTable).
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("customer_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if segmentLabel != "" {
		builder = builder.Where(squirrel.Eq{"segment_label": segmentLabel})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	segments := make([]*domain.CustomerSegment, 0)
	for rows.Next() {
		segment := &domain.CustomerSegment{}
		err := rows.Scan(
			&segment.CustomerID,
			&segment.RecencyDays,
			&segment.Frequency,
			&segment.Monetary,
			&segment.RScore,
			&segment.FScore,
			&segment.MScore,
			&segment.RFMCell,
			&segment.SegmentLabel,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear segmento: %w", err)
		}
		segments = append(segments, segment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return segments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *segmentationRepository) scanRun(row rowScanner) (*domain.SegmentationRun, error) {
	run := &domain.SegmentationRun{}

	err := row.Scan(
		&run.ID,
		&run.ReferenceDate,
		&run.DerivedRefDate,
		&run.CustomerCount,
		&run.PeriodStart,
		&run.PeriodEnd,
		&run.StartedAt,
		&run.CompletedAt,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return run, nil
}
