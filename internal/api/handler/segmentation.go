package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rfm-segmentation-api/internal/usecases/segmenting"
	"github.com/vfg2006/rfm-segmentation-api/pkg/apiErrors"
	"github.com/vfg2006/rfm-segmentation-api/pkg/utils"
)

// RunSegmentation dispara uma execução síncrona da segmentação RFM.
// reference_date é opcional (YYYY-MM-DD); sem ela vale a precedência
// configuração > derivação do ledger
func RunSegmentation(service segmenting.Segmenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := segmenting.RunOptions{}

		if refDateStr := r.URL.Query().Get("reference_date"); refDateStr != "" {
			refDate, err := utils.ParseDate(refDateStr)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "reference_date deve estar no formato YYYY-MM-DD", nil)
				return
			}
			opts.ReferenceDate = *refDate
		}

		if startStr := r.URL.Query().Get("period_start"); startStr != "" {
			start, err := utils.ParseDate(startStr)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "period_start deve estar no formato YYYY-MM-DD", nil)
				return
			}
			opts.PeriodStart = start
		}

		if endStr := r.URL.Query().Get("period_end"); endStr != "" {
			end, err := utils.ParseDate(endStr)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "period_end deve estar no formato YYYY-MM-DD", nil)
				return
			}
			opts.PeriodEnd = end
		}

		result, err := service.RunSegmentation(opts)
		if err != nil {
			handleSegmentationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error("Erro ao enviar resposta da segmentação:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// ListSegmentationRuns retorna o histórico de execuções, mais recente primeiro
func ListSegmentationRuns(service segmenting.Segmenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := service.ListRuns()
		if err != nil {
			logrus.Error("Erro ao listar execuções de segmentação:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar execuções", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(runs); err != nil {
			logrus.Error("Erro ao enviar resposta das execuções:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// GetRunSegments retorna os segmentos por cliente de uma execução, com filtro
// opcional ?segment=<rótulo>
func GetRunSegments(service segmenting.Segmenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if runID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da execução não informado", nil)
			return
		}

		segments, err := service.SegmentsByRun(runID, r.URL.Query().Get("segment"))
		if err != nil {
			handleSegmentationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(segments); err != nil {
			logrus.Error("Erro ao enviar resposta dos segmentos:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// GetRunSummary retorna o resumo por segmento de uma execução
func GetRunSummary(service segmenting.Segmenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if runID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da execução não informado", nil)
			return
		}

		summary, err := service.SummaryByRun(runID)
		if err != nil {
			handleSegmentationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logrus.Error("Erro ao enviar resposta do resumo:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// handleSegmentationError traduz erros do usecase para os códigos da API
func handleSegmentationError(w http.ResponseWriter, err error) {
	var segErr *segmenting.SegmentationError
	if errors.As(err, &segErr) && segmenting.IsConfigurationError(err) {
		apiErrors.WriteError(w, apiErrors.ErrSegmentationConfig, segErr.Error(), map[string]any{
			"customer_id": segErr.CustomerID,
			"invoice_id":  segErr.InvoiceID,
		})
		return
	}

	switch {
	case errors.Is(err, segmenting.ErrRunNotFound):
		apiErrors.WriteError(w, apiErrors.ErrRunNotFound, "Execução de segmentação não encontrada", nil)

	case errors.Is(err, segmenting.ErrRunInFlight):
		apiErrors.WriteError(w, apiErrors.ErrRunInFlight, "Já existe uma segmentação em execução", nil)

	case errors.Is(err, segmenting.ErrMissingCustomerID):
		apiErrors.WriteError(w, apiErrors.ErrSegmentationConfig, err.Error(), nil)

	case errors.Is(err, segmenting.ErrDatabaseOperation):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro de banco de dados durante a segmentação", nil)

	default:
		logrus.Error("Erro inesperado na segmentação:", err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao executar segmentação", nil)
	}
}
