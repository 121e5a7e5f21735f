package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rfm-segmentation-api/internal/scheduler"
	"github.com/vfg2006/rfm-segmentation-api/pkg/apiErrors"
)

// Tipos de cron job aceitos pela rota de execução manual
const (
	CronJobTypeSegmentation = "segmentation"
)

// CronJobServices contém os serviços de cron disponíveis para disparo manual
type CronJobServices struct {
	SegmentationSyncService *scheduler.SegmentationSyncService
}

// RunCronJob dispara manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeSegmentation:
			if services.SegmentationSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de segmentação agendada não disponível", nil)
				return
			}
			services.SegmentationSyncService.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: segmentation", nil)
			return
		}

		logrus.WithField("type", cronType).Info("Cron job disparada manualmente")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}

		if services.SegmentationSyncService != nil {
			status[CronJobTypeSegmentation] = services.SegmentationSyncService.Status()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logrus.Error("Erro ao enviar status das crons:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
