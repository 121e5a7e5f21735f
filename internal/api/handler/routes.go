package handler

import (
	"net/http"

	"github.com/vfg2006/rfm-segmentation-api/internal/api/handler/router"
	"github.com/vfg2006/rfm-segmentation-api/internal/usecases/authenticating"
	"github.com/vfg2006/rfm-segmentation-api/internal/usecases/segmenting"
	"github.com/vfg2006/rfm-segmentation-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Segmentation(service segmenting.Segmenter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/segmentation/run",
			Method:      http.MethodPost,
			Handler:     RunSegmentation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/segmentation/runs",
			Method:      http.MethodGet,
			Handler:     ListSegmentationRuns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/segmentation/runs/:id/segments",
			Method:      http.MethodGet,
			Handler:     GetRunSegments(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/segmentation/runs/:id/summary",
			Method:      http.MethodGet,
			Handler:     GetRunSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
