package handler

import (
	"net/http"

	"github.com/vfg2006/revenue-compare-api/internal/api/handler/router"
	"github.com/vfg2006/revenue-compare-api/internal/usecases/authenticating"
	"github.com/vfg2006/revenue-compare-api/internal/usecases/comparing"
	"github.com/vfg2006/revenue-compare-api/pkg/middleware"
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
	}
}

func Comparisons(service comparing.YearComparer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/thresholds/default",
			Method:      http.MethodGet,
			Handler:     GetDefaultThresholds(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/comparisons/years",
			Method:      http.MethodPost,
			Handler:     CompareYears(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/comparisons/years/export",
			Method:      http.MethodPost,
			Handler:     ExportYearComparison(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/comparisons/history",
			Method:      http.MethodGet,
			Handler:     ListComparisonHistory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Datasets(service comparing.DatasetAnalyzer, maxUploadBytes int64) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/datasets",
			Method:      http.MethodPost,
			Handler:     CreateDataset(service, maxUploadBytes),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/datasets",
			Method:      http.MethodGet,
			Handler:     ListDatasets(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/datasets/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteDataset(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/datasets/:id/points",
			Method:      http.MethodGet,
			Handler:     GetDatasetPoints(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/datasets/:id/statistics",
			Method:      http.MethodGet,
			Handler:     GetDatasetStatistics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/datasets/:id/growth",
			Method:      http.MethodGet,
			Handler:     GetDatasetGrowth(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/datasets/:id/export",
			Method:      http.MethodGet,
			Handler:     ExportDataset(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Samples(service comparing.SampleAnalyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/samples",
			Method:      http.MethodGet,
			Handler:     GetSample(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/samples/regenerate",
			Method:      http.MethodPost,
			Handler:     RegenerateSample(service),
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
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
