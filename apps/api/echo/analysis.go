package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/orientation/core/analysis"
)

type analysisApi struct {
	svc     *analysis.Service
	metrics *Metrics
}

func registerAnalysisAPI(g *echo.Group, authed []echo.MiddlewareFunc, svc *analysis.Service, metrics *Metrics) {
	api := analysisApi{svc: svc, metrics: metrics}

	ug := g.Group("/users/:id/analysis", append(authed, ctxUserOrCounselorMiddleware)...)
	ug.GET("", api.analyze)
	ug.POST("/email", api.sendReport)
}

// Handlers

func (api *analysisApi) analyze(ctx echo.Context) error {
	report, err := api.svc.Analyze(ctx.Request().Context(), ctx.Param("id"))
	api.metrics.observeAnalysis(err)
	if err != nil {
		return errors.Wrap(err, "analyzing test results")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *analysisApi) sendReport(ctx echo.Context) error {
	report, err := api.svc.SendReport(ctx.Request().Context(), ctx.Param("id"))
	api.metrics.observeAnalysis(err)
	if err != nil {
		return errors.Wrap(err, "sending analysis report")
	}
	return ctx.JSON(http.StatusAccepted, report)
}
