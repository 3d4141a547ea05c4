package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/orientation/core/assessment"
)

type assessmentApi struct {
	svc      *assessment.Service
	validate *validator.Validate
}

func registerAssessmentAPI(g *echo.Group, authed []echo.MiddlewareFunc, svc *assessment.Service, validate *validator.Validate) {
	api := assessmentApi{svc: svc, validate: validate}

	g.GET("/tests/catalog", api.catalog)
	g.POST("/tests", api.submit, authed...)

	ug := g.Group("/users/:id", append(authed, ctxUserOrCounselorMiddleware)...)
	ug.GET("/tests", api.queryByUser)
}

// Handlers

func (api *assessmentApi) catalog(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, assessment.Catalogs)
}

func (api *assessmentApi) submit(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	// results belong to onboarded users only
	if _, ok := getContextProfile(ctx); !ok {
		return errHttpForbidden
	}

	var data assessment.NewTestResult
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTestResult")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Submit(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "submitting test result")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *assessmentApi) queryByUser(ctx echo.Context) error {
	results, err := api.svc.QueryByUser(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying test results")
	}
	if results == nil {
		results = []assessment.TestResult{}
	}
	return ctx.JSON(http.StatusOK, results)
}
