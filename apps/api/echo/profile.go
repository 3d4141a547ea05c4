package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/orientation/core/profile"
)

type profileApi struct {
	svc      *profile.Service
	validate *validator.Validate
}

func registerProfileAPI(g *echo.Group, authed []echo.MiddlewareFunc, svc *profile.Service, validate *validator.Validate) {
	api := profileApi{svc: svc, validate: validate}

	pg := g.Group("/profiles", authed...)
	pg.GET("", api.query, counselorMiddleware)
	pg.GET("/roles", api.queryRoles)
	pg.GET("/me", api.retrieveMe)
	pg.PUT("/me", api.onboard)

	ug := g.Group("/users/:id", append(authed, ctxUserOrCounselorMiddleware)...)
	ug.GET("/profile", api.retrieve)
	ug.PUT("/profile", api.update, adminMiddleware)
}

// Handlers

func (api *profileApi) query(ctx echo.Context) error {
	filter := new(profile.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []profile.Profile{})
	}
	filter.Clean()

	profiles, err := api.svc.Query(ctx.Request().Context(), filter, orderingFromContext(ctx))
	if err != nil {
		return errors.Wrap(err, "querying profiles")
	}
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	return ctx.JSON(http.StatusOK, profiles)
}

func (api *profileApi) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, profile.Roles)
}

func (api *profileApi) retrieveMe(ctx echo.Context) error {
	p, ok := getContextProfile(ctx)
	if !ok {
		return profile.ErrNotFound
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) onboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data profile.UpdateProfile
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Onboard(ctx.Request().Context(), claims.Subject, claims.Email, data)
	if err != nil {
		return errors.Wrap(err, "onboarding profile")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) retrieve(ctx echo.Context) error {
	p, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding profile by ID")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) update(ctx echo.Context) error {
	var data profile.UpdateProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, p)
}
