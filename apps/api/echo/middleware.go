package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/orientation/core/profile"
)

// profileMiddleware loads the profile of the authenticated user into the context.
// Users without a profile yet go through; inactive ones are rejected.
func profileMiddleware(svc *profile.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}

			p, err := svc.GetByID(ctx.Request().Context(), claims.Subject)
			switch {
			case err == nil:
				if !p.IsActive() {
					return errAccountDeactivated
				}
				ctx.Set(contextProfileKey, p)
			case errors.Cause(err) != profile.ErrNotFound:
				return errors.Wrap(err, "finding context profile")
			}
			return next(ctx)
		}
	}
}

func counselorMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if p, ok := getContextProfile(ctx); ok && p.IsCounselor() {
			return next(ctx)
		}
		return errHttpForbidden
	}
}

func adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if p, ok := getContextProfile(ctx); ok && p.IsAdmin() {
			return next(ctx)
		}
		return errHttpForbidden
	}
}

// ctxUserOrCounselorMiddleware only lets through the user designated by the `:id` param, or counselors.
func ctxUserOrCounselorMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context claims")
		}
		if ctx.Param("id") == claims.Subject {
			return next(ctx)
		}
		if p, ok := getContextProfile(ctx); ok && p.IsCounselor() {
			return next(ctx)
		}
		return errHttpNotFound
	}
}
