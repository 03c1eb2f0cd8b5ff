package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rpeck07/StudentoS/core/assignment"
	"github.com/rpeck07/StudentoS/core/user"
)

type assignmentApi struct {
	svc *assignment.Service
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *authenticator, usrSvc *user.Service, svc *assignment.Service) {
	api := assignmentApi{svc: svc}

	ag := g.Group("/assignments", jwt, auth.contextUserMiddleware(usrSvc))
	ag.GET("", api.list)
	ag.POST("", api.create)

	// detail endpoints
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *assignmentApi) list(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	items, err := api.svc.List(ctx.Request().Context(), ctxUser(ctx).ID, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "listing assignments")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}

	a, err := api.svc.Create(ctx.Request().Context(), ctxUser(ctx).ID, data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	a, err := api.svc.Get(ctx.Request().Context(), ctxUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	var data assignment.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}

	a, err := api.svc.Update(ctx.Request().Context(), ctxUser(ctx).ID, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctxUser(ctx).ID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
