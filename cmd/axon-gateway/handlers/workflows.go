package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/mdaops/axon/pkg/api/errors"
	"github.com/mdaops/axon/pkg/cluster/argo"
)

// ListWorkflowsHandler lists workflows in the pipeline namespace.
func ListWorkflowsHandler(ac argo.Client, namespace string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		wfs, err := ac.ListWorkflows(ctx, namespace)
		if err != nil {
			return apierr.BadGateway("is the argo server up?", err)
		}
		if wfs == nil {
			wfs = []argo.Workflow{}
		}
		return c.JSON(http.StatusOK, wfs)
	}
}

// GetWorkflowHandler returns one workflow by name.
func GetWorkflowHandler(ac argo.Client, namespace string, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		name := c.Param(paramKey)

		wf, err := ac.GetWorkflow(ctx, namespace, name)
		if err != nil {
			if errors.Is(err, argo.ErrNotFound) {
				return apierr.NotFound()
			}
			return apierr.BadGateway("is the argo server up?", err)
		}
		return c.JSON(http.StatusOK, wf)
	}
}
