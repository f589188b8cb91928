package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/mdaops/axon/internal/testutils/http"
	"github.com/mdaops/axon/pkg/cluster/argo"
	argomocks "github.com/mdaops/axon/pkg/cluster/argo/mocks"
	"github.com/mdaops/axon/pkg/utils/try"

	"github.com/mdaops/axon/cmd/axon-gateway/handlers"
)

func TestListWorkflowsHandler(t *testing.T) {
	t.Run("it lists workflows of the pipeline namespace", func(t *testing.T) {
		ac := argomocks.NewMockClient()
		ac.Impl.ListWorkflows = func(_ context.Context, namespace string) ([]argo.Workflow, error) {
			if namespace != "pipelines" {
				t.Errorf("namespace: got %q, want pipelines", namespace)
			}
			return []argo.Workflow{
				{
					Metadata: argo.ObjectMeta{Name: "train-abc123", Namespace: "pipelines"},
					Status:   argo.WorkflowStatus{Phase: "Running"},
				},
			}, nil
		}

		e := echo.New()
		ctx, resp := httptestutil.Get(e, "/api/workflows/")

		testee := handlers.ListWorkflowsHandler(ac, "pipelines")
		if err := testee(ctx); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if resp.Code != http.StatusOK {
			t.Errorf("status code: got %d, want %d", resp.Code, http.StatusOK)
		}

		wfs := []argo.Workflow{}
		try.To(0, json.Unmarshal(resp.Body.Bytes(), &wfs)).OrFatal(t)
		if len(wfs) != 1 || wfs[0].Metadata.Name != "train-abc123" {
			t.Errorf("unexpected workflows: %+v", wfs)
		}
	})

	t.Run("it serves an empty list, not null", func(t *testing.T) {
		ac := argomocks.NewMockClient()
		ac.Impl.ListWorkflows = func(context.Context, string) ([]argo.Workflow, error) {
			return nil, nil
		}

		e := echo.New()
		ctx, resp := httptestutil.Get(e, "/api/workflows/")

		testee := handlers.ListWorkflowsHandler(ac, "pipelines")
		if err := testee(ctx); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if body := resp.Body.String(); body == "null\n" {
			t.Error("response body is null")
		}
	})
}

func TestGetWorkflowHandler(t *testing.T) {
	t.Run("it returns the named workflow", func(t *testing.T) {
		ac := argomocks.NewMockClient()
		ac.Impl.GetWorkflow = func(_ context.Context, namespace string, name string) (argo.Workflow, error) {
			return argo.Workflow{
				Metadata: argo.ObjectMeta{Name: name, Namespace: namespace},
				Status:   argo.WorkflowStatus{Phase: "Succeeded"},
			}, nil
		}

		e := echo.New()
		ctx, resp := httptestutil.Get(e, "/api/workflows/train-abc123/")
		ctx.SetParamNames("name")
		ctx.SetParamValues("train-abc123")

		testee := handlers.GetWorkflowHandler(ac, "pipelines", "name")
		if err := testee(ctx); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		wf := argo.Workflow{}
		try.To(0, json.Unmarshal(resp.Body.Bytes(), &wf)).OrFatal(t)
		if wf.Metadata.Name != "train-abc123" || wf.Status.Phase != "Succeeded" {
			t.Errorf("unexpected workflow: %+v", wf)
		}
	})

	t.Run("it responds 404 for an unknown workflow", func(t *testing.T) {
		ac := argomocks.NewMockClient()
		ac.Impl.GetWorkflow = func(_ context.Context, namespace string, name string) (argo.Workflow, error) {
			return argo.Workflow{}, fmt.Errorf("%w: %s/%s", argo.ErrNotFound, namespace, name)
		}

		e := echo.New()
		ctx, _ := httptestutil.Get(e, "/api/workflows/no-such/")
		ctx.SetParamNames("name")
		ctx.SetParamValues("no-such")

		testee := handlers.GetWorkflowHandler(ac, "pipelines", "name")
		err := testee(ctx)
		if err == nil {
			t.Fatal("error is expected, but nil")
		}
		httpErr, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if httpErr.Code != http.StatusNotFound {
			t.Errorf("status code: got %d, want %d", httpErr.Code, http.StatusNotFound)
		}
	})
}
