package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/mdaops/axon/internal/testutils/http"

	"github.com/mdaops/axon/cmd/axon-gateway/handlers"
)

func TestGetObjectHandler(t *testing.T) {

	t.Run("it streams the file from the filer", func(t *testing.T) {
		var gotPath, gotQuery string
		filer := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.RawQuery
				w.Header().Set("Content-Type", "image/png")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("png bytes"))
			},
		))
		defer filer.Close()

		e := echo.New()
		ctx, resp := httptestutil.Get(
			e, "/api/objects/artifacts/samples/00_t-shirt-top.png/?ts=42",
		)
		ctx.SetParamNames("*")
		ctx.SetParamValues("artifacts/samples/00_t-shirt-top.png/")

		testee := handlers.GetObjectHandler(filer.URL)
		if err := testee(ctx); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if gotPath != "/artifacts/samples/00_t-shirt-top.png" {
			t.Errorf("proxied path: got %s", gotPath)
		}
		if gotQuery != "ts=42" {
			t.Errorf("proxied query: got %s", gotQuery)
		}
		if resp.Code != http.StatusOK {
			t.Errorf("status code: got %d, want %d", resp.Code, http.StatusOK)
		}
		if got := resp.Body.String(); got != "png bytes" {
			t.Errorf("body: got %q", got)
		}
		if got := resp.Header().Get("Content-Type"); got != "image/png" {
			t.Errorf("Content-Type: got %q", got)
		}
	})

	t.Run("it responds 502 when the filer does not answer", func(t *testing.T) {
		filer := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {},
		))
		filer.Close() // already stopped

		e := echo.New()
		ctx, resp := httptestutil.Get(e, "/api/objects/missing.txt/")
		ctx.SetParamNames("*")
		ctx.SetParamValues("missing.txt/")

		testee := handlers.GetObjectHandler(filer.URL)
		if err := testee(ctx); err == nil {
			t.Error("error is expected, but nil")
		}

		if resp.Code != http.StatusBadGateway {
			t.Errorf("status code: got %d, want %d", resp.Code, http.StatusBadGateway)
		}
	})
}
