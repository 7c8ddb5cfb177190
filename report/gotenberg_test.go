package report

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTMLPostsA4Form(t *testing.T) {
	var gotPath, gotWidth, gotHTML string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotWidth = r.FormValue("paperWidth")
		f, _, err := r.FormFile("files")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b, _ := io.ReadAll(f)
		gotHTML = string(b)
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	pdf, err := NewClient(srv.URL+"/").RenderHTML(context.Background(), []byte("<h1>Invoice</h1>"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(pdf))
	assert.Equal(t, "/forms/chromium/convert/html", gotPath)
	assert.Equal(t, "8.27", gotWidth)
	assert.Equal(t, "<h1>Invoice</h1>", gotHTML)
}

func TestRenderHTMLFailureIsErrRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RenderHTML(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, ErrRender)
}

func TestPingRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	r := chi.NewRouter()
	r.Route("/report", NewHandler(NewClient(srv.URL), slog.New(slog.NewTextHandler(io.Discard, nil))).MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := chi.NewRouter()
	down.Route("/report", NewHandler(NewClient("http://127.0.0.1:1"), slog.New(slog.NewTextHandler(io.Discard, nil))).MountRoutes)
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report/ping", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
