package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("serial: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: missing SerialNumber", ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: dial tcp", ErrUnavailable), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.err)
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

		var problem ProblemDetail
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&problem))
		assert.Equal(t, tc.want, problem.Status)
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("password=hunter2"))
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestDecodeJSONWrapsValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	var v map[string]any
	assert.ErrorIs(t, DecodeJSON(req, &v), ErrValidation)
}

func TestAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	Attachment(rec, "text/csv", "Sales_2025-01-01.csv", []byte("a,b\n"))
	assert.Equal(t, `attachment; filename="Sales_2025-01-01.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, "a,b\n", rec.Body.String())
}
