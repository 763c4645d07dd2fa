//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// compares each expected header exactly
func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// for list-valued headers such as Access-Control-Allow-Headers
func AssertHeaderContains(t *testing.T, w *httptest.ResponseRecorder, key, want string) {
	t.Helper()
	assert.Contains(t, w.Header().Values(key), want, "header %s does not list %s", key, want)
}
