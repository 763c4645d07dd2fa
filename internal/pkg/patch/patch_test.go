//go:build unit

package patch_test

import (
	"testing"

	"roomboard/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	name := "Acme"
	assert.Equal(t, "Acme", patch.Coalesce(&name, "fallback"))
	assert.Equal(t, "fallback", patch.Coalesce(nil, "fallback"))
	assert.Equal(t, 0, patch.Coalesce[int](nil, 0))
}
