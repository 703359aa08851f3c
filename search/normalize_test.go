package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	t.Run("lowercases", func(t *testing.T) {
		assert.Equal(t, "chrome", NormalizeText("Chrome"))
	})

	t.Run("collapses punctuation runs to one space", func(t *testing.T) {
		assert.Equal(t, "my app v2", NormalizeText("My-App!!  v2"))
	})

	t.Run("trims edges", func(t *testing.T) {
		assert.Equal(t, "app", NormalizeText("  app...  "))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", NormalizeText(""))
	})

	t.Run("all punctuation collapses to empty", func(t *testing.T) {
		assert.Equal(t, "", NormalizeText("--- !!! ---"))
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, s := range []string{"", "Chrome", "My-App!! v2", "  padded  ", "已汉字"} {
			once := NormalizeText(s)
			assert.Equal(t, once, NormalizeText(once), "input %q", s)
		}
	})
}
