package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	t.Run("hashes the normalized email", func(t *testing.T) {
		// md5("a@x.com")
		want := "https://www.gravatar.com/avatar/743173788aa9166801df2e18f0e7ff24?s=500&d=retro&r=g"
		assert.Equal(t, want, GravatarURL("a@x.com"))
	})

	t.Run("case and whitespace do not change the avatar", func(t *testing.T) {
		assert.Equal(t, GravatarURL("a@x.com"), GravatarURL("  A@X.COM "))
	})
}
