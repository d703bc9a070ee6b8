package Controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCuilMatches(t *testing.T) {
	const stored = "20-35961283-5"

	assert.True(t, cuilMatches(stored, "20359612835"), "full CUIL, digits only")
	assert.True(t, cuilMatches(stored, "20-35961283-5"), "full CUIL with dashes")
	assert.True(t, cuilMatches(stored, "2835"), "last four digits")
	assert.True(t, cuilMatches(stored, " 835 "), "shorter suffix")

	assert.False(t, cuilMatches(stored, ""))
	assert.False(t, cuilMatches(stored, "0000"))
	assert.False(t, cuilMatches(stored, "20359612834"))
	assert.False(t, cuilMatches("835", "0835"), "suffix longer than stored")
}

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "20359612835", normalizeDigits(" 20-35961283-5 "))
	assert.Equal(t, "", normalizeDigits("abc"))
}
