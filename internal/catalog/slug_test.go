package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"Café Tools", "cafe-tools"},
		{"cafe-tools", "cafe-tools"},
		{"Gift  Sets!!", "gift-sets"},
		{"  Baking & Pastry  ", "baking-and-pastry"},
		{"ALLCAPS", "allcaps"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MakeSlug(tt.name), "name=%q", tt.name)
	}
}

// Names differing only in case, diacritics or punctuation collapse to the same
// slug; category creation relies on this to dedupe.
func TestMakeSlug_NormalizationCollapses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MakeSlug("Café Tools"), MakeSlug("cafe-tools"))
	assert.Equal(t, MakeSlug("GIFT SETS"), MakeSlug("gift sets"))
}

func TestMakeSlug_TruncatesTo60(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 80)
	got := MakeSlug(long)
	assert.Len(t, got, 60)

	// A cut landing on a hyphen must not leave a trailing one.
	boundary := strings.Repeat("a", 59) + " bbbb"
	got = MakeSlug(boundary)
	assert.LessOrEqual(t, len(got), 60)
	assert.False(t, strings.HasSuffix(got, "-"), "got %q", got)
}
