package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDecorator_WrapsTokenMatches(t *testing.T) {
	t.Parallel()

	mark := NewDecorator("egg noodle")
	got := mark("Classic Egg Noodle Soup")

	assert.Equal(t, "Classic <mark>Egg</mark> <mark>Noodle</mark> Soup", got)
}

func TestNewDecorator_MatchesAllOccurrences(t *testing.T) {
	t.Parallel()

	mark := NewDecorator("egg")
	got := mark("Egg on egg: EGGS")

	assert.Equal(t, "<mark>Egg</mark> on <mark>egg</mark>: <mark>EGG</mark>S", got)
}

func TestNewDecorator_PreservesMatchedCasing(t *testing.T) {
	t.Parallel()

	mark := NewDecorator("SOUP")
	assert.Equal(t, "Miso <mark>Soup</mark>", mark("Miso Soup"))
}

func TestNewDecorator_ShortTokensDropped(t *testing.T) {
	t.Parallel()

	// Single-character tokens are discarded; an empty token set yields the
	// identity function.
	mark := NewDecorator("a")
	assert.Equal(t, "Avocado and apple", mark("Avocado and apple"))

	mark = NewDecorator("a b c")
	assert.Equal(t, "abc", mark("abc"))

	// A mix keeps only the usable token.
	mark = NewDecorator("a soup")
	assert.Equal(t, "Miso <mark>Soup</mark> a la carte", mark("Miso Soup a la carte"))
}

func TestNewDecorator_EmptyQueryIsIdentity(t *testing.T) {
	t.Parallel()

	for _, query := range []string{"", "   ", "\t\n"} {
		mark := NewDecorator(query)
		assert.Equal(t, "Classic Egg Noodle Soup", mark("Classic Egg Noodle Soup"), "query=%q", query)
		assert.Equal(t, "", mark(""), "query=%q", query)
	}
}

func TestNewDecorator_EscapesRegexMetacharacters(t *testing.T) {
	t.Parallel()

	mark := NewDecorator("2.5*")

	// Only the literal text matches; "." is not a wildcard and "*" is not a
	// quantifier.
	assert.Equal(t, "Rated <mark>2.5*</mark> overall", mark("Rated 2.5* overall"))
	assert.Equal(t, "Rated 255 overall", mark("Rated 255 overall"))
	assert.Equal(t, "2x5 and 2-5", mark("2x5 and 2-5"))
}

func TestNewDecorator_PartialWordMatch(t *testing.T) {
	t.Parallel()

	mark := NewDecorator("noodle")
	assert.Equal(t, "<mark>Noodle</mark>s galore", mark("Noodles galore"))
}

func TestNewDecorator_NotIdempotent(t *testing.T) {
	t.Parallel()

	// Documented limitation: the decorator is single-pass only. Re-applying
	// it to its own output wraps matches inside the inserted tags again.
	mark := NewDecorator("mark")
	once := mark("bookmark")
	assert.Equal(t, "book<mark>mark</mark>", once)
	assert.NotEqual(t, once, mark(once))
}
