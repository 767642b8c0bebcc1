package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spiceshelf/spiceshelf-golang/internal/models"
)

// fakeLookup records calls and returns a canned category or error.
type fakeLookup struct {
	cat    *models.Category
	err    error
	calls  int
	tokens []string
}

func (f *fakeLookup) FindByToken(_ context.Context, token string) (*models.Category, error) {
	f.calls++
	f.tokens = append(f.tokens, token)
	return f.cat, f.err
}

func TestParseLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
	}{
		{"", DefaultLimit},
		{"abc", DefaultLimit},
		{"0", DefaultLimit},
		{"-5", DefaultLimit},
		{"50", 50},
		{"200", 200},
		{"500", MaxLimit},
		{" 25 ", 25},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLimit(tt.raw), "limit=%q", tt.raw)
	}
}

func TestParseState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want State
	}{
		{"active", StateActive},
		{"ARCHIVED", StateArchived},
		{"Active", StateActive},
		{"all", StateAll},
		{"", StateAll},
		{"bogus", StateAll},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseState(tt.raw), "state=%q", tt.raw)
	}
}

func TestResolve_CanonicalIDSkipsLookup(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{}
	f := Resolve(context.Background(), Params{Category: "5"}, lookup)

	require.NotNil(t, f.CategoryID)
	assert.Equal(t, int64(5), *f.CategoryID)
	assert.Empty(t, f.LegacyCategory)
	assert.Equal(t, 0, lookup.calls, "canonical id must not hit the catalog")
}

func TestResolve_NonCanonicalNumbersGoToLookup(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"007", "12.0", "+5"} {
		lookup := &fakeLookup{}
		f := Resolve(context.Background(), Params{Category: token}, lookup)

		assert.Nil(t, f.CategoryID, "token=%q", token)
		assert.Equal(t, 1, lookup.calls, "token=%q", token)
	}
}

func TestResolve_TrimsCategoryBeforeCanonicalCheck(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{}
	f := Resolve(context.Background(), Params{Category: " 5 "}, lookup)

	require.NotNil(t, f.CategoryID)
	assert.Equal(t, int64(5), *f.CategoryID)
	assert.Equal(t, 0, lookup.calls)
}

func TestResolve_SlugMatchUsesCatalogID(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{cat: &models.Category{ID: 7, Name: "Gift Sets", Slug: "gift-sets"}}
	f := Resolve(context.Background(), Params{Category: "gift-sets"}, lookup)

	require.NotNil(t, f.CategoryID)
	assert.Equal(t, int64(7), *f.CategoryID)
	assert.Empty(t, f.LegacyCategory)
	assert.Equal(t, []string{"gift-sets"}, lookup.tokens)
}

func TestResolve_NoMatchFallsBackToLegacy(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{} // nil cat, nil err: no match
	f := Resolve(context.Background(), Params{Category: "giftware"}, lookup)

	assert.Nil(t, f.CategoryID)
	assert.Equal(t, "giftware", f.LegacyCategory)
}

func TestResolve_LookupErrorDegradesToLegacy(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{err: errors.New("connection refused")}
	f := Resolve(context.Background(), Params{Category: "giftware"}, lookup)

	assert.Nil(t, f.CategoryID)
	assert.Equal(t, "giftware", f.LegacyCategory)
}

func TestResolve_EmptyInputs(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{}
	f := Resolve(context.Background(), Params{Query: "  ", Category: " "}, lookup)

	assert.Empty(t, f.Query)
	assert.Nil(t, f.CategoryID)
	assert.Empty(t, f.LegacyCategory)
	assert.Equal(t, 0, lookup.calls)
	assert.Equal(t, DefaultLimit, f.Limit)
}

var testColumns = SearchColumns{
	Text:           []string{"p.title", "p.source_title"},
	ArchivedAt:     "p.archived_at",
	Approved:       "p.approved",
	CategoryID:     "p.category_id",
	LegacyCategory: "p.category",
}

func TestClause_PublicListing(t *testing.T) {
	t.Parallel()

	f := Filter{State: StateActive, ApprovedOnly: true, Query: "tea", Limit: 100}
	clause, args := f.Clause(testColumns)

	assert.Equal(t,
		" WHERE p.approved = 1 AND p.archived_at IS NULL AND (p.title LIKE ? OR p.source_title LIKE ?)",
		clause)
	assert.Equal(t, []interface{}{"%tea%", "%tea%"}, args)
}

func TestClause_ArchivedWithCategoryID(t *testing.T) {
	t.Parallel()

	id := int64(5)
	f := Filter{State: StateArchived, CategoryID: &id, Limit: 100}
	clause, args := f.Clause(testColumns)

	assert.Equal(t, " WHERE p.archived_at IS NOT NULL AND p.category_id = ?", clause)
	assert.Equal(t, []interface{}{int64(5)}, args)
}

func TestClause_LegacyCategoryEquality(t *testing.T) {
	t.Parallel()

	f := Filter{State: StateAll, LegacyCategory: "giftware", Limit: 100}
	clause, args := f.Clause(testColumns)

	assert.Equal(t, " WHERE p.category = ?", clause)
	assert.Equal(t, []interface{}{"giftware"}, args)
}

func TestClause_NoConditions(t *testing.T) {
	t.Parallel()

	f := Filter{State: StateAll, Limit: 100}
	clause, args := f.Clause(testColumns)

	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestClause_AdminTextColumns(t *testing.T) {
	t.Parallel()

	cols := SearchColumns{
		Text:           []string{"p.title", "p.source_title", "p.category", "p.product_code"},
		ArchivedAt:     "p.archived_at",
		Approved:       "p.approved",
		CategoryID:     "p.category_id",
		LegacyCategory: "p.category",
	}

	f := Filter{State: StateAll, Query: "whisk", Limit: 100}
	clause, args := f.Clause(cols)

	assert.Equal(t,
		" WHERE (p.title LIKE ? OR p.source_title LIKE ? OR p.category LIKE ? OR p.product_code LIKE ?)",
		clause)
	assert.Len(t, args, 4)
}

func TestClause_NoArchiveColumnSkipsState(t *testing.T) {
	t.Parallel()

	cols := SearchColumns{
		Text:           []string{"r.title", "r.summary"},
		Approved:       "r.published",
		CategoryID:     "r.category_id",
		LegacyCategory: "r.category",
	}

	f := Filter{State: StateActive, ApprovedOnly: true, Limit: 100}
	clause, _ := f.Clause(cols)

	assert.Equal(t, " WHERE r.published = 1", clause)
}
