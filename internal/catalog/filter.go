package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/spiceshelf/spiceshelf-golang/internal/models"
)

// State selects which lifecycle bucket a listing query returns.
type State int

const (
	StateAll State = iota
	StateActive
	StateArchived
)

const (
	DefaultLimit = 100
	MaxLimit     = 200
)

// ParseState maps the raw 'state' query value to a State.
// Unrecognized or empty values mean "all" (the admin UI sends nothing by default).
func ParseState(raw string) State {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active":
		return StateActive
	case "archived":
		return StateArchived
	default:
		return StateAll
	}
}

// ParseLimit parses the raw 'limit' query value.
// Invalid or missing values fall back to DefaultLimit; anything above MaxLimit is clamped.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// Params are the raw query-string values a listing handler receives.
type Params struct {
	State    string
	Query    string
	Category string
	Limit    string
}

// Filter is the resolved, store-agnostic description of a listing query.
// It is built fresh per request and rendered to SQL via Clause.
type Filter struct {
	State State
	Query string

	// Category filter: exactly one of these is set when a category token resolved.
	// CategoryID wins; LegacyCategory is the back-compat equality match against
	// the free-text category column on the products table itself.
	CategoryID     *int64
	LegacyCategory string

	// ApprovedOnly is forced by the public listing regardless of State.
	ApprovedOnly bool

	Limit int
}

// CategoryLookup finds a category by a slug or name token.
// A nil result with a nil error means "no match".
type CategoryLookup interface {
	FindByToken(ctx context.Context, token string) (*models.Category, error)
}

// Resolve turns raw listing parameters into a Filter.
//
// Category tokens resolve in strict order:
//  1. A canonical decimal integer ("5", not "007" or "12.0") is taken as the
//     category id directly, with no catalog read.
//  2. Otherwise the category catalog is searched for an exact slug match or a
//     case-insensitive name substring match (lowest id wins on ties).
//  3. Anything else, including a failed catalog read, falls back to the legacy
//     free-text category column on the products table.
//
// Resolve never returns an error: degraded resolution is still a usable filter.
func Resolve(ctx context.Context, p Params, cats CategoryLookup) Filter {
	f := Filter{
		State: ParseState(p.State),
		Query: strings.TrimSpace(p.Query),
		Limit: ParseLimit(p.Limit),
	}

	token := strings.TrimSpace(p.Category)
	if token == "" {
		return f
	}

	// 1. Canonical integer id. Round-trip through FormatInt so "007" and
	// "12.0" are rejected as non-canonical.
	if id, err := strconv.ParseInt(token, 10, 64); err == nil && strconv.FormatInt(id, 10) == token {
		f.CategoryID = &id
		return f
	}

	// 2. Slug / name lookup. Lookup failures are treated as "no match".
	if cats != nil {
		if cat, err := cats.FindByToken(ctx, token); err == nil && cat != nil {
			id := cat.ID
			f.CategoryID = &id
			return f
		}
	}

	// 3. Legacy free-text fallback.
	f.LegacyCategory = token
	return f
}

// SearchColumns names the table columns a Filter renders against.
// The text column list differs between the public listing (titles only) and the
// admin search (titles plus legacy category and product code).
type SearchColumns struct {
	Text           []string
	ArchivedAt     string // empty when the table has no archive lifecycle
	Approved       string
	CategoryID     string
	LegacyCategory string
}

// Clause renders the filter to a parameterized SQL fragment, starting with
// " WHERE" when any condition applies. Ordering and LIMIT are the caller's job.
func (f Filter) Clause(cols SearchColumns) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.ApprovedOnly && cols.Approved != "" {
		conds = append(conds, cols.Approved+" = 1")
	}

	if cols.ArchivedAt != "" {
		switch f.State {
		case StateActive:
			conds = append(conds, cols.ArchivedAt+" IS NULL")
		case StateArchived:
			conds = append(conds, cols.ArchivedAt+" IS NOT NULL")
		}
	}

	if f.Query != "" && len(cols.Text) > 0 {
		like := make([]string, 0, len(cols.Text))
		for _, col := range cols.Text {
			like = append(like, col+" LIKE ?")
			args = append(args, "%"+f.Query+"%")
		}
		conds = append(conds, "("+strings.Join(like, " OR ")+")")
	}

	if f.CategoryID != nil {
		conds = append(conds, cols.CategoryID+" = ?")
		args = append(args, *f.CategoryID)
	} else if f.LegacyCategory != "" {
		conds = append(conds, cols.LegacyCategory+" = ?")
		args = append(args, f.LegacyCategory)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
