package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/pokedex/internal/domain"
	"github.com/kailas-cloud/pokedex/internal/domain/query/sort"
)

// Query parameter limits.
const (
	// MaxSearchLength is the maximum allowed search term length.
	MaxSearchLength = 100
	DefaultPerPage  = 20
	MaxPerPage      = 100

	// AnyType disables the type filter.
	AnyType = "any"
)

// Query is a validated catalog query. Two queries that differ only in
// page/per-page belong to the same cached ordered-result equivalence class.
type Query struct {
	search    string
	itemType  string
	order     sort.Order
	page      int
	perPage   int
	requester string
}

// New validates and normalizes query parameters.
// Defaults: order=id_asc, page=1, per_page=20, type=any.
// Unknown order tokens, non-positive explicit pages, and per_page outside
// [1,100] are rejected rather than clamped: a silently corrected parameter
// would alias the cache key of a different query.
func New(search, itemType string, order sort.Order, page, perPage int, requester string) (Query, error) {
	search = strings.TrimSpace(search)
	if len(search) > MaxSearchLength {
		return Query{}, domain.NewValidation("search", fmt.Sprintf("too long (max %d chars)", MaxSearchLength))
	}
	itemType = strings.ToLower(strings.TrimSpace(itemType))
	if itemType == "" {
		itemType = AnyType
	}
	if order == "" {
		order = sort.IDAsc
	}
	if !order.IsValid() {
		return Query{}, domain.NewValidation("sort", fmt.Sprintf("unknown sort order %q", order))
	}
	if page == 0 {
		page = 1
	}
	if page < 0 {
		return Query{}, domain.NewValidation("page", "must be at least 1")
	}
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	if perPage < 0 || perPage > MaxPerPage {
		return Query{}, domain.NewValidation("per_page", fmt.Sprintf("must be between 1 and %d", MaxPerPage))
	}

	return Query{
		search:    search,
		itemType:  itemType,
		order:     order,
		page:      page,
		perPage:   perPage,
		requester: requester,
	}, nil
}

// Search returns the free-text search term.
func (q *Query) Search() string { return q.search }

// Type returns the normalized type filter label (AnyType when unset).
func (q *Query) Type() string { return q.itemType }

// Order returns the sort order.
func (q *Query) Order() sort.Order { return q.order }

// Page returns the 1-based page number.
func (q *Query) Page() int { return q.page }

// PerPage returns the page size.
func (q *Query) PerPage() int { return q.perPage }

// Requester returns the requester identity (empty for anonymous).
func (q *Query) Requester() string { return q.requester }

// IsAnonymous reports whether the query carries no requester identity.
func (q *Query) IsAnonymous() bool { return q.requester == "" }
