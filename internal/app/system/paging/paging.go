// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultLimit is the page size used when the caller does not ask for one.
const DefaultLimit = 50

// MaxLimit caps caller-requested page sizes.
const MaxLimit = 200

// Page holds a clamped limit/offset window parsed from a request.
type Page struct {
	Limit  int64
	Offset int64
}

// Parse extracts limit and offset query parameters, clamping both to sane
// ranges. Invalid values fall back to the defaults rather than erroring:
// paging parameters never fail a request.
func Parse(r *http.Request) Page {
	p := Page{Limit: DefaultLimit}

	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			if n > MaxLimit {
				n = MaxLimit
			}
			p.Limit = n
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			p.Offset = n
		}
	}
	return p
}

// FindOptions returns mongo find options applying the window with a stable
// sort on the given field (tiebreak on _id).
func (p Page) FindOptions(sortField string) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: sortField, Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(p.Offset).
		SetLimit(p.Limit)
}
