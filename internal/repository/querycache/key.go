package querycache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/kailas-cloud/pokedex/internal/domain"
	"github.com/kailas-cloud/pokedex/internal/domain/query"
)

var (
	sharedKeyPrefix = domain.KeyPrefix + "query:shared:"
	userKeyPrefix   = domain.KeyPrefix + "query:user:"
)

// anonSegment keys personalized results of unidentified requesters.
// They still live in the per-user namespace so they can never leak
// into another requester's shared lookups.
const anonSegment = "anon"

// Key derives the cache key for a query. Shared orders hash to one key
// for every requester; personalized orders get a per-requester segment.
// Page and size are not part of the key: the cache holds the full
// ranked id list and pagination happens after the lookup.
func Key(q *query.Query) string {
	if q.Order().IsPersonalized() {
		return userKeyPrefix + requesterSegment(q) + ":" + digest(q)
	}
	return sharedKeyPrefix + digest(q)
}

// UserPattern matches every personalized entry of one requester.
func UserPattern(userID string) string {
	if userID == "" {
		return userKeyPrefix + anonSegment + ":*"
	}
	return userKeyPrefix + encodeUser(userID) + ":*"
}

// Pattern matches every query cache entry, shared and personalized.
func Pattern() string {
	return domain.KeyPrefix + "query:*"
}

func requesterSegment(q *query.Query) string {
	if q.IsAnonymous() {
		return anonSegment
	}
	return encodeUser(q.Requester())
}

// encodeUser hex-encodes a requester id for use as a key segment. The
// id comes from an arbitrary JWT subject: embedded ":" would make one
// user's prefix a proper prefix of another's, and "*"/"[" would inject
// into the SCAN glob of UserPattern. Hex contains neither. It can also
// never spell "anon", so the anonymous segment stays collision-free.
func encodeUser(userID string) string {
	return hex.EncodeToString([]byte(userID))
}

// digest hashes the canonical query tuple. Search is folded to lower
// case so equivalent spellings share an entry; type and order are
// already normalized by the query constructor.
func digest(q *query.Query) string {
	canonical := strings.ToLower(q.Search()) + "|" + q.Type() + "|" + string(q.Order())
	h := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(h[:])
}
