package valueobjects

import (
	"strconv"
	"time"
)

// VersionToken marks the freshness of a piece of content. Tokens are
// monotonically comparable: any content-affecting edit produces a
// strictly larger token, which is what makes them usable as cache key
// components: a stale cache entry is simply never looked up again.
//
// The token is the Unix-nanosecond timestamp of the last modification.
// Wall-clock skew between writers is acceptable here because tokens are
// only ever compared for equality inside cache keys and merged by max
// during composition; they are not used for distributed ordering.
type VersionToken int64

// ZeroVersion is the token of content that has never been modified.
const ZeroVersion VersionToken = 0

// NewVersionToken returns a token for the current instant.
func NewVersionToken() VersionToken {
	return VersionToken(time.Now().UnixNano())
}

// VersionTokenAt returns the token for a given modification time.
func VersionTokenAt(t time.Time) VersionToken {
	return VersionToken(t.UnixNano())
}

// Merge returns the newer of two tokens. Composition folds all included
// atom tokens plus the article's own token through Merge to derive the
// article-level version.
func (v VersionToken) Merge(other VersionToken) VersionToken {
	if other > v {
		return other
	}
	return v
}

// After reports whether v is strictly newer than other.
func (v VersionToken) After(other VersionToken) bool {
	return v > other
}

// IsZero reports whether the token is unset.
func (v VersionToken) IsZero() bool {
	return v == ZeroVersion
}

// String returns the decimal representation used in cache keys and logs.
func (v VersionToken) String() string {
	return strconv.FormatInt(int64(v), 10)
}

// Time returns the modification instant the token encodes.
func (v VersionToken) Time() time.Time {
	return time.Unix(0, int64(v))
}
