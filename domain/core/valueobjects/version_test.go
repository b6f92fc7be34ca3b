package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVersionTokenMerge(t *testing.T) {
	older := VersionTokenAt(time.Unix(100, 0))
	newer := VersionTokenAt(time.Unix(200, 0))

	assert.Equal(t, newer, older.Merge(newer))
	assert.Equal(t, newer, newer.Merge(older))
	assert.Equal(t, newer, newer.Merge(newer))
}

func TestVersionTokenOrdering(t *testing.T) {
	older := VersionTokenAt(time.Unix(100, 0))
	newer := VersionTokenAt(time.Unix(200, 0))

	assert.True(t, newer.After(older))
	assert.False(t, older.After(newer))
	assert.False(t, newer.After(newer))
}

func TestVersionTokenZero(t *testing.T) {
	assert.True(t, ZeroVersion.IsZero())
	assert.False(t, NewVersionToken().IsZero())
}

func TestVersionTokenRoundTrip(t *testing.T) {
	at := time.Unix(1700000000, 123456789)
	token := VersionTokenAt(at)

	assert.Equal(t, at.UnixNano(), token.Time().UnixNano())
	assert.Equal(t, "1700000000123456789", token.String())
}
