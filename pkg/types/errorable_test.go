package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorable_Succeeded(t *testing.T) {
	e := Succeeded([]string{"a", "b"})
	assert.True(t, e.Succeeded())
	assert.Equal(t, []string{"a", "b"}, e.Result())
	assert.Nil(t, e.Errors())
	assert.Empty(t, e.Error())
}

func TestErrorable_Failed(t *testing.T) {
	e := Failed[[]string]("connection refused", "retry later")
	assert.False(t, e.Succeeded())
	assert.Nil(t, e.Result())
	assert.Equal(t, []string{"connection refused", "retry later"}, e.Errors())
	assert.Equal(t, "connection refused; retry later", e.Error())
}

func TestErrorable_FailedWithoutMessage(t *testing.T) {
	e := Failed[int]()
	assert.False(t, e.Succeeded())
	assert.Equal(t, []string{"unknown error"}, e.Errors())
}

func TestParseVersionStatus(t *testing.T) {
	for _, s := range AllVersionStatuses() {
		parsed, ok := ParseVersionStatus(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}
	_, ok := ParseVersionStatus("deprecated")
	assert.False(t, ok)
	assert.True(t, VersionAvailable.IsAvailable())
	assert.False(t, VersionRemoved.IsAvailable())
}
