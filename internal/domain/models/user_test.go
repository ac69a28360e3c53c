package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NormalizeEmail_ShouldLowercaseAndTrim(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}

func Test_HasPendingReset_ShouldFollowTokenPresence(t *testing.T) {
	user := User{}
	assert.False(t, user.HasPendingReset())

	user.ResetToken = "abc123"
	assert.True(t, user.HasPendingReset())
}
