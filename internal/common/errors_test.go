package common

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "auth_abc", SessionKey("abc"))
	assert.Equal(t, 24*time.Hour, SessionTTL)
}

func TestWrappedSentinelsMatch(t *testing.T) {
	err := fmt.Errorf("%w: missing name", ErrInvalidArgument)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "invalid argument: missing name", err.Error())
}
