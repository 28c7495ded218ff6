package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitRedisReturnsErrorWhenUnreachable(t *testing.T) {
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")

	err := InitRedis()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
