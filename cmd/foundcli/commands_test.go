package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "a long ti…", truncate("a long title indeed", 10))

	// Cutting must respect rune boundaries, not bytes.
	assert.Equal(t, "罗técnicos…", truncate("罗técnicos perdidos", 10))
	assert.Equal(t, "čučoriedk…", truncate("čučoriedkový koláč", 10))
}
