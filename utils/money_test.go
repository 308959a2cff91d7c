package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.56, RoundMoney(10.555))
	assert.Equal(t, 10.55, RoundMoney(10.554))
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, 249.99, RoundMoney(249.99))
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(25000), ToMinorUnits(250))
	assert.Equal(t, int64(24999), ToMinorUnits(249.99))
	// Floating point representations of .1 style fractions must not
	// truncate a paisa.
	assert.Equal(t, int64(10), ToMinorUnits(0.1))
	assert.Equal(t, int64(0), ToMinorUnits(0))
}
