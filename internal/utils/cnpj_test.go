package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCNPJ(t *testing.T) {
	assert.Equal(t, "11222333000181", CleanCNPJ("11.222.333/0001-81"))
	assert.Equal(t, "11222333000181", CleanCNPJ("11222333000181"))
	assert.Equal(t, "", CleanCNPJ("abc"))
}

func TestFormatCNPJ(t *testing.T) {
	assert.Equal(t, "11.222.333/0001-81", FormatCNPJ("11222333000181"))
	assert.Equal(t, "123", FormatCNPJ("123"))
}

func TestIsValidCNPJ(t *testing.T) {
	assert.True(t, IsValidCNPJ("11222333000181"))
	assert.True(t, IsValidCNPJ("11.444.777/0001-61"))

	assert.False(t, IsValidCNPJ("11222333000182"))
	assert.False(t, IsValidCNPJ("11111111111111"))
	assert.False(t, IsValidCNPJ("123"))
	assert.False(t, IsValidCNPJ(""))
}
