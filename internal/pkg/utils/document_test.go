package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCPF(t *testing.T) {
	t.Run("Valid With Punctuation", func(t *testing.T) {
		assert.True(t, IsValidCPF("529.982.247-25"))
	})

	t.Run("Valid Digits Only", func(t *testing.T) {
		assert.True(t, IsValidCPF("52998224725"))
	})

	t.Run("Wrong Check Digit", func(t *testing.T) {
		assert.False(t, IsValidCPF("52998224726"))
	})

	t.Run("Repeated Digits", func(t *testing.T) {
		assert.False(t, IsValidCPF("111.111.111-11"))
	})

	t.Run("Wrong Length", func(t *testing.T) {
		assert.False(t, IsValidCPF("5299822472"))
		assert.False(t, IsValidCPF(""))
	})
}

func TestIsValidCNPJ(t *testing.T) {
	t.Run("Valid With Punctuation", func(t *testing.T) {
		assert.True(t, IsValidCNPJ("11.222.333/0001-81"))
	})

	t.Run("Wrong Check Digit", func(t *testing.T) {
		assert.False(t, IsValidCNPJ("11.222.333/0001-82"))
	})

	t.Run("Repeated Digits", func(t *testing.T) {
		assert.False(t, IsValidCNPJ("00000000000000"))
	})
}

func TestIsValidDocument(t *testing.T) {
	assert.True(t, IsValidDocument("529.982.247-25"))
	assert.True(t, IsValidDocument("11222333000181"))
	assert.False(t, IsValidDocument("123"))
}

func TestNormalizeCEP(t *testing.T) {
	assert.Equal(t, "01001000", NormalizeCEP(" 01001-000 "))
}
