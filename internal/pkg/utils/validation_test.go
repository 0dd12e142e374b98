package utils

import (
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-06-11"))
	assert.True(t, IsValidDate("2024-02-29"))
	assert.False(t, IsValidDate("2023-02-29"))
	assert.False(t, IsValidDate("2024-02-30"))
	assert.False(t, IsValidDate("2024-6-11"))
	assert.False(t, IsValidDate("11/06/2024"))
	assert.False(t, IsValidDate(""))
}

func TestIsValidClock(t *testing.T) {
	assert.True(t, IsValidClock("09:00"))
	assert.True(t, IsValidClock("23:59:59"))
	assert.False(t, IsValidClock("24:00"))
	assert.False(t, IsValidClock("9:00"))
	assert.False(t, IsValidClock("09:60"))
}

func TestIsWeekdayToken(t *testing.T) {
	assert.True(t, IsWeekdayToken("terca"))
	assert.False(t, IsWeekdayToken("terça"))
	assert.False(t, IsWeekdayToken("Terca"))
}

func TestValidateStruct(t *testing.T) {
	t.Run("Valid Contact Form", func(t *testing.T) {
		form := requests.ContactForm{
			Name:    "Ana",
			Email:   "ana@example.com",
			Phone:   "+55 (11) 98765-4321",
			Subject: "Hello",
			Message: "I want to rent a room",
			Kind:    "contact",
		}
		assert.NoError(t, ValidateStruct(form))
	})

	t.Run("Invalid Kind", func(t *testing.T) {
		form := requests.ContactForm{
			Name:    "Ana",
			Email:   "ana@example.com",
			Subject: "Hello",
			Message: "Hi",
			Kind:    "sales",
		}
		err := ValidateStruct(form)
		assert.Error(t, err)
		assert.Equal(t, "kind must be one of [contact, support]", exceptions.FormatFirstValidationError(err))
	})

	t.Run("Invalid Document", func(t *testing.T) {
		profile := requests.UpdateProfile{
			FullName: "Ana",
			Document: "529.982.247-26",
		}
		err := ValidateStruct(profile)
		assert.Error(t, err)
		assert.Equal(t, "must be a valid CPF or CNPJ", exceptions.FormatFirstValidationError(err))
	})

	t.Run("Invalid Draft Date", func(t *testing.T) {
		err := ValidateStruct(requests.SetDraftDate{Date: "2024-02-30"})
		assert.Error(t, err)
		assert.Equal(t, "date must be a date in YYYY-MM-DD format", exceptions.FormatFirstValidationError(err))
	})

	t.Run("Invalid CEP", func(t *testing.T) {
		profile := requests.UpdateProfile{
			FullName: "Ana",
			CEP:      "0100-100",
		}
		assert.Error(t, ValidateStruct(profile))
	})

	t.Run("Optional Fields Empty", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(requests.AppointmentStats{ClinicID: "c1"}))
	})
}
