package utils

import (
	"clinicroom-service/internal/pkg/constvars"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate   *validator.Validate
	dateRegex  = regexp.MustCompile(constvars.RegexDateYYYYMMDD)
	clockRegex = regexp.MustCompile(constvars.RegexClockHHMM)
	cepRegex   = regexp.MustCompile(constvars.RegexCEP)
	phoneRegex = regexp.MustCompile(constvars.RegexPhoneNumberGeneral)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("date", validateDate)
	validate.RegisterValidation("clock", validateClock)
	validate.RegisterValidation("weekday", validateWeekday)
	validate.RegisterValidation("cpf", validateCPF)
	validate.RegisterValidation("cnpj", validateCNPJ)
	validate.RegisterValidation("document", validateDocument)
	validate.RegisterValidation("cep", validateCEP)
	validate.RegisterValidation("phone", validatePhone)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidDate reports whether value is a real calendar day in YYYY-MM-DD.
func IsValidDate(value string) bool {
	if !dateRegex.MatchString(value) {
		return false
	}
	_, err := time.Parse(constvars.DateLayout, value)
	return err == nil
}

// IsValidClock accepts HH:MM with optional seconds.
func IsValidClock(value string) bool {
	if !clockRegex.MatchString(value) {
		return false
	}
	parts := strings.Split(value, ":")
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	if hour > 23 || minute > 59 {
		return false
	}
	if len(parts) == 3 {
		second, _ := strconv.Atoi(parts[2])
		return second <= 59
	}
	return true
}

func IsWeekdayToken(value string) bool {
	for _, token := range constvars.WeekdayTokens {
		if value == token {
			return true
		}
	}
	return false
}

func validateDate(fl validator.FieldLevel) bool {
	return IsValidDate(fl.Field().String())
}

func validateClock(fl validator.FieldLevel) bool {
	return IsValidClock(fl.Field().String())
}

func validateWeekday(fl validator.FieldLevel) bool {
	return IsWeekdayToken(fl.Field().String())
}

func validateCPF(fl validator.FieldLevel) bool {
	return IsValidCPF(fl.Field().String())
}

func validateCNPJ(fl validator.FieldLevel) bool {
	return IsValidCNPJ(fl.Field().String())
}

func validateDocument(fl validator.FieldLevel) bool {
	return IsValidDocument(fl.Field().String())
}

func validateCEP(fl validator.FieldLevel) bool {
	return cepRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validatePhone(fl validator.FieldLevel) bool {
	phone := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(fl.Field().String())
	return phoneRegex.MatchString(phone)
}
