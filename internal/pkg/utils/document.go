package utils

import (
	"clinicroom-service/internal/pkg/constvars"
	"regexp"
	"strings"
)

var nonDigitRegex = regexp.MustCompile(constvars.RegexNonDigit)

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

func OnlyDigits(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

// IsValidCPF checks the two mod-11 check digits of a CPF. Punctuation is
// ignored.
func IsValidCPF(cpf string) bool {
	digits := toDigits(OnlyDigits(cpf))
	if len(digits) != 11 || allEqual(digits) {
		return false
	}

	for pos := 9; pos <= 10; pos++ {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += digits[i] * (pos + 1 - i)
		}
		check := (sum * 10) % 11
		if check == 10 {
			check = 0
		}
		if check != digits[pos] {
			return false
		}
	}
	return true
}

// IsValidCNPJ checks the two weighted mod-11 check digits of a CNPJ.
func IsValidCNPJ(cnpj string) bool {
	digits := toDigits(OnlyDigits(cnpj))
	if len(digits) != 14 || allEqual(digits) {
		return false
	}

	return cnpjCheckDigit(digits, cnpjFirstWeights) == digits[12] &&
		cnpjCheckDigit(digits, cnpjSecondWeights) == digits[13]
}

// IsValidDocument accepts either a CPF or a CNPJ, chosen by digit count.
func IsValidDocument(document string) bool {
	switch len(OnlyDigits(document)) {
	case 11:
		return IsValidCPF(document)
	case 14:
		return IsValidCNPJ(document)
	default:
		return false
	}
}

func NormalizeCEP(cep string) string {
	return OnlyDigits(strings.TrimSpace(cep))
}

func cnpjCheckDigit(digits, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

func toDigits(s string) []int {
	digits := make([]int, 0, len(s))
	for _, r := range s {
		digits = append(digits, int(r-'0'))
	}
	return digits
}

func allEqual(digits []int) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}
