package usecase

import (
	"regexp"
	"strings"
)

const countryPrefix = "55"

var nonDigits = regexp.MustCompile(`\D`)

// OnlyDigits remove tudo que não é dígito: "(11) 98888-7777" → "11988887777".
func OnlyDigits(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// HasUsablePhone exige pelo menos 10 dígitos (DDD + número).
func HasUsablePhone(phone string) bool {
	return len(OnlyDigits(phone)) >= 10
}

// NormalizeInboundPhone tira formatação e o prefixo de país que o provedor
// inclui no remetente ("5511988887777" → "11988887777").
func NormalizeInboundPhone(phone string) string {
	digits := OnlyDigits(phone)
	if len(digits) > 11 && strings.HasPrefix(digits, countryPrefix) {
		digits = digits[len(countryPrefix):]
	}
	return digits
}

// FormatOutboundPhone monta a forma internacional que o provedor espera.
func FormatOutboundPhone(phone string) string {
	digits := OnlyDigits(phone)
	if len(digits) <= 11 {
		return countryPrefix + digits
	}
	return digits
}

// PhonesMatch casa por substring nas duas direções, depois de tirar a
// formatação — cobre números gravados com ou sem DDD/prefixo de país.
func PhonesMatch(a, b string) bool {
	da, db := OnlyDigits(a), OnlyDigits(b)
	if da == "" || db == "" {
		return false
	}
	return strings.Contains(da, db) || strings.Contains(db, da)
}
