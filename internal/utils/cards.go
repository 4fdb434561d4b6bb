// internal/utils/cards.go
package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Credit-card validation helpers. The number and CVV pass through these
// functions transiently at registration time and are never persisted.

var (
	ErrCartaoDigitos  = errors.New("card number must contain only digits")
	ErrCartaoTamanho  = errors.New("card number must have between 13 and 19 digits")
	ErrCartaoInvalido = errors.New("invalid card number")
	ErrCVVInvalido    = errors.New("CVV must have 3 or 4 digits")
	ErrValidadeMes    = errors.New("expiry month must be between 1 and 12")
	ErrValidadeAno    = errors.New("invalid expiry year")
	ErrCartaoVencido  = errors.New("card is expired")
)

// NormalizeCardNumber strips spaces and dashes.
func NormalizeCardNumber(numero string) string {
	var b strings.Builder
	for _, r := range numero {
		if r != ' ' && r != '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCardNumber checks digits-only, length and the Luhn checksum.
// Returns the normalized number on success.
func ValidateCardNumber(numero string) (string, error) {
	numero = NormalizeCardNumber(numero)

	for _, r := range numero {
		if !unicode.IsDigit(r) {
			return "", ErrCartaoDigitos
		}
	}
	if len(numero) < 13 || len(numero) > 19 {
		return "", ErrCartaoTamanho
	}
	if luhnChecksum(numero) != 0 {
		return "", ErrCartaoInvalido
	}
	return numero, nil
}

func luhnChecksum(numero string) int {
	sum := 0
	double := false
	for i := len(numero) - 1; i >= 0; i-- {
		d := int(numero[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum % 10
}

// ValidateCVV accepts 3 or 4 digits.
func ValidateCVV(cvv string) error {
	if len(cvv) < 3 || len(cvv) > 4 {
		return ErrCVVInvalido
	}
	for _, r := range cvv {
		if !unicode.IsDigit(r) {
			return ErrCVVInvalido
		}
	}
	return nil
}

// ValidateExpiry checks the month/year pair against the current date.
// Two-digit years are interpreted as 20xx. Returns the normalized
// four-digit year.
func ValidateExpiry(mes, ano int) (int, error) {
	if mes < 1 || mes > 12 {
		return 0, ErrValidadeMes
	}
	if ano < 100 {
		ano += 2000
	}
	if ano < 2000 || ano > 2099 {
		return 0, ErrValidadeAno
	}

	now := time.Now()
	if ano < now.Year() || (ano == now.Year() && mes < int(now.Month())) {
		return 0, ErrCartaoVencido
	}
	return ano, nil
}

var eloBins = []string{"636368", "438935", "504175", "451416", "636297", "5067", "4576", "4011"}

// CardBrand identifies the brand from the number prefix.
func CardBrand(numero string) string {
	numero = NormalizeCardNumber(numero)
	if numero == "" {
		return "Desconhecida"
	}

	if numero[0] == '4' {
		return "Visa"
	}

	if len(numero) >= 2 {
		switch numero[:2] {
		case "51", "52", "53", "54", "55":
			return "Mastercard"
		}
	}
	if len(numero) >= 4 {
		if prefix, err := strconv.Atoi(numero[:4]); err == nil && prefix >= 2221 && prefix <= 2720 {
			return "Mastercard"
		}
	}

	if len(numero) >= 2 {
		switch numero[:2] {
		case "34", "37":
			return "American Express"
		}
	}

	for _, bin := range eloBins {
		if strings.HasPrefix(numero, bin) {
			return "Elo"
		}
	}

	if strings.HasPrefix(numero, "606282") {
		return "Hipercard"
	}

	if len(numero) >= 2 {
		switch numero[:2] {
		case "36", "38":
			return "Diners Club"
		}
	}

	return "Outra"
}

// Last4 returns the final four digits of a normalized card number.
func Last4(numero string) string {
	numero = NormalizeCardNumber(numero)
	if len(numero) < 4 {
		return numero
	}
	return numero[len(numero)-4:]
}
