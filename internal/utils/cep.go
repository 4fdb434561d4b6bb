// internal/utils/cep.go
package utils

import (
	"errors"
	"regexp"
)

// Delivery pricing is a pure function of the normalized postal code.
// Home delivery covers the Recife metropolitan area only (CEP prefixes
// 50-54); every other prefix is pickup-only.

var ErrCEPInvalido = errors.New("invalid CEP format")

var cepPattern = regexp.MustCompile(`^(\d{5})-?(\d{3})$`)

// Cost and lead-time tiers are keyed by the first two CEP digits, not by
// distance. Prefixes serviceable but absent from the tables fall back to the
// default values, so the delivery area can grow without code changes here.
var (
	cepAreaEntrega = map[string]bool{
		"50": true, "51": true, "52": true, "53": true, "54": true,
	}
	cepCustoEntrega = map[string]float64{
		"50": 15.00, "51": 15.00, "52": 15.00, "53": 15.00, "54": 15.00,
	}
	cepPrazoDias = map[string]int{
		"50": 2, "51": 2, "52": 2, "53": 3, "54": 3,
	}
)

const (
	custoEntregaPadrao = 25.00
	prazoDiasPadrao    = 4
)

// NormalizeCEP validates the 5+3 digit pattern (separator optional) and
// returns the canonical "12345-678" form. The all-zero code is rejected.
func NormalizeCEP(raw string) (string, error) {
	m := cepPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", ErrCEPInvalido
	}
	normalized := m[1] + "-" + m[2]
	if normalized == "00000-000" {
		return "", ErrCEPInvalido
	}
	return normalized, nil
}

// CEPServiceable reports whether the normalized code is inside the home
// delivery area.
func CEPServiceable(cep string) bool {
	return cepAreaEntrega[cep[:2]]
}

// DeliveryCost returns the flat fee for the code's prefix band.
func DeliveryCost(cep string) float64 {
	if custo, ok := cepCustoEntrega[cep[:2]]; ok {
		return custo
	}
	return custoEntregaPadrao
}

// DeliveryLeadTimeDays returns the estimated business days for the code's
// prefix band.
func DeliveryLeadTimeDays(cep string) int {
	if prazo, ok := cepPrazoDias[cep[:2]]; ok {
		return prazo
	}
	return prazoDiasPadrao
}
