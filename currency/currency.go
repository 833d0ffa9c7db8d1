package currency

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/rates.yaml
var ratesRaw []byte

var (
	ratesOnce sync.Once
	rates     map[string]float64
)

func table() map[string]float64 {
	ratesOnce.Do(func() {
		rates = make(map[string]float64)
		if err := yaml.Unmarshal(ratesRaw, &rates); err != nil {
			panic(err)
		}
	})
	return rates
}

// Rate returns the KRW rate for a currency code.
// Unknown codes map to 1.0 so amounts pass through unchanged.
func Rate(code string) float64 {
	if rate, ok := table()[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return rate
	}
	return 1.0
}

// ToKRW converts an amount in the given currency to whole KRW.
func ToKRW(amount float64, code string) int {
	return int(amount * Rate(code))
}

// FormatWithKRW renders an amount with its KRW equivalent,
// e.g. "600.00 USD (828,000 KRW)". KRW amounts render plain.
func FormatWithKRW(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || code == "KRW" {
		return fmt.Sprintf("%s KRW", groupDigits(int(amount)))
	}
	return fmt.Sprintf("%.2f %s (%s KRW)", amount, code, groupDigits(ToKRW(amount, code)))
}

func groupDigits(v int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
