package utils

import (
	"fmt"
	"time"
)

const monthKeyLayout = "2006-01"

// ParseMonthKey extrai e valida o prefixo YYYY-MM de uma data
func ParseMonthKey(dateStr string) (string, error) {
	if len(dateStr) < len(monthKeyLayout) {
		return "", fmt.Errorf("date %q is shorter than YYYY-MM", dateStr)
	}

	key := dateStr[:len(monthKeyLayout)]
	if _, err := time.Parse(monthKeyLayout, key); err != nil {
		return "", fmt.Errorf("date %q does not start with a valid YYYY-MM", dateStr)
	}

	return key, nil
}
