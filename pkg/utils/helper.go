package utils

import (
	"fmt"
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// FormatPrice renders minor currency units as whole rubles, no decimals.
func FormatPrice(cents int) string {
	return fmt.Sprintf("%.0f ₽", float64(cents)/100.0)
}
