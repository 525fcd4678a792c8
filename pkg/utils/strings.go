package utils

import "strings"

// NormalizeKey folds a name or SKU for case-insensitive comparison
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GenerateReceiptNo derives a short printable receipt number from a sale id
func GenerateReceiptNo(prefix, saleID string) string {
	short := strings.ReplaceAll(saleID, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return prefix + strings.ToUpper(short)
}
