package utils

import (
	"regexp"
	"strconv"
)

var nonDigits = regexp.MustCompile(`\D`)

// CleanCNPJ removes all non-numeric characters from CNPJ
func CleanCNPJ(cnpj string) string {
	return nonDigits.ReplaceAllString(cnpj, "")
}

// FormatCNPJ formats CNPJ with dots, slash and dash (XX.XXX.XXX/XXXX-XX)
func FormatCNPJ(cnpj string) string {
	cleaned := CleanCNPJ(cnpj)
	if len(cleaned) != 14 {
		return cnpj // Return original if invalid length
	}

	return cleaned[:2] + "." + cleaned[2:5] + "." + cleaned[5:8] + "/" + cleaned[8:12] + "-" + cleaned[12:14]
}

// IsValidCNPJ validates CNPJ using the official algorithm
func IsValidCNPJ(cnpj string) bool {
	cleaned := CleanCNPJ(cnpj)

	if len(cleaned) != 14 {
		return false
	}

	if isAllSameDigit(cleaned) {
		return false
	}

	digits := make([]int, 14)
	for i, char := range cleaned {
		digit, err := strconv.Atoi(string(char))
		if err != nil {
			return false
		}
		digits[i] = digit
	}

	if !isValidCheckDigit(digits[:12], digits[12], []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) {
		return false
	}

	if !isValidCheckDigit(digits[:13], digits[13], []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) {
		return false
	}

	return true
}

// isAllSameDigit checks if all digits in the string are the same
func isAllSameDigit(s string) bool {
	if len(s) == 0 {
		return false
	}

	first := s[0]
	for _, char := range s {
		if byte(char) != first {
			return false
		}
	}
	return true
}

// isValidCheckDigit validates a check digit using the given weights
func isValidCheckDigit(digits []int, checkDigit int, weights []int) bool {
	sum := 0
	for i, digit := range digits {
		sum += digit * weights[i]
	}

	remainder := sum % 11
	expectedDigit := 0
	if remainder >= 2 {
		expectedDigit = 11 - remainder
	}

	return expectedDigit == checkDigit
}
