package order

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"yuandi/internal/core/domain/model/kernel"
)

var (
	// Korean mobile numbers: 01X prefix, optional dashes, 3-4 then 4 digits.
	phonePattern = regexp.MustCompile(`^01\d-?\d{3,4}-?\d{4}$`)

	// Personal Customs Clearance Code: P followed by 12 digits.
	pcccPattern = regexp.MustCompile(`^P\d{12}$`)
)

// ValidationResult lists every rule an Input violates, in rule order.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate checks a candidate order against every rule and never stops at the
// first failure. It is pure and safe for concurrent use.
//
// Rules, in reporting order:
//   - customer name non-blank
//   - customer phone present and a Korean mobile number (whitespace ignored)
//   - PCCC present and exactly P plus 12 digits (surrounding whitespace is invalid)
//   - shipping address non-blank
//   - at least one item
//   - per item: product ID non-blank, quantity positive, price non-negative
//     with at most two decimal places
func Validate(candidate Input) ValidationResult {
	var messages []string

	if strings.TrimSpace(candidate.CustomerName) == "" {
		messages = append(messages, "Customer name is required")
	}

	phone := stripWhitespace(candidate.CustomerPhone)
	switch {
	case phone == "":
		messages = append(messages, "Customer phone is required")
	case !phonePattern.MatchString(phone):
		messages = append(messages, "Invalid phone number format")
	}

	switch {
	case strings.TrimSpace(candidate.PCCC) == "":
		messages = append(messages, "PCCC is required")
	case !pcccPattern.MatchString(candidate.PCCC):
		messages = append(messages, "Invalid PCCC format")
	}

	if strings.TrimSpace(candidate.ShippingAddress) == "" {
		messages = append(messages, "Shipping address is required")
	}

	if len(candidate.Items) == 0 {
		messages = append(messages, "At least one item is required")
	}
	for i, item := range candidate.Items {
		n := i + 1
		if strings.TrimSpace(item.ProductID) == "" {
			messages = append(messages, fmt.Sprintf("Item %d: Product ID is required", n))
		}
		if item.Quantity <= 0 {
			messages = append(messages, fmt.Sprintf("Item %d: Quantity must be positive", n))
		}
		switch {
		case item.Price.IsNegative():
			messages = append(messages, fmt.Sprintf("Item %d: Price must be non-negative", n))
		case !kernel.FitsMoneyScale(item.Price):
			messages = append(messages, fmt.Sprintf("Item %d: Price must have at most %d decimal places", n, kernel.MoneyScale))
		}
	}

	return ValidationResult{
		Valid:  len(messages) == 0,
		Errors: messages,
	}
}

// NormalizePhone keeps only the digits of a phone number. Lookups compare
// phones in this form so "010-1234-5678" matches "01012345678".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
