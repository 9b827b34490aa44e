package order

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/pkg/errs"
)

const (
	numberPrefix     = "ORD"
	numberDateLayout = "060102"
	dateKeyLayout    = "20060102"
)

var numberPattern = regexp.MustCompile(`^ORD-(\d{6})-(\d{3,})$`)

// Number is the human-readable order identifier, e.g. ORD-240101-001.
// The zero value is not a valid number.
type Number string

// GenerateNumber formats an order number for the given daily sequence. The date
// is the KST calendar date of at, whatever the host time zone. Sequences past
// 999 widen the suffix instead of failing.
//
// Example:
//
//	n, _ := GenerateNumber(1, time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC))
//	// n == "ORD-240102-001"
func GenerateNumber(sequence int, at time.Time) (Number, error) {
	if sequence < 1 {
		return "", errs.NewValueIsOutOfRangeError("sequence", sequence, 1, math.MaxInt)
	}
	return Number(fmt.Sprintf("%s-%s-%03d", numberPrefix, kernel.InKST(at).Format(numberDateLayout), sequence)), nil
}

// DateKey is the KST calendar date of at as YYYYMMDD. Sequence counters are
// partitioned by this key.
func DateKey(at time.Time) string {
	return kernel.InKST(at).Format(dateKeyLayout)
}

// ParseNumber validates an externally supplied order number.
func ParseNumber(s string) (Number, error) {
	n := Number(s)
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n, nil
}

func (n Number) Validate() error {
	if n == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	if !numberPattern.MatchString(string(n)) {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderNumber",
			fmt.Errorf("%q does not match ORD-YYMMDD-NNN", string(n)),
		)
	}
	return nil
}

func (n Number) String() string {
	return string(n)
}

// Sequence returns the numeric suffix, or 0 for a malformed number.
func (n Number) Sequence() int {
	m := numberPattern.FindStringSubmatch(string(n))
	if m == nil {
		return 0
	}
	seq, err := strconv.Atoi(m[2])
	if err != nil {
		return 0
	}
	return seq
}

// DateCode returns the YYMMDD part, or "" for a malformed number.
func (n Number) DateCode() string {
	m := numberPattern.FindStringSubmatch(string(n))
	if m == nil {
		return ""
	}
	return m[1]
}

// NumberPrefixForDate returns the "ORD-YYMMDD-" prefix shared by every order
// numbered on the KST date identified by dateKey (YYYYMMDD).
func NumberPrefixForDate(dateKey string) (string, error) {
	day, err := time.ParseInLocation(dateKeyLayout, dateKey, kernel.KST)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("dateKey", err)
	}
	return fmt.Sprintf("%s-%s-", numberPrefix, day.Format(numberDateLayout)), nil
}
