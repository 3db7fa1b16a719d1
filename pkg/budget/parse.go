package budget

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidCurrency = errors.New("invalid currency value")
var ErrInvalidDate = errors.New("invalid date")

const (
	DateLayout     = "02/01/2006"
	DateTimeLayout = "02/01/2006 15:04"
	isoDateLayout  = "2006-01-02"
)

var (
	// 22.500,00 | 22500,00 | 22500 | 0,5
	currencyPattern = regexp.MustCompile(`^-?(\d{1,3}(\.\d{3})+|\d+)(,\d{1,2})?$`)
	// D/M/YYYY or DD/MM/YYYY
	datePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ParseCurrency parses a Brazilian real amount such as "R$ 22.500,00". The "R$" prefix is optional,
// "." groups thousands and "," separates at most two decimal places.
func ParseCurrency(s string) (decimal.Decimal, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00A0", "") // non-breaking space

	if !currencyPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCurrency, raw)
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCurrency, raw)
	}
	return value, nil
}

// FormatCurrency renders value as "R$ 1.234,56".
func FormatCurrency(value decimal.Decimal) string {
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Neg()
	}
	fixed := value.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}
	return "R$ " + sign + grouped.String() + "," + fracPart
}

// ParseDate parses a day/month/year date ("5/3/2024" or "05/03/2024") and rejects dates that do
// not exist in the calendar.
func ParseDate(s string) (time.Time, error) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || int(date.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return date, nil
}

// ParseDateParam accepts the dashboard date format and ISO dates sent by date pickers.
func ParseDateParam(s string) (time.Time, error) {
	if date, err := time.Parse(isoDateLayout, strings.TrimSpace(s)); err == nil {
		return date, nil
	}
	return ParseDate(s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
