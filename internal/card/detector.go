// Package card classifies payment card numbers by issuing network and
// verifies their Luhn check digit.
package card

import "strings"

// Brand identifies the issuing network of a card number.
// The zero value means the number matched no known network.
type Brand string

const (
	BrandUnknown    Brand = ""
	BrandVisa       Brand = "visa"
	BrandMasterCard Brand = "mastercard"
	BrandAmex       Brand = "amex"
	BrandDiscover   Brand = "discover"
	BrandDiners     Brand = "diners"
)

// Result is the outcome of classifying a card number.
// Brand and LuhnValid are independent: a number can match a network's
// prefix/length rules and still fail the checksum.
type Result struct {
	Brand     Brand
	LuhnValid bool
}

// brandRule matches numbers whose leading digits fall in [lo, hi]
// (compared over len(lo) digits) and whose total length is allowed.
type brandRule struct {
	brand   Brand
	lo, hi  string
	lengths []int
}

// Prefix/length rules per network. More specific prefixes are listed
// before broader ones so the first match wins.
var brandRules = []brandRule{
	{BrandMasterCard, "2221", "2720", []int{16}},
	{BrandMasterCard, "51", "55", []int{16}},
	{BrandVisa, "4", "4", []int{13, 16, 19}},
	{BrandAmex, "34", "34", []int{15}},
	{BrandAmex, "37", "37", []int{15}},
	{BrandDiscover, "6011", "6011", []int{16, 19}},
	{BrandDiscover, "644", "649", []int{16, 19}},
	{BrandDiscover, "65", "65", []int{16, 19}},
	{BrandDiners, "300", "305", []int{14, 16, 19}},
	{BrandDiners, "36", "36", []int{14, 16, 19}},
	{BrandDiners, "38", "38", []int{14, 16, 19}},
}

// Detect classifies a card number and verifies its checksum.
// Spaces and hyphens are tolerated; any other non-digit character
// yields an unknown brand and a failed checksum.
func Detect(number string) Result {
	digits := stripSeparators(number)
	if digits == "" || !isDigits(digits) {
		return Result{}
	}
	return Result{
		Brand:     classify(digits),
		LuhnValid: Luhn(digits),
	}
}

// Luhn reports whether a digit string passes the Luhn checksum:
// double every second digit from the right, subtract 9 when the
// doubled value exceeds 9, and require the total to be divisible by 10.
func Luhn(digits string) bool {
	if digits == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func classify(digits string) Brand {
	for _, r := range brandRules {
		if !r.matchesLength(len(digits)) {
			continue
		}
		n := len(r.lo)
		if len(digits) < n {
			continue
		}
		prefix := digits[:n]
		if prefix >= r.lo && prefix <= r.hi {
			return r.brand
		}
	}
	return BrandUnknown
}

func (r brandRule) matchesLength(n int) bool {
	for _, l := range r.lengths {
		if l == n {
			return true
		}
	}
	return false
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
