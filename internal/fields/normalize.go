package fields

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/procuredocs/extractor/constants"
)

// Date shapes, tried in this order.
var (
	reISODate   = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	reSlashDate = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	reDashDate  = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`)
	reWordDate  = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})`)

	reNonAmount = regexp.MustCompile(`[^\d.,\-]`)
)

var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// NormalizeDate reduces the supported date shapes to YYYY-MM-DD. The ISO form
// is returned verbatim, so normalization is idempotent; day-first forms are
// rearranged with zero padding; the written-month form abbreviates the month
// to three letters before table lookup. Returns nil when no shape matches or
// the month name is unknown.
func NormalizeDate(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := *raw
	if s == "" || s == constants.Placeholder {
		return nil
	}
	if m := reISODate.FindString(s); m != "" {
		return &m
	}
	if m := reSlashDate.FindStringSubmatch(s); m != nil {
		v := fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
		return &v
	}
	if m := reDashDate.FindStringSubmatch(s); m != nil {
		v := fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
		return &v
	}
	if m := reWordDate.FindStringSubmatch(s); m != nil {
		name := strings.ToLower(m[2])
		if len(name) > 3 {
			name = name[:3]
		}
		mon, ok := months[name]
		if !ok {
			return nil
		}
		day := m[1]
		if len(day) == 1 {
			day = "0" + day
		}
		v := fmt.Sprintf("%s-%02d-%s", m[3], mon, day)
		return &v
	}
	return nil
}

// NormalizeCurrency strips everything but digits, separators and sign, drops
// thousands commas, and reports the remainder as a parsed float. Returns nil
// when nothing parseable is left, including empty input.
func NormalizeCurrency(raw *string) *string {
	if raw == nil {
		return nil
	}
	cleaned := reNonAmount.ReplaceAllString(*raw, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	v := strconv.FormatFloat(f, 'f', -1, 64)
	return &v
}

// DetectCurrency is a literal symbol check, not a classifier.
func DetectCurrency(text string) *string {
	switch {
	case strings.Contains(text, "$"):
		return ptr("USD")
	case strings.Contains(text, "₹"):
		return ptr("INR")
	}
	return nil
}
