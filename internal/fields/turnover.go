package fields

import "regexp"

// Both sweeps run over the full text: a bare "YYYY: amount" shape and a
// "year YYYY: amount" shape.
var turnoverPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{4})[:\s]+[^\d]*?([\d,\.]+)`),
	regexp.MustCompile(`(?i)year[:\s]+(\d{4})[^\d]*?([\d,\.]+)`),
}

// TurnoverEntry is one year/amount pair scraped from raw text.
type TurnoverEntry struct {
	Year   string
	Amount string
}

// Turnover applies both sweeps unconditionally, so the same text span can
// yield an entry from each; duplicates are kept. Entries whose amount does
// not normalize are dropped, and the result is cut to the first 3 in scan
// order, which is not necessarily the most recent 3 years.
func Turnover(text string) []TurnoverEntry {
	var entries []TurnoverEntry
	for _, re := range turnoverPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			amount := NormalizeCurrency(ptr(m[2]))
			if amount == nil {
				continue
			}
			entries = append(entries, TurnoverEntry{Year: m[1], Amount: *amount})
		}
	}
	if len(entries) > 3 {
		entries = entries[:3]
	}
	return entries
}
