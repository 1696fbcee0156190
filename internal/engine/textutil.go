package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

// countSuffixes maps human-readable count abbreviations to multipliers.
// Checked in order so "K" never shadows a later suffix.
var countSuffixes = []struct {
	suffix string
	mult   float64
}{
	{"K", 1e3},
	{"M", 1e6},
	{"B", 1e9},
}

// ParseCount converts a human-readable count ("1.2M", "50K", "3,500") to an
// integer. Suffixes are case-insensitive; unparseable values become 0.
func ParseCount(s string) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	upper := strings.ToUpper(s)
	for _, cs := range countSuffixes {
		if !strings.Contains(upper, cs.suffix) {
			continue
		}
		num, err := strconv.ParseFloat(strings.ReplaceAll(upper, cs.suffix, ""), 64)
		if err != nil {
			continue
		}
		return int(math.Round(num * cs.mult))
	}
	f, err := strconv.ParseFloat(upper, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// NormalizeCount converts a loosely-typed scraper field (JSON number or
// abbreviated string) to an integer. Already-integer values pass through.
func NormalizeCount(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return int(f)
	case string:
		return ParseCount(n)
	}
	return 0
}

// weekdayNames in Monday-first order; scan order defines mode tie-breaking.
var weekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// ExtractWeekday finds a weekday name inside a raw publish string by
// case-insensitive substring match. Returns false when none of the seven
// names appear.
func ExtractWeekday(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, day := range weekdayNames {
		if strings.Contains(lower, strings.ToLower(day)) {
			return day, true
		}
	}
	return "", false
}
