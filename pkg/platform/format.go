package platform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FormatCount renders an absolute count the way the snapshots display it:
// 1,234,567 -> "1.2M", 45,600 -> "45.6k", 500 -> "500".
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1e3)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// ParseViews inverts FormatCount for ranking: "1.2M" -> 1200000,
// "950k" -> 950000, "500" -> 500. Malformed input parses as 0 so that
// broken records sort last instead of breaking the read path.
func ParseViews(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	mult := 1.0
	switch s[len(s)-1] {
	case 'M', 'm':
		mult = 1e6
		s = s[:len(s)-1]
	case 'K', 'k':
		mult = 1e3
		s = s[:len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v * mult
}

// ParseScore reads a thousands-separated integer string ("9,999" -> 9999).
// Malformed input parses as 0.
func ParseScore(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// IsASCII reports whether s contains only ASCII bytes. Used as the
// English filter for scraped trend names.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

var volumeRe = regexp.MustCompile(`(\d[\d,]*)\s*([kK])?`)

// NormalizeVolume canonicalizes a scraped tweet-volume string:
// "25K+ tweets" -> "25.0k+", "900+ tweets" -> "900+ tweets" stays under
// the threshold as a plain count, anything unparsable -> "-".
func NormalizeVolume(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "tweets")
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "+"))

	m := volumeRe.FindStringSubmatch(s)
	if m == nil || m[1] == "" {
		return "-"
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return "-"
	}
	if m[2] != "" {
		n *= 1000
	}
	if n >= 1000 {
		return fmt.Sprintf("%.1fk+", float64(n)/1e3)
	}
	return fmt.Sprintf("%d+ tweets", n)
}

// truncate shortens s to at most maxLen runes, appending "..." when cut.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
