package extract

import (
	"regexp"
	"strings"
)

// Digit-grouped North-American numbers in the delimiter styles callers
// actually dictate: 555-123-4567, (555) 123 4567, 555.123.4567, 5551234567,
// optionally with a +1/1 prefix. First match wins.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?1[-.\s]?\(?(\d{3})\)?[-.\s]?(\d{3})[-.\s]?(\d{4})`),
	regexp.MustCompile(`\(?(\d{3})\)?[-.\s]?(\d{3})[-.\s]?(\d{4})`),
	regexp.MustCompile(`(\d{10})`),
}

// Spoken digits, including the homophones speech APIs substitute. Mapping
// "to"/"for"/"ate" can corrupt non-phone speech that happens to contain those
// words; the exactly-10-digits check below is the only guard.
var numberWords = map[string]string{
	"zero": "0", "oh": "0", "o": "0",
	"one": "1", "won": "1",
	"two": "2", "to": "2", "too": "2",
	"three": "3",
	"four":  "4", "for": "4",
	"five":  "5",
	"six":   "6",
	"seven": "7",
	"eight": "8", "ate": "8",
	"nine": "9",
}

var nonDigit = regexp.MustCompile(`\D`)

// extractPhone returns a normalized +1XXXXXXXXXX number, or "".
func extractPhone(text string) string {
	for _, re := range phonePatterns {
		if m := re.FindString(text); m != "" {
			if p := normalizePhone(m); p != "" {
				return p
			}
		}
	}
	return phoneFromWords(text)
}

// phoneFromWords scans for a run of at least 10 consecutive number-words
// ("five five five one two three ...") and translates them. Runs that don't
// come out at exactly 10 digits are dropped rather than guessed at.
func phoneFromWords(text string) string {
	var run []string
	flush := func() string {
		if len(run) >= 10 {
			digits := strings.Join(run, "")
			if len(digits) == 10 {
				return "+1" + digits
			}
		}
		return ""
	}
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,;:!?")
		if d, ok := numberWords[tok]; ok {
			run = append(run, d)
			continue
		}
		if p := flush(); p != "" {
			return p
		}
		run = run[:0]
	}
	return flush()
}

func normalizePhone(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits
	}
	return ""
}
