package extract

import (
	"regexp"
	"strings"
)

var (
	standardEmail = regexp.MustCompile(`[A-Za-z0-9._%+\-']+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// "john at gmail dot com". Tokens need two plain characters minimum so
	// spelled-out letters and hyphen-spelled runs fall through to the
	// families below.
	spokenEmail = regexp.MustCompile(`(?i)\b([a-z0-9._%+]{2,})\s+at\s+([a-z0-9]{2,})\s+dot\s+([a-z]{2,})\b`)

	// "john at gmail.com" (domain already carries the dot)
	spokenAtEmail = regexp.MustCompile(`(?i)\b([a-z0-9._%+]{2,})\s+at\s+([a-z0-9]{2,}\.[a-z]{2,})\b`)

	// "j o h n at g m a i l dot com" (caller spells it out)
	spelledEmail = regexp.MustCompile(`(?i)\b((?:[a-z0-9][\s]+){2,})at\s+((?:[a-z0-9][\s]+)+)dot\s+([a-z]{2,})\b`)

	// "email is j-o-h-n at gmail dot com" / fully hyphen-spelled
	emailIsPhrase = regexp.MustCompile(`(?i)\be-?mail\s+(?:address\s+)?is\s+(.+)$`)

	spelledSeparators = regexp.MustCompile(`[\s\-]+`)
)

// extractEmail tries the pattern families in order and returns the first hit,
// lower-cased. Spoken forms are common because the transcript comes from
// speech, not typing.
func extractEmail(text string) string {
	if m := standardEmail.FindString(text); m != "" {
		return strings.ToLower(m)
	}
	if m := spokenEmail.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[1] + "@" + m[2] + "." + m[3])
	}
	if m := spokenAtEmail.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[1] + "@" + m[2])
	}
	if m := spelledEmail.FindStringSubmatch(text); m != nil {
		local := spelledSeparators.ReplaceAllString(strings.TrimSpace(m[1]), "")
		domain := spelledSeparators.ReplaceAllString(strings.TrimSpace(m[2]), "")
		return strings.ToLower(local + "@" + domain + "." + m[3])
	}
	if m := emailIsPhrase.FindStringSubmatch(text); m != nil {
		if e := assembleSpelled(m[1]); e != "" {
			return e
		}
	}
	return ""
}

// assembleSpelled rebuilds an address from a fully spelled-out tail such as
// "j-o-h-n at g-m-a-i-l dot com". It collapses hyphen/space separated single
// characters, then substitutes the spoken "at"/"dot" tokens.
func assembleSpelled(tail string) string {
	tokens := spelledSeparators.Split(strings.ToLower(strings.TrimSpace(tail)), -1)
	var b strings.Builder
	for _, tok := range tokens {
		switch {
		case tok == "at":
			b.WriteByte('@')
		case tok == "dot":
			b.WriteByte('.')
		default:
			b.WriteString(tok)
		}
	}
	addr := b.String()
	if standardEmail.MatchString(addr) {
		return addr
	}
	return ""
}
