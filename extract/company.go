package extract

import (
	"regexp"
	"strings"
)

// Explicit phrases get run through validateCompany; the suffix/type families
// are precise enough on their own.
var (
	companyPhrase = regexp.MustCompile(`(?i)\b(?:company|organization|organisation|business|employer)(?:\s+name)?(?:\s+is|\s+called)?\s+([A-Za-z0-9][A-Za-z0-9&.\- ]*)`)
	workAtPhrase  = regexp.MustCompile(`(?i)\bI work (?:at|for)\s+([A-Za-z0-9][A-Za-z0-9&.\- ]*)`)
	withFromPhrase = regexp.MustCompile(`(?i)\bI'?m (?:with|from)\s+([A-Za-z0-9][A-Za-z0-9&.\- ]*)`)

	companySuffix = regexp.MustCompile(`\b([A-Z][A-Za-z0-9&\-]*(?:\s+[A-Z][A-Za-z0-9&\-]*){0,3}\s+(?:Inc|LLC|LLP|Corp|Corporation|Ltd|Limited|Co|Company|Group|Holdings|Industries|Enterprises|Partners|Solutions|Technologies|Systems|Services)\.?)(?:\s|[,.;]|$)`)
	businessType  = regexp.MustCompile(`\b([A-Z][A-Za-z0-9&\-]*(?:\s+[A-Z][A-Za-z0-9&\-]*){0,2}\s+(?:Law Firm|Real Estate|Insurance Agency|Medical Group|Dental Group|Auto Repair|Construction|Consulting|Plumbing|Roofing|Landscaping))(?:\s|[,.;]|$)`)

	companyBoundary = regexp.MustCompile(`[,.;!?]`)
)

// Words that mark where the company name stops and speech filler begins.
// Everything from the first such word on is discarded.
var trailingFiller = map[string]bool{
	"and": true, "the": true, "a": true, "an": true, "so": true, "um": true,
	"uh": true, "yeah": true, "okay": true, "here": true, "today": true,
	"now": true, "on": true, "in": true, "at": true, "to": true, "for": true,
	"of": true, "i": true, "we": true, "is": true, "was": true, "that": true,
	"this": true, "it": true,
}

// Generic words that disqualify a capture when they lead it.
var leadingStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "our": true, "this": true,
	"that": true, "it": true, "he": true, "she": true, "they": true,
	"we": true, "i": true, "you": true, "is": true, "was": true,
}

// extractCompany tries the pattern families in order; first hit wins.
func extractCompany(text string) string {
	for _, re := range []*regexp.Regexp{companyPhrase, workAtPhrase, withFromPhrase} {
		if m := re.FindStringSubmatch(text); m != nil {
			if name := validateCompany(m[1]); name != "" {
				return name
			}
		}
	}
	if m := companySuffix.FindStringSubmatch(text); m != nil {
		return strings.TrimRight(m[1], ".")
	}
	if m := businessType.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// validateCompany trims a raw capture down to a plausible company name, or
// rejects it outright. Captures run to the next clause boundary, so the tail
// usually carries filler.
func validateCompany(raw string) string {
	// Cut at the first clause boundary, then at the first filler word.
	if loc := companyBoundary.FindStringIndex(raw); loc != nil {
		raw = raw[:loc[0]]
	}
	words := strings.Fields(raw)
	for i, w := range words {
		if trailingFiller[strings.ToLower(w)] {
			words = words[:i]
			break
		}
	}
	if len(words) == 0 || len(words) > 3 {
		return ""
	}
	if leadingStopwords[strings.ToLower(words[0])] {
		return ""
	}
	name := strings.Join(words, " ")
	if len(name) < 3 || len(name) > 25 {
		return ""
	}
	return name
}
