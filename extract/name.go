package extract

import (
	"regexp"
	"strings"
)

// A capitalized word, used to bound how much of the sentence gets claimed as
// a name.
const capWord = `[A-Z][a-z]+`

var namePatterns = []*regexp.Regexp{
	// "first name John ... last name Smith"
	regexp.MustCompile(`(?i)first name(?: is)?\s+([A-Za-z]+).*?last name(?: is)?\s+([A-Za-z]+)`),
	// "my name is John Smith" / "this is John Smith" / "I am John A Smith"
	regexp.MustCompile(`(?:[Mm]y name is|[Tt]his is|I am|I'm)\s+(` + capWord + `(?:\s+` + capWord + `){1,2})\b`),
	// single-name variant of the same phrases
	regexp.MustCompile(`(?:[Mm]y name is|[Tt]his is|I am|I'm)\s+(` + capWord + `)\b`),
	// "speaking with John", "calling for Jane Doe", "meeting Bob"
	regexp.MustCompile(`(?:with|for|meeting)\s+(` + capWord + `(?:\s+` + capWord + `)?)\b`),
	// "hello, John here" / "hi, Jane Doe calling"
	regexp.MustCompile(`(?i)(?:hello|hi|hey),?\s+(` + capWord + `(?:\s+` + capWord + `)?)\s+(?:here|calling)\b`),
	// "contact name is Jane Doe"
	regexp.MustCompile(`(?i)contact name is\s+(` + capWord + `(?:\s+` + capWord + `)?)\b`),
}

// Leading run of one or two capitalized words, used as a last resort.
var leadingName = regexp.MustCompile(`^(` + capWord + `(?:\s+` + capWord + `)?)\b`)

// Greeting and filler words that look like names when they open a sentence.
var nameStoplist = map[string]bool{
	"hello": true, "hi": true, "hey": true, "good": true, "yes": true,
	"no": true, "okay": true, "ok": true, "thanks": true, "thank": true,
	"please": true, "um": true, "uh": true, "so": true, "well": true,
}

// extractName tries each pattern family in order; the first hit wins.
func extractName(text string) string {
	if m := namePatterns[0].FindStringSubmatch(text); m != nil {
		return m[1] + " " + m[2]
	}
	for _, re := range namePatterns[1:] {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	if m := leadingName.FindStringSubmatch(text); m != nil {
		first := strings.ToLower(strings.Fields(m[1])[0])
		if !nameStoplist[first] {
			return m[1]
		}
	}
	return ""
}
