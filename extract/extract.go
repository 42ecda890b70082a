package extract

// Draft is the best-effort contact record pulled out of a transcript.
// Unmatched fields stay empty strings (never null) so callers don't have to
// branch on missing-vs-empty.
type Draft struct {
	RawTranscript string `json:"rawTranscript"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Company       string `json:"company"`
}

// FromTranscript maps raw transcript text to a Draft. It is a pure function:
// same input, same output, no side effects, and it never fails.
func FromTranscript(text string) Draft {
	clean := Sanitize(text)
	// Email patterns run against a looser sanitization that keeps characters
	// legal inside addresses.
	loose := SanitizeKeepEmail(text)

	return Draft{
		RawTranscript: clean,
		Name:          extractName(clean),
		Phone:         extractPhone(clean),
		Email:         extractEmail(loose),
		Company:       extractCompany(clean),
	}
}
