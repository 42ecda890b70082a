package extract

import "strings"

var (
	strictReplacer = strings.NewReplacer("<", "", ">", "", "'", "", `"`, "", "&", "")
	looseReplacer  = strings.NewReplacer("<", "", ">", "", `"`, "", "&", "")
)

// Sanitize strips HTML-significant characters from transcript text.
// Transcripts come from a third-party API and end up in web UIs and webhook
// payloads, so they are treated as untrusted input.
func Sanitize(text string) string {
	return strings.TrimSpace(strictReplacer.Replace(text))
}

// SanitizeKeepEmail strips the same characters except the apostrophe, which
// is legal in an e-mail local part.
func SanitizeKeepEmail(text string) string {
	return strings.TrimSpace(looseReplacer.Replace(text))
}
