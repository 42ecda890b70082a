package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromTranscriptFullDraft(t *testing.T) {
	draft := FromTranscript("My name is John Smith, phone 555-123-4567, email john at gmail dot com")

	assert.Equal(t, "John Smith", draft.Name)
	assert.Equal(t, "+15551234567", draft.Phone)
	assert.Equal(t, "john@gmail.com", draft.Email)
}

func TestFromTranscriptNoMatchesLeavesFieldsEmpty(t *testing.T) {
	draft := FromTranscript("just calling to say the weather is nice today")

	assert.Empty(t, draft.Phone)
	assert.Empty(t, draft.Email)
	assert.Empty(t, draft.Company)
	assert.Equal(t, "just calling to say the weather is nice today", draft.RawTranscript)
}

func TestFromTranscriptIsDeterministic(t *testing.T) {
	text := "This is Jane Doe from Acme Corp, my number is 415 555 0199"
	first := FromTranscript(text)
	second := FromTranscript(text)

	assert.Equal(t, first, second)
}

func TestSanitizeStripsHTMLCharacters(t *testing.T) {
	draft := FromTranscript(`<script>alert("x")</script> hello & goodbye`)

	assert.NotContains(t, draft.RawTranscript, "<")
	assert.NotContains(t, draft.RawTranscript, ">")
	assert.NotContains(t, draft.RawTranscript, `"`)
	assert.NotContains(t, draft.RawTranscript, "&")
}

func TestExtractPhoneGroupings(t *testing.T) {
	cases := map[string]string{
		"call me at 555-123-4567":          "+15551234567",
		"call me at (555) 123-4567":        "+15551234567",
		"call me at 555.123.4567":          "+15551234567",
		"call me at 5551234567 thanks":     "+15551234567",
		"call me at 1-555-123-4567":        "+15551234567",
		"call me at +1 555 123 4567":       "+15551234567",
		"my extension is 1234, that's all": "",
		"the year 2024 was a good one":     "",
	}
	for text, want := range cases {
		assert.Equal(t, want, extractPhone(text), "text: %q", text)
	}
}

func TestExtractPhoneFromNumberWords(t *testing.T) {
	got := extractPhone("my number is five five five one two three four five six seven")
	assert.Equal(t, "+15551234567", got)
}

func TestExtractPhoneNumberWordsWithHomophones(t *testing.T) {
	// Speech APIs substitute "oh", "to", "for", "ate" for digits.
	got := extractPhone("five five five oh one to three for five ate")
	assert.Equal(t, "+15550123458", got)
}

func TestExtractPhoneRejectsShortWordRuns(t *testing.T) {
	assert.Empty(t, extractPhone("give me two for one"))
}

func TestExtractPhoneRejectsOverlongWordRuns(t *testing.T) {
	// Eleven spoken digits is not a ten-digit number; don't guess.
	assert.Empty(t, extractPhone("five five five one two three four five six seven eight"))
}

func TestExtractEmailStandardForm(t *testing.T) {
	got := extractEmail("you can reach me anytime at John.Smith+leads@Example.COM thanks")
	assert.Equal(t, "john.smith+leads@example.com", got)
}

func TestExtractEmailSpokenForm(t *testing.T) {
	got := extractEmail("it's john at gmail dot com")
	assert.Equal(t, "john@gmail.com", got)
}

func TestExtractEmailSpokenFormWithDottedDomain(t *testing.T) {
	got := extractEmail("write to jane at acme.io whenever")
	assert.Equal(t, "jane@acme.io", got)
}

func TestExtractEmailSpelledOut(t *testing.T) {
	got := extractEmail("my address is j o h n at g m a i l dot com")
	assert.Equal(t, "john@gmail.com", got)
}

func TestExtractEmailSpelledWithHyphens(t *testing.T) {
	got := extractEmail("my email is j-o-h-n at g-m-a-i-l dot com")
	assert.Equal(t, "john@gmail.com", got)
}

func TestExtractEmailNoMatch(t *testing.T) {
	assert.Empty(t, extractEmail("no address was mentioned here"))
}

func TestExtractNameFamilies(t *testing.T) {
	cases := map[string]string{
		"first name John and last name Smith please":  "John Smith",
		"My name is Jane Doe and I need a quote":      "Jane Doe",
		"This is Robert":                              "Robert",
		"I had a meeting Sarah yesterday":             "Sarah",
		"hello, Mike here, calling about the listing": "Mike",
		"the contact name is Lisa Wong":               "Lisa Wong",
		"Tom Baker checking in on my order":           "Tom Baker",
	}
	for text, want := range cases {
		assert.Equal(t, want, extractName(text), "text: %q", text)
	}
}

func TestExtractNameStoplistRejectsGreetings(t *testing.T) {
	assert.Empty(t, extractName("Hello there, just checking in"))
	assert.Empty(t, extractName("Thanks for the callback"))
}

func TestExtractCompanyFamilies(t *testing.T) {
	cases := map[string]string{
		"my company is Acme Widgets and I need help": "Acme Widgets",
		"I work at Globex on the east side":          "Globex",
		"I'm with Initech, calling about billing":    "Initech",
		"we are Stark Industries Inc. of course":     "Stark Industries Inc",
		"over at Wayne Law Firm downtown":            "Wayne Law Firm",
	}
	for text, want := range cases {
		assert.Equal(t, want, extractCompany(text), "text: %q", text)
	}
}

func TestValidateCompanyBounds(t *testing.T) {
	// Validated family never yields names under 3 or over 25 characters.
	assert.Empty(t, extractCompany("my company is Ab"))
	assert.Empty(t, extractCompany("my company is Extraordinarily Longwinded Conglomerate Holdings"))
	// Leading stopword disqualifies the capture.
	assert.Empty(t, extractCompany("my employer is the best around"))
}

func TestValidateCompanyStripsTrailingFiller(t *testing.T) {
	got := extractCompany("the business is Hooli um yeah")
	assert.Equal(t, "Hooli", got)
}
