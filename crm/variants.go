package crm

// Encodings a delivery attempt can use.
const (
	EncodingForm = "form"
	EncodingJSON = "json"
)

// Variant is one specific way of shaping the webhook request: a body
// encoding plus the field-name aliases each semantic value is duplicated
// under. The receiving workflow's field mapping is not reliably known, so
// every alias that some CRM configuration might expect is carried at once.
type Variant struct {
	Name     string
	Encoding string
	// Aliases maps a semantic field (name, phone, email, company, notes) to
	// the body field names it is sent under.
	Aliases map[string][]string
	// QueryAliases additionally duplicates fields as URL query parameters.
	QueryAliases map[string][]string
}

// leadAliases is shared by both default variants; the encoding is the only
// thing that differs between them.
var leadAliases = map[string][]string{
	"name":    {"name", "Name", "contact_name", "full_name"},
	"phone":   {"phone", "Phone", "contact_phone", "phone_number"},
	"email":   {"email", "Email", "contact_email"},
	"company": {"company", "Company", "organization"},
	"notes":   {"notes", "Notes", "message", "description"},
}

var leadQueryAliases = map[string][]string{
	"email": {"email"},
	"phone": {"phone"},
}

// DefaultVariants returns the delivery attempts in priority order:
// URL-encoded form first, JSON as the fallback content type.
func DefaultVariants() []Variant {
	return []Variant{
		{
			Name:         "form",
			Encoding:     EncodingForm,
			Aliases:      leadAliases,
			QueryAliases: leadQueryAliases,
		},
		{
			Name:         "json",
			Encoding:     EncodingJSON,
			Aliases:      leadAliases,
			QueryAliases: leadQueryAliases,
		},
	}
}
