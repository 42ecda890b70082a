package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no webhook URL was set.
var ErrNotConfigured = errors.New("CRM webhook URL not configured")

// DeliveryError is surfaced when every variant failed; it carries the last
// attempt's upstream status and body for operator diagnosis. Status 0 means
// the request never got a response (network or timeout).
type DeliveryError struct {
	Status int
	Body   string
}

func (e *DeliveryError) Error() string {
	if e.Status == 0 {
		return "CRM delivery failed: " + e.Body
	}
	return fmt.Sprintf("CRM delivery failed with status %d: %s", e.Status, e.Body)
}

// Lead is the validated, sanitized record handed to the forwarder.
type Lead struct {
	Name    string
	Phone   string
	Email   string
	Company string
	Notes   string
}

func (l Lead) fields() map[string]string {
	return map[string]string{
		"name":    l.Name,
		"phone":   l.Phone,
		"email":   l.Email,
		"company": l.Company,
		"notes":   l.Notes,
	}
}

// Result reports which variant the webhook accepted and with what status.
type Result struct {
	Variant string
	Status  int
}

// Forwarder delivers leads to an external CRM webhook by trying each variant
// in order until one is accepted. Attempts are strictly sequential, each
// bounded by its own timeout; there is no retry beyond the variant list.
type Forwarder struct {
	webhookURL     string
	variants       []Variant
	attemptTimeout time.Duration
	http           *http.Client
}

func NewForwarder(webhookURL string, attemptTimeout time.Duration) *Forwarder {
	if attemptTimeout <= 0 {
		attemptTimeout = 15 * time.Second
	}
	return &Forwarder{
		webhookURL:     webhookURL,
		variants:       DefaultVariants(),
		attemptTimeout: attemptTimeout,
		http:           &http.Client{},
	}
}

// Deliver posts the lead using each variant in turn. The first 2xx/3xx
// response short-circuits; if every variant fails, the last error is
// returned.
func (f *Forwarder) Deliver(ctx context.Context, lead Lead) (*Result, error) {
	if f.webhookURL == "" {
		return nil, ErrNotConfigured
	}

	var lastErr *DeliveryError
	for _, v := range f.variants {
		status, body, err := f.attempt(ctx, v, lead)
		if err != nil {
			lastErr = &DeliveryError{Body: err.Error()}
			log.Printf("crm: variant %q failed: %v", v.Name, err)
			continue
		}
		if status >= 200 && status < 400 {
			return &Result{Variant: v.Name, Status: status}, nil
		}
		lastErr = &DeliveryError{Status: status, Body: body}
		log.Printf("crm: variant %q rejected with %d", v.Name, status)
	}
	return nil, lastErr
}

func (f *Forwarder) attempt(ctx context.Context, v Variant, lead Lead) (int, string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.attemptTimeout)
	defer cancel()

	target, err := url.Parse(f.webhookURL)
	if err != nil {
		return 0, "", err
	}
	q := target.Query()
	for field, value := range lead.fields() {
		if value == "" {
			continue
		}
		for _, param := range v.QueryAliases[field] {
			q.Set(param, value)
		}
	}
	target.RawQuery = q.Encode()

	var body io.Reader
	var contentType string
	switch v.Encoding {
	case EncodingJSON:
		payload := make(map[string]string)
		for field, value := range lead.fields() {
			if value == "" {
				continue
			}
			for _, alias := range v.Aliases[field] {
				payload[alias] = value
			}
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, "", err
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	default:
		form := url.Values{}
		for field, value := range lead.fields() {
			if value == "" {
				continue
			}
			for _, alias := range v.Aliases[field] {
				form.Set(alias, value)
			}
		}
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), body)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, string(b), nil
}
