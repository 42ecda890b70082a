package crm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLead = Lead{
	Name:    "John Smith",
	Phone:   "+15551234567",
	Email:   "john@gmail.com",
	Company: "Acme Widgets",
	Notes:   "met at the trade show",
}

func TestDeliverFirstVariantAccepted(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewForwarder(srv.URL, time.Second)
	res, err := f.Deliver(context.Background(), testLead)

	require.NoError(t, err)
	assert.Equal(t, "form", res.Variant)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, 1, calls)
}

func TestDeliverFallsBackToSecondVariant(t *testing.T) {
	// The webhook only understands JSON; the form attempt must not end the
	// sequence.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	f := NewForwarder(srv.URL, time.Second)
	res, err := f.Deliver(context.Background(), testLead)

	require.NoError(t, err)
	assert.Equal(t, "json", res.Variant)
	assert.Equal(t, http.StatusAccepted, res.Status)
}

func TestDeliverAllVariantsRejected(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"unknown field mapping"}`))
	}))
	defer srv.Close()

	f := NewForwarder(srv.URL, time.Second)
	res, err := f.Deliver(context.Background(), testLead)

	assert.Nil(t, res)
	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, http.StatusUnprocessableEntity, de.Status)
	assert.Contains(t, de.Body, "unknown field mapping")
	assert.Equal(t, len(DefaultVariants()), calls)
}

func TestDeliverFormVariantCarriesAliases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		// Body aliases all carry the same value.
		assert.Equal(t, "john@gmail.com", r.PostFormValue("email"))
		assert.Equal(t, "john@gmail.com", r.PostFormValue("Email"))
		assert.Equal(t, "john@gmail.com", r.PostFormValue("contact_email"))
		assert.Equal(t, "+15551234567", r.PostFormValue("phone_number"))
		assert.Equal(t, "John Smith", r.PostFormValue("contact_name"))
		// And the query-parameter fan-out.
		assert.Equal(t, "john@gmail.com", r.URL.Query().Get("email"))
		assert.Equal(t, "+15551234567", r.URL.Query().Get("phone"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewForwarder(srv.URL, time.Second)
	_, err := f.Deliver(context.Background(), testLead)
	require.NoError(t, err)
}

func TestDeliverJSONVariantCarriesAliases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "John Smith", payload["name"])
		assert.Equal(t, "John Smith", payload["full_name"])
		assert.Equal(t, "+15551234567", payload["contact_phone"])
		assert.Equal(t, "met at the trade show", payload["message"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewForwarder(srv.URL, time.Second)
	res, err := f.Deliver(context.Background(), testLead)
	require.NoError(t, err)
	assert.Equal(t, "json", res.Variant)
}

func TestDeliverOmitsEmptyOptionalFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		_, hasEmail := r.PostForm["email"]
		_, hasCompany := r.PostForm["company"]
		assert.False(t, hasEmail)
		assert.False(t, hasCompany)
		assert.Equal(t, "Jane", r.PostFormValue("name"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewForwarder(srv.URL, time.Second)
	_, err := f.Deliver(context.Background(), Lead{Name: "Jane", Phone: "+15550000000"})
	require.NoError(t, err)
}

func TestDeliverUnreachableWebhook(t *testing.T) {
	f := NewForwarder("http://127.0.0.1:1", 200*time.Millisecond)
	res, err := f.Deliver(context.Background(), testLead)

	assert.Nil(t, res)
	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 0, de.Status)
}

func TestDeliverMissingWebhookURL(t *testing.T) {
	f := NewForwarder("", time.Second)
	_, err := f.Deliver(context.Background(), testLead)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
