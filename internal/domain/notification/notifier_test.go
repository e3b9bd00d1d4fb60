package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestComposeEmail(t *testing.T) {
	email := ComposeEmail("owner@books.test", Notice{
		LeadType: LeadIntake,
		Name:     "Jane Doe",
		Email:    "jane@acme.com",
	})

	assert.Equal(t, "owner@books.test", email.To)
	assert.Equal(t, "New Client Intake Submission", email.Subject)
	assert.Contains(t, email.Body, "Name: Jane Doe")
	assert.Contains(t, email.Body, "Business: Not provided")
	assert.Contains(t, email.Body, "Type: intake")
	assert.Contains(t, email.Body, "Please follow up within 1 business day.")

	contact := ComposeEmail("owner@books.test", Notice{LeadType: LeadContact, Name: "A", Email: "a@b.c", BusinessName: "Acme LLC"})
	assert.Equal(t, "New Contact Form Submission", contact.Subject)
	assert.Contains(t, contact.Body, "Business: Acme LLC")
}

func TestMailLog_Notify(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewMailLog("owner@books.test", zap.New(core))

	require.NoError(t, m.Notify(context.Background(), Notice{LeadType: LeadContact, Name: "A", Email: "a@b.c"}))
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "contact", fields["lead_type"])
	assert.Equal(t, "New Contact Form Submission", fields["subject"])

	assert.ErrorIs(t, m.Notify(context.Background(), Notice{LeadType: LeadContact}), ErrInvalidNotice)
}

func TestEmailJS_Notify(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	e := NewEmailJS(EmailJSConfig{
		Endpoint:   srv.URL,
		ServiceID:  "service_x",
		TemplateID: "template_y",
		PublicKey:  "pub",
	}, srv.Client())

	err := e.Notify(context.Background(), Notice{
		LeadType:     LeadIntake,
		Name:         "Jane Doe",
		Email:        "jane@acme.com",
		BusinessName: "Acme LLC",
		Summary:      "New intake form submission.",
	})
	require.NoError(t, err)

	assert.Equal(t, "service_x", got.ServiceID)
	assert.Equal(t, "template_y", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Empty(t, got.AccessToken)
	assert.Equal(t, map[string]string{
		"from_name":     "Jane Doe",
		"from_email":    "jane@acme.com",
		"business_name": "Acme LLC",
		"message":       "New intake form submission.",
		"form_type":     "Client Intake Form",
	}, got.TemplateParams)
}

func TestEmailJS_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The Public Key is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	e := NewEmailJS(EmailJSConfig{Endpoint: srv.URL}, srv.Client())
	err := e.Notify(context.Background(), Notice{LeadType: LeadContact, Name: "A", Email: "a@b.c"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Contains(t, err.Error(), "400")
}

func TestFanout(t *testing.T) {
	var calls int
	ok := NotifierFunc(func(context.Context, Notice) error { calls++; return nil })
	boom := errors.New("boom")
	bad := NotifierFunc(func(context.Context, Notice) error { calls++; return boom })

	err := Fanout{ok, nil, bad, ok}.Notify(context.Background(), Notice{Name: "A", Email: "a@b.c"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)

	assert.NoError(t, Fanout{ok}.Notify(context.Background(), Notice{}))
}
