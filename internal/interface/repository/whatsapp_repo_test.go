package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightwatch-service/pkg/logger"
)

func newWhatsappTestRepo(serverURL string) *WhatsappRepository {
	return &WhatsappRepository{
		logger:      logger.NewNopLogger(),
		baseURL:     serverURL,
		bearerToken: "test-token",
		companyID:   "company-1",
		agentID:     "agent-1",
		httpClient:  http.DefaultClient,
	}
}

func TestSendTemplate(t *testing.T) {
	var got sendTemplateRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/messages/send-template", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success": true, "data": {"messageId": "wa-1", "status": "queued"}}`))
	}))
	defer server.Close()

	repo := newWhatsappTestRepo(server.URL)

	err := repo.SendTemplate(context.Background(), "+628111222333", "flight_delay", map[string]interface{}{
		"travelerName": "Sari Putri",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "company-1", got.CompanyID)
	assert.Equal(t, "agent-1", got.AgentID)
	assert.Equal(t, "+628111222333", got.PhoneNumber)
	assert.Equal(t, "flight_delay", got.TemplateName)
	assert.Equal(t, "template", got.Type)
	assert.Equal(t, "Sari Putri", got.TemplateData["travelerName"])
}

func TestSendTemplateGatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": {"message": "unknown template", "code": "TEMPLATE_NOT_FOUND"}}`))
	}))
	defer server.Close()

	repo := newWhatsappTestRepo(server.URL)

	err := repo.SendTemplate(context.Background(), "+628111222333", "bogus", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
	assert.Contains(t, err.Error(), "TEMPLATE_NOT_FOUND")
}

func TestSendTemplateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	repo := newWhatsappTestRepo(server.URL)

	err := repo.SendTemplate(context.Background(), "+628111222333", "flight_delay", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
