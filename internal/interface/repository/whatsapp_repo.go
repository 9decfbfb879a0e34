package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// WhatsappRepository sends template messages through the WhatsApp gateway
type WhatsappRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	companyID   string
	agentID     string
	httpClient  *http.Client
}

// NewWhatsappRepository creates a new WhatsApp repository
func NewWhatsappRepository(baseURL, bearerToken, companyID, agentID string, logger logger.Logger) repository.WhatsappRepository {
	return &WhatsappRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		companyID:   companyID,
		agentID:     agentID,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

type sendTemplateRequest struct {
	CompanyID    string                 `json:"companyId"`
	AgentID      string                 `json:"agentId"`
	PhoneNumber  string                 `json:"phoneNumber"`
	TemplateName string                 `json:"templateName"`
	TemplateData map[string]interface{} `json:"templateData"`
	Type         string                 `json:"type"`
}

// SendTemplate sends a template message to the WhatsApp gateway
func (r *WhatsappRepository) SendTemplate(ctx context.Context, recipient, templateName string, templateData map[string]interface{}) error {
	msg := sendTemplateRequest{
		CompanyID:    r.companyID,
		AgentID:      r.agentID,
		PhoneNumber:  recipient,
		TemplateName: templateName,
		TemplateData: templateData,
		Type:         "template",
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/messages/send-template", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("WhatsApp gateway returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			MessageID string `json:"messageId"`
			Status    string `json:"status"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return fmt.Errorf("WhatsApp gateway rejected message: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Info("WhatsApp template accepted",
		"messageId", response.Data.MessageID,
		"recipient", recipient,
		"template", templateName)

	return nil
}
