package repository

import (
	"context"
)

// WhatsappRepository defines the interface for sending WhatsApp template
// messages through the messaging gateway
type WhatsappRepository interface {
	SendTemplate(ctx context.Context, recipient, templateName string, templateData map[string]interface{}) error
}
