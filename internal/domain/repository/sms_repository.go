package repository

import (
	"context"
)

// SMSRepository defines the interface for sending plain-text SMS messages
type SMSRepository interface {
	SendText(ctx context.Context, recipient, message string) error
}
