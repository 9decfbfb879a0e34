package repository

import (
	"context"
	"fmt"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// snsPublisher matches the subset of the SNS client used here, so tests can
// substitute a mock
type snsPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSMSRepository sends SMS messages through AWS SNS
type SNSSMSRepository struct {
	client   snsPublisher
	senderID string
	logger   logger.Logger
}

// NewSNSSMSRepository creates a new SNS-backed SMS repository
func NewSNSSMSRepository(ctx context.Context, region, senderID string, logger logger.Logger) (repository.SMSRepository, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SNSSMSRepository{
		client:   sns.NewFromConfig(cfg),
		senderID: senderID,
		logger:   logger,
	}, nil
}

// SendText publishes a transactional SMS to one phone number
func (r *SNSSMSRepository) SendText(ctx context.Context, recipient, message string) error {
	input := &sns.PublishInput{
		Message:     aws.String(message),
		PhoneNumber: aws.String(recipient),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(r.senderID),
			},
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	}

	output, err := r.client.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish SMS: %w", err)
	}

	r.logger.Info("SMS accepted by SNS",
		"messageId", aws.ToString(output.MessageId),
		"recipient", recipient)

	return nil
}
