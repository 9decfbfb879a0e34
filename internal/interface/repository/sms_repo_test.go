package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightwatch-service/pkg/logger"
)

type mockPublisher struct {
	err   error
	input *sns.PublishInput
}

func (m *mockPublisher) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSendTextPublishesTransactionalSMS(t *testing.T) {
	publisher := &mockPublisher{}
	repo := &SNSSMSRepository{client: publisher, senderID: "FLIGHTWATCH", logger: logger.NewNopLogger()}

	err := repo.SendText(context.Background(), "+628111222333", "your flight is delayed")
	require.NoError(t, err)

	require.NotNil(t, publisher.input)
	assert.Equal(t, "+628111222333", aws.ToString(publisher.input.PhoneNumber))
	assert.Equal(t, "your flight is delayed", aws.ToString(publisher.input.Message))

	senderID := publisher.input.MessageAttributes["AWS.SNS.SMS.SenderID"]
	assert.Equal(t, "FLIGHTWATCH", aws.ToString(senderID.StringValue))
	smsType := publisher.input.MessageAttributes["AWS.SNS.SMS.SMSType"]
	assert.Equal(t, "Transactional", aws.ToString(smsType.StringValue))
}

func TestSendTextWrapsPublishError(t *testing.T) {
	publisher := &mockPublisher{err: errors.New("throttled")}
	repo := &SNSSMSRepository{client: publisher, senderID: "FLIGHTWATCH", logger: logger.NewNopLogger()}

	err := repo.SendText(context.Background(), "+628111222333", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
