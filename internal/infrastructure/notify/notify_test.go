package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESNotifier(t *testing.T) {
	api := &fakeSES{}
	n := newSESNotifier(api, "noreply@example.com", nil)

	err := n.Notify(context.Background(), ports.Notification{To: "owner@acme.ng", Subject: "Location approved", Body: "ok"})
	require.NoError(t, err)
	require.Len(t, api.inputs, 1)
	in := api.inputs[0]
	assert.Equal(t, "noreply@example.com", aws.ToString(in.Source))
	assert.Equal(t, []string{"owner@acme.ng"}, in.Destination.ToAddresses)
	assert.Equal(t, "Location approved", aws.ToString(in.Message.Subject.Data))
}

func TestSESNotifier_SinDestinatario(t *testing.T) {
	api := &fakeSES{}
	require.NoError(t, newSESNotifier(api, "x@example.com", nil).Notify(context.Background(), ports.Notification{Subject: "s"}))
	assert.Empty(t, api.inputs)
}

func TestSESNotifier_Error(t *testing.T) {
	api := &fakeSES{err: errors.New("throttled")}
	err := newSESNotifier(api, "x@example.com", nil).Notify(context.Background(), ports.Notification{To: "a@b.co"})
	assert.ErrorContains(t, err, "throttled")
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier(nil).Notify(context.Background(), ports.Notification{To: "a@b.co"}))
}
