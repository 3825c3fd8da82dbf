package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/service/notify"
)

type stubPoster struct {
	channels []string
	err      error
}

func (s *stubPoster) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	s.channels = append(s.channels, channelID)
	if s.err != nil {
		return "", "", s.err
	}
	return channelID, "1700000000.000100", nil
}

func TestSlackNotify(t *testing.T) {
	poster := &stubPoster{}
	n, err := notify.NewSlack("xoxb-test", "C0123456", notify.WithSlackAPI(poster))
	gt.NoError(t, err).Required()

	due := time.Now().Add(3 * time.Hour)
	notification := model.NewDueSoonNotification(&model.AssignmentWithCourse{
		Assignment: model.Assignment{Name: "Lab Report", DueAt: &due},
		CourseName: "Chemistry",
	})

	gt.NoError(t, n.Notify(context.Background(), notification))
	gt.Array(t, poster.channels).Length(1)
	gt.Value(t, poster.channels[0]).Equal("C0123456")
}

func TestSlackNotifyRequiresConfig(t *testing.T) {
	_, err := notify.NewSlack("", "C0123456")
	gt.Error(t, err)

	_, err = notify.NewSlack("xoxb-test", "")
	gt.Error(t, err)
}
