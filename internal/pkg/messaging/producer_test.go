package messaging_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/eduadmin/internal/pkg/messaging"
	"github.com/yigit/eduadmin/internal/pkg/metrics"
	"github.com/yigit/eduadmin/internal/testing/testnats"
)

func TestNoopPublisher(t *testing.T) {
	var p messaging.Publisher = messaging.NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), messaging.SubjectUserDeleted, struct{}{}))
	assert.NoError(t, p.Close())
}

func TestProducerIntegration(t *testing.T) {
	natsContainer := testnats.SetupSharedNATS(t)

	producer, err := messaging.NewProducer(natsContainer.URL, "eduadmin.", metrics.NewMock().Messaging, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = producer.Close() }()

	assert.Equal(t, "eduadmin.results.submitted", producer.Subject(messaging.SubjectResultSubmitted))

	t.Run("PublishesJSONEvent", func(t *testing.T) {
		sub := natsContainer.Connect(t)
		inbox, err := sub.SubscribeSync(producer.Subject(messaging.SubjectResultSubmitted))
		require.NoError(t, err)
		require.NoError(t, sub.Flush())

		event := messaging.ResultSubmittedEvent{
			ResultID:     3,
			TestID:       1,
			StudentID:    2,
			CorrectCount: 2,
			TotalCount:   3,
			Score:        66.67,
		}
		require.NoError(t, producer.Publish(context.Background(), messaging.SubjectResultSubmitted, event))

		msg, err := inbox.NextMsg(2 * time.Second)
		require.NoError(t, err)

		var got messaging.ResultSubmittedEvent
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, event.ResultID, got.ResultID)
		assert.InDelta(t, 66.67, got.Score, 0.001)
	})
}
