package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
)

func TestTopicEnsureError(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		assert.NoError(t, topicEnsureError(kadm.CreateTopicResponse{Topic: "audit"}))
	})

	t.Run("already exists is success", func(t *testing.T) {
		res := kadm.CreateTopicResponse{Topic: "audit", Err: kerr.TopicAlreadyExists}
		assert.NoError(t, topicEnsureError(res))
	})

	t.Run("authorization failure surfaces", func(t *testing.T) {
		res := kadm.CreateTopicResponse{Topic: "audit", Err: kerr.TopicAuthorizationFailed}
		err := topicEnsureError(res)
		assert.ErrorIs(t, err, kerr.TopicAuthorizationFailed)
		assert.ErrorContains(t, err, "audit")
	})
}
