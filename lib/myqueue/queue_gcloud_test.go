package myqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeQueuePath(t *testing.T) {
	assert.Equal(t, "projects/p/locations/europe-west1/queues/default", composeQueuePath("p", "europe-west1", ""))
	assert.Equal(t, "projects/p/locations/europe-west1/queues/outbox", composeQueuePath("p", "europe-west1", "outbox"))

	q := gcloudTaskQueue{queuePath: composeQueuePath("p", "l", "q")}
	assert.Equal(t, "projects/p/locations/l/queues/q/tasks/abc", q.taskPath("abc"))
}
