package redisstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/volunteer-board/pkg/kvstore"
	"github.com/jakechorley/volunteer-board/pkg/kvstore/kvstoretest"
)

// Set VOLUNTEER_TEST_REDIS_URL (e.g. redis://localhost:6379/15) to run against a live server.
func redisURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("VOLUNTEER_TEST_REDIS_URL")
	if url == "" {
		t.Skip("VOLUNTEER_TEST_REDIS_URL not set")
	}
	return url
}

func TestStore(t *testing.T) {
	url := redisURL(t)

	kvstoretest.Run(t, func(t *testing.T) kvstore.Store {
		// A fresh prefix per subtest keeps runs isolated
		prefix := fmt.Sprintf("volunteer-test:%d:", time.Now().UnixNano())
		s, err := New(url, prefix)
		require.NoError(t, err)
		t.Cleanup(func() {
			keys, _ := s.rdb.Keys(context.Background(), prefix+"*").Result()
			if len(keys) > 0 {
				s.rdb.Del(context.Background(), keys...)
			}
			s.Close()
		})
		return s
	})
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("not a url", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis url")
}

func TestKeyPrefix(t *testing.T) {
	s := &Store{prefix: DefaultPrefix}
	assert.Equal(t, "volunteer:events", s.key("events"))
}
