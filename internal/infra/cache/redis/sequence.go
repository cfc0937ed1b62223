// Package redis keeps the quote sequence in a Redis counter so several
// replicas can share one numbering.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const DefaultKey = "coalo:quote_sequence"

// nextScript increments the counter, first resetting a value that is not a
// non-negative integer. The second result is 1 when a reset happened.
var nextScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
local reset = 0
if v and (not string.match(v, '^%d+$') or string.len(v) > 18) then
	redis.call('SET', KEYS[1], '0')
	reset = 1
end
return {redis.call('INCR', KEYS[1]), reset}
`)

type Sequence struct {
	client *redis.Client
	key    string
	log    logrus.FieldLogger
}

// Dial parses a redis:// URL and checks the server answers.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewSequence(client *redis.Client, key string, log logrus.FieldLogger) *Sequence {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sequence{client: client, key: key, log: log}
}

// Next advances the counter. A corrupted value counts as zero.
func (s *Sequence) Next(ctx context.Context) (int64, error) {
	res, err := nextScript.Run(ctx, s.client, []string{s.key}).Int64Slice()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", s.key, err)
	}
	if len(res) != 2 {
		return 0, fmt.Errorf("incr %s: unexpected reply %v", s.key, res)
	}
	if res[1] == 1 {
		s.corrupt()
	}
	return res[0], nil
}

func (s *Sequence) Current(ctx context.Context) (int64, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", s.key, err)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		s.corrupt()
		return 0, nil
	}
	return n, nil
}

func (s *Sequence) corrupt() {
	s.log.WithField("key", s.key).Warn("sequence: counter value unreadable, starting from zero")
}
