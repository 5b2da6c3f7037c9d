// pkg/dictionary/redis.go

package dictionary

import (
	"context"
	"net/url"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DefaultRedisKey is the set consulted when the URL names no key.
const DefaultRedisKey = "pwquality:dictionary"

// Redis looks passwords up in a redis set with SISMEMBER. Calls go through
// a circuit breaker so an unavailable server fails fast.
type Redis struct {
	client  *redis.Client
	key     string
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// NewRedis connects lazily to the server named by rawURL. The optional
// "key" query parameter selects the set; every other parameter is passed
// to redis.ParseURL.
func NewRedis(rawURL string, log *zap.Logger) (*Redis, error) {
	if log == nil {
		log = zap.NewNop()
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, cerr.Wrap(err, "parse redis url")
	}
	q := u.Query()
	key := q.Get("key")
	if key == "" {
		key = DefaultRedisKey
	}
	q.Del("key")
	u.RawQuery = q.Encode()

	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, cerr.Wrap(err, "parse redis options")
	}
	return NewRedisWithClient(redis.NewClient(opts), key, log), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, key string, log *zap.Logger) *Redis {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Redis{client: client, key: key, log: log}
	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dictionary-redis",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Dictionary backend state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return r
}

// Contains checks every lookup candidate of password against the set.
func (r *Redis) Contains(ctx context.Context, password string) (bool, error) {
	res, err := r.breaker.Execute(func() (interface{}, error) {
		for _, c := range Candidates(password) {
			ok, err := r.client.SIsMember(ctx, r.key, c).Result()
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return false, cerr.Wrapf(err, "redis dictionary lookup in %s", r.key)
	}
	return res.(bool), nil
}

// addBatch bounds the members sent in one SADD.
const addBatch = 1000

// Key is the name of the set consulted.
func (r *Redis) Key() string {
	return r.key
}

// Add inserts words into the set, lowercased, and returns how many were
// new. Blank words are skipped.
func (r *Redis) Add(ctx context.Context, words ...string) (int64, error) {
	members := make([]interface{}, 0, min(len(words), addBatch))
	var added int64
	flush := func() error {
		if len(members) == 0 {
			return nil
		}
		n, err := r.breaker.Execute(func() (interface{}, error) {
			return r.client.SAdd(ctx, r.key, members...).Result()
		})
		if err != nil {
			return cerr.Wrapf(err, "add %d words to %s", len(members), r.key)
		}
		added += n.(int64)
		members = members[:0]
		return nil
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		members = append(members, w)
		if len(members) == addBatch {
			if err := flush(); err != nil {
				return added, err
			}
		}
	}
	if err := flush(); err != nil {
		return added, err
	}
	r.log.Debug("Dictionary words added", zap.String("key", r.key), zap.Int64("added", added))
	return added, nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
