package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLockTimeout is returned when the lock could not be taken before the
// context ended.
var ErrLockTimeout = errors.New("lock: timed out waiting for lock")

const lockRetryEvery = 25 * time.Millisecond

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript pushes the expiry out only while the key still holds our token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker serialises critical sections across API replicas. A held lock
// is extended every third of its TTL until it is released, so the TTL only
// bounds how long a crashed holder blocks the others.
type RedisLocker struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl, prefix: "lock:tb:"}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	k := l.prefix + key
	for {
		ok, err := l.rdb.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
			}
			return nil, fmt.Errorf("lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		case <-time.After(lockRetryEvery):
		}
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(k, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.rdb, []string{k}, token).Err(); err != nil {
				log.Printf("lock: release %s: %v", k, err)
			}
		})
	}, nil
}

func (l *RedisLocker) keepAlive(k, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	every := l.ttl / 3
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
		}
		ctx, cancel := context.WithTimeout(context.Background(), every)
		n, err := extendScript.Run(ctx, l.rdb, []string{k}, token, l.ttl.Milliseconds()).Int()
		cancel()
		if err != nil {
			log.Printf("lock: extend %s: %v", k, err)
			continue
		}
		if n == 0 {
			log.Printf("lock: %s lost before release", k)
			return
		}
	}
}

func newToken() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

// LocalLocker is the single-process fallback.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker { return &LocalLocker{locks: map[string]chan struct{}{}} }

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
	}
	var once sync.Once
	return func() { once.Do(func() { <-ch }) }, nil
}

// Locker is satisfied by RedisLocker and LocalLocker.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// BoundedWait caps how long a caller queues for the lock, independent of the
// request deadline.
type BoundedWait struct {
	Locker
	Wait time.Duration
}

func (b BoundedWait) Lock(ctx context.Context, key string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, b.Wait)
	defer cancel()
	return b.Locker.Lock(ctx, key)
}
