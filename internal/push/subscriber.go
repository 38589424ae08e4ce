// Package push delivers out-of-band notifications from the tracker's
// websocket channel into the notification store.
package push

import (
	"encoding/json"
	"net/http"
	gosync "sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard/internal/model"
	"github.com/taskboard/taskboard/internal/store"
)

// maxReconnectWait caps the backoff between connection attempts.
const maxReconnectWait = 30 * time.Second

// minSessionDuration is how long a connection must hold before a
// reconnect starts from the smallest backoff again.
const minSessionDuration = 10 * time.Second

// Subscriber maintains a websocket connection to the push channel and
// feeds every decoded notification to NotificationStore.Push. The
// store's dedup makes redelivery after a reconnect harmless.
type Subscriber struct {
	url     string
	token   string
	store   *store.NotificationStore
	log     zerolog.Logger
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      gosync.Mutex
	running bool
}

// New creates a subscriber for the given websocket URL, authenticating
// with the same Bearer token as the REST adapter.
func New(url, token string, st *store.NotificationStore) *Subscriber {
	return &Subscriber{
		url:    url,
		token:  token,
		store:  st,
		log:    zerolog.Nop(),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// WithLogger returns the subscriber configured to log to l.
func (s *Subscriber) WithLogger(l zerolog.Logger) *Subscriber {
	s.log = l
	return s
}

// Start launches the connection loop. Calling Start twice is a no-op.
func (s *Subscriber) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	go s.run()
}

// Stop tears down the connection loop and waits for it to exit.
// Calling Stop again (or without a prior Start) is a no-op.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	<-s.doneCh
}

// run dials the channel and reads until failure, reconnecting with
// exponential backoff until stopped.
func (s *Subscriber) run() {
	defer close(s.doneCh)

	backoff := time.Second
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		header := http.Header{}
		if s.token != "" {
			header.Set("Authorization", "Bearer "+s.token)
		}

		conn, _, err := websocket.DefaultDialer.Dial(s.url, header)
		if err != nil {
			s.log.Warn().Err(err).Str("url", s.url).
				Dur("retry_in", backoff).
				Msg("push channel dial failed")

			select {
			case <-s.stopCh:
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxReconnectWait {
				backoff = maxReconnectWait
			}
			continue
		}

		s.log.Debug().Str("url", s.url).Msg("push channel connected")
		connectedAt := time.Now()

		// Unblock the read loop when Stop is called.
		closed := make(chan struct{})
		go func() {
			select {
			case <-s.stopCh:
				conn.Close()
			case <-closed:
			}
		}()

		s.readLoop(conn)
		close(closed)
		conn.Close()

		// A server that accepts and drops straight away must not
		// produce a hot reconnect loop: only a session that held for
		// a while earns a backoff reset, otherwise keep waiting and
		// growing like a failed dial.
		if time.Since(connectedAt) >= minSessionDuration {
			backoff = time.Second
			continue
		}

		select {
		case <-s.stopCh:
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxReconnectWait {
			backoff = maxReconnectWait
		}
	}
}

// readLoop decodes incoming frames and pushes them into the store.
// Returns when the connection fails or is closed.
func (s *Subscriber) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Debug().Err(err).Msg("push channel read ended")
			return
		}

		var n model.Notification
		if err := json.Unmarshal(data, &n); err != nil {
			s.log.Warn().Err(err).Msg("dropping malformed push frame")
			continue
		}

		s.store.Push(n)
	}
}
