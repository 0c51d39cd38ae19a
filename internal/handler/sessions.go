package handler

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"tax-simulation/internal/engine"
)

const (
	sessionCookie = "tax_simulation_session"
	sessionHeader = "X-Session-ID"

	maxSessionIDLen   = 128
	defaultSessionTTL = 30 * time.Minute
	defaultMaxSession = 10000
)

// ControllerFactory builds the controller owning one form session.
type ControllerFactory func(sessionID string) *engine.Controller

type session struct {
	ctrl     *engine.Controller
	lastSeen time.Time
}

// sessions keeps one controller per form session so that last-response-wins
// and the current result never cross between clients. Idle sessions expire
// after ttl; past max the least recently seen one is dropped.
type sessions struct {
	newCtrl ControllerFactory
	ttl     time.Duration
	max     int
	now     func() time.Time

	mu   sync.Mutex
	byID map[string]*session
}

func newSessions(f ControllerFactory, ttl time.Duration, max int) *sessions {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if max <= 0 {
		max = defaultMaxSession
	}
	return &sessions{
		newCtrl: f,
		ttl:     ttl,
		max:     max,
		now:     time.Now,
		byID:    map[string]*session{},
	}
}

// get returns the session's controller, creating it on first use.
func (s *sessions) get(id string) *engine.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if sess, ok := s.byID[id]; ok && now.Sub(sess.lastSeen) < s.ttl {
		sess.lastSeen = now
		return sess.ctrl
	}
	s.evictLocked(now)
	sess := &session{ctrl: s.newCtrl(id), lastSeen: now}
	s.byID[id] = sess
	return sess.ctrl
}

// lookup returns an existing, unexpired session without creating one.
func (s *sessions) lookup(id string) (*engine.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sess, ok := s.byID[id]
	if !ok || now.Sub(sess.lastSeen) >= s.ttl {
		return nil, false
	}
	sess.lastSeen = now
	return sess.ctrl, true
}

func (s *sessions) evictLocked(now time.Time) {
	for id, sess := range s.byID {
		if now.Sub(sess.lastSeen) >= s.ttl {
			delete(s.byID, id)
		}
	}
	for len(s.byID) >= s.max {
		var oldestID string
		var oldest time.Time
		for id, sess := range s.byID {
			if oldestID == "" || sess.lastSeen.Before(oldest) {
				oldestID, oldest = id, sess.lastSeen
			}
		}
		delete(s.byID, oldestID)
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// sessionID reads the caller's session from the X-Session-ID header or the
// session cookie. A caller without one gets a fresh id set as a cookie. The
// id is echoed in the response header either way.
func sessionID(ctx *fasthttp.RequestCtx) string {
	id := string(ctx.Request.Header.Peek(sessionHeader))
	if !validSessionID(id) {
		id = string(ctx.Request.Header.Cookie(sessionCookie))
	}
	if !validSessionID(id) {
		id = uuid.NewString()
		var c fasthttp.Cookie
		c.SetKey(sessionCookie)
		c.SetValue(id)
		c.SetPath("/")
		c.SetHTTPOnly(true)
		c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
		ctx.Response.Header.SetCookie(&c)
	}
	ctx.Response.Header.Set(sessionHeader, id)
	return id
}

func validSessionID(id string) bool {
	return id != "" && len(id) <= maxSessionIDLen
}
