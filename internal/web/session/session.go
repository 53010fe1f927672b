package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/rechargehub/storefront/internal/storefront"
	"github.com/rechargehub/storefront/pkg/client"
)

const (
	cookieName = "rechargehub"
	sidKey     = "sid"
)

// Visitor is everything the server keeps for one browser: the
// storefront state plus the two modal flows. It lives only in memory,
// so a server restart logs everyone out.
type Visitor struct {
	mu sync.Mutex

	// Client carries the visitor's bearer token after login, so each
	// visitor gets their own instance.
	Client *client.Client

	State   *storefront.State
	Auth    *storefront.AuthFlow
	Confirm *storefront.ConfirmationFlow

	// Landing is true until the visitor leaves the welcome screen;
	// logged-in visitors skip it.
	Landing bool

	// AuthOpen mirrors whether the auth modal is showing; the checkout
	// gate opens it, a successful submit closes it.
	AuthOpen bool

	// AuthValues holds the last failed auth submission (password
	// excluded) so the reopened form keeps its fields.
	AuthValues storefront.AuthForm

	// Flash is a one-shot message rendered on the next page load.
	Flash string
}

// Lock serializes access for handlers; a browser can have a page
// request and a status poll in flight at once.
func (v *Visitor) Lock() { v.mu.Lock() }

// Unlock releases the visitor.
func (v *Visitor) Unlock() { v.mu.Unlock() }

// TakeFlash returns and clears the pending flash message.
func (v *Visitor) TakeFlash() string {
	msg := v.Flash
	v.Flash = ""
	return msg
}

// Manager maps signed session cookies to in-memory visitors. The
// cookie carries only an opaque id; all state stays server-side.
type Manager struct {
	store *sessions.CookieStore

	mu       sync.RWMutex
	visitors map[string]*Visitor

	newVisitor func() *Visitor
}

// NewManager creates a manager. An empty secret gets a random key,
// which invalidates cookies across restarts; that is acceptable since
// the visitor map is lost on restart anyway.
func NewManager(secret string, newVisitor func() *Visitor) *Manager {
	key := []byte(secret)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		store:      store,
		visitors:   make(map[string]*Visitor),
		newVisitor: newVisitor,
	}
}

// Visitor returns the visitor for the request's cookie, creating both
// the cookie and the visitor on first contact.
func (m *Manager) Visitor(w http.ResponseWriter, r *http.Request) (*Visitor, error) {
	// Get never fails fatally for cookie stores: a bad cookie yields a
	// fresh session.
	sess, _ := m.store.Get(r, cookieName)

	sid, _ := sess.Values[sidKey].(string)
	if sid != "" {
		m.mu.RLock()
		v, ok := m.visitors[sid]
		m.mu.RUnlock()
		if ok {
			return v, nil
		}
	}

	sid = uuid.New().String()
	sess.Values[sidKey] = sid
	if err := m.store.Save(r, w, sess); err != nil {
		return nil, err
	}

	v := m.newVisitor()

	// Visitors are only removed by Drop on logout, so the map grows
	// with every first-contact request and resets on restart. The
	// in-memory sessions are throwaway, so a sweep has nothing worth
	// preserving; revisit if the process is ever expected to run
	// unattended for long stretches.
	m.mu.Lock()
	m.visitors[sid] = v
	m.mu.Unlock()

	return v, nil
}

// Drop forgets the visitor bound to the request's cookie.
func (m *Manager) Drop(r *http.Request) {
	sess, _ := m.store.Get(r, cookieName)
	sid, _ := sess.Values[sidKey].(string)
	if sid == "" {
		return
	}

	m.mu.Lock()
	delete(m.visitors, sid)
	m.mu.Unlock()
}
