package sessions

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/golang-jwt/jwt/v4"
)

// CookieName is the name of the session cookie.
const CookieName = "inkwell_session"

const (
	keyPrefix  = "session:"
	sessionTTL = 24 * time.Hour
)

// record is what a session id resolves to in the store. UserID 0 means the
// session is anonymous and only carries flash notices.
type record struct {
	UserID  uint     `json:"user_id"`
	Flashes []string `json:"flashes,omitempty"`
}

// Manager tracks the authenticated user across requests. Session state lives
// server-side in Badger with a TTL; the cookie only carries a signed token
// naming the session id, so a forged cookie fails signature verification
// before any store lookup.
type Manager struct {
	db     *badger.DB
	users  repositories.UserRepository
	secret []byte
}

// NewManager creates a Manager on the given session store and user repository.
func NewManager(db *badger.DB, users repositories.UserRepository, secret []byte) *Manager {
	return &Manager{
		db:     db,
		users:  users,
		secret: secret,
	}
}

// Login associates the current browser with userID. Any flashes set on a
// prior anonymous session are carried over.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID uint) error {
	var flashes []string
	if sid := m.sessionID(r); sid != "" {
		if rec, err := m.get(sid); err == nil {
			flashes = rec.Flashes
		}
		// The old id is abandoned; its record expires on its own.
	}

	sid, err := newSessionID()
	if err != nil {
		return err
	}
	if err := m.put(sid, &record{UserID: userID, Flashes: flashes}); err != nil {
		return err
	}
	return m.setCookie(w, sid)
}

// Logout clears the association. Safe to call without an active session.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	if sid := m.sessionID(r); sid != "" {
		if err := m.delete(sid); err != nil {
			// Nothing to recover; the record expires via TTL anyway.
			_ = err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// CurrentUser resolves the active session to a user. Anonymous is nil: no
// cookie, a bad signature, an expired or missing record, and a session
// pointing at a deleted user all resolve to nil rather than an error.
func (m *Manager) CurrentUser(r *http.Request) *models.User {
	sid := m.sessionID(r)
	if sid == "" {
		return nil
	}
	rec, err := m.get(sid)
	if err != nil || rec.UserID == 0 {
		return nil
	}
	user, err := m.users.GetByID(rec.UserID)
	if err != nil {
		return nil
	}
	return user
}

// Flash queues a one-time notice for the next rendered page. Anonymous
// visitors get a flash-only session so the notice survives a redirect.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, message string) error {
	sid := m.sessionID(r)
	if sid != "" {
		rec, err := m.get(sid)
		if err == nil {
			rec.Flashes = append(rec.Flashes, message)
			return m.put(sid, rec)
		}
	}

	sid, err := newSessionID()
	if err != nil {
		return err
	}
	if err := m.put(sid, &record{Flashes: []string{message}}); err != nil {
		return err
	}
	return m.setCookie(w, sid)
}

// PopFlashes returns the queued notices and clears them.
func (m *Manager) PopFlashes(r *http.Request) []string {
	sid := m.sessionID(r)
	if sid == "" {
		return nil
	}
	rec, err := m.get(sid)
	if err != nil || len(rec.Flashes) == 0 {
		return nil
	}
	flashes := rec.Flashes
	rec.Flashes = nil
	if err := m.put(sid, rec); err != nil {
		return nil
	}
	return flashes
}

// setCookie signs the session id into a token and sets it as an HttpOnly
// cookie.
func (m *Manager) setCookie(w http.ResponseWriter, sid string) error {
	claims := jwt.RegisteredClaims{
		ID:        sid,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// sessionID extracts and verifies the session id from the request cookie.
// Returns "" for missing, malformed, mis-signed or expired tokens.
func (m *Manager) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	return claims.ID
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (m *Manager) get(sid string) (*record, error) {
	var rec record
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + sid))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (m *Manager) put(sid string, rec *record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(keyPrefix+sid), data).WithTTL(sessionTTL)
		return txn.SetEntry(entry)
	})
}

func (m *Manager) delete(sid string) error {
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + sid))
	})
}
