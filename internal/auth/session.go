package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/localnerve/agsdb/internal/config"
)

// Session keys
const (
	SessionKeyState  = "state"
	SessionKeyUserID = "user_id"
	SessionKeyEmail  = "email"
)

// CookieName is the session cookie
const CookieName = "agsdb_session"

// ErrInvalidState is returned when the callback state does not match the session
var ErrInvalidState = errors.New("invalid oauth state")

// NewSessionStore creates the cookie session store. A nil storage keeps sessions in memory.
func NewSessionStore(cfg *config.Config, storage fiber.Storage) *session.Store {
	return session.New(session.Config{
		Expiration:     time.Duration(cfg.SessionTTLMinutes) * time.Minute,
		Storage:        storage,
		KeyLookup:      "cookie:" + CookieName,
		CookiePath:     "/",
		CookieSecure:   cfg.SecureCookies(),
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SessionUser returns the signed in user's id and email, if any
func SessionUser(sess *session.Session) (userID, email string, ok bool) {
	userID, _ = sess.Get(SessionKeyUserID).(string)
	email, _ = sess.Get(SessionKeyEmail).(string)
	return userID, email, userID != ""
}

// TakeState removes the pending OAuth state from the session and checks it against got
func TakeState(sess *session.Session, got string) error {
	want, _ := sess.Get(SessionKeyState).(string)
	sess.Delete(SessionKeyState)
	if want == "" || got == "" || want != got {
		return ErrInvalidState
	}
	return nil
}

// SignIn stores the user in a fresh session id
func SignIn(sess *session.Session, userID, email string) error {
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(SessionKeyUserID, userID)
	sess.Set(SessionKeyEmail, email)
	return sess.Save()
}
