// Package auth owns login sessions and permission checks.
//
// A session is issued on login as a random 30 character token. We store only
// the sha256 of the token, together with the owning user id and an expiry.
// Authenticating a request resolves the actual session owner -- never a fixed
// identity -- so the credentials passed to handlers are those of the caller.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"gorm.io/gorm"

	"github.com/potuvera/crisma/pkg/pwdhash"
	"github.com/potuvera/crisma/pkg/rando"
	"github.com/potuvera/crisma/server/model"
)

// TokenCookie is the cookie that mirrors the bearer token, so that plain
// browser navigation (eg file downloads) works without script headers.
// SYNC-CRISMA-TOKEN-COOKIE
const TokenCookie = "auth_token"

const tokenChars = 30

// DefaultSessionTTL matches the 7 day cookie lifetime of the web front-end.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Error messages are part of the API surface (the front-end shows them
// verbatim), which is why they are Portuguese.
var (
	ErrCredenciais    = errors.New("Usuário ou senha incorretos")
	ErrTokenAusente   = errors.New("Token não fornecido")
	ErrTokenInvalido  = errors.New("Token inválido")
	ErrSenhaIncorreta = errors.New("Senha atual incorreta")
)

// Credentials identify the authenticated caller of one request.
type Credentials struct {
	UserID     int64
	User       *model.Usuario
	SessionKey string // pwdhash.TokenKey of the presented token
}

type AuthServer struct {
	db         *gorm.DB
	log        logs.Log
	sessionTTL time.Duration
}

func NewAuthServer(db *gorm.DB, log logs.Log, sessionTTL time.Duration) *AuthServer {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &AuthServer{
		db:         db,
		log:        log,
		sessionTTL: sessionTTL,
	}
}

// SessionTTL is the lifetime of newly issued sessions.
func (a *AuthServer) SessionTTL() time.Duration {
	return a.sessionTTL
}

// Login verifies usuario (login name or email) + senha against the credential
// store, and on success issues a new session token.
func (a *AuthServer) Login(usuario, senha string) (*model.Usuario, string, error) {
	user := model.Usuario{}
	a.db.Where("(usuario = ? OR email = ?) AND ativo = ?", usuario, usuario, true).Find(&user)
	if user.ID == 0 || !pwdhash.Verify(senha, user.SenhaHash) {
		return nil, "", ErrCredenciais
	}
	now := time.Now().UTC()
	token := rando.AlphaNumChars(tokenChars)
	session := model.Session{
		Key:       pwdhash.TokenKey(token),
		UserID:    user.ID,
		CreatedAt: dbh.MakeIntTime(now),
		ExpiresAt: dbh.MakeIntTime(now.Add(a.sessionTTL)),
	}
	if err := a.db.Create(&session).Error; err != nil {
		return nil, "", err
	}
	a.PurgeExpiredSessions()
	a.log.Infof("Logging %v (%v) in", user.Usuario, user.ID)
	return &user, token, nil
}

// Logout revokes the given token. Unknown tokens are ignored, so logout is
// idempotent.
func (a *AuthServer) Logout(token string) {
	if token == "" {
		return
	}
	a.db.Where("key = ?", pwdhash.TokenKey(token)).Delete(&model.Session{})
}

// RequestToken extracts the session token from r: the Authorization Bearer
// header, falling back to the auth_token cookie. Empty if neither is present.
func RequestToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return authorization[7:]
	}
	if cookie, _ := r.Cookie(TokenCookie); cookie != nil {
		return cookie.Value
	}
	return ""
}

// Authenticate resolves the caller of r to the owner of a live session.
// Returns ErrTokenAusente / ErrTokenInvalido on failure.
func (a *AuthServer) Authenticate(r *http.Request) (*Credentials, error) {
	token := RequestToken(r)
	if token == "" {
		return nil, ErrTokenAusente
	}
	key := pwdhash.TokenKey(token)
	session := model.Session{}
	a.db.Where("key = ?", key).Find(&session)
	if session.UserID == 0 {
		return nil, ErrTokenInvalido
	}
	if !session.ExpiresAt.IsZero() && !session.ExpiresAt.Get().After(time.Now()) {
		return nil, ErrTokenInvalido
	}
	user := model.Usuario{}
	a.db.Find(&user, session.UserID)
	if user.ID == 0 || !user.Ativo {
		return nil, ErrTokenInvalido
	}
	return &Credentials{
		UserID:     user.ID,
		User:       &user,
		SessionKey: key,
	}, nil
}

// ChangePassword verifies the current password and replaces it. All other
// sessions of the user are revoked, so a stolen token doesn't outlive a
// password change.
func (a *AuthServer) ChangePassword(cred *Credentials, senhaAtual, novaSenha string) error {
	if !pwdhash.Verify(senhaAtual, cred.User.SenhaHash) {
		return ErrSenhaIncorreta
	}
	err := a.db.Model(&model.Usuario{}).Where("id = ?", cred.UserID).
		Update("senha", pwdhash.Hash(novaSenha)).Error
	if err != nil {
		return err
	}
	return a.db.Where("user_id = ? AND key <> ?", cred.UserID, cred.SessionKey).
		Delete(&model.Session{}).Error
}

// RevokeUserSessions revokes every session of the given user (eg after the
// account is deleted or deactivated).
func (a *AuthServer) RevokeUserSessions(userID int64) {
	a.db.Where("user_id = ?", userID).Delete(&model.Session{})
}

func (a *AuthServer) PurgeExpiredSessions() {
	err := a.db.Where("expires_at IS NOT NULL AND expires_at < ?", time.Now().UnixMilli()).
		Delete(&model.Session{}).Error
	if err != nil {
		a.log.Warnf("PurgeExpiredSessions failed: %v", err)
	}
}
