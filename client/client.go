// Package client is a Go front-end to the enrollment server's auth API. It
// keeps the session token and the signed-in user on disk, so that short-lived
// command line tools don't need to log in on every invocation.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/potuvera/crisma/server/model"
)

// ErrNotLoggedIn is returned by calls that need a session when there is none.
var ErrNotLoggedIn = errors.New("Not logged in")

const (
	tokenFilename = "token"
	userFilename  = "user.json"
)

type Client struct {
	// ServerUrl is the base URL of the enrollment server, without a trailing
	// slash, eg http://localhost:3000
	ServerUrl string

	// HTTP is the client used for all requests. Defaults to http.DefaultClient.
	HTTP *http.Client

	stateDir string

	lock     sync.Mutex
	token    string
	user     *model.Usuario
	onChange []func(user *model.Usuario)
}

// envelope mirrors the server's response wrapper.
// SYNC-CRISMA-ENVELOPE
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// NewClient creates a client that persists its session under stateDir.
// Any session stored by a previous run is loaded immediately.
func NewClient(serverUrl, stateDir string) (*Client, error) {
	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return nil, err
	}
	c := &Client{
		ServerUrl: strings.TrimSuffix(serverUrl, "/"),
		HTTP:      http.DefaultClient,
		stateDir:  stateDir,
	}
	c.loadState()
	return c, nil
}

// OnChange registers a callback that fires whenever the signed-in user
// changes. The callback receives nil when the session ends.
func (c *Client) OnChange(fn func(user *model.Usuario)) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.onChange = append(c.onChange, fn)
}

// User returns the signed-in user, or nil.
func (c *Client) User() *model.Usuario {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.user
}

// Token returns the current session token, or an empty string.
func (c *Client) Token() string {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.token
}

func (c *Client) IsLoggedIn() bool {
	return c.Token() != ""
}

// HasPermission reports whether the signed-in user holds the exact permission.
// Unlike the server, there is no admin wildcard here. The server remains the
// authority, so the only cost of a stale answer is a hidden menu item.
func (c *Client) HasPermission(perm string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.user != nil && c.user.Permissions.Contains(perm)
}

// HasAnyPermission reports whether the signed-in user holds at least one of perms.
func (c *Client) HasAnyPermission(perms ...string) bool {
	for _, p := range perms {
		if c.HasPermission(p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the signed-in user holds every one of perms.
func (c *Client) HasAllPermissions(perms ...string) bool {
	for _, p := range perms {
		if !c.HasPermission(p) {
			return false
		}
	}
	return true
}

// BelongsToGroup reports whether the signed-in user is in the named group.
func (c *Client) BelongsToGroup(grupo string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.user != nil && c.user.Grupos.Contains(grupo)
}

type loginResponseJSON struct {
	Token   string         `json:"token"`
	Usuario *model.Usuario `json:"usuario"`
}

// Login signs in and persists the session to disk.
func (c *Client) Login(usuario, senha string) (*model.Usuario, error) {
	body := map[string]string{"usuario": usuario, "senha": senha}
	env, err := c.do("POST", "/api/login", body)
	if err != nil {
		return nil, err
	}
	login := loginResponseJSON{}
	if err := json.Unmarshal(env.Data, &login); err != nil {
		return nil, err
	}
	c.setState(login.Token, login.Usuario)
	return login.Usuario, nil
}

// Logout revokes the session on the server and clears the local state. The
// local state is cleared even when the server can't be reached.
func (c *Client) Logout() error {
	_, err := c.do("POST", "/api/logout", nil)
	c.setState("", nil)
	return err
}

// VerifyToken asks the server whether the stored session is still live. A dead
// session clears the local state.
func (c *Client) VerifyToken() (bool, error) {
	if !c.IsLoggedIn() {
		return false, nil
	}
	req, err := c.newRequest("GET", "/api/verify", nil)
	if err != nil {
		return false, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	verdict := struct {
		Valid bool `json:"valid"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return false, err
	}
	if !verdict.Valid {
		c.setState("", nil)
	}
	return verdict.Valid, nil
}

// UpdateProfile edits the signed-in user's own account. Zero-value fields are
// left unchanged by the server.
func (c *Client) UpdateProfile(nome, usuario, email, senha string) (*model.Usuario, error) {
	if !c.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}
	body := map[string]string{}
	if nome != "" {
		body["nome"] = nome
	}
	if usuario != "" {
		body["usuario"] = usuario
	}
	if email != "" {
		body["email"] = email
	}
	if senha != "" {
		body["senha"] = senha
	}
	env, err := c.do("PUT", "/api/profile", body)
	if err != nil {
		return nil, err
	}
	user := model.Usuario{}
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, err
	}
	c.setState(c.Token(), &user)
	return &user, nil
}

// ChangePassword replaces the signed-in user's password.
func (c *Client) ChangePassword(senhaAtual, novaSenha string) error {
	if !c.IsLoggedIn() {
		return ErrNotLoggedIn
	}
	body := map[string]string{"senhaAtual": senhaAtual, "novaSenha": novaSenha}
	_, err := c.do("POST", "/api/change-password", body)
	return err
}

// Do sends an authenticated request to an arbitrary API path and decodes the
// envelope. A 401 or 403 response clears the stored session, because it means
// the token died on the server (expiry, password change, deactivation).
func (c *Client) Do(method, path string, body any) (json.RawMessage, error) {
	env, err := c.do(method, path, body)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) newRequest(method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.ServerUrl+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(method, path string, body any) (*envelope, error) {
	req, err := c.newRequest(method, path, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if path != "/api/login" {
			c.setState("", nil)
		}
	}
	env := envelope{}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%v %v: unexpected response (HTTP %v)", method, path, resp.StatusCode)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("HTTP %v", resp.StatusCode)
		}
		return nil, errors.New(msg)
	}
	return &env, nil
}

// setState replaces the in-memory session, persists it, and notifies listeners.
func (c *Client) setState(token string, user *model.Usuario) {
	c.lock.Lock()
	c.token = token
	c.user = user
	listeners := append([]func(*model.Usuario){}, c.onChange...)
	c.lock.Unlock()

	c.saveState(token, user)
	for _, fn := range listeners {
		fn(user)
	}
}

func (c *Client) saveState(token string, user *model.Usuario) {
	tokenPath := filepath.Join(c.stateDir, tokenFilename)
	userPath := filepath.Join(c.stateDir, userFilename)
	if token == "" {
		os.Remove(tokenPath)
		os.Remove(userPath)
		return
	}
	os.WriteFile(tokenPath, []byte(token), 0600)
	if user != nil {
		if b, err := json.Marshal(user); err == nil {
			os.WriteFile(userPath, b, 0600)
		}
	}
}

func (c *Client) loadState() {
	token, err := os.ReadFile(filepath.Join(c.stateDir, tokenFilename))
	if err != nil {
		return
	}
	c.token = strings.TrimSpace(string(token))
	raw, err := os.ReadFile(filepath.Join(c.stateDir, userFilename))
	if err != nil {
		return
	}
	user := model.Usuario{}
	if json.Unmarshal(raw, &user) == nil {
		c.user = &user
	}
}
