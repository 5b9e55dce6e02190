package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cyclopcam/staticfiles"
	"github.com/cyclopcam/www"
	"github.com/go-chi/httprate"
	"github.com/julienschmidt/httprouter"
	"github.com/potuvera/crisma/server/auth"
)

//go:embed www
var staticWWW embed.FS

type authenticatedHandler func(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials)

// envelope is the response body of every /api handler.
// SYNC-CRISMA-ENVELOPE
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func sendEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	b, err := json.Marshal(env)
	www.Check(err)
	w.Write(b)
}

func sendData(w http.ResponseWriter, data any) {
	sendEnvelope(w, http.StatusOK, envelope{Success: true, Data: data})
}

func sendDataMessage(w http.ResponseWriter, status int, data any, message string) {
	sendEnvelope(w, status, envelope{Success: true, Data: data, Message: message})
}

func sendMessage(w http.ResponseWriter, message string) {
	sendEnvelope(w, http.StatusOK, envelope{Success: true, Message: message})
}

func sendAPIError(w http.ResponseWriter, code int, message string) {
	sendEnvelope(w, code, envelope{Success: false, Message: message})
}

// runAPI runs 'handler' inside a panic handler that turns our errors into
// envelope responses. Unexpected panics are logged with a stack trace, and the
// client sees only a generic message.
func (s *Server) runAPI(w http.ResponseWriter, r *http.Request, handler func()) {
	defer func() {
		if rec := recover(); rec != nil {
			if hErr, ok := rec.(www.HTTPError); ok {
				s.Log.Infof("Failed request %v: %v %v", r.URL.Path, hErr.Code, hErr.Message)
				sendAPIError(w, hErr.Code, hErr.Message)
			} else if hErr, ok := rec.(*www.HTTPError); ok {
				s.Log.Infof("Failed request %v: %v %v", r.URL.Path, hErr.Code, hErr.Message)
				sendAPIError(w, hErr.Code, hErr.Message)
			} else if err, ok := rec.(runtime.Error); ok {
				s.Log.Errorf("Runtime panic error %v: %v", r.URL.Path, err)
				s.Log.Errorf("Stack Trace: %v", string(debug.Stack()))
				sendAPIError(w, http.StatusInternalServerError, "Erro interno do servidor")
			} else {
				s.Log.Errorf("Panic %v: %v", r.URL.Path, rec)
				s.Log.Errorf("Stack Trace: %v", string(debug.Stack()))
				sendAPIError(w, http.StatusInternalServerError, "Erro interno do servidor")
			}
		}
	}()

	handler()
}

func (s *Server) setupHttpRoutes() error {
	logEveryRequest := os.Getenv("CRISMA_LOG_REQUESTS") == "1"
	router := httprouter.New()

	handle := func(method, route string, fn httprouter.Handle) {
		router.Handle(method, route, func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
			if logEveryRequest {
				s.Log.Infof("HTTP %v %v", method, r.URL.Path)
			}
			s.runAPI(w, r, func() { fn(w, r, params) })
		})
	}

	// protected creates an HTTP handler that requires a valid session token.
	// Permission checks beyond that happen inside the handlers, where the
	// denial messages can name the action.
	protected := func(method, route string, handler authenticatedHandler) {
		handle(method, route, func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
			cred, err := s.auth.Authenticate(r)
			if err != nil {
				www.Panic(http.StatusUnauthorized, err.Error())
			}
			handler(w, r, params, cred)
		})
	}

	// unprotected creates an HTTP handler that is accessible without authentication
	unprotected := handle

	// Logins are throttled per client IP to slow down password guessing.
	loginLimiter := httprate.Limit(5, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))
	router.Handler("POST", "/api/login", loginLimiter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.runAPI(w, r, func() { s.httpLogin(w, r, nil) })
	})))

	unprotected("POST", "/api/logout", s.httpLogout)
	unprotected("GET", "/api/verify", s.httpVerifyToken)
	protected("PUT", "/api/profile", s.httpUpdateProfile)
	protected("POST", "/api/change-password", s.httpChangePassword)

	// The bare /api/users route predates /api/usuarios and is kept for old clients.
	protected("GET", "/api/users", s.httpLegacyUsers)

	unprotected("POST", "/api/usuarios", s.httpUsuarioCreate)
	protected("GET", "/api/usuarios", s.httpUsuarioList)
	protected("GET", "/api/usuarios/:id", s.httpUsuarioGet)
	protected("PUT", "/api/usuarios/:id", s.httpUsuarioUpdate)
	protected("DELETE", "/api/usuarios/:id", s.httpUsuarioDelete)

	protected("POST", "/api/inscricoes", s.httpInscricaoCreate)
	unprotected("POST", "/api/inscricoes-com-arquivos", s.httpInscricaoCreateComArquivos)
	protected("GET", "/api/inscricoes", s.httpInscricaoList)
	protected("GET", "/api/inscricoes/:id", s.httpInscricaoGet)
	protected("PUT", "/api/inscricoes/:id", s.httpInscricaoUpdate)
	protected("DELETE", "/api/inscricoes/:id", s.httpInscricaoDelete)
	protected("GET", "/api/inscricoes/:id/arquivos/:campo", s.httpInscricaoArquivo)

	unprotected("GET", "/api/spots/ativos", s.httpSpotsAtivos)
	protected("GET", "/api/spots/admin", s.httpSpotAdminList)
	protected("POST", "/api/spots/admin", s.httpSpotAdminCreate)
	protected("POST", "/api/spots/admin/reordenar", s.httpSpotAdminReorder)
	protected("GET", "/api/spots/admin/:id", s.httpSpotAdminGet)
	protected("PUT", "/api/spots/admin/:id", s.httpSpotAdminUpdate)
	protected("DELETE", "/api/spots/admin/:id", s.httpSpotAdminDelete)
	protected("PATCH", "/api/spots/admin/:id/status", s.httpSpotAdminStatus)

	unprotected("GET", "/api/health", s.httpHealth)
	unprotected("GET", "/api/test", s.httpTest)

	isImmutable := true
	var fsys fs.FS
	fsysRoot := "www"
	fsys = staticWWW
	if s.HotReloadWWW {
		relRoot := "server/www"
		absRoot, err := filepath.Abs(relRoot)
		if err != nil {
			s.Log.Errorf("Failed to resolve static file directory %v: %v. Run 'npm run build' in 'www' to build static files.", relRoot, err)
			return errors.New("Failed to resolve static file directory for hot reload")
		}
		s.Log.Infof("Serving static files from %v, with hot reload", absRoot)
		fsys = os.DirFS(absRoot)
		fsysRoot = ""
		isImmutable = false
	}

	static, err := staticfiles.NewCachedStaticFileServer(fsys, fsysRoot, []string{"/api/"}, s.Log, isImmutable, nil)
	if err != nil {
		s.Log.Warnf("Error in static files: %v. Run 'npm run build' in 'www' to build static files.", err)
	}
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			sendAPIError(w, http.StatusNotFound, fmt.Sprintf("Rota %v não encontrada", r.URL.Path))
			return
		}
		static.ServeHTTP(w, r)
	})

	s.httpRouter = router
	return nil
}

// requirePermission panics with a 403 if cred does not hold perm.
// 'action' names the operation in the denial message, eg "listar usuários".
func requirePermission(cred *auth.Credentials, perm, action string) {
	if !auth.Allows(cred.User.Permissions, perm) {
		www.Panic(http.StatusForbidden, "Sem permissão para "+action)
	}
}
