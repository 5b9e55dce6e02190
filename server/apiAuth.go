package server

import (
	"errors"
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/potuvera/crisma/server/auth"
	"github.com/potuvera/crisma/server/model"
)

type loginJSON struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

type loginResponseJSON struct {
	Token   string         `json:"token"`
	Usuario *model.Usuario `json:"usuario"`
}

func (s *Server) httpLogin(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	body := loginJSON{}
	www.ReadJSON(w, r, &body, 1024*1024)
	user, token, err := s.auth.Login(body.Usuario, body.Senha)
	if err != nil {
		if errors.Is(err, auth.ErrCredenciais) {
			sendAPIError(w, http.StatusUnauthorized, err.Error())
			return
		}
		www.Check(err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.auth.SessionTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	sendDataMessage(w, http.StatusOK, loginResponseJSON{Token: token, Usuario: user}, "Login realizado com sucesso")
}

func (s *Server) httpLogout(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	s.auth.Logout(auth.RequestToken(r))
	http.SetCookie(w, &http.Cookie{
		Name:   auth.TokenCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	sendMessage(w, "Logout realizado com sucesso")
}

// httpVerifyToken does not use the envelope. It answers {"valid":...} so that
// front-ends can poll it cheaply on startup.
func (s *Server) httpVerifyToken(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	type verifyJSON struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message,omitempty"`
	}
	cred, err := s.auth.Authenticate(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		www.SendJSON(w, verifyJSON{Valid: false, Message: err.Error()})
		return
	}
	s.Log.Infof("Token verified for %v (%v)", cred.User.Usuario, cred.UserID)
	www.SendJSON(w, verifyJSON{Valid: true})
}

type profileJSON struct {
	Nome    *string `json:"nome"`
	Usuario *string `json:"usuario"`
	Email   *string `json:"email"`
	Senha   *string `json:"senha"`
}

// httpUpdateProfile lets the caller edit their own account. Permission fields
// are not accepted here.
func (s *Server) httpUpdateProfile(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	body := profileJSON{}
	www.ReadJSON(w, r, &body, 1024*1024)
	user := cred.User
	applyUsuarioProfile(s, user, &body)
	www.Check(s.DB.Save(user).Error)
	sendDataMessage(w, http.StatusOK, user, "Perfil atualizado com sucesso")
}

type changePasswordJSON struct {
	SenhaAtual string `json:"senhaAtual"`
	NovaSenha  string `json:"novaSenha"`
}

func (s *Server) httpChangePassword(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	body := changePasswordJSON{}
	www.ReadJSON(w, r, &body, 1024*1024)
	if body.SenhaAtual == "" || body.NovaSenha == "" {
		www.PanicBadRequestf("Campos obrigatórios: senhaAtual, novaSenha")
	}
	if err := s.auth.ChangePassword(cred, body.SenhaAtual, body.NovaSenha); err != nil {
		if errors.Is(err, auth.ErrSenhaIncorreta) {
			www.Panic(http.StatusBadRequest, err.Error())
		}
		www.Check(err)
	}
	sendMessage(w, "Senha alterada com sucesso")
}
