package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/potuvera/crisma/pkg/pwdhash"
	"github.com/potuvera/crisma/server/auth"
	"github.com/potuvera/crisma/server/model"
)

// isDuplicateKey recognizes unique index violations from both sqlite and postgres.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return dbh.IsKeyViolation(err) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type usuarioCreateJSON struct {
	Usuario     string   `json:"usuario"`
	Senha       string   `json:"senha"`
	Nome        string   `json:"nome"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	Grupos      []string `json:"grupos"`
	Grupo       string   `json:"grupo"`
}

// httpUsuarioCreate serves both public self-registration and admin-driven user
// creation. A request with a bearer token is the admin path, and may set
// permissions. Anonymous requests always get the self-registration defaults.
func (s *Server) httpUsuarioCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	body := usuarioCreateJSON{}
	www.ReadJSON(w, r, &body, 1024*1024)
	if body.Usuario == "" || body.Senha == "" || body.Nome == "" {
		www.PanicBadRequestf("Campos obrigatórios: usuario, senha, nome")
	}

	user := model.Usuario{
		Nome:        body.Nome,
		Usuario:     body.Usuario,
		Email:       body.Email,
		SenhaHash:   pwdhash.Hash(body.Senha),
		Permissions: model.StringList{"read", auth.PermInscricoesConsultar},
		Grupos:      model.StringList{"user"},
		Grupo:       "Usuario",
		Ativo:       true,
		CreatedAt:   dbh.MakeIntTime(time.Now().UTC()),
		UpdatedAt:   dbh.MakeIntTime(time.Now().UTC()),
	}

	if strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		cred, err := s.auth.Authenticate(r)
		if err != nil {
			www.Panic(http.StatusUnauthorized, err.Error())
		}
		requirePermission(cred, auth.PermUsuariosCriar, "criar usuários")
		if body.Permissions != nil {
			user.Permissions = model.StringList(body.Permissions)
		}
		if body.Grupos != nil {
			user.Grupos = model.StringList(body.Grupos)
		}
		if body.Grupo != "" {
			user.Grupo = body.Grupo
		}
	}

	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			www.Panic(http.StatusBadRequest, "Usuário já existe")
		}
		www.Check(err)
	}
	s.Log.Infof("Created user %v (%v)", user.Usuario, user.ID)
	sendDataMessage(w, http.StatusCreated, &user, "Usuário criado com sucesso")
}

func (s *Server) httpLegacyUsers(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	users := []model.Usuario{}
	www.Check(s.DB.Order("id").Find(&users).Error)
	sendData(w, users)
}

func (s *Server) httpUsuarioList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermUsuariosListar, "listar usuários")
	users := []model.Usuario{}
	www.Check(s.DB.Order("id").Find(&users).Error)
	sendData(w, users)
}

func (s *Server) loadUsuario(id int64) *model.Usuario {
	user := model.Usuario{}
	s.DB.Find(&user, id)
	if user.ID == 0 {
		www.Panic(http.StatusNotFound, "Usuário não encontrado")
	}
	return &user
}

func (s *Server) httpUsuarioGet(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermUsuariosListar, "visualizar usuários")
	sendData(w, s.loadUsuario(www.ParseID(params.ByName("id"))))
}

type usuarioUpdateJSON struct {
	profileJSON
	Permissions *[]string `json:"permissions"`
	Grupos      *[]string `json:"grupos"`
	Grupo       *string   `json:"grupo"`
	Ativo       *bool     `json:"ativo"`
}

// applyUsuarioProfile applies the self-editable fields. Nome, usuario and
// senha ignore empty values, so a form that posts blanks doesn't wipe the
// account. Email applies whenever the key is present, so it can be cleared.
func applyUsuarioProfile(s *Server, user *model.Usuario, body *profileJSON) {
	if body.Nome != nil && *body.Nome != "" {
		user.Nome = *body.Nome
	}
	if body.Usuario != nil && *body.Usuario != "" && *body.Usuario != user.Usuario {
		existing := model.Usuario{}
		s.DB.Where("usuario = ? AND id <> ?", *body.Usuario, user.ID).Find(&existing)
		if existing.ID != 0 {
			www.Panic(http.StatusBadRequest, "Nome de usuário já existe")
		}
		user.Usuario = *body.Usuario
	}
	if body.Email != nil {
		user.Email = *body.Email
	}
	if body.Senha != nil && *body.Senha != "" {
		user.SenhaHash = pwdhash.Hash(*body.Senha)
	}
	user.UpdatedAt = dbh.MakeIntTime(time.Now().UTC())
}

func (s *Server) httpUsuarioUpdate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	id := www.ParseID(params.ByName("id"))
	if id != cred.UserID {
		requirePermission(cred, auth.PermUsuariosEditar, "editar usuários")
	}
	user := s.loadUsuario(id)
	body := usuarioUpdateJSON{}
	www.ReadJSON(w, r, &body, 1024*1024)
	applyUsuarioProfile(s, user, &body.profileJSON)
	if body.Permissions != nil || body.Grupos != nil || body.Grupo != nil || body.Ativo != nil {
		// Changing permissions or account status on any account, including your
		// own, needs the editor permission. Otherwise a self-edit could grant
		// itself admin.
		requirePermission(cred, auth.PermUsuariosEditar, "editar permissões")
		if body.Permissions != nil {
			user.Permissions = model.StringList(*body.Permissions)
		}
		if body.Grupos != nil {
			user.Grupos = model.StringList(*body.Grupos)
		}
		if body.Grupo != nil {
			user.Grupo = *body.Grupo
		}
		if body.Ativo != nil {
			user.Ativo = *body.Ativo
			if !user.Ativo {
				s.auth.RevokeUserSessions(user.ID)
			}
		}
	}
	www.Check(s.DB.Save(user).Error)
	sendDataMessage(w, http.StatusOK, user, "Usuário atualizado com sucesso")
}

func (s *Server) httpUsuarioDelete(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermUsuariosDeletar, "deletar usuários")
	id := www.ParseID(params.ByName("id"))
	if id == cred.UserID {
		www.Panic(http.StatusBadRequest, "Não é possível deletar o próprio usuário")
	}
	user := s.loadUsuario(id)
	www.Check(s.DB.Delete(&model.Usuario{}, id).Error)
	s.auth.RevokeUserSessions(id)
	s.Log.Infof("Deleted user %v (%v)", user.Usuario, id)
	removed := map[string]any{"id": user.ID, "usuario": user.Usuario, "nome": user.Nome}
	sendDataMessage(w, http.StatusOK, removed, "Usuário deletado com sucesso")
}
