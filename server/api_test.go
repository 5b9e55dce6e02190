package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/potuvera/crisma/server/model"
	"github.com/potuvera/crisma/server/storage"
	"github.com/stretchr/testify/require"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestingServer(t *testing.T) *Server {
	s, err := newTestServer(logs.NewTestingLog(t), t.TempDir())
	require.NoError(t, err)
	return s
}

func doRequest(s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(b)
	}
	r := httptest.NewRequest(method, path, reader)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.httpRouter.ServeHTTP(w, r)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	env := testEnvelope{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func login(t *testing.T, s *Server, usuario, senha string) string {
	w := doRequest(s, "POST", "/api/login", "", map[string]string{"usuario": usuario, "senha": senha})
	require.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	require.True(t, env.Success)
	data := struct {
		Token string `json:"token"`
	}{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestLogin(t *testing.T) {
	s := newTestingServer(t)

	w := doRequest(s, "POST", "/api/login", "", map[string]string{"usuario": "admin", "senha": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	env := parseEnvelope(t, w)
	require.False(t, env.Success)
	require.Equal(t, "Usuário ou senha incorretos", env.Message)

	w = doRequest(s, "POST", "/api/login", "", map[string]string{"usuario": "admin", "senha": "password"})
	require.Equal(t, http.StatusOK, w.Code)
	env = parseEnvelope(t, w)
	require.True(t, env.Success)
	require.Equal(t, "Login realizado com sucesso", env.Message)
	// The password hash must never leave the server
	require.NotContains(t, w.Body.String(), "senha")
	data := struct {
		Token   string        `json:"token"`
		Usuario model.Usuario `json:"usuario"`
	}{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "admin", data.Usuario.Usuario)
	require.Contains(t, data.Usuario.Permissions, "admin")
}

func TestVerifyAndLogout(t *testing.T) {
	s := newTestingServer(t)

	w := doRequest(s, "GET", "/api/verify", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), `"valid":false`)
	require.Contains(t, w.Body.String(), "Token não fornecido")

	w = doRequest(s, "GET", "/api/verify", "bogus-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Token inválido")

	token := login(t, s, "admin", "password")
	w = doRequest(s, "GET", "/api/verify", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"valid":true`)

	w = doRequest(s, "POST", "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(s, "GET", "/api/verify", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout of a dead token is idempotent
	w = doRequest(s, "POST", "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSessionExpiry(t *testing.T) {
	s := newTestingServer(t)
	token := login(t, s, "admin", "password")

	w := doRequest(s, "GET", "/api/verify", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Age the session past its expiry
	err := s.DB.Model(&model.Session{}).Where("user_id <> 0").
		Update("expires_at", time.Now().Add(-time.Hour).UnixMilli()).Error
	require.NoError(t, err)

	w = doRequest(s, "GET", "/api/verify", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Token inválido")

	w = doRequest(s, "GET", "/api/usuarios", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// A fresh login purges the expired row
	login(t, s, "admin", "password")
	n := int64(0)
	require.NoError(t, s.DB.Model(&model.Session{}).Count(&n).Error)
	require.Equal(t, int64(1), n)
}

func TestDeactivatedUserLosesAccess(t *testing.T) {
	s := newTestingServer(t)
	admin := login(t, s, "admin", "password")
	user := login(t, s, "user", "password")

	w := doRequest(s, "GET", "/api/verify", user, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(s, "PUT", "/api/usuarios/3", admin, map[string]any{"ativo": false})
	require.Equal(t, http.StatusOK, w.Code)

	// Existing sessions die with the account
	w = doRequest(s, "GET", "/api/verify", user, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// And it cannot log back in
	w = doRequest(s, "POST", "/api/login", "", map[string]string{"usuario": "user", "senha": "password"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Usuário ou senha incorretos", parseEnvelope(t, w).Message)
}

func TestUsuarios(t *testing.T) {
	s := newTestingServer(t)
	admin := login(t, s, "admin", "password")

	// The seed users
	w := doRequest(s, "GET", "/api/usuarios", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := []model.Usuario{}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &users))
	require.Len(t, users, 3)
	require.NotContains(t, w.Body.String(), "senha")

	w = doRequest(s, "GET", "/api/usuarios", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Public self-registration gets the default permissions, even if the
	// request asks for more
	w = doRequest(s, "POST", "/api/usuarios", "", map[string]any{
		"usuario": "maria", "senha": "y", "nome": "Maria",
		"permissions": []string{"admin"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := model.Usuario{}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &created))
	require.Equal(t, model.StringList{"read", "inscricoes.consultar"}, created.Permissions)
	require.Equal(t, model.StringList{"user"}, created.Grupos)

	w = doRequest(s, "POST", "/api/usuarios", "", map[string]any{"usuario": "maria", "senha": "z", "nome": "Maria 2"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Usuário já existe", parseEnvelope(t, w).Message)

	w = doRequest(s, "POST", "/api/usuarios", "", map[string]any{"usuario": "jose"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Campos obrigatórios: usuario, senha, nome", parseEnvelope(t, w).Message)

	// Admin-driven creation may set permissions
	w = doRequest(s, "POST", "/api/usuarios", admin, map[string]any{
		"usuario": "coord", "senha": "secret", "nome": "Coordenador",
		"permissions": []string{"inscricoes.consultar", "usuarios.listar"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &created))
	require.Contains(t, created.Permissions, "usuarios.listar")

	// Editing another user requires usuarios.editar
	user := login(t, s, "user", "password")
	w = doRequest(s, "PUT", "/api/usuarios/1", user, map[string]any{"nome": "Hacked"})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Self-edit is fine, but granting yourself permissions is not
	w = doRequest(s, "PUT", fmt.Sprintf("/api/usuarios/%v", 3), user, map[string]any{"nome": "Usuário Renomeado"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(s, "PUT", fmt.Sprintf("/api/usuarios/%v", 3), user, map[string]any{"permissions": []string{"admin"}})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Admin edit applies, and blank senha is ignored
	w = doRequest(s, "PUT", fmt.Sprintf("/api/usuarios/%v", created.ID), admin, map[string]any{
		"nome": "Coordenadora", "senha": "", "email": "coord@paroquia.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := model.Usuario{}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &updated))
	require.Equal(t, "Coordenadora", updated.Nome)
	require.Equal(t, "coord@paroquia.com", updated.Email)

	// You cannot delete yourself
	w = doRequest(s, "DELETE", "/api/usuarios/1", admin, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Não é possível deletar o próprio usuário", parseEnvelope(t, w).Message)

	w = doRequest(s, "DELETE", fmt.Sprintf("/api/usuarios/%v", created.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	removed := map[string]any{}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &removed))
	require.Equal(t, "coord", removed["usuario"])

	w = doRequest(s, "GET", fmt.Sprintf("/api/usuarios/%v", created.ID), admin, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Usuário não encontrado", parseEnvelope(t, w).Message)
}

func TestProfileAndChangePassword(t *testing.T) {
	s := newTestingServer(t)
	token := login(t, s, "user", "password")

	w := doRequest(s, "PUT", "/api/profile", token, map[string]any{"nome": "Novo Nome", "usuario": ""})
	require.Equal(t, http.StatusOK, w.Code)
	user := model.Usuario{}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &user))
	require.Equal(t, "Novo Nome", user.Nome)
	require.Equal(t, "user", user.Usuario)

	// Renaming to a taken login name fails
	w = doRequest(s, "PUT", "/api/profile", token, map[string]any{"usuario": "admin"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Nome de usuário já existe", parseEnvelope(t, w).Message)

	w = doRequest(s, "POST", "/api/change-password", token, map[string]any{"senhaAtual": "wrong", "novaSenha": "next"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Senha atual incorreta", parseEnvelope(t, w).Message)

	w = doRequest(s, "POST", "/api/change-password", token, map[string]any{"senhaAtual": "password", "novaSenha": "next"})
	require.Equal(t, http.StatusOK, w.Code)

	// The session that changed the password survives
	w = doRequest(s, "GET", "/api/verify", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// And the new password works
	login(t, s, "user", "next")
}

func TestInscricoes(t *testing.T) {
	s := newTestingServer(t)
	admin := login(t, s, "admin", "password")

	// Creating through the JSON route needs a session (the public form posts
	// to /api/inscricoes-com-arquivos)
	w := doRequest(s, "POST", "/api/inscricoes", "", map[string]any{"nomeCompleto": "João Silva"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(s, "POST", "/api/inscricoes", admin, map[string]any{
		"nomeCompleto": "João Silva", "email": "joao@example.com",
		"sexo": "masculino", "batizado": true, "comunidadeCurso": "Matriz",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	ins := model.Inscricao{}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &ins))
	require.NotZero(t, ins.ID)

	w = doRequest(s, "POST", "/api/inscricoes", admin, map[string]any{
		"nomeCompleto": "Ana Souza", "sexo": "feminino", "batizado": false, "comunidadeCurso": "Capela São José",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Reading requires a session
	w = doRequest(s, "GET", "/api/inscricoes", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	list := []model.Inscricao{}
	w = doRequest(s, "GET", "/api/inscricoes", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &list))
	require.Len(t, list, 2)

	// Filters are case insensitive substring matches
	w = doRequest(s, "GET", "/api/inscricoes?nomeCompleto=joão", admin, nil)
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &list))
	require.Len(t, list, 1)
	require.Equal(t, "João Silva", list[0].NomeCompleto)

	w = doRequest(s, "GET", "/api/inscricoes?sexo=feminino&batizado=false", admin, nil)
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &list))
	require.Len(t, list, 1)
	require.Equal(t, "Ana Souza", list[0].NomeCompleto)

	// Update merges over the stored record: absent fields are kept
	w = doRequest(s, "PUT", fmt.Sprintf("/api/inscricoes/%v", ins.ID), admin, map[string]any{"comunidadeCurso": "Capela Santa Rita"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &ins))
	require.Equal(t, "Capela Santa Rita", ins.ComunidadeCurso)
	require.Equal(t, "João Silva", ins.NomeCompleto)

	w = doRequest(s, "DELETE", fmt.Sprintf("/api/inscricoes/%v", ins.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Inscrição excluída com sucesso", parseEnvelope(t, w).Message)

	w = doRequest(s, "GET", fmt.Sprintf("/api/inscricoes/%v", ins.ID), admin, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Inscrição não encontrada", parseEnvelope(t, w).Message)
}

func TestInscricaoComArquivos(t *testing.T) {
	s := newTestingServer(t)
	admin := login(t, s, "admin", "password")

	body := bytes.Buffer{}
	mw := multipart.NewWriter(&body)
	mw.WriteField("nomeCompleto", "Pedro Alves")
	mw.WriteField("batizado", "true")
	fw, err := mw.CreateFormFile(model.ArquivoCertidaoBatismo, `cert "batismo".pdf`)
	require.NoError(t, err)
	fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest("POST", "/api/inscricoes-com-arquivos", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.httpRouter.ServeHTTP(w, r)
	require.Equal(t, http.StatusCreated, w.Code)
	ins := model.Inscricao{}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &ins))
	require.Equal(t, "Pedro Alves", ins.NomeCompleto)
	require.True(t, ins.Batizado)
	nome, _, ok := ins.Arquivo(model.ArquivoCertidaoBatismo)
	require.True(t, ok)
	require.Equal(t, `cert "batismo".pdf`, nome)

	w2 := doRequest(s, "GET", fmt.Sprintf("/api/inscricoes/%v/arquivos/%v", ins.ID, model.ArquivoCertidaoBatismo), admin, nil)
	require.Equal(t, http.StatusOK, w2.Code)
	require.Equal(t, "%PDF-1.4 fake", w2.Body.String())
	// The quote in the upload filename must not corrupt the header
	disposition, dispParams, err := mime.ParseMediaType(w2.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	require.Equal(t, "attachment", disposition)
	require.Equal(t, `cert "batismo".pdf`, dispParams["filename"])

	w2 = doRequest(s, "GET", fmt.Sprintf("/api/inscricoes/%v/arquivos/%v", ins.ID, model.ArquivoDocumentoIdentidade), admin, nil)
	require.Equal(t, http.StatusNotFound, w2.Code)
}

// failingStore simulates a blob store whose writes fail (eg disk full).
type failingStore struct {
	storage.Store
}

func (f failingStore) Put(name string, src io.Reader) (int64, error) {
	return 0, errors.New("disk full")
}

func TestInscricaoComArquivosStorageFailure(t *testing.T) {
	s := newTestingServer(t)
	s.store = failingStore{s.store}

	body := bytes.Buffer{}
	mw := multipart.NewWriter(&body)
	mw.WriteField("nomeCompleto", "Pedro Alves")
	fw, err := mw.CreateFormFile(model.ArquivoCertidaoBatismo, "certidao.pdf")
	require.NoError(t, err)
	fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest("POST", "/api/inscricoes-com-arquivos", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.httpRouter.ServeHTTP(w, r)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.False(t, parseEnvelope(t, w).Success)

	// The half-created enrollment row must be rolled back
	n := int64(0)
	require.NoError(t, s.DB.Model(&model.Inscricao{}).Count(&n).Error)
	require.Equal(t, int64(0), n)
}

func TestSpots(t *testing.T) {
	s := newTestingServer(t)
	admin := login(t, s, "admin", "password")

	// Seed data: 4 spots, one inactive
	w := doRequest(s, "GET", "/api/spots/ativos", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	spots := []model.Spot{}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &spots))
	require.Len(t, spots, 3)

	w = doRequest(s, "GET", "/api/spots/admin", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &spots))
	require.Len(t, spots, 4)

	// The admin surface is closed to regular users
	user := login(t, s, "user", "password")
	w = doRequest(s, "GET", "/api/spots/admin", user, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(s, "POST", "/api/spots/admin", admin, map[string]any{"titulo": "Novo"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Campos obrigatórios: titulo, descricao, tipoSpot", parseEnvelope(t, w).Message)

	w = doRequest(s, "POST", "/api/spots/admin", admin, map[string]any{
		"titulo": "Retiro", "descricao": "Retiro de encerramento", "tipo_spot": "informacao",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	spot := model.Spot{}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &spot))
	require.Equal(t, "informacao", spot.TipoSpot)
	require.Equal(t, 5, spot.Ordem)
	require.True(t, spot.Ativo)

	// Deactivating takes a spot out of the public feed
	w = doRequest(s, "PATCH", "/api/spots/admin/3/status", admin, map[string]any{"ativo": false})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Spot desativado com sucesso", parseEnvelope(t, w).Message)

	w = doRequest(s, "PATCH", "/api/spots/admin/3/status", admin, map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Campo ativo é obrigatório", parseEnvelope(t, w).Message)

	w = doRequest(s, "GET", "/api/spots/ativos", "", nil)
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &spots))
	for _, sp := range spots {
		require.NotEqual(t, int64(3), sp.ID)
	}

	// Reorder skips ids that don't exist
	w = doRequest(s, "POST", "/api/spots/admin/reordenar", admin, map[string]any{
		"spots": []map[string]any{
			{"id": 1, "ordem": 2},
			{"id": 4, "ordem": 1},
			{"id": 999, "ordem": 3},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &spots))
	require.Equal(t, int64(4), spots[0].ID)

	w = doRequest(s, "POST", "/api/spots/admin/reordenar", admin, map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Campo spots deve ser um array", parseEnvelope(t, w).Message)

	w = doRequest(s, "DELETE", fmt.Sprintf("/api/spots/admin/%v", spot.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	removed := map[string]any{}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &removed))
	require.Equal(t, "Retiro", removed["titulo"])
}

func TestSpotsActivationWindow(t *testing.T) {
	s := newTestingServer(t)
	admin := login(t, s, "admin", "password")

	now := time.Now().UTC()
	create := func(titulo string, extra map[string]any) {
		body := map[string]any{"titulo": titulo, "descricao": "d", "tipoSpot": "informacao"}
		for k, v := range extra {
			body[k] = v
		}
		w := doRequest(s, "POST", "/api/spots/admin", admin, body)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	create("Futuro", map[string]any{"dataInicio": now.Add(24 * time.Hour).UnixMilli()})
	create("Encerrado", map[string]any{"dataFim": now.Add(-24 * time.Hour).UnixMilli()})
	create("Vigente", map[string]any{
		"dataInicio": now.Add(-time.Hour).UnixMilli(),
		"dataFim":    now.Add(time.Hour).UnixMilli(),
	})

	w := doRequest(s, "GET", "/api/spots/ativos", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	spots := []model.Spot{}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &spots))

	// 3 dateless seed spots plus the in-window one. A spot whose window
	// hasn't opened, or has closed, is hidden even though ativo is set.
	require.Len(t, spots, 4)
	titles := []string{}
	for _, sp := range spots {
		titles = append(titles, sp.Titulo)
	}
	require.Contains(t, titles, "Vigente")
	require.NotContains(t, titles, "Futuro")
	require.NotContains(t, titles, "Encerrado")
}

func TestMisc(t *testing.T) {
	s := newTestingServer(t)

	w := doRequest(s, "GET", "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"OK"`)

	w = doRequest(s, "GET", "/api/test", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Backend funcionando!")

	w = doRequest(s, "GET", "/api/does-not-exist", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	env := parseEnvelope(t, w)
	require.False(t, env.Success)
	require.True(t, strings.Contains(env.Message, "/api/does-not-exist"))
}
