package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/potuvera/crisma/server/auth"
	"github.com/potuvera/crisma/server/model"
	"github.com/potuvera/crisma/server/storage"
)

const maxArquivoBytes = 10 * 1024 * 1024

// inscricaoBlobName is the key of one attachment in the blob store.
func inscricaoBlobName(id int64, campo string) string {
	return fmt.Sprintf("inscricoes/%v/%v", id, campo)
}

func (s *Server) httpInscricaoCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermInscricoesCriar, "criar inscrições")
	ins := model.Inscricao{}
	www.ReadJSON(w, r, &ins, 1024*1024)
	ins.ID = 0
	ins.CreatedAt = dbh.MakeIntTime(time.Now().UTC())
	www.Check(s.DB.Create(&ins).Error)
	s.Log.Infof("Created enrollment %v (%v)", ins.ID, ins.NomeCompleto)
	sendDataMessage(w, http.StatusCreated, &ins, "Inscrição criada com sucesso")
}

// httpInscricaoCreateComArquivos accepts a multipart form with the enrollment
// fields plus up to three attachments, named after the model.Arquivo*
// constants. The row is created first so that blob names can carry its id.
func (s *Server) httpInscricaoCreateComArquivos(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	if err := r.ParseMultipartForm(maxArquivoBytes); err != nil {
		www.PanicBadRequestf("Formulário inválido: %v", err)
	}
	ins := inscricaoFromForm(r)
	ins.CreatedAt = dbh.MakeIntTime(time.Now().UTC())
	www.Check(s.DB.Create(ins).Error)

	stored := []string{}
	for _, campo := range []string{model.ArquivoDocumentoIdentidade, model.ArquivoCertidaoBatismo, model.ArquivoDocumentoPadrinho} {
		file, header, err := r.FormFile(campo)
		if err != nil {
			continue
		}
		size, err := s.store.Put(inscricaoBlobName(ins.ID, campo), file)
		file.Close()
		if err != nil {
			// Don't leave a half-created enrollment behind
			s.Log.Errorf("Failed to store attachment %v of enrollment %v: %v", campo, ins.ID, err)
			for _, prev := range stored {
				s.store.Delete(inscricaoBlobName(ins.ID, prev))
			}
			s.DB.Delete(&model.Inscricao{}, ins.ID)
			www.Check(err)
		}
		ins.SetArquivo(campo, header.Filename, header.Header.Get("Content-Type"), size)
		stored = append(stored, campo)
	}
	www.Check(s.DB.Save(ins).Error)
	s.Log.Infof("Created enrollment %v (%v) with attachments", ins.ID, ins.NomeCompleto)
	sendDataMessage(w, http.StatusCreated, ins, "Inscrição criada com sucesso")
}

func (s *Server) httpInscricaoList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermInscricoesConsultar, "consultar inscrições")
	q := s.DB.Order("id")
	if v := www.QueryValue(r, "email"); v != "" {
		q = q.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := www.QueryValue(r, "nomeCompleto"); v != "" {
		q = q.Where("LOWER(nome_completo) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := www.QueryValue(r, "comunidadeCurso"); v != "" {
		q = q.Where("LOWER(comunidade_curso) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := www.QueryValue(r, "sexo"); v != "" {
		q = q.Where("sexo = ?", v)
	}
	if v := www.QueryValue(r, "batizado"); v != "" {
		q = q.Where("batizado = ?", v == "true")
	}
	list := []model.Inscricao{}
	www.Check(q.Find(&list).Error)
	sendData(w, list)
}

func (s *Server) loadInscricao(id int64) *model.Inscricao {
	ins := model.Inscricao{}
	s.DB.Find(&ins, id)
	if ins.ID == 0 {
		www.Panic(http.StatusNotFound, "Inscrição não encontrada")
	}
	return &ins
}

func (s *Server) httpInscricaoGet(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermInscricoesConsultar, "consultar inscrições")
	sendData(w, s.loadInscricao(www.ParseID(params.ByName("id"))))
}

// httpInscricaoUpdate merges the request body over the stored record: fields
// present in the body overwrite, fields absent are kept.
func (s *Server) httpInscricaoUpdate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermInscricoesEditar, "editar inscrições")
	id := www.ParseID(params.ByName("id"))
	ins := s.loadInscricao(id)
	body := www.ReadLimited(w, r, 1024*1024)
	if err := json.Unmarshal(body, ins); err != nil {
		www.PanicBadRequestf("JSON inválido: %v", err)
	}
	ins.ID = id
	www.Check(s.DB.Save(ins).Error)
	sendDataMessage(w, http.StatusOK, ins, "Inscrição atualizada com sucesso")
}

func (s *Server) httpInscricaoDelete(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermInscricoesDeletar, "deletar inscrições")
	id := www.ParseID(params.ByName("id"))
	ins := s.loadInscricao(id)
	www.Check(s.DB.Delete(&model.Inscricao{}, id).Error)
	for _, campo := range []string{model.ArquivoDocumentoIdentidade, model.ArquivoCertidaoBatismo, model.ArquivoDocumentoPadrinho} {
		if _, _, ok := ins.Arquivo(campo); ok {
			if err := s.store.Delete(inscricaoBlobName(id, campo)); err != nil && !errors.Is(err, storage.ErrNotFound) {
				s.Log.Warnf("Failed to delete attachment %v of enrollment %v: %v", campo, id, err)
			}
		}
	}
	s.Log.Infof("Deleted enrollment %v", id)
	sendDataMessage(w, http.StatusOK, ins, "Inscrição excluída com sucesso")
}

func (s *Server) httpInscricaoArquivo(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermInscricoesConsultar, "consultar inscrições")
	id := www.ParseID(params.ByName("id"))
	campo := params.ByName("campo")
	ins := s.loadInscricao(id)
	nome, tipo, ok := ins.Arquivo(campo)
	if !ok {
		www.Panic(http.StatusNotFound, "Arquivo não encontrado")
	}
	src, size, err := s.store.Open(inscricaoBlobName(id, campo))
	if errors.Is(err, storage.ErrNotFound) {
		www.Panic(http.StatusNotFound, "Arquivo não encontrado")
	}
	www.Check(err)
	defer src.Close()
	if tipo == "" {
		tipo = "application/octet-stream"
	}
	w.Header().Set("Content-Type", tipo)
	w.Header().Set("Content-Length", fmt.Sprintf("%v", size))
	// FormatMediaType escapes quotes in the stored filename, so a hostile
	// upload name can't corrupt the header.
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": nome}))
	io.Copy(w, src)
}

func inscricaoFromForm(r *http.Request) *model.Inscricao {
	get := func(key string) string {
		return r.FormValue(key)
	}
	getBool := func(key string) bool {
		v := strings.ToLower(r.FormValue(key))
		return v == "true" || v == "1" || v == "sim"
	}
	return &model.Inscricao{
		Email:                 get("email"),
		NomeCompleto:          get("nomeCompleto"),
		DataNascimento:        get("dataNascimento"),
		Naturalidade:          get("naturalidade"),
		Sexo:                  get("sexo"),
		Endereco:              get("endereco"),
		Batizado:              getBool("batizado"),
		ParoquiaBatismo:       get("paroquiaBatismo"),
		DioceseBatismo:        get("dioceseBatismo"),
		Comunhao:              getBool("comunhao"),
		ParoquiaComunhao:      get("paroquiaComunhao"),
		DioceseComunhao:       get("dioceseComunhao"),
		TelefoneWhatsApp:      get("telefoneWhatsApp"),
		EmailContato:          get("emailContato"),
		NomePai:               get("nomePai"),
		EstadoCivilPai:        get("estadoCivilPai"),
		NaturalidadePai:       get("naturalidadePai"),
		NomeMae:               get("nomeMae"),
		EstadoCivilMae:        get("estadoCivilMae"),
		NaturalidadeMae:       get("naturalidadeMae"),
		PaisCasadosIgreja:     getBool("paisCasadosIgreja"),
		ParoquiaCasamentoPais: get("paroquiaCasamentoPais"),
		DioceseCasamentoPais:  get("dioceseCasamentoPais"),
		NomePadrinhoMadrinha:  get("nomePadrinhoMadrinha"),
		PadrinhoCrismado:      getBool("padrinhoCrismado"),
		DataInicioCurso:       get("dataInicioCurso"),
		ComunidadeCurso:       get("comunidadeCurso"),
		NomeCatequista:        get("nomeCatequista"),
		HorarioCurso:          get("horarioCurso"),
	}
}
