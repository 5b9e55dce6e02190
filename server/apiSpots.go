package server

import (
	"net/http"
	"time"

	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
	"github.com/potuvera/crisma/server/auth"
	"github.com/potuvera/crisma/server/model"
)

// httpSpotsAtivos is the public landing page feed: active spots inside their
// display window, in display order.
func (s *Server) httpSpotsAtivos(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	now := time.Now().UTC().UnixMilli()
	spots := []model.Spot{}
	err := s.DB.
		Where("ativo = ?", true).
		Where("data_inicio IS NULL OR data_inicio <= ?", now).
		Where("data_fim IS NULL OR data_fim >= ?", now).
		Order("ordem, id").
		Find(&spots).Error
	www.Check(err)
	sendData(w, spots)
}

func (s *Server) httpSpotAdminList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermissionAdmin, "gerenciar spots")
	spots := []model.Spot{}
	www.Check(s.DB.Order("ordem, id").Find(&spots).Error)
	sendData(w, spots)
}

func (s *Server) loadSpot(id int64) *model.Spot {
	spot := model.Spot{}
	s.DB.Find(&spot, id)
	if spot.ID == 0 {
		www.Panic(http.StatusNotFound, "Spot não encontrado")
	}
	return &spot
}

func (s *Server) httpSpotAdminGet(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermissionAdmin, "gerenciar spots")
	sendData(w, s.loadSpot(www.ParseID(params.ByName("id"))))
}

// spotJSON is the admin write surface of a Spot. The snake_case aliases exist
// because older admin forms posted DB column names.
type spotJSON struct {
	Titulo        *string           `json:"titulo"`
	Subtitulo     *string           `json:"subtitulo"`
	Descricao     *string           `json:"descricao"`
	Icone         *string           `json:"icone"`
	Imagem        *string           `json:"imagem"`
	LinkTexto     *string           `json:"linkTexto"`
	LinkTextoAlt  *string           `json:"link_texto"`
	LinkURL       *string           `json:"linkUrl"`
	LinkURLAlt    *string           `json:"link_url"`
	Ativo         *bool             `json:"ativo"`
	Ordem         *int              `json:"ordem"`
	TipoSpot      *string           `json:"tipoSpot"`
	TipoSpotAlt   *string           `json:"tipo_spot"`
	Configuracoes *model.SpotConfig `json:"configuracoes"`
	DataInicio    *dbh.IntTime      `json:"dataInicio"`
	DataFim       *dbh.IntTime      `json:"dataFim"`
}

// normalize folds the snake_case aliases into the canonical fields.
func (j *spotJSON) normalize() {
	if j.LinkTexto == nil {
		j.LinkTexto = j.LinkTextoAlt
	}
	if j.LinkURL == nil {
		j.LinkURL = j.LinkURLAlt
	}
	if j.TipoSpot == nil {
		j.TipoSpot = j.TipoSpotAlt
	}
}

func (s *Server) httpSpotAdminCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermissionAdmin, "criar spots")
	body := spotJSON{}
	www.ReadJSON(w, r, &body, 1024*1024)
	body.normalize()
	if body.Titulo == nil || *body.Titulo == "" ||
		body.Descricao == nil || *body.Descricao == "" ||
		body.TipoSpot == nil || *body.TipoSpot == "" {
		www.PanicBadRequestf("Campos obrigatórios: titulo, descricao, tipoSpot")
	}

	now := dbh.MakeIntTime(time.Now().UTC())
	spot := model.Spot{
		Titulo:          *body.Titulo,
		Descricao:       *body.Descricao,
		TipoSpot:        *body.TipoSpot,
		Ativo:           true,
		DataCriacao:     now,
		DataAtualizacao: now,
	}
	if body.Subtitulo != nil {
		spot.Subtitulo = *body.Subtitulo
	}
	if body.Icone != nil {
		spot.Icone = *body.Icone
	}
	if body.Imagem != nil {
		spot.Imagem = *body.Imagem
	}
	if body.LinkTexto != nil {
		spot.LinkTexto = *body.LinkTexto
	}
	if body.LinkURL != nil {
		spot.LinkURL = *body.LinkURL
	}
	if body.Ativo != nil {
		spot.Ativo = *body.Ativo
	}
	if body.Configuracoes != nil {
		spot.Configuracoes = *body.Configuracoes
	}
	if body.DataInicio != nil {
		spot.DataInicio = *body.DataInicio
	}
	if body.DataFim != nil {
		spot.DataFim = *body.DataFim
	}
	if body.Ordem != nil {
		spot.Ordem = *body.Ordem
	} else {
		// New spots go to the end of the display order.
		n := int64(0)
		www.Check(s.DB.Model(&model.Spot{}).Count(&n).Error)
		spot.Ordem = int(n) + 1
	}
	www.Check(s.DB.Create(&spot).Error)
	s.Log.Infof("Created spot %v (%v)", spot.ID, spot.Titulo)
	sendDataMessage(w, http.StatusCreated, &spot, "Spot criado com sucesso")
}

func (s *Server) httpSpotAdminUpdate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermissionAdmin, "editar spots")
	spot := s.loadSpot(www.ParseID(params.ByName("id")))
	body := spotJSON{}
	www.ReadJSON(w, r, &body, 1024*1024)
	body.normalize()

	// Titulo, descricao and tipoSpot are required columns, so blanks are
	// ignored. The rest applies whenever the key is present, so values can be
	// cleared.
	if body.Titulo != nil && *body.Titulo != "" {
		spot.Titulo = *body.Titulo
	}
	if body.Descricao != nil && *body.Descricao != "" {
		spot.Descricao = *body.Descricao
	}
	if body.TipoSpot != nil && *body.TipoSpot != "" {
		spot.TipoSpot = *body.TipoSpot
	}
	if body.Subtitulo != nil {
		spot.Subtitulo = *body.Subtitulo
	}
	if body.Icone != nil {
		spot.Icone = *body.Icone
	}
	if body.Imagem != nil {
		spot.Imagem = *body.Imagem
	}
	if body.LinkTexto != nil {
		spot.LinkTexto = *body.LinkTexto
	}
	if body.LinkURL != nil {
		spot.LinkURL = *body.LinkURL
	}
	if body.Ativo != nil {
		spot.Ativo = *body.Ativo
	}
	if body.Ordem != nil {
		spot.Ordem = *body.Ordem
	}
	if body.Configuracoes != nil {
		spot.Configuracoes = *body.Configuracoes
	}
	if body.DataInicio != nil {
		spot.DataInicio = *body.DataInicio
	}
	if body.DataFim != nil {
		spot.DataFim = *body.DataFim
	}
	spot.DataAtualizacao = dbh.MakeIntTime(time.Now().UTC())
	www.Check(s.DB.Save(spot).Error)
	sendDataMessage(w, http.StatusOK, spot, "Spot atualizado com sucesso")
}

func (s *Server) httpSpotAdminDelete(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermissionAdmin, "deletar spots")
	id := www.ParseID(params.ByName("id"))
	spot := s.loadSpot(id)
	www.Check(s.DB.Delete(&model.Spot{}, id).Error)
	s.Log.Infof("Deleted spot %v (%v)", id, spot.Titulo)
	removed := map[string]any{"id": spot.ID, "titulo": spot.Titulo}
	sendDataMessage(w, http.StatusOK, removed, "Spot deletado com sucesso")
}

func (s *Server) httpSpotAdminStatus(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermissionAdmin, "alterar status de spots")
	spot := s.loadSpot(www.ParseID(params.ByName("id")))
	body := struct {
		Ativo *bool `json:"ativo"`
	}{}
	www.ReadJSON(w, r, &body, 1024*1024)
	if body.Ativo == nil {
		www.PanicBadRequestf("Campo ativo é obrigatório")
	}
	spot.Ativo = *body.Ativo
	spot.DataAtualizacao = dbh.MakeIntTime(time.Now().UTC())
	www.Check(s.DB.Save(spot).Error)
	msg := "Spot desativado com sucesso"
	if spot.Ativo {
		msg = "Spot ativado com sucesso"
	}
	sendDataMessage(w, http.StatusOK, spot, msg)
}

type spotOrderJSON struct {
	ID    int64 `json:"id"`
	Ordem int   `json:"ordem"`
}

// httpSpotAdminReorder applies a new display order in bulk. Ids that don't
// exist are skipped, so a stale admin page doesn't fail the whole batch.
func (s *Server) httpSpotAdminReorder(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *auth.Credentials) {
	requirePermission(cred, auth.PermissionAdmin, "reordenar spots")
	body := struct {
		Spots *[]spotOrderJSON `json:"spots"`
	}{}
	www.ReadJSON(w, r, &body, 1024*1024)
	if body.Spots == nil {
		www.PanicBadRequestf("Campo spots deve ser um array")
	}
	now := dbh.MakeIntTime(time.Now().UTC())
	for _, item := range *body.Spots {
		err := s.DB.Model(&model.Spot{}).Where("id = ?", item.ID).
			Updates(map[string]any{"ordem": item.Ordem, "data_atualizacao": now}).Error
		www.Check(err)
	}
	spots := []model.Spot{}
	www.Check(s.DB.Order("ordem, id").Find(&spots).Error)
	sendDataMessage(w, http.StatusOK, spots, "Spots reordenados com sucesso")
}
