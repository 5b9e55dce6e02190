package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/cyclopcam/dbh"
)

// Spot types, as used by the landing page renderer.
const (
	SpotTipoInformacao  = "informacao"
	SpotTipoAcao        = "acao"
	SpotTipoDestaque    = "destaque"
	SpotTipoPromocional = "promocional"
)

// SpotConfig is the nested display configuration of a Spot, stored as a JSON
// TEXT column.
type SpotConfig struct {
	CorFundo      string `json:"corFundo,omitempty"`
	CorTexto      string `json:"corTexto,omitempty"`
	MostrarIcone  bool   `json:"mostrarIcone,omitempty"`
	MostrarImagem bool   `json:"mostrarImagem,omitempty"`
	MostrarLink   bool   `json:"mostrarLink,omitempty"`
}

func (c *SpotConfig) Scan(src any) error {
	if src == nil {
		*c = SpotConfig{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("Unable to scan %T into SpotConfig", src)
	}
	if len(raw) == 0 {
		*c = SpotConfig{}
		return nil
	}
	return json.Unmarshal(raw, c)
}

func (c SpotConfig) Value() (driver.Value, error) {
	b, err := json.Marshal(&c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Spot is an admin-managed promotional tile shown on the public landing page.
// Only spots with Ativo set, inside their [DataInicio, DataFim] window, are
// visible to the public, ordered by Ordem. Ordem is not guaranteed unique;
// ties keep insertion order.
// SYNC-RECORD-SPOT
type Spot struct {
	BaseModel
	Titulo    string `json:"titulo"`
	Subtitulo string `json:"subtitulo" gorm:"default:null"`
	Descricao string `json:"descricao"`
	Icone     string `json:"icone" gorm:"default:null"`
	Imagem    string `json:"imagem" gorm:"default:null"`
	LinkTexto string `json:"linkTexto" gorm:"default:null"`
	LinkURL   string `json:"linkUrl" gorm:"column:link_url;default:null"`
	Ativo     bool   `json:"ativo"`
	Ordem     int    `json:"ordem"`
	TipoSpot  string `json:"tipoSpot"`

	Configuracoes SpotConfig `json:"configuracoes"`

	DataInicio      dbh.IntTime `json:"dataInicio" gorm:"default:null"`
	DataFim         dbh.IntTime `json:"dataFim" gorm:"default:null"`
	DataCriacao     dbh.IntTime `json:"dataCriacao"`
	DataAtualizacao dbh.IntTime `json:"dataAtualizacao"`
}
