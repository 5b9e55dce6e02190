package model

import (
	"github.com/cyclopcam/dbh"
)

// Names of the attachment fields accepted by the multipart enrollment form.
const (
	ArquivoDocumentoIdentidade = "documentoIdentidade"
	ArquivoCertidaoBatismo     = "certidaoBatismo"
	ArquivoDocumentoPadrinho   = "documentoPadrinho"
)

// Inscricao is one confirmation-course enrollment, as submitted by the public
// form. The JSON field names mirror the form; dates that the form submits as
// plain "YYYY-MM-DD" strings are kept as strings.
// SYNC-RECORD-INSCRICAO
type Inscricao struct {
	BaseModel
	Email          string `json:"email"`
	NomeCompleto   string `json:"nomeCompleto"`
	DataNascimento string `json:"dataNascimento" gorm:"default:null"`
	Naturalidade   string `json:"naturalidade" gorm:"default:null"`
	Sexo           string `json:"sexo" gorm:"default:null"`
	Endereco       string `json:"endereco" gorm:"default:null"`

	Batizado         bool   `json:"batizado"`
	ParoquiaBatismo  string `json:"paroquiaBatismo" gorm:"default:null"`
	DioceseBatismo   string `json:"dioceseBatismo" gorm:"default:null"`
	Comunhao         bool   `json:"comunhao"`
	ParoquiaComunhao string `json:"paroquiaComunhao" gorm:"default:null"`
	DioceseComunhao  string `json:"dioceseComunhao" gorm:"default:null"`

	TelefoneWhatsApp string `json:"telefoneWhatsApp" gorm:"column:telefone_whats_app;default:null"`
	EmailContato     string `json:"emailContato" gorm:"default:null"`

	NomePai               string `json:"nomePai" gorm:"default:null"`
	EstadoCivilPai        string `json:"estadoCivilPai" gorm:"default:null"`
	NaturalidadePai       string `json:"naturalidadePai" gorm:"default:null"`
	NomeMae               string `json:"nomeMae" gorm:"default:null"`
	EstadoCivilMae        string `json:"estadoCivilMae" gorm:"default:null"`
	NaturalidadeMae       string `json:"naturalidadeMae" gorm:"default:null"`
	PaisCasadosIgreja     bool   `json:"paisCasadosIgreja"`
	ParoquiaCasamentoPais string `json:"paroquiaCasamentoPais" gorm:"default:null"`
	DioceseCasamentoPais  string `json:"dioceseCasamentoPais" gorm:"default:null"`

	NomePadrinhoMadrinha string `json:"nomePadrinhoMadrinha" gorm:"default:null"`
	PadrinhoCrismado     bool   `json:"padrinhoCrismado"`

	DataInicioCurso string `json:"dataInicioCurso" gorm:"default:null"`
	ComunidadeCurso string `json:"comunidadeCurso" gorm:"default:null"`
	NomeCatequista  string `json:"nomeCatequista" gorm:"default:null"`
	HorarioCurso    string `json:"horarioCurso" gorm:"default:null"`

	// Metadata of attachments held in the blob store. The blobs themselves are
	// keyed by enrollment id + field name.
	DocumentoIdentidadeNome    string `json:"documentoIdentidadeNome,omitempty" gorm:"default:null"`
	DocumentoIdentidadeTipo    string `json:"documentoIdentidadeTipo,omitempty" gorm:"default:null"`
	DocumentoIdentidadeTamanho int64  `json:"documentoIdentidadeTamanho,omitempty" gorm:"default:null"`
	CertidaoBatismoNome        string `json:"certidaoBatismoNome,omitempty" gorm:"default:null"`
	CertidaoBatismoTipo        string `json:"certidaoBatismoTipo,omitempty" gorm:"default:null"`
	CertidaoBatismoTamanho     int64  `json:"certidaoBatismoTamanho,omitempty" gorm:"default:null"`
	DocumentoPadrinhoNome      string `json:"documentoPadrinhoNome,omitempty" gorm:"default:null"`
	DocumentoPadrinhoTipo      string `json:"documentoPadrinhoTipo,omitempty" gorm:"default:null"`
	DocumentoPadrinhoTamanho   int64  `json:"documentoPadrinhoTamanho,omitempty" gorm:"default:null"`

	CreatedAt dbh.IntTime `json:"createdAt"`
}

// SetArquivo records attachment metadata for one of the Arquivo* fields.
// Returns false if campo is not a known attachment field.
func (i *Inscricao) SetArquivo(campo, nome, tipo string, tamanho int64) bool {
	switch campo {
	case ArquivoDocumentoIdentidade:
		i.DocumentoIdentidadeNome, i.DocumentoIdentidadeTipo, i.DocumentoIdentidadeTamanho = nome, tipo, tamanho
	case ArquivoCertidaoBatismo:
		i.CertidaoBatismoNome, i.CertidaoBatismoTipo, i.CertidaoBatismoTamanho = nome, tipo, tamanho
	case ArquivoDocumentoPadrinho:
		i.DocumentoPadrinhoNome, i.DocumentoPadrinhoTipo, i.DocumentoPadrinhoTamanho = nome, tipo, tamanho
	default:
		return false
	}
	return true
}

// Arquivo returns the stored metadata for one of the Arquivo* fields.
// ok is false if campo is unknown, or if no file was stored for it.
func (i *Inscricao) Arquivo(campo string) (nome, tipo string, ok bool) {
	switch campo {
	case ArquivoDocumentoIdentidade:
		nome, tipo = i.DocumentoIdentidadeNome, i.DocumentoIdentidadeTipo
	case ArquivoCertidaoBatismo:
		nome, tipo = i.CertidaoBatismoNome, i.CertidaoBatismoTipo
	case ArquivoDocumentoPadrinho:
		nome, tipo = i.DocumentoPadrinhoNome, i.DocumentoPadrinhoTipo
	default:
		return "", "", false
	}
	return nome, tipo, nome != ""
}
