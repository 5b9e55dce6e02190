package server

import (
	"time"

	"github.com/BurntSushi/migration"
	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"github.com/potuvera/crisma/pkg/pwdhash"
	"github.com/potuvera/crisma/server/auth"
	"github.com/potuvera/crisma/server/model"
	"gorm.io/gorm"
)

func openDB(log logs.Log, dbFilename string, flags dbh.DBConnectFlags) (*gorm.DB, error) {
	db, err := dbh.OpenDB(log, dbh.MakeSqliteConfig(dbFilename), migrations(log), flags)
	if err != nil {
		return nil, err
	}
	if err := seedEmptyDB(log, db); err != nil {
		return nil, err
	}
	return db, nil
}

func migrations(log logs.Log) []migration.Migrator {
	migs := []migration.Migrator{}
	idx := 0

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE usuario(
			id INTEGER PRIMARY KEY,
			nome TEXT NOT NULL,
			usuario TEXT NOT NULL,
			email TEXT,
			senha TEXT NOT NULL,
			permissions TEXT,
			grupos TEXT,
			grupo TEXT,
			ativo INT NOT NULL DEFAULT 1,
			created_at INT NOT NULL,
			updated_at INT NOT NULL
		);
		CREATE UNIQUE INDEX idx_usuario_usuario ON usuario (usuario);

		CREATE TABLE session(
			key TEXT PRIMARY KEY,
			user_id INT NOT NULL,
			created_at INT NOT NULL,
			expires_at INT
		);
		CREATE INDEX idx_session_user_id ON session (user_id);
	`))

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE inscricao(
			id INTEGER PRIMARY KEY,
			email TEXT,
			nome_completo TEXT,
			data_nascimento TEXT,
			naturalidade TEXT,
			sexo TEXT,
			endereco TEXT,
			batizado INT NOT NULL DEFAULT 0,
			paroquia_batismo TEXT,
			diocese_batismo TEXT,
			comunhao INT NOT NULL DEFAULT 0,
			paroquia_comunhao TEXT,
			diocese_comunhao TEXT,
			telefone_whats_app TEXT,
			email_contato TEXT,
			nome_pai TEXT,
			estado_civil_pai TEXT,
			naturalidade_pai TEXT,
			nome_mae TEXT,
			estado_civil_mae TEXT,
			naturalidade_mae TEXT,
			pais_casados_igreja INT NOT NULL DEFAULT 0,
			paroquia_casamento_pais TEXT,
			diocese_casamento_pais TEXT,
			nome_padrinho_madrinha TEXT,
			padrinho_crismado INT NOT NULL DEFAULT 0,
			data_inicio_curso TEXT,
			comunidade_curso TEXT,
			nome_catequista TEXT,
			horario_curso TEXT,
			documento_identidade_nome TEXT,
			documento_identidade_tipo TEXT,
			documento_identidade_tamanho INT NOT NULL DEFAULT 0,
			certidao_batismo_nome TEXT,
			certidao_batismo_tipo TEXT,
			certidao_batismo_tamanho INT NOT NULL DEFAULT 0,
			documento_padrinho_nome TEXT,
			documento_padrinho_tipo TEXT,
			documento_padrinho_tamanho INT NOT NULL DEFAULT 0,
			created_at INT NOT NULL
		);
	`))

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE spot(
			id INTEGER PRIMARY KEY,
			titulo TEXT NOT NULL,
			subtitulo TEXT,
			descricao TEXT,
			icone TEXT,
			imagem TEXT,
			link_texto TEXT,
			link_url TEXT,
			ativo INT NOT NULL DEFAULT 1,
			ordem INT NOT NULL DEFAULT 0,
			tipo_spot TEXT NOT NULL,
			configuracoes TEXT,
			data_inicio INT,
			data_fim INT,
			data_criacao INT NOT NULL,
			data_atualizacao INT NOT NULL
		);
	`))

	return migs
}

// seedEmptyDB populates a fresh database with the default users and homepage
// spots, so that a brand new install is immediately usable.
func seedEmptyDB(log logs.Log, db *gorm.DB) error {
	nUsers := int64(0)
	if err := db.Model(&model.Usuario{}).Count(&nUsers).Error; err != nil {
		return err
	}
	if nUsers == 0 {
		log.Warnf("Creating default users with password 'password'. Change these before going live.")
		senha := pwdhash.Hash("password")
		users := []model.Usuario{
			{
				Nome:    "Administrador",
				Usuario: "admin",
				Email:   "admin@paroquia.com",
				Permissions: model.StringList{
					"read", "write", auth.PermissionAdmin, "delete", "sistema.configurar",
					auth.PermInscricoesCriar, auth.PermInscricoesConsultar, auth.PermInscricoesEditar, auth.PermInscricoesDeletar,
					auth.PermUsuariosCriar, auth.PermUsuariosListar, auth.PermUsuariosEditar, auth.PermUsuariosDeletar,
				},
				Grupos:    model.StringList{"admin", "catequista"},
				Grupo:     "Administrador",
				Ativo:     true,
				CreatedAt: dbh.MakeIntTime(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
				UpdatedAt: dbh.MakeIntTime(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
			},
			{
				Nome:    "Catequista",
				Usuario: "catequista",
				Email:   "catequista@paroquia.com",
				Permissions: model.StringList{
					"read", "write",
					auth.PermInscricoesCriar, auth.PermInscricoesConsultar,
					auth.PermUsuariosListar,
				},
				Grupos:    model.StringList{"catequista"},
				Grupo:     "Usuario",
				Ativo:     true,
				CreatedAt: dbh.MakeIntTime(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)),
				UpdatedAt: dbh.MakeIntTime(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)),
			},
			{
				Nome:    "Usuário Comum",
				Usuario: "user",
				Email:   "user@paroquia.com",
				Permissions: model.StringList{
					"read", auth.PermInscricoesConsultar,
				},
				Grupos:    model.StringList{"user"},
				Grupo:     "Usuario",
				Ativo:     true,
				CreatedAt: dbh.MakeIntTime(time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)),
				UpdatedAt: dbh.MakeIntTime(time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)),
			},
		}
		for i := range users {
			users[i].SenhaHash = senha
			if err := db.Create(&users[i]).Error; err != nil {
				return err
			}
		}
	}

	nSpots := int64(0)
	if err := db.Model(&model.Spot{}).Count(&nSpots).Error; err != nil {
		return err
	}
	if nSpots == 0 {
		created := dbh.MakeIntTime(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
		spots := []model.Spot{
			{
				Titulo:    "Inscrições Abertas",
				Subtitulo: "Crisma 2024",
				Descricao: "As inscrições para o curso de Crisma estão abertas. Garanta já a sua vaga.",
				Icone:     "📝",
				LinkTexto: "Inscreva-se",
				LinkURL:   "/inscricao",
				Ativo:     true,
				Ordem:     1,
				TipoSpot:  model.SpotTipoAcao,
				Configuracoes: model.SpotConfig{
					CorFundo:    "#1e88e5",
					CorTexto:    "#ffffff",
					MostrarLink: true,
				},
				DataCriacao:     created,
				DataAtualizacao: created,
			},
			{
				Titulo:    "Horários das Turmas",
				Subtitulo: "Sábados e domingos",
				Descricao: "Turmas aos sábados às 14h e aos domingos às 9h, no salão paroquial.",
				Icone:     "🕐",
				Ativo:     false,
				Ordem:     2,
				TipoSpot:  model.SpotTipoInformacao,
				Configuracoes: model.SpotConfig{
					MostrarIcone: true,
				},
				DataCriacao:     created,
				DataAtualizacao: created,
			},
			{
				Titulo:    "Documentos Necessários",
				Descricao: "Traga certidão de batismo, documento de identidade e comprovante de primeira comunhão.",
				Icone:     "📄",
				Ativo:     true,
				Ordem:     3,
				TipoSpot:  model.SpotTipoDestaque,
				Configuracoes: model.SpotConfig{
					MostrarIcone: true,
				},
				DataCriacao:     created,
				DataAtualizacao: created,
			},
			{
				Titulo:    "Encontro de Abertura",
				Subtitulo: "Participe com a família",
				Descricao: "O encontro de abertura do curso acontece no primeiro domingo do mês, após a missa das 9h.",
				Icone:     "⛪",
				LinkTexto: "Saiba mais",
				LinkURL:   "/eventos",
				Ativo:     true,
				Ordem:     4,
				TipoSpot:  model.SpotTipoPromocional,
				Configuracoes: model.SpotConfig{
					MostrarIcone: true,
					MostrarLink:  true,
				},
				DataCriacao:     created,
				DataAtualizacao: created,
			},
		}
		for i := range spots {
			if err := db.Create(&spots[i]).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
