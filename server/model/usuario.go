package model

import (
	"github.com/cyclopcam/dbh"
)

// Usuario is a back-office account. Permissions are dot-namespaced capability
// strings (eg "inscricoes.criar"); the literal string "admin" satisfies any
// permission check. Grupos are coarse labels checked independently of
// permissions.
// SYNC-RECORD-USUARIO
type Usuario struct {
	BaseModel
	Nome        string      `json:"nome"`
	Usuario     string      `json:"usuario"`
	Email       string      `json:"email" gorm:"default:null"`
	SenhaHash   string      `json:"-" gorm:"column:senha"`
	Permissions StringList  `json:"permissions" gorm:"type:text;default:null"`
	Grupos      StringList  `json:"grupos" gorm:"type:text;default:null"`
	Grupo       string      `json:"grupo" gorm:"default:null"`
	Ativo       bool        `json:"ativo"`
	CreatedAt   dbh.IntTime `json:"created_at"`
	UpdatedAt   dbh.IntTime `json:"updated_at"`
}

// Session is one login. Key is pwdhash.TokenKey of the bearer token; the
// plaintext token exists only on the client.
type Session struct {
	Key       string `gorm:"primaryKey"`
	UserID    int64
	CreatedAt dbh.IntTime
	ExpiresAt dbh.IntTime `gorm:"default:null"`
}
