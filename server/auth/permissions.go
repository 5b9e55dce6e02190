package auth

// PermissionAdmin is the wildcard permission: holding it satisfies any
// permission check.
const PermissionAdmin = "admin"

// Permissions enforced by the API routes.
const (
	PermUsuariosCriar   = "usuarios.criar"
	PermUsuariosListar  = "usuarios.listar"
	PermUsuariosEditar  = "usuarios.editar"
	PermUsuariosDeletar = "usuarios.deletar"

	PermInscricoesCriar     = "inscricoes.criar"
	PermInscricoesConsultar = "inscricoes.consultar"
	PermInscricoesEditar    = "inscricoes.editar"
	PermInscricoesDeletar   = "inscricoes.deletar"
)

// InGroup is a plain membership test over a user's groups. Groups are labels,
// not capabilities, so the admin permission wildcard does not apply here.
func InGroup(grupos []string, grupo string) bool {
	for _, g := range grupos {
		if g == grupo {
			return true
		}
	}
	return false
}

// Allows returns true iff required is in granted, or granted holds the admin
// wildcard.
func Allows(granted []string, required string) bool {
	for _, g := range granted {
		if g == required || g == PermissionAdmin {
			return true
		}
	}
	return false
}

// AllowsAny returns true if any one of required is granted.
func AllowsAny(granted []string, required ...string) bool {
	for _, r := range required {
		if Allows(granted, r) {
			return true
		}
	}
	return false
}

// AllowsAll returns true iff every one of required is granted.
// An empty required list is vacuously true; callers rely on this as the
// default "no restriction" behavior, so don't change it.
func AllowsAll(granted []string, required ...string) bool {
	for _, r := range required {
		if !Allows(granted, r) {
			return false
		}
	}
	return true
}
