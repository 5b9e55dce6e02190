package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllows(t *testing.T) {
	regular := []string{"read", PermInscricoesConsultar}
	admin := []string{PermissionAdmin}

	require.True(t, Allows(regular, "read"))
	require.True(t, Allows(regular, PermInscricoesConsultar))
	require.False(t, Allows(regular, PermInscricoesEditar))
	require.False(t, Allows(nil, "read"))

	// admin implies everything
	require.True(t, Allows(admin, "read"))
	require.True(t, Allows(admin, PermUsuariosDeletar))
	require.True(t, Allows(admin, PermissionAdmin))
}

func TestInGroup(t *testing.T) {
	require.True(t, InGroup([]string{"admin", "catequista"}, "catequista"))
	require.False(t, InGroup([]string{"user"}, "catequista"))
	// No wildcard for groups
	require.False(t, InGroup([]string{PermissionAdmin}, "catequista"))
	require.True(t, InGroup([]string{PermissionAdmin}, "admin"))
}

func TestAllowsAny(t *testing.T) {
	granted := []string{PermInscricoesConsultar}
	require.True(t, AllowsAny(granted, PermInscricoesEditar, PermInscricoesConsultar))
	require.False(t, AllowsAny(granted, PermInscricoesEditar, PermInscricoesDeletar))
	// An empty requirement list means no restriction
	require.True(t, AllowsAny(granted))
	require.True(t, AllowsAny(nil))
}

func TestAllowsAll(t *testing.T) {
	granted := []string{PermInscricoesConsultar, PermInscricoesEditar}
	require.True(t, AllowsAll(granted, PermInscricoesConsultar, PermInscricoesEditar))
	require.False(t, AllowsAll(granted, PermInscricoesConsultar, PermInscricoesDeletar))
	require.True(t, AllowsAll(granted))
	require.True(t, AllowsAll([]string{PermissionAdmin}, PermUsuariosCriar, PermUsuariosDeletar))
}
