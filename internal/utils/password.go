package utils

import "golang.org/x/crypto/bcrypt"

// HashSenha gera o hash bcrypt (custo padrão) para guardar no perfil.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckSenha confere a senha em texto contra o hash guardado; devolve
// false para qualquer falha, sem distinguir o motivo.
func CheckSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
