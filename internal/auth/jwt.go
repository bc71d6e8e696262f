package auth

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTTL é o tempo de vida do access token.
const AccessTTL = 15 * time.Minute

var (
	segredoOnce sync.Once
	segredo     []byte
)

func jwtSecret() []byte {
	segredoOnce.Do(func() {
		segredo = []byte(os.Getenv("JWT_SECRET"))
	})
	return segredo
}

// Claims do access token (RBAC simples: IsAdmin).
type Claims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// GerarToken gera um JWT HS256 com validade de AccessTTL.
func GerarToken(userID string, isAdmin bool) (string, error) {
	if len(jwtSecret()) == 0 {
		return "", fmt.Errorf("JWT_SECRET não definida")
	}
	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidarToken valida o token e retorna as claims.
func ValidarToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("não foi possível extrair claims")
	}
	return claims, nil
}

// ExpiraEm extrai a expiração de um token sem validar assinatura; serve
// para o renovador de sessão decidir quando renovar.
func ExpiraEm(tokenStr string) (time.Time, error) {
	parser := jwt.NewParser()
	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(tokenStr, &claims); err != nil {
		return time.Time{}, fmt.Errorf("token ilegível: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token sem expiração")
	}
	return claims.ExpiresAt.Time, nil
}
