package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"
)

const (
	RefreshTTL    = 30 * 24 * time.Hour
	RefreshCookie = "rt"
)

// RefreshToken é o registro de refresh rotativo; só o hash vai ao banco.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:uuid;index"`
	FamilyID  string `gorm:"index"`
	Hash      string `gorm:"uniqueIndex"`
	IsAdmin   bool
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RefreshToken{})
}

// --- Helpers ---

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// Em localhost (http) precisa ser Secure=false; em produção defina
// COOKIE_SECURE=true.
func cookieSecure() bool {
	return os.Getenv("COOKIE_SECURE") == "true"
}

func setRTCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func clearRTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// --- Fluxo ---

// IssueTokensOnLogin emite o access token e planta o refresh em cookie.
// Chamar no login, depois de validar as credenciais.
func IssueTokensOnLogin(db *gorm.DB, w http.ResponseWriter, userID string, isAdmin bool) (string, error) {
	access, err := GerarToken(userID, isAdmin)
	if err != nil {
		return "", err
	}

	raw, err := genRaw()
	if err != nil {
		return "", err
	}

	rt := RefreshToken{
		UserID:    userID,
		FamilyID:  fmt.Sprintf("fam-%s", userID),
		Hash:      hashRaw(raw),
		IsAdmin:   isAdmin,
		ExpiresAt: time.Now().Add(RefreshTTL),
	}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	setRTCookie(w, raw, rt.ExpiresAt)
	return access, nil
}

// RefreshHTTPHandler gira o refresh token e emite novo access token.
// É o alvo do keepalive de sessão do front.
//
// POST /auth/refresh
func RefreshHTTPHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(RefreshCookie)
		if err != nil || c.Value == "" {
			http.Error(w, "no refresh", http.StatusUnauthorized)
			return
		}
		h := hashRaw(c.Value)

		var cur RefreshToken
		if err := db.Where("hash = ?", h).First(&cur).Error; err != nil {
			clearRTCookie(w)
			http.Error(w, "invalid refresh", http.StatusUnauthorized)
			return
		}
		if cur.RevokedAt != nil || time.Now().After(cur.ExpiresAt) {
			clearRTCookie(w)
			http.Error(w, "expired refresh", http.StatusUnauthorized)
			return
		}

		// revoga o atual antes de emitir o substituto; se a revogação não
		// grava, a rotação inteira aborta para não deixar dois tokens vivos
		now := time.Now()
		if err := db.Model(&cur).Update("revoked_at", &now).Error; err != nil {
			http.Error(w, "error", http.StatusInternalServerError)
			return
		}

		access, err := GerarToken(cur.UserID, cur.IsAdmin)
		if err != nil {
			clearRTCookie(w)
			http.Error(w, "error", http.StatusInternalServerError)
			return
		}

		newRaw, err := genRaw()
		if err != nil {
			clearRTCookie(w)
			http.Error(w, "error", http.StatusInternalServerError)
			return
		}
		newRT := RefreshToken{
			UserID:    cur.UserID,
			FamilyID:  cur.FamilyID,
			Hash:      hashRaw(newRaw),
			IsAdmin:   cur.IsAdmin,
			ExpiresAt: time.Now().Add(RefreshTTL),
		}
		if err := db.Create(&newRT).Error; err != nil {
			clearRTCookie(w)
			http.Error(w, "error", http.StatusInternalServerError)
			return
		}
		setRTCookie(w, newRaw, newRT.ExpiresAt)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fmt.Sprintf(
			`{"access_token":"%s","token_type":"Bearer","expires_in":%d}`,
			access, int(AccessTTL.Seconds()),
		)))
	}
}
