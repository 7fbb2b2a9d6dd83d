package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token emitidos por la API.
const (
	TypeAccess  = "access"
	TypePreview = "preview"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role viaja en el token solo como pista; la decisión de autorización usa el rol persistido.
type Claims struct {
	jwt.RegisteredClaims
	Type     string `json:"typ"`
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

// PreviewClaims token de vista previa: fija la simulación a un único tenant y a un admin.
type PreviewClaims struct {
	jwt.RegisteredClaims
	Type     string `json:"typ"`
	AdminID  string `json:"admin_id"`
	TenantID string `json:"tenant_id"`
}

// Generate genera un token de acceso firmado que incluye userID, tenantID y role.
func Generate(secret, userID, tenantID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Type:     TypeAccess,
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token de acceso y devuelve userID, tenantID y role.
// Retorna error si el token es inválido, expirado, de otro tipo o tiene firma incorrecta.
func Parse(secret, tokenString string) (userID, tenantID, role string, err error) {
	var claims Claims
	if err := parseInto(secret, tokenString, &claims); err != nil {
		return "", "", "", err
	}
	if claims.Type != TypeAccess {
		return "", "", "", fmt.Errorf("jwt: tipo de token %q no válido para acceso", claims.Type)
	}
	return claims.UserID, claims.TenantID, claims.Role, nil
}

// GeneratePreview firma un token de vista previa con jti = scopeID.
func GeneratePreview(secret, scopeID, adminID, tenantID, issuer string, expiresAt time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	claims := PreviewClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        scopeID,
			Issuer:    issuer,
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Type:     TypePreview,
		AdminID:  adminID,
		TenantID: tenantID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParsePreview valida un token de vista previa y devuelve sus claims.
func ParsePreview(secret, tokenString string) (*PreviewClaims, error) {
	var claims PreviewClaims
	if err := parseInto(secret, tokenString, &claims); err != nil {
		return nil, err
	}
	if claims.Type != TypePreview || claims.ID == "" || claims.TenantID == "" {
		return nil, fmt.Errorf("jwt: token de vista previa inválido")
	}
	return &claims, nil
}

func parseInto(secret, tokenString string, claims jwt.Claims) error {
	if secret == "" {
		return fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("claims inválidos")
	}
	return nil
}
