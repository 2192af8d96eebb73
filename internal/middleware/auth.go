package middleware

import (
	"net/http"
	"strings"

	"epicontrol/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ClaimsKey = "claims"

// JWTClaims mirror what AuthService signs at login.
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Nome   string `json:"nome"`
	Login  string `json:"login"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// tokenDaRequisicao reads the Bearer header. GET requests may instead carry
// ?token=, so PDF and XLSX links can be opened directly by the browser.
func tokenDaRequisicao(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c.Request.Method == http.MethodGet {
		return c.Query("token")
	}
	return ""
}

// JWTAuth rejects requests without a valid HS256 token and stores the
// claims in the context for handlers and RequireRole.
func JWTAuth(secret string) gin.HandlerFunc {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		raw := tokenDaRequisicao(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.Com(apierror.CodigoNaoAutenticado, "Autenticação necessária"))
			return
		}

		claims := &JWTClaims{}
		if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.Com(apierror.CodigoNaoAutenticado, "Token inválido ou expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !papelPermitido(claims.Role, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierror.Com(apierror.CodigoAcessoNegado, "Acesso negado para o seu perfil"))
			return
		}
		c.Next()
	}
}

func papelPermitido(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// GetClaims returns nil on routes outside JWTAuth.
func GetClaims(c *gin.Context) *JWTClaims {
	if v, ok := c.Get(ClaimsKey); ok {
		claims, _ := v.(*JWTClaims)
		return claims
	}
	return nil
}
