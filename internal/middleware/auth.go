package middleware

import (
	"errors"
	"strings"
	"time"

	"jobportal_backend/internal/access"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/pkg/apperrors"
	"jobportal_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Ключи gin.Context
const (
	UserIDKey    = "userID"
	RoleKey      = "role"
	PrincipalKey = "principal"
)

// PrincipalLoader загружает пользователя с профилем и строит Principal
type PrincipalLoader interface {
	LoadPrincipal(db *gorm.DB, userID string) (access.Principal, error)
}

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, tokens)
		if !ok {
			apperrors.AbortWithError(c, apperrors.ErrLoginRequired)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware - то же, что AuthMiddleware, но запрос без токена
// или с невалидным токеном пропускается анонимно.
func OptionalAuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, tokens); ok {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// PrincipalMiddleware загружает Principal для аутентифицированного запроса.
// Анонимный запрос проходит дальше без Principal.
func PrincipalMiddleware(loader PrincipalLoader) gin.HandlerFunc {
	return principalMiddleware(loader, false)
}

// OptionalPrincipalMiddleware - для публичных маршрутов: если пользователя нельзя
// загрузить (удалён, деактивирован), запрос продолжается анонимно
func OptionalPrincipalMiddleware(loader PrincipalLoader) gin.HandlerFunc {
	return principalMiddleware(loader, true)
}

func principalMiddleware(loader PrincipalLoader, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			c.Next()
			return
		}

		val, _ := c.Get(string(contextkeys.DBContextKey))
		db, ok := val.(*gorm.DB)
		if !ok {
			apperrors.AbortWithError(c, apperrors.InternalError(errors.New("db not found in context")))
			return
		}

		principal, err := loader.LoadPrincipal(db, userID)
		if err != nil {
			if appErr, ok := apperrors.AsAppError(err); optional && ok && appErr.HTTPCode < 500 {
				c.Next()
				return
			}
			apperrors.AbortWithError(c, err)
			return
		}
		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// RequireRole пропускает только Principal с нужной ролью
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		var err error
		switch role {
		case models.UserRoleAdmin:
			_, err = access.RequireAdmin(p)
		case models.UserRoleCompany:
			_, err = access.RequireCompany(p)
		case models.UserRoleJobSeeker:
			_, err = access.RequireSeeker(p)
		default:
			err = access.RequireRole(p, role)
		}
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "access denied", "required_role", role, "path", c.Request.URL.Path, "reason", err.Error())
			apperrors.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RequireAuthenticated - любой аутентифицированный пользователь с загруженным Principal
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPrincipal(c) == nil {
			apperrors.AbortWithError(c, apperrors.ErrLoginRequired)
			return
		}
		c.Next()
	}
}

// RequireApprovedCompany - компания с профилем, одобренная администратором
func RequireApprovedCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := access.RequireApprovedCompany(GetPrincipal(c)); err != nil {
			logger.CtxWarn(c.Request.Context(), "company access denied", "path", c.Request.URL.Path, "reason", err.Error())
			apperrors.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

// GetPrincipal - Principal текущего запроса или nil
func GetPrincipal(c *gin.Context) access.Principal {
	val, exists := c.Get(PrincipalKey)
	if !exists {
		return nil
	}
	p, _ := val.(access.Principal)
	return p
}

func parseBearer(c *gin.Context, tokens *auth.TokenManager) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}

	claims, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "invalid access token", "error", err.Error(), "path", c.Request.URL.Path)
		return nil, false
	}
	return claims, true
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(RoleKey, claims.Role)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
}

// Guards собирает цепочки middleware для групп маршрутов
type Guards struct {
	tokens *auth.TokenManager
	loader PrincipalLoader

	limiter Limiter
	limit   int
	window  time.Duration
}

func NewGuards(tokens *auth.TokenManager, loader PrincipalLoader) *Guards {
	return &Guards{tokens: tokens, loader: loader}
}

// Public - публичный маршрут, Principal загружается если токен валиден
func (g *Guards) Public() []gin.HandlerFunc {
	return []gin.HandlerFunc{OptionalAuthMiddleware(g.tokens), OptionalPrincipalMiddleware(g.loader)}
}

// Authenticated - JWT обязателен, Principal загружен, затем дополнительные гарды
func (g *Guards) Authenticated(extra ...gin.HandlerFunc) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{AuthMiddleware(g.tokens), PrincipalMiddleware(g.loader), RequireAuthenticated()}
	return append(chain, extra...)
}

func (g *Guards) Role(role models.UserRole) []gin.HandlerFunc {
	return g.Authenticated(RequireRole(role))
}

func (g *Guards) ApprovedCompany() []gin.HandlerFunc {
	return g.Authenticated(RequireApprovedCompany())
}

// WithRateLimit включает ограничение попыток для Throttled-маршрутов
func (g *Guards) WithRateLimit(limiter Limiter, limit int, window time.Duration) *Guards {
	g.limiter, g.limit, g.window = limiter, limit, window
	return g
}

// Throttled - публичный маршрут с лимитом попыток по IP (вход, регистрация)
func (g *Guards) Throttled(prefix string) []gin.HandlerFunc {
	return []gin.HandlerFunc{RateLimit(g.limiter, prefix, g.limit, g.window)}
}
