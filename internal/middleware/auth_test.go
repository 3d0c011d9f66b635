package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobportal_backend/internal/access"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/models"
	"jobportal_backend/pkg/apperrors"
	"jobportal_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubLoader отдаёт заранее подготовленных пользователей без БД
type stubLoader map[string]*models.User

func (l stubLoader) LoadPrincipal(_ *gorm.DB, userID string) (access.Principal, error) {
	user, ok := l[userID]
	if !ok {
		return nil, apperrors.ErrLoginRequired
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	return access.FromUser(user), nil
}

func newTestEngine(t *testing.T, loader PrincipalLoader) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenManager("middleware-secret", time.Hour)
	guards := NewGuards(tokens, loader)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), &gorm.DB{})
		c.Next()
	})

	whoami := func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil {
			c.JSON(http.StatusOK, gin.H{"role": "anonymous"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": p.Role(), "user_id": p.Account().ID})
	}

	r.GET("/public", append(guards.Public(), whoami)...)
	r.GET("/private", append(guards.Authenticated(), whoami)...)
	r.GET("/admin", append(guards.Role(models.UserRoleAdmin), whoami)...)
	r.GET("/seeker", append(guards.Role(models.UserRoleJobSeeker), whoami)...)
	r.GET("/company/jobs", append(guards.ApprovedCompany(), whoami)...)
	return r, tokens
}

func doRequest(t *testing.T, r *gin.Engine, path, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func errorRedirect(body map[string]interface{}) string {
	errBody, _ := body["error"].(map[string]interface{})
	redirect, _ := errBody["redirect"].(string)
	return redirect
}

func TestGuards(t *testing.T) {
	admin := &models.User{BaseModel: models.BaseModel{ID: "admin-1"}, Role: models.UserRoleAdmin, IsActive: true}
	seeker := &models.User{BaseModel: models.BaseModel{ID: "seeker-1"}, Role: models.UserRoleJobSeeker, IsActive: true,
		JobSeeker: &models.JobSeeker{BaseModel: models.BaseModel{ID: "js-1"}}}
	pending := &models.User{BaseModel: models.BaseModel{ID: "company-1"}, Role: models.UserRoleCompany, IsActive: true,
		Company: &models.Company{BaseModel: models.BaseModel{ID: "c-1"}, Status: models.CompanyStatusPending}}
	approved := &models.User{BaseModel: models.BaseModel{ID: "company-2"}, Role: models.UserRoleCompany, IsActive: true,
		Company: &models.Company{BaseModel: models.BaseModel{ID: "c-2"}, Status: models.CompanyStatusApproved}}
	inactive := &models.User{BaseModel: models.BaseModel{ID: "seeker-2"}, Role: models.UserRoleJobSeeker, IsActive: false,
		JobSeeker: &models.JobSeeker{BaseModel: models.BaseModel{ID: "js-2"}}}

	loader := stubLoader{}
	for _, u := range []*models.User{admin, seeker, pending, approved, inactive} {
		loader[u.ID] = u
	}
	r, tokens := newTestEngine(t, loader)

	token := func(u *models.User) string {
		tok, err := tokens.GenerateToken(u.ID, u.Role)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name         string
		path         string
		token        string
		wantStatus   int
		wantRole     string
		wantRedirect string
	}{
		{"публичный без токена", "/public", "", http.StatusOK, "anonymous", ""},
		{"публичный с мусорным токеном", "/public", "garbage", http.StatusOK, "anonymous", ""},
		{"публичный с токеном", "/public", token(seeker), http.StatusOK, string(models.UserRoleJobSeeker), ""},
		{"публичный, пользователь деактивирован", "/public", token(inactive), http.StatusOK, "anonymous", ""},
		{"приватный без токена", "/private", "", http.StatusUnauthorized, "", apperrors.RedirectLogin},
		{"приватный, пользователь деактивирован", "/private", token(inactive), http.StatusForbidden, "", ""},
		{"админка для админа", "/admin", token(admin), http.StatusOK, string(models.UserRoleAdmin), ""},
		{"админка для соискателя", "/admin", token(seeker), http.StatusForbidden, "", apperrors.RedirectHome},
		{"кабинет соискателя для компании", "/seeker", token(approved), http.StatusForbidden, "", apperrors.RedirectHome},
		{"вакансии неодобренной компании", "/company/jobs", token(pending), http.StatusForbidden, "", apperrors.RedirectCompanyDashboard},
		{"вакансии одобренной компании", "/company/jobs", token(approved), http.StatusOK, string(models.UserRoleCompany), ""},
		{"вакансии компании для админа", "/company/jobs", token(admin), http.StatusForbidden, "", apperrors.RedirectHome},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, body := doRequest(t, r, tc.path, tc.token)
			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantRole != "" {
				assert.Equal(t, tc.wantRole, body["role"])
			}
			if tc.wantRedirect != "" {
				assert.Equal(t, tc.wantRedirect, errorRedirect(body))
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	expiredTokens := auth.NewTokenManager("middleware-secret", -time.Minute)
	tok, err := expiredTokens.GenerateToken("admin-1", models.UserRoleAdmin)
	require.NoError(t, err)

	r, _ := newTestEngine(t, stubLoader{})
	w, body := doRequest(t, r, "/private", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.RedirectLogin, errorRedirect(body))
}
