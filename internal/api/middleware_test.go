package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/services"
)

func authFixture(t *testing.T) (*services.AuthService, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	auth := services.NewAuthService(db, "test-secret")
	if _, err := auth.CreateUser(models.CreateUserRequest{Username: "staff1", Password: "pass-1234"}); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	resp, err := auth.Login("staff1", "pass-1234")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	return auth, resp.Token
}

func protectedRouter(auth *services.AuthService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthRequired(auth), func(c *gin.Context) {
		claims := SessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user": claims.Username})
	})
	return r
}

func TestAuthRequiredMissingToken(t *testing.T) {
	auth, _ := authFixture(t)
	r := protectedRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", w.Code)
	}
}

func TestAuthRequiredHeaderToken(t *testing.T) {
	auth, token := authFixture(t)
	r := protectedRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("x-session-token", token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with a valid header token, got %d", w.Code)
	}
}

func TestAuthRequiredCookieFallback(t *testing.T) {
	auth, token := authFixture(t)
	r := protectedRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with a valid session cookie, got %d", w.Code)
	}
}

func TestAuthRequiredGarbageToken(t *testing.T) {
	auth, _ := authFixture(t)
	r := protectedRouter(auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("x-session-token", "not-a-jwt")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with a garbage token, got %d", w.Code)
	}
}

func TestAdminRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(claimsKey, &services.SessionClaims{Username: "staff1", Role: models.RoleStaff})
	}, AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a staff session on an admin route, got %d", w.Code)
	}

	r2 := gin.New()
	r2.GET("/admin", func(c *gin.Context) {
		c.Set(claimsKey, &services.SessionClaims{Username: "boss", Role: models.RoleAdmin})
	}, AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w2 := httptest.NewRecorder()
	r2.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w2.Code != http.StatusOK {
		t.Errorf("Expected 200 for an admin session, got %d", w2.Code)
	}
}

func TestLoginRateLimitBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/login", LoginRateLimit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var limited bool
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Error("Expected the rate limiter to reject part of a 10-request burst")
	}

	// A different address gets its own bucket.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:12345"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected a fresh address to pass, got %d", w.Code)
	}
}
