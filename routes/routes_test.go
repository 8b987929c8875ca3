package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"compliance-backend/ai"
	"compliance-backend/controllers"
	"compliance-backend/database"
	"compliance-backend/middlewares"
	"compliance-backend/models"
	"compliance-backend/services"
	"compliance-backend/storage"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	authSvc := services.NewAuthService(db, []byte("test-secret"), 30*time.Minute)
	aiStub := ai.NewStub()

	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.NewErrorHandler(zap.NewNop()),
	})
	Register(app, Deps{
		DB:                   db,
		Auth:                 authSvc,
		AuthController:       controllers.NewAuthController(authSvc),
		UserController:       controllers.NewUserController(services.NewUserService(db)),
		ClientController:     controllers.NewClientController(services.NewClientService(db)),
		FinancialController:  controllers.NewFinancialController(services.NewLedgerService(db), services.NewAccountingService(db)),
		ComplianceController: controllers.NewComplianceController(services.NewComplianceService(db)),
		DocumentController:   controllers.NewDocumentController(services.NewDocumentService(db, storage.NewLocalStore(t.TempDir()))),
		AIController:         controllers.NewAIController(aiStub, aiStub, aiStub, aiStub),
	})
	return app, db
}

func seedActiveUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Email:    username + "@example.com",
		Username: username,
		FullName: "Test User",
		Role:     models.RoleAccountant,
		Status:   models.StatusActive,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/v1/auth/login-json", fiber.Map{
		"username": username,
		"password": "password123",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "bearer", body["token_type"])
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLoginJSONAndMe(t *testing.T) {
	app, db := newTestApp(t)
	seedActiveUser(t, db, "asha")

	token := login(t, app, "asha")

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "asha", body["username"])
	// The password hash must never appear in a response.
	_, leaked := body["hashed_password"]
	require.False(t, leaked)
}

func TestLoginFormEncoded(t *testing.T) {
	app, db := newTestApp(t)
	seedActiveUser(t, db, "asha")

	form := url.Values{"username": {"asha"}, "password": {"password123"}}
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginBadCredentials(t *testing.T) {
	app, db := newTestApp(t)
	seedActiveUser(t, db, "asha")

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/v1/auth/login-json", fiber.Map{
		"username": "asha",
		"password": "wrong",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "could not validate credentials", body["detail"])
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/clients", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/v1/auth/register", fiber.Map{
		"email": "not-an-email",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "validation failed", body["detail"])
}

func TestRegisterIgnoresRoleEscalation(t *testing.T) {
	app, db := newTestApp(t)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/v1/auth/register", fiber.Map{
		"email":     "eve@example.com",
		"username":  "eve",
		"full_name": "Eve",
		"password":  "password123",
		"role":      "admin",
		"status":    "active",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("username = ?", "eve").First(&user).Error)
	require.Equal(t, models.RoleClient, user.Role)
	require.Equal(t, models.StatusPending, user.Status)
}

func TestIdempotentClientCreate(t *testing.T) {
	app, db := newTestApp(t)
	seedActiveUser(t, db, "asha")
	token := login(t, app, "asha")

	do := func(name, key string) *http.Response {
		req := jsonRequest(fiber.MethodPost, "/api/v1/clients", fiber.Map{"name": name})
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		req.Header.Set("Idempotency-Key", key)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	first := do("Acme & Co", "key-1")
	require.Equal(t, http.StatusCreated, first.StatusCode)
	firstBody, err := io.ReadAll(first.Body)
	require.NoError(t, err)
	first.Body.Close()

	// Same key, same body: replayed, no second row.
	second := do("Acme & Co", "key-1")
	secondBody, err := io.ReadAll(second.Body)
	require.NoError(t, err)
	second.Body.Close()
	require.Equal(t, string(firstBody), string(secondBody))

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// Same key, different body: conflict.
	third := do("Different Name", "key-1")
	require.Equal(t, http.StatusConflict, third.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "up", body["database"])
}

func TestAIEndpointsReturnCannedPayloads(t *testing.T) {
	app, db := newTestApp(t)
	seedActiveUser(t, db, "asha")
	token := login(t, app, "asha")

	req := jsonRequest(fiber.MethodPost, "/api/v1/ai/smart-categorization", fiber.Map{
		"description": "AWS hosting bill",
	})
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "Professional Services", body["suggested_category"])
}
