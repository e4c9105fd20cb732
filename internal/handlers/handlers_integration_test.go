package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"libris/internal/apperrors"
	"libris/internal/handlers"
	"libris/internal/middleware"
	"libris/internal/models"
	"libris/internal/repositories"
	"libris/internal/services"
)

// envelope mirrors the response envelope for assertions.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupApp builds a Fiber app backed by a shared in-memory SQLite
// database with the full handler stack wired in.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.BorrowRecord{}, &models.Notification{})
	assert.NoError(t, err)

	userRepo := repositories.NewGORMUserRepository(db)
	recordRepo := repositories.NewGORMBorrowRecordRepository(db)
	notificationRepo := repositories.NewGORMNotificationRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	userService := services.NewUserService(userRepo)
	borrowService := services.NewBorrowService(recordRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, nil) // no broker in tests

	app := fiber.New()
	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired()

	handlers.NewAuthHandler(authService, userService).RegisterRoutes(app)
	handlers.NewUserHandler(userService).RegisterRoutes(app, authRequired)
	handlers.NewAdminUserHandler(userService).RegisterRoutes(app, authRequired, adminRequired)
	handlers.NewAdminBorrowHandler(borrowService).RegisterRoutes(app, authRequired, adminRequired)
	handlers.NewAdminNotificationHandler(notificationService).RegisterRoutes(app, authRequired, adminRequired)

	return app, db
}

// doRequest performs one request against the app and decodes the
// envelope from the body.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		assert.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reqBody)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// registerAndLogin creates an account through the API and returns its
// session token. When admin is set the role is promoted in the store
// first, then a fresh token is issued via login.
func registerAndLogin(t *testing.T, app *fiber.App, db *gorm.DB, username string, admin bool) string {
	t.Helper()

	status, env := doRequest(t, app, http.MethodPost, "/user/register", "", fiber.Map{
		"username": username,
		"password": "password123",
		"email":    username + "@example.com",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	if admin {
		res := db.Model(&models.User{}).Where("username = ?", username).Update("role", models.RoleAdmin)
		assert.NoError(t, res.Error)
		assert.EqualValues(t, 1, res.RowsAffected)
	}

	status, env = doRequest(t, app, http.MethodPost, "/user/login", "", fiber.Map{
		"username": username,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	var data struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	return data.Token
}

func TestRegisterAndLoginFlow(t *testing.T) {
	app, _ := setupApp(t)

	// Register
	status, env := doRequest(t, app, http.MethodPost, "/user/register", "", fiber.Map{
		"username": "flow_user",
		"password": "password123",
		"email":    "flow_user@example.com",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	// Second registration with the same username fails.
	status, env = doRequest(t, app, http.MethodPost, "/user/register", "", fiber.Map{
		"username": "flow_user",
		"password": "otherpass",
		"email":    "other@example.com",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeDuplicateUsername, env.Code)

	// Wrong password
	status, env = doRequest(t, app, http.MethodPost, "/user/login", "", fiber.Map{
		"username": "flow_user",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeInvalidCredentials, env.Code)

	// Correct login returns user info and a token.
	status, env = doRequest(t, app, http.MethodPost, "/user/login", "", fiber.Map{
		"username": "flow_user",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)
	var loginData struct {
		Token    string             `json:"token"`
		UserInfo models.UserSummary `json:"user_info"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &loginData))
	assert.Equal(t, "flow_user", loginData.UserInfo.Username)

	// Missing required fields
	status, env = doRequest(t, app, http.MethodPost, "/user/login", "", fiber.Map{"username": "flow_user"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeValidation, env.Code)
}

func TestDisabledAccountCannotLogin(t *testing.T) {
	app, db := setupApp(t)
	adminToken := registerAndLogin(t, app, db, "disable_admin", true)
	registerAndLogin(t, app, db, "disable_victim", false)

	var victim models.User
	assert.NoError(t, db.First(&victim, "username = ?", "disable_victim").Error)

	// Admin disables the account.
	status, env := doRequest(t, app, http.MethodPut, "/admin/user/"+victim.ID+"/status", adminToken, fiber.Map{"status": 1})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	// Login fails regardless of password correctness.
	status, env = doRequest(t, app, http.MethodPost, "/user/login", "", fiber.Map{
		"username": "disable_victim",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeAccountDisabled, env.Code)

	status, env = doRequest(t, app, http.MethodPost, "/user/login", "", fiber.Map{
		"username": "disable_victim",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeAccountDisabled, env.Code)

	// Re-enabling with any status other than 1 restores access.
	status, env = doRequest(t, app, http.MethodPut, "/admin/user/"+victim.ID+"/status", adminToken, fiber.Map{"status": 0})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	status, env = doRequest(t, app, http.MethodPost, "/user/login", "", fiber.Map{
		"username": "disable_victim",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)
}

func TestUserInfoAndProfile(t *testing.T) {
	app, db := setupApp(t)
	token := registerAndLogin(t, app, db, "profile_user", false)

	status, env := doRequest(t, app, http.MethodGet, "/user/info", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)
	var info models.UserSummary
	assert.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "profile_user", info.Username)
	assert.Equal(t, 0, info.IsDeleted)

	// Update email, then change password and log in with the new one.
	status, env = doRequest(t, app, http.MethodPut, "/user/profile", token, fiber.Map{"email": "updated@example.com"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	status, env = doRequest(t, app, http.MethodPut, "/user/password", token, fiber.Map{
		"old_password": "wrongpassword",
		"new_password": "newpassword",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodePasswordMismatch, env.Code)

	status, env = doRequest(t, app, http.MethodPut, "/user/password", token, fiber.Map{
		"old_password": "password123",
		"new_password": "newpassword",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	status, env = doRequest(t, app, http.MethodPost, "/user/login", "", fiber.Map{
		"username": "profile_user",
		"password": "newpassword",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	// No token at all
	status, _ = doRequest(t, app, http.MethodGet, "/user/info", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUserStatusRoute(t *testing.T) {
	app, db := setupApp(t)
	token := registerAndLogin(t, app, db, "status_user", false)

	var target models.User
	assert.NoError(t, db.First(&target, "username = ?", "status_user").Error)

	// The /user variant of the status toggle needs authentication but
	// not the admin role.
	status, env := doRequest(t, app, http.MethodPut, "/user/status/"+target.ID, token, fiber.Map{"status": 1})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	assert.NoError(t, db.First(&target, "username = ?", "status_user").Error)
	assert.True(t, target.Disabled)

	// Unknown user id is a business failure.
	status, env = doRequest(t, app, http.MethodPut, "/user/status/no-such-id", token, fiber.Map{"status": 1})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeNotFound, env.Code)
}

func TestUserListKeyword(t *testing.T) {
	app, db := setupApp(t)
	token := registerAndLogin(t, app, db, "kwsearch_anna", false)
	registerAndLogin(t, app, db, "kwsearch_bob", false)

	status, env := doRequest(t, app, http.MethodGet, "/user/list?keyword=kwsearch_ann", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	var page struct {
		CurrentPage int64                `json:"current_page"`
		PageSize    int64                `json:"page_size"`
		Total       int64                `json:"total"`
		Records     []models.UserSummary `json:"records"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.CurrentPage) // defaulted
	assert.Equal(t, int64(10), page.PageSize)   // defaulted
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Records, 1)
	assert.Equal(t, "kwsearch_anna", page.Records[0].Username)
}

func TestAdminGuard(t *testing.T) {
	app, db := setupApp(t)
	userToken := registerAndLogin(t, app, db, "guard_user", false)

	// Every admin route rejects a non-admin caller before business
	// logic runs.
	adminPaths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/user/count"},
		{http.MethodPut, "/admin/user/some-id/status"},
		{http.MethodGet, "/admin/borrow/?currentPage=1&pageSize=10"},
		{http.MethodGet, "/admin/borrow/count"},
		{http.MethodGet, "/admin/borrow/overdue-rate"},
		{http.MethodGet, "/admin/borrow/returned-rate"},
		{http.MethodPost, "/admin/borrow/return/confirm"},
		{http.MethodGet, "/admin/notification/list?currentPage=1&pageSize=10"},
		{http.MethodPost, "/admin/notification/push-all"},
		{http.MethodPost, "/admin/notification/push/guard_user"},
	}
	for _, route := range adminPaths {
		status, env := doRequest(t, app, route.method, route.path, userToken, fiber.Map{})
		assert.Equal(t, http.StatusForbidden, status, "expected 403 for %s %s", route.method, route.path)
		assert.Equal(t, apperrors.CodeForbidden, env.Code)
	}
}

func TestAdminBorrowEndpoints(t *testing.T) {
	app, db := setupApp(t)
	adminToken := registerAndLogin(t, app, db, "borrow_admin", true)

	recordRepo := repositories.NewGORMBorrowRecordRepository(db)
	borrowed := &models.BorrowRecord{
		UserID:     "user-1",
		BookTitle:  "integration testing in go",
		BorrowDate: time.Now().AddDate(0, 0, -10),
		DueDate:    time.Now().AddDate(0, 0, -3),
		Status:     models.StatusBorrowed,
	}
	assert.NoError(t, recordRepo.Create(borrowed))
	assert.NoError(t, recordRepo.Create(&models.BorrowRecord{
		UserID:     "user-2",
		BookTitle:  "integration patterns",
		BorrowDate: time.Now().AddDate(0, 0, -30),
		DueDate:    time.Now().AddDate(0, 0, -16),
		Status:     models.StatusOverdue,
	}))

	// Listing without paging parameters is a validation failure on the
	// admin endpoint.
	status, env := doRequest(t, app, http.MethodGet, "/admin/borrow/", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeValidation, env.Code)

	// Filtered listing
	status, env = doRequest(t, app, http.MethodGet, "/admin/borrow/?currentPage=1&pageSize=10&bookTitle=integration&status=borrowed", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)
	var page struct {
		Total   int64                        `json:"total"`
		Records []models.BorrowRecordSummary `json:"records"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, models.StatusBorrowed, page.Records[0].Status)

	// Confirm return
	status, env = doRequest(t, app, http.MethodPost, "/admin/borrow/return/confirm", adminToken, fiber.Map{"record_id": borrowed.ID})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)
	var summary models.BorrowRecordSummary
	assert.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, models.StatusReturned, summary.Status)
	assert.NotNil(t, summary.ReturnDate)

	// Confirming again is a business failure.
	status, env = doRequest(t, app, http.MethodPost, "/admin/borrow/return/confirm", adminToken, fiber.Map{"record_id": borrowed.ID})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeAlreadyReturned, env.Code)

	// Counters
	status, env = doRequest(t, app, http.MethodGet, "/admin/borrow/count", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	var count string
	assert.NoError(t, json.Unmarshal(env.Data, &count))
	assert.Equal(t, "2", count)

	status, env = doRequest(t, app, http.MethodGet, "/admin/borrow/overdue-rate", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	var rate string
	assert.NoError(t, json.Unmarshal(env.Data, &rate))
	assert.Equal(t, "50.00%", rate)

	status, env = doRequest(t, app, http.MethodGet, "/admin/borrow/returned-rate", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NoError(t, json.Unmarshal(env.Data, &rate))
	assert.Equal(t, "50.00%", rate)
}

func TestAdminNotificationEndpoints(t *testing.T) {
	app, db := setupApp(t)
	adminToken := registerAndLogin(t, app, db, "notify_admin", true)
	registerAndLogin(t, app, db, "notify_reader", false)

	// Broadcast
	status, env := doRequest(t, app, http.MethodPost, "/admin/notification/push-all", adminToken, fiber.Map{"content": "system maintenance at midnight"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	// Targeted push to a known user
	status, env = doRequest(t, app, http.MethodPost, "/admin/notification/push/notify_reader", adminToken, fiber.Map{"content": "your reservation is ready"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	// Targeted push to an unknown user
	status, env = doRequest(t, app, http.MethodPost, "/admin/notification/push/ghost_user", adminToken, fiber.Map{"content": "hello"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeNotFound, env.Code)

	// Missing content
	status, env = doRequest(t, app, http.MethodPost, "/admin/notification/push-all", adminToken, fiber.Map{})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeValidation, env.Code)

	// Listing requires paging and supports a content keyword.
	status, env = doRequest(t, app, http.MethodGet, "/admin/notification/list", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeValidation, env.Code)

	status, env = doRequest(t, app, http.MethodGet, "/admin/notification/list?currentPage=1&pageSize=10&keyword=reservation", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)
	var page struct {
		Total   int64                        `json:"total"`
		Records []models.NotificationSummary `json:"records"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.Total)
	if assert.Len(t, page.Records, 1) {
		assert.NotNil(t, page.Records[0].Recipient)
		assert.Equal(t, "notify_reader", *page.Records[0].Recipient)
	}
}

func TestResetPasswordByEmail(t *testing.T) {
	app, db := setupApp(t)
	registerAndLogin(t, app, db, "reset_user", false)

	status, env := doRequest(t, app, http.MethodPost, "/user/reset-password", "", fiber.Map{
		"email":        "reset_user@example.com",
		"new_password": "resetpass",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	status, env = doRequest(t, app, http.MethodPost, "/user/login", "", fiber.Map{
		"username": "reset_user",
		"password": "resetpass",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeSuccess, env.Code)

	// Unknown email
	status, env = doRequest(t, app, http.MethodPost, "/user/reset-password", "", fiber.Map{
		"email":        fmt.Sprintf("ghost-%d@example.com", time.Now().UnixNano()),
		"new_password": "resetpass",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apperrors.CodeNotFound, env.Code)
}
