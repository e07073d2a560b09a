package handlers

import (
	"context"
	"net/http"
	"time"

	"inventory_tracker/internal/models"
	"inventory_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signInToken   string
	signInSession *models.Session
	signInErr     error
	authSession   *models.Session
	authErr       error
	signOutErr    error
	ensureCreated bool
	ensureErr     error

	lastSignInUsername string
	lastSignInPassword string
	lastAuthToken      string
	lastSignOutToken   string
}

func (m *mockAuth) SignIn(ctx context.Context, username, password string) (string, *models.Session, error) {
	m.lastSignInUsername = username
	m.lastSignInPassword = password
	return m.signInToken, m.signInSession, m.signInErr
}

func (m *mockAuth) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	m.lastAuthToken = token
	return m.authSession, m.authErr
}

func (m *mockAuth) SignOut(ctx context.Context, token string) error {
	m.lastSignOutToken = token
	return m.signOutErr
}

func (m *mockAuth) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	return m.ensureCreated, m.ensureErr
}

type mockInventory struct {
	listResp   []models.Product
	listErr    error
	statsResp  models.Stats
	statsErr   error
	getResp    *models.Product
	getErr     error
	addResp    *models.Product
	addErr     error
	updateResp *models.Product
	updateErr  error
	deleteName string
	deleteErr  error
	threshold  int

	lastAddInput    service.ProductInput
	lastUpdateID    int
	lastUpdateInput service.ProductInput
	lastDeleteID    int
}

func (m *mockInventory) List(ctx context.Context) ([]models.Product, error) {
	return m.listResp, m.listErr
}

func (m *mockInventory) Stats(ctx context.Context) (models.Stats, error) {
	return m.statsResp, m.statsErr
}

func (m *mockInventory) Get(ctx context.Context, id int) (*models.Product, error) {
	return m.getResp, m.getErr
}

func (m *mockInventory) Add(ctx context.Context, in service.ProductInput) (*models.Product, error) {
	m.lastAddInput = in
	return m.addResp, m.addErr
}

func (m *mockInventory) Update(ctx context.Context, id int, in service.ProductInput) (*models.Product, error) {
	m.lastUpdateID = id
	m.lastUpdateInput = in
	return m.updateResp, m.updateErr
}

func (m *mockInventory) Delete(ctx context.Context, id int) (string, error) {
	m.lastDeleteID = id
	return m.deleteName, m.deleteErr
}

func (m *mockInventory) Threshold() int {
	if m.threshold == 0 {
		return service.DefaultLowStockThreshold
	}
	return m.threshold
}

// validSession is the session most authenticated-route tests run under.
func validSession() *models.Session {
	return &models.Session{
		UserID:    1,
		Username:  "admin",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
