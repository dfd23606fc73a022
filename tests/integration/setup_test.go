package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fluxo/internal/classifier"
	"fluxo/internal/enrichment"
	"fluxo/internal/handlers"
	"fluxo/internal/logger"
	"fluxo/internal/middleware"
	"fluxo/internal/models"
	"fluxo/internal/services"
	"fluxo/internal/store"
	"fluxo/internal/validator"
)

const classifierAPIKey = "test-classifier-key"

// testApp holds the full application stack for integration tests: the API
// router plus a real classifier service behind an HTTP test server.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Transaction{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// startClassifierService runs the real classifier router on a test server.
func startClassifierService(t *testing.T) *httptest.Server {
	t.Helper()

	classifyHandler := handlers.NewClassifyHandler()
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	v1 := router.Group("/v1")
	v1.Use(middleware.APIKeyAuthMiddleware(classifierAPIKey))
	v1.POST("/classify", classifyHandler.Classify)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database and a live classifier test server.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	classifierServer := startClassifierService(t)
	return setupAppWithClassifier(t, db, classifierServer.URL)
}

// setupAppWithClassifier wires the stack against the given classifier URL,
// which may point at a dead endpoint to simulate outages.
func setupAppWithClassifier(t *testing.T, db *gorm.DB, classifierURL string) *testApp {
	t.Helper()

	txStore := store.NewTransactionStore(db)
	classifierClient := classifier.NewClient(classifierURL, classifierAPIKey, 2*time.Second)
	engine := enrichment.NewEngine(txStore, classifierClient, 4)
	t.Cleanup(engine.Stop)

	// Services
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(txStore, engine)
	insightService := services.NewInsightService(engine)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	insightHandler := handlers.NewInsightHandler(insightService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/anonymous", authHandler.CreateAnonymousSession)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.GetFeed)
	transactions.POST("/seed", transactionHandler.SeedDemoData)

	protected.GET("/summary", transactionHandler.GetSummary)

	insightRoutes := protected.Group("/insights")
	insightRoutes.GET("/expenses", insightHandler.ExpenseBreakdown)
	insightRoutes.GET("/recommendations", insightHandler.Recommendations)
	insightRoutes.GET("/offers", insightHandler.Offers)

	return &testApp{DB: db, Router: router}
}

// request performs an HTTP request against the app router.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// createSession opens an anonymous session and returns its access token.
func (app *testApp) createSession(t *testing.T) string {
	t.Helper()

	rec := app.request("POST", "/api/v1/auth/anonymous", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed to create session: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	token, _ := result["access_token"].(string)
	if token == "" {
		t.Fatal("expected non-empty access token")
	}
	return token
}

// waitForFeed polls the feed until cond is satisfied or the deadline passes.
func (app *testApp) waitForFeed(t *testing.T, token string, cond func([]interface{}) bool) []interface{} {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		rec := app.request("GET", "/api/v1/transactions?page_size=100", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("feed request failed: %d %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data, _ := result["data"].([]interface{})
		if cond(data) {
			return data
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("timed out waiting for feed state")
	return nil
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func allEnriched(data []interface{}) bool {
	if len(data) == 0 {
		return false
	}
	for _, item := range data {
		tx := item.(map[string]interface{})
		if tx["category"] == nil || tx["clean_description"] == nil {
			return false
		}
	}
	return true
}
