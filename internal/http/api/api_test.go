package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fundabenefica/raffle-api/internal/db"
	"github.com/fundabenefica/raffle-api/internal/settings"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func setupAPITest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	if errSeed := settings.Seed(context.Background(), conn); errSeed != nil {
		t.Fatalf("seed: %v", errSeed)
	}

	engine := gin.New()
	RegisterRoutes(engine, conn, testJWTSecret, time.Hour)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	payload := map[string]any{}
	if rec.Body.Len() > 0 {
		if errUnmarshal := json.Unmarshal(rec.Body.Bytes(), &payload); errUnmarshal != nil {
			t.Fatalf("%s %s: bad json response %q: %v", method, path, rec.Body.String(), errUnmarshal)
		}
	}
	return rec.Code, payload
}

func adminToken(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	status, payload := doJSON(t, engine, http.MethodPost, "/api/auth", "", `{"password":"admin123"}`)
	if status != http.StatusOK || payload["success"] != true {
		t.Fatalf("auth failed: status=%d payload=%v", status, payload)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatalf("auth response missing token: %v", payload)
	}
	return token
}

func TestAuthRejectsWrongPassword(t *testing.T) {
	engine := setupAPITest(t)

	status, payload := doJSON(t, engine, http.MethodPost, "/api/auth", "", `{"password":"wrong"}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if payload["success"] != false {
		t.Fatalf("wrong password accepted: %v", payload)
	}
	if _, hasToken := payload["token"]; hasToken {
		t.Fatalf("token issued for wrong password")
	}
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	engine := setupAPITest(t)

	status, _ := doJSON(t, engine, http.MethodGet, "/api/orders/pending", "", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("pending without token: status = %d, want 401", status)
	}
	status, _ = doJSON(t, engine, http.MethodPost, "/api/reset", "bogus-token", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("reset with bogus token: status = %d, want 401", status)
	}
}

func TestPublicConfigHidesAdminPassword(t *testing.T) {
	engine := setupAPITest(t)

	status, payload := doJSON(t, engine, http.MethodGet, "/api/config", "", "")
	if status != http.StatusOK || payload["success"] != true {
		t.Fatalf("config: status=%d payload=%v", status, payload)
	}
	config, _ := payload["config"].(map[string]any)
	if config == nil {
		t.Fatalf("missing config map: %v", payload)
	}
	if _, leaked := config["adminPass"]; leaked {
		t.Fatalf("config endpoint leaked adminPass")
	}
	payments, _ := payload["payments"].(map[string]any)
	if _, ok := payments["zelle"]; !ok {
		t.Fatalf("missing seeded payments: %v", payload)
	}
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	engine := setupAPITest(t)
	token := adminToken(t, engine)

	status, payload := doJSON(t, engine, http.MethodPost, "/api/orders", "",
		`{"name":"Maria","email":"maria@example.com","phone":"+1 555 000 1111","numbers":["1234","5678"],"qty":2,"total":20}`)
	if status != http.StatusOK || payload["success"] != true {
		t.Fatalf("create order: status=%d payload=%v", status, payload)
	}
	orderID, _ := payload["orderId"].(string)
	if orderID == "" {
		t.Fatalf("missing orderId: %v", payload)
	}

	status, payload = doJSON(t, engine, http.MethodGet, "/api/orders/pending", token, "")
	if status != http.StatusOK {
		t.Fatalf("list pending: status=%d", status)
	}
	orders, _ := payload["orders"].([]any)
	if len(orders) != 1 {
		t.Fatalf("pending orders = %v", payload)
	}

	status, payload = doJSON(t, engine, http.MethodPost, "/api/orders/"+orderID+"/confirm", token, "")
	if status != http.StatusOK || payload["success"] != true {
		t.Fatalf("confirm: status=%d payload=%v", status, payload)
	}
	link, _ := payload["whatsappLink"].(string)
	if !strings.HasPrefix(link, "https://wa.me/15550001111?text=") {
		t.Fatalf("whatsapp link = %q", link)
	}

	status, payload = doJSON(t, engine, http.MethodGet, "/api/sold", "", "")
	if status != http.StatusOK {
		t.Fatalf("sold: status=%d", status)
	}
	numbers, _ := payload["numbers"].([]any)
	if len(numbers) != 2 {
		t.Fatalf("sold numbers = %v", payload)
	}

	status, payload = doJSON(t, engine, http.MethodGet, "/api/winner/1234", "", "")
	if status != http.StatusOK || payload["status"] != "confirmed" {
		t.Fatalf("winner lookup: status=%d payload=%v", status, payload)
	}

	status, payload = doJSON(t, engine, http.MethodGet, "/api/stats", "", "")
	if status != http.StatusOK {
		t.Fatalf("stats: status=%d", status)
	}
	stats, _ := payload["stats"].(map[string]any)
	if stats["confirmedCount"] != float64(1) || stats["totalRevenue"] != float64(20) {
		t.Fatalf("stats = %v", stats)
	}

	status, _ = doJSON(t, engine, http.MethodPost, "/api/orders/ORD-0-NOPE/confirm", token, "")
	if status != http.StatusNotFound {
		t.Fatalf("confirm unknown: status=%d, want 404", status)
	}
}

func TestRejectUnknownOrderSucceeds(t *testing.T) {
	engine := setupAPITest(t)
	token := adminToken(t, engine)

	status, payload := doJSON(t, engine, http.MethodPost, "/api/orders/ORD-0-NOPE/reject", token, "")
	if status != http.StatusOK || payload["success"] != true {
		t.Fatalf("reject unknown: status=%d payload=%v", status, payload)
	}
}

func TestShortPasswordRejected(t *testing.T) {
	engine := setupAPITest(t)
	token := adminToken(t, engine)

	status, payload := doJSON(t, engine, http.MethodPost, "/api/config/password", token, `{"password":"abc"}`)
	if status != http.StatusBadRequest || payload["success"] != false {
		t.Fatalf("short password: status=%d payload=%v", status, payload)
	}
}

func TestBackupDownloadIsAttachment(t *testing.T) {
	engine := setupAPITest(t)
	token := adminToken(t, engine)

	req := httptest.NewRequest(http.MethodGet, "/api/backup/download", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("download: status=%d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "attachment") {
		t.Fatalf("missing attachment disposition: %q", rec.Header().Get("Content-Disposition"))
	}
	var doc map[string]any
	if errUnmarshal := json.Unmarshal(rec.Body.Bytes(), &doc); errUnmarshal != nil {
		t.Fatalf("export not json: %v", errUnmarshal)
	}
	if _, ok := doc["exported_at"]; !ok {
		t.Fatalf("export missing timestamp: %v", doc)
	}
}
