// safemap/internal/handlers/handlers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/waseok/safemap/config"
	"github.com/waseok/safemap/internal/routes"
	"github.com/waseok/safemap/models"
)

// setupRouter wires the full route table against a fresh in-memory
// database so tests exercise the same paths production traffic takes.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Class{},
		&models.Student{},
		&models.SafetyPin{},
		&models.Solution{},
		&models.TeacherFeedback{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	config.DB = db
	config.RDB = nil
	config.JwtKey = []byte("test-secret")

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

// createClass drives POST /classes and returns the created class.
func createClass(t *testing.T, r *gin.Engine, name string) map[string]any {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/classes", gin.H{"name": name}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create class: status %d, body %s", w.Code, w.Body.String())
	}
	class, ok := decodeBody(t, w)["class"].(map[string]any)
	if !ok {
		t.Fatalf("create class: missing class in response %s", w.Body.String())
	}
	return class
}

// joinStudent runs both join phases and returns the session token plus
// the student and class IDs.
func joinStudent(t *testing.T, r *gin.Engine, pin, name string) (token, studentID, classID string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/student/join", gin.H{"step": "pin", "pin": pin}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("join phase 1: status %d, body %s", w.Code, w.Body.String())
	}
	phase1 := decodeBody(t, w)

	w = doJSON(t, r, http.MethodPost, "/student/join", gin.H{
		"step":       "name",
		"classId":    phase1["classId"],
		"name":       name,
		"joinTicket": phase1["joinTicket"],
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("join phase 2: status %d, body %s", w.Code, w.Body.String())
	}
	phase2 := decodeBody(t, w)
	return phase2["sessionId"].(string), phase2["studentId"].(string), phase2["classId"].(string)
}
