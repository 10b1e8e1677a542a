// safemap/internal/handlers/join_handler_test.go
package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/waseok/safemap/config"
	"github.com/waseok/safemap/internal/auth"
	"github.com/waseok/safemap/models"
)

func TestJoinRejectsMalformedPinBeforeLookup(t *testing.T) {
	r := setupRouter(t)

	for _, pin := range []string{"123", "12345", "12a4", "", "  12 34"} {
		w := doJSON(t, r, http.MethodPost, "/student/join", gin.H{"step": "pin", "pin": pin}, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("pin %q: expected 400, got %d", pin, w.Code)
		}
	}
}

func TestJoinUnknownPinNotFound(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/student/join", gin.H{"step": "pin", "pin": "4821"}, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown PIN, got %d", w.Code)
	}
}

func TestJoinUnknownStepRejected(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/student/join", gin.H{"step": "magic"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown step, got %d", w.Code)
	}
}

func TestJoinFullFlow(t *testing.T) {
	r := setupRouter(t)
	class := createClass(t, r, "3-1")

	w := doJSON(t, r, http.MethodPost, "/student/join", gin.H{"step": "pin", "pin": class["pin"]}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("phase 1: status %d, body %s", w.Code, w.Body.String())
	}
	phase1 := decodeBody(t, w)
	if phase1["classId"] != class["id"] {
		t.Fatalf("phase 1 resolved class %v, want %v", phase1["classId"], class["id"])
	}
	if phase1["className"] != "3-1" {
		t.Fatalf("phase 1 className = %v", phase1["className"])
	}

	token, studentID, classID := joinStudent(t, r, class["pin"].(string), "Kim")

	claims, err := auth.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("issued session token does not validate: %v", err)
	}
	if claims.Subject != studentID || claims.ClassID != classID {
		t.Fatalf("session claims %s/%s do not match issued ids %s/%s",
			claims.Subject, claims.ClassID, studentID, classID)
	}

	var student models.Student
	if err := config.DB.First(&student, "id = ?", studentID).Error; err != nil {
		t.Fatalf("student row not persisted: %v", err)
	}
	if student.Name != "Kim" {
		t.Fatalf("student name = %q, want Kim", student.Name)
	}
	if student.SessionID != claims.ID {
		t.Fatalf("students.session_id = %q, want token jti %q", student.SessionID, claims.ID)
	}
}

func TestJoinNameRequiresTicket(t *testing.T) {
	r := setupRouter(t)
	class := createClass(t, r, "3-1")

	for _, ticket := range []string{"", "not-a-token"} {
		w := doJSON(t, r, http.MethodPost, "/student/join", gin.H{
			"step":       "name",
			"classId":    class["id"],
			"name":       "Kim",
			"joinTicket": ticket,
		}, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("ticket %q: expected 401, got %d", ticket, w.Code)
		}
	}
}

func TestJoinTicketBoundToClass(t *testing.T) {
	r := setupRouter(t)
	classA := createClass(t, r, "3-1")
	createClass(t, r, "3-2")

	ticket, err := auth.IssueJoinTicket(uuid.MustParse(classA["id"].(string)))
	if err != nil {
		t.Fatalf("issue ticket: %v", err)
	}

	// Spend the ticket against a different class id.
	w := doJSON(t, r, http.MethodPost, "/student/join", gin.H{
		"step":       "name",
		"classId":    uuid.NewString(),
		"name":       "Kim",
		"joinTicket": ticket,
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for class mismatch, got %d", w.Code)
	}
}

func TestJoinNameMissingFields(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/student/join", gin.H{"step": "name", "name": "Kim"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without classId, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/student/join", gin.H{"step": "name", "classId": uuid.NewString()}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without name, got %d", w.Code)
	}
}

func TestJoinNameDeletedClass(t *testing.T) {
	r := setupRouter(t)
	class := createClass(t, r, "3-1")
	classID := uuid.MustParse(class["id"].(string))

	ticket, err := auth.IssueJoinTicket(classID)
	if err != nil {
		t.Fatalf("issue ticket: %v", err)
	}
	config.DB.Delete(&models.Class{}, "id = ?", classID)

	w := doJSON(t, r, http.MethodPost, "/student/join", gin.H{
		"step":       "name",
		"classId":    classID.String(),
		"name":       "Kim",
		"joinTicket": ticket,
	}, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a deleted class, got %d", w.Code)
	}
}
