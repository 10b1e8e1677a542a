// safemap/internal/handlers/pin_handler_test.go
package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/waseok/safemap/config"
	"github.com/waseok/safemap/models"
)

func TestCreatePinRequiresSession(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/pins", gin.H{
		"location_type": models.LocationSchool,
		"category":      "생활안전",
		"title":         "계단 난간 파손",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session token, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/pins", gin.H{
		"location_type": models.LocationSchool,
		"category":      "생활안전",
		"title":         "계단 난간 파손",
	}, "garbage-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with a garbage token, got %d", w.Code)
	}
}

func TestCreatePinValidatesEnums(t *testing.T) {
	r := setupRouter(t)
	class := createClass(t, r, "3-1")
	token, _, _ := joinStudent(t, r, class["pin"].(string), "Kim")

	w := doJSON(t, r, http.MethodPost, "/pins", gin.H{
		"location_type": "우주",
		"category":      "생활안전",
		"title":         "t",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown location type: expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/pins", gin.H{
		"location_type": models.LocationSchool,
		"category":      "안전하지않음",
		"title":         "t",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown category: expected 400, got %d", w.Code)
	}
}

func TestCreatePinVillageRequiresCoordinates(t *testing.T) {
	r := setupRouter(t)
	class := createClass(t, r, "3-1")
	token, _, _ := joinStudent(t, r, class["pin"].(string), "Kim")

	w := doJSON(t, r, http.MethodPost, "/pins", gin.H{
		"location_type": models.LocationVillage,
		"category":      "교통안전",
		"title":         "가로등 고장",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without coordinates, got %d, body %s", w.Code, w.Body.String())
	}
}

func TestCreatePinForcesNullCoordinatesIndoors(t *testing.T) {
	r := setupRouter(t)
	class := createClass(t, r, "3-1")
	token, studentID, _ := joinStudent(t, r, class["pin"].(string), "Kim")

	w := doJSON(t, r, http.MethodPost, "/pins", gin.H{
		"location_type": models.LocationHome,
		"category":      "생활안전",
		"title":         "베란다 난간",
		"latitude":      37.5,
		"longitude":     127.0,
		"address":       "서울",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create pin: status %d, body %s", w.Code, w.Body.String())
	}

	var pin models.SafetyPin
	if err := config.DB.First(&pin, "student_id = ?", studentID).Error; err != nil {
		t.Fatalf("pin not persisted: %v", err)
	}
	if pin.Latitude != nil || pin.Longitude != nil || pin.Address != nil {
		t.Fatalf("indoor pin kept coordinates: lat=%v lng=%v addr=%v", pin.Latitude, pin.Longitude, pin.Address)
	}
}

// The end-to-end scenario: create a class, join as Kim, report an
// outdoor issue and see it exactly once in the class listing with the
// reporter's name attached.
func TestJoinAndReportScenario(t *testing.T) {
	r := setupRouter(t)
	class := createClass(t, r, "3-1")
	token, studentID, classID := joinStudent(t, r, class["pin"].(string), "Kim")

	w := doJSON(t, r, http.MethodPost, "/pins", gin.H{
		"location_type": models.LocationVillage,
		"category":      "교통안전",
		"title":         "Broken streetlight",
		"latitude":      37.5,
		"longitude":     127.0,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create pin: status %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/pins?class_id="+classID, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list pins: status %d", w.Code)
	}
	pins, _ := decodeBody(t, w)["pins"].([]any)
	if len(pins) != 1 {
		t.Fatalf("expected exactly 1 pin, got %d", len(pins))
	}
	pin := pins[0].(map[string]any)
	if pin["title"] != "Broken streetlight" {
		t.Fatalf("pin title = %v", pin["title"])
	}
	if pin["student_name"] != "Kim" {
		t.Fatalf("pin student_name = %v, want Kim", pin["student_name"])
	}
	if pin["student_id"] != studentID {
		t.Fatalf("pin student_id = %v, want %v", pin["student_id"], studentID)
	}
	if pin["latitude"] != 37.5 || pin["longitude"] != 127.0 {
		t.Fatalf("outdoor pin lost coordinates: lat=%v lng=%v", pin["latitude"], pin["longitude"])
	}
}

func TestListPinsFiltersByStudent(t *testing.T) {
	r := setupRouter(t)
	class := createClass(t, r, "3-1")
	pin := class["pin"].(string)
	tokenKim, kimID, classID := joinStudent(t, r, pin, "Kim")
	tokenLee, leeID, _ := joinStudent(t, r, pin, "Lee")

	for _, tc := range []struct {
		token string
		title string
	}{
		{tokenKim, "kim-report"},
		{tokenLee, "lee-report"},
		{tokenLee, "lee-report-2"},
	} {
		w := doJSON(t, r, http.MethodPost, "/pins", gin.H{
			"location_type": models.LocationSchool,
			"category":      "생활안전",
			"title":         tc.title,
		}, tc.token)
		if w.Code != http.StatusCreated {
			t.Fatalf("create pin %s: status %d", tc.title, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/pins?class_id="+classID+"&student_id="+leeID, nil, "")
	pins, _ := decodeBody(t, w)["pins"].([]any)
	if len(pins) != 2 {
		t.Fatalf("expected 2 pins for Lee, got %d", len(pins))
	}
	for _, p := range pins {
		if p.(map[string]any)["student_id"] != leeID {
			t.Fatalf("filter leaked a pin from another student: %v", p)
		}
	}

	w = doJSON(t, r, http.MethodGet, "/pins?class_id="+classID+"&student_id="+kimID, nil, "")
	pins, _ = decodeBody(t, w)["pins"].([]any)
	if len(pins) != 1 {
		t.Fatalf("expected 1 pin for Kim, got %d", len(pins))
	}
}

func TestListPinsRequiresClassID(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/pins", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without class_id, got %d", w.Code)
	}
}

func TestGetPinNotFound(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/pins/0b7ab20c-58a7-4dbd-8aa3-2a9e25a26c3e", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown pin, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/pins/not-a-uuid", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed pin id, got %d", w.Code)
	}
}
