// safemap/internal/handlers/join_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waseok/safemap/config"
	"github.com/waseok/safemap/internal/auth"
	"github.com/waseok/safemap/models"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// JoinInput is the body of both phases of POST /student/join.
type JoinInput struct {
	Step       string `json:"step"`
	Pin        string `json:"pin"`
	ClassID    string `json:"classId"`
	Name       string `json:"name"`
	JoinTicket string `json:"joinTicket"`
}

// StudentJoinHandler runs the two-phase join flow. Phase 1 resolves a
// PIN to a class and issues a short-lived ticket; phase 2 spends the
// ticket, creates the student and issues the session token.
func StudentJoinHandler(c *gin.Context) {
	var input JoinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	switch input.Step {
	case "pin":
		joinStepPin(c, input)
	case "name":
		joinStepName(c, input)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	}
}

func joinStepPin(c *gin.Context, input JoinInput) {
	pin := strings.TrimSpace(input.Pin)
	// Format check happens before any database access.
	if !pinPattern.MatchString(pin) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PIN must be exactly 4 digits"})
		return
	}

	var class models.Class
	if err := config.DB.Where("pin = ?", pin).First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no class found for that PIN"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up PIN: " + err.Error()})
		return
	}

	ticket, err := auth.IssueJoinTicket(class.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue join ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"classId":    class.ID,
		"className":  class.Name,
		"joinTicket": ticket,
	})
}

func joinStepName(c *gin.Context, input JoinInput) {
	classIDStr := strings.TrimSpace(input.ClassID)
	name := strings.TrimSpace(input.Name)
	if classIDStr == "" || name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "classId and name are required"})
		return
	}
	classID, err := uuid.Parse(classIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid classId"})
		return
	}

	// The ticket binds this request to the class resolved in phase 1.
	ticket, err := auth.ParseJoinTicket(input.JoinTicket)
	if err != nil || ticket.ClassID != classID.String() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "join ticket missing, expired or issued for another class"})
		return
	}

	// The class may have been deleted between phases; do not create
	// orphaned students. Checked before the ticket is spent so a
	// failed attempt does not burn it.
	var class models.Class
	if err := config.DB.First(&class, "id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "class no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify class: " + err.Error()})
		return
	}

	if !spendJoinTicket(ticket.ID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "join ticket already used"})
		return
	}

	studentID := uuid.New()
	sessionToken, jti, err := auth.IssueSessionToken(studentID, classID)
	if err != nil {
		releaseJoinTicket(ticket.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session token"})
		return
	}

	student := models.Student{
		ID:        studentID,
		ClassID:   classID,
		Name:      name,
		SessionID: jti,
	}
	if err := config.DB.Create(&student).Error; err != nil {
		releaseJoinTicket(ticket.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join class: " + err.Error()})
		return
	}

	slog.Info("student joined", "student_id", student.ID, "class_id", classID)
	c.JSON(http.StatusOK, gin.H{
		"studentId": student.ID,
		"sessionId": sessionToken,
		"classId":   classID,
	})
}

// spendJoinTicket marks a ticket jti as used for the rest of its
// lifetime. Without Redis every ticket is accepted for its full TTL;
// signature and expiry checks still apply.
func spendJoinTicket(jti string) bool {
	if config.RDB == nil {
		return true
	}
	ok, err := config.RDB.SetNX(config.Ctx, "join_ticket:"+jti, "1", auth.JoinTicketTTL+time.Minute).Result()
	if err != nil {
		slog.Error("Redis SETNX failed, accepting ticket", "error", err, "jti", jti)
		return true
	}
	return ok
}

// releaseJoinTicket frees a spent jti when student creation failed
// after the spend, so the same ticket can retry phase 2.
func releaseJoinTicket(jti string) {
	if config.RDB == nil {
		return
	}
	if err := config.RDB.Del(config.Ctx, "join_ticket:"+jti).Err(); err != nil {
		slog.Error("Redis DEL failed", "error", err, "jti", jti)
	}
}
