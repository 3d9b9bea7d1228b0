package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"worksheethub/db"
	"worksheethub/models"
)

// GetPreference returns a client's last-selected subject, chapter and
// theme.
func GetPreference(ctx *gin.Context) {
	if !db.Connected() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Preferences store not configured"})
		return
	}
	clientID := ctx.Param("clientId")

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pref, err := db.GetPreference(dbCtx, clientID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Preference not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	ctx.JSON(http.StatusOK, pref)
}

// SavePreference upserts a client's selection so a returning user lands
// where they left off.
func SavePreference(ctx *gin.Context) {
	if !db.Connected() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Preferences store not configured"})
		return
	}

	var pref models.Preference
	if err := ctx.ShouldBindJSON(&pref); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preference payload"})
		return
	}
	pref.ClientID = ctx.Param("clientId")
	if pref.ClientID == "" || pref.SubjectID == "" || pref.ChapterID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "clientId, subjectId and chapterId are required"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.SavePreference(dbCtx, pref); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, pref)
}
