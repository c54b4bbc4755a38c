package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mataction/mataction-go/internal/middleware"
	"github.com/mataction/mataction-go/internal/models"
	"github.com/mataction/mataction-go/internal/tracker"
)

// GetLeaderboard returns the team performance board for one day: each rep's
// KPI score for that day plus month-to-date revenue as of the anchor date.
// Manager-only route. Scores and revenue are computed in process by the
// rollup core over the fetched rows.
func GetLeaderboard(c *gin.Context) {
	db, ok := middleware.GetTeamDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	date := c.DefaultQuery("date", tracker.Key(time.Now()))
	anchor, err := tracker.ParseKey(date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	// Active reps
	userQuery := `
		SELECT id, username, display_name, avatar_url, daily_goal
		FROM users
		WHERE is_active = true
	`
	rows, err := db.Query(c.Request.Context(), userQuery)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users", "details": err.Error()})
		return
	}
	defer rows.Close()

	entries := map[uuid.UUID]*models.LeaderboardEntry{}
	for rows.Next() {
		var entry models.LeaderboardEntry
		err := rows.Scan(&entry.UserID, &entry.Username, &entry.DisplayName,
			&entry.AvatarURL, &entry.DailyGoal)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse user data", "details": err.Error()})
			return
		}
		entries[entry.UserID] = &entry
	}
	rows.Close()

	// Day's prospecting codes per rep
	contactQuery := `
		SELECT user_id, prospecting
		FROM contacts
		WHERE date = $1
	`
	contactRows, err := db.Query(c.Request.Context(), contactQuery, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query contacts", "details": err.Error()})
		return
	}
	defer contactRows.Close()

	for contactRows.Next() {
		var userID uuid.UUID
		var prospectingJSON []byte
		if err := contactRows.Scan(&userID, &prospectingJSON); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse contact data", "details": err.Error()})
			return
		}

		entry, ok := entries[userID]
		if !ok {
			continue
		}

		codes := tracker.CodeSet{}
		if len(prospectingJSON) > 0 {
			if err := json.Unmarshal(prospectingJSON, &codes); err != nil {
				codes = tracker.CodeSet{}
			}
		}
		entry.Score += tracker.ScoreContact(codes)
		entry.Contacts++
	}

	// Month-to-date revenue per rep, anchored to the requested date
	monthStart := date[:7] + "-01"
	txnQuery := `
		SELECT user_id, date, amount_cents, is_recurring
		FROM transactions
		WHERE date >= $1 AND date <= $2
	`
	txnRows, err := db.Query(c.Request.Context(), txnQuery, monthStart, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query transactions", "details": err.Error()})
		return
	}
	defer txnRows.Close()

	perRep := map[uuid.UUID][]tracker.Txn{}
	for txnRows.Next() {
		var userID uuid.UUID
		var txn tracker.Txn
		if err := txnRows.Scan(&userID, &txn.DateKey, &txn.AmountCents, &txn.IsRecurring); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse transaction data", "details": err.Error()})
			return
		}
		perRep[userID] = append(perRep[userID], txn)
	}

	for userID, txns := range perRep {
		entry, ok := entries[userID]
		if !ok {
			continue
		}
		entry.RevenueCents = tracker.Aggregate(txns, anchor).MonthCents
	}

	leaderboard := make([]models.LeaderboardEntry, 0, len(entries))
	for _, entry := range entries {
		leaderboard = append(leaderboard, *entry)
	}
	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].Score != leaderboard[j].Score {
			return leaderboard[i].Score > leaderboard[j].Score
		}
		if leaderboard[i].RevenueCents != leaderboard[j].RevenueCents {
			return leaderboard[i].RevenueCents > leaderboard[j].RevenueCents
		}
		return leaderboard[i].Username < leaderboard[j].Username
	})
	for i := range leaderboard {
		leaderboard[i].Rank = i + 1
	}

	c.JSON(http.StatusOK, models.LeaderboardResponse{
		Date:        date,
		Leaderboard: leaderboard,
		TotalUsers:  len(leaderboard),
	})
}
