package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mataction/mataction-go/internal/middleware"
	"github.com/mataction/mataction-go/internal/models"
	"github.com/mataction/mataction-go/internal/tracker"
)

// rollupWindow returns the inclusive date-key range the rollup needs for an
// anchor: the anchor's calendar year, widened to cover its week when that
// week crosses a year boundary. Keys sort lexicographically, so plain string
// comparison picks the bounds.
func rollupWindow(anchor time.Time) (fromKey, toKey string) {
	year := tracker.Key(anchor)[:4]
	fromKey = year + "-01-01"
	toKey = year + "-12-31"

	weekStart := tracker.Key(tracker.WeekStart(anchor))
	weekEnd := tracker.Key(tracker.AddDays(tracker.WeekStart(anchor), 6))
	if weekStart < fromKey {
		fromKey = weekStart
	}
	if weekEnd > toKey {
		toKey = weekEnd
	}
	return fromKey, toKey
}

// GetDashboard returns the revenue rollup for an anchor date: today, week,
// month, year-to-date, and the contract value projections, plus an optional
// grouped breakdown (by product or client). The rollup is computed in
// process from the rep's fetched transactions, anchored to the requested
// date so past days can be reviewed as of that day.
func GetDashboard(c *gin.Context) {
	db, ok := middleware.GetTeamDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		return
	}

	userID, ok := middleware.GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	date := c.DefaultQuery("date", tracker.Key(time.Now()))
	anchor, err := tracker.ParseKey(date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	groupBy := c.Query("group_by")
	if groupBy != "" && groupBy != "product" && groupBy != "client" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_by must be 'product' or 'client'"})
		return
	}

	fromKey, toKey := rollupWindow(anchor)

	query := `
		SELECT date, client_name, product, amount_cents, is_recurring
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
	`

	rows, err := db.Query(c.Request.Context(), query, userID, fromKey, toKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query transactions", "details": err.Error()})
		return
	}
	defer rows.Close()

	txns := []tracker.Txn{}
	for rows.Next() {
		var dateKey, clientName, product string
		var amountCents int64
		var isRecurring bool

		err := rows.Scan(&dateKey, &clientName, &product, &amountCents, &isRecurring)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse transaction data", "details": err.Error()})
			return
		}

		group := ""
		switch groupBy {
		case "product":
			group = product
		case "client":
			group = clientName
		}

		txns = append(txns, tracker.Txn{
			DateKey:     dateKey,
			AmountCents: amountCents,
			IsRecurring: isRecurring,
			Group:       group,
		})
	}

	resp := models.DashboardResponse{
		Date:   date,
		Totals: tracker.Aggregate(txns, anchor),
	}
	if groupBy != "" {
		resp.GroupBy = groupBy
		resp.Groups = tracker.GroupTotals(txns)
	}

	c.JSON(http.StatusOK, resp)
}

// GetTeamDashboard returns the rollup across the whole team for managers,
// grouped by rep
func GetTeamDashboard(c *gin.Context) {
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

	fromKey, toKey := rollupWindow(anchor)

	query := `
		SELECT t.date, t.amount_cents, t.is_recurring, u.display_name
		FROM transactions t
		JOIN users u ON t.user_id = u.id
		WHERE t.date >= $1 AND t.date <= $2 AND u.is_active = true
	`

	rows, err := db.Query(c.Request.Context(), query, fromKey, toKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query transactions", "details": err.Error()})
		return
	}
	defer rows.Close()

	txns := []tracker.Txn{}
	for rows.Next() {
		var dateKey, displayName string
		var amountCents int64
		var isRecurring bool

		err := rows.Scan(&dateKey, &amountCents, &isRecurring, &displayName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse transaction data", "details": err.Error()})
			return
		}

		txns = append(txns, tracker.Txn{
			DateKey:     dateKey,
			AmountCents: amountCents,
			IsRecurring: isRecurring,
			Group:       displayName,
		})
	}

	c.JSON(http.StatusOK, models.DashboardResponse{
		Date:    date,
		Totals:  tracker.Aggregate(txns, anchor),
		GroupBy: "rep",
		Groups:  tracker.GroupTotals(txns),
	})
}
