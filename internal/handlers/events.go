package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mataction/mataction-go/internal/middleware"
	"github.com/mataction/mataction-go/internal/models"
	"github.com/mataction/mataction-go/internal/tracker"
)

// GetEvents returns the rep's calendar events for a date range
func GetEvents(c *gin.Context) {
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

	startDate := c.DefaultQuery("start_date", tracker.Key(time.Now()))
	endDate := c.Query("end_date")
	if endDate == "" {
		start, err := tracker.ParseKey(startDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date format. Use YYYY-MM-DD"})
			return
		}
		endDate = tracker.Key(tracker.AddDays(start, 30))
	}

	if !tracker.ValidKey(startDate) || !tracker.ValidKey(endDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	events, err := queryEvents(c.Request.Context(), db, userID, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query events", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.EventRangeResponse{
		StartDate: startDate,
		EndDate:   endDate,
		Events:    events,
		Total:     len(events),
	})
}

// CreateEvent adds a single calendar event
func CreateEvent(c *gin.Context) {
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

	var req models.EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := validateEventFields(req.Date, req.Time, req.Type); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newID := uuid.New()
	query := `
		INSERT INTO events (id, user_id, date, time, title, type,
		                    is_recurring, series_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, NULL, NOW(), NOW())
	`
	_, err := db.Exec(c.Request.Context(), query,
		newID, userID, req.Date, req.Time, req.Title, req.Type,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": newID, "date": req.Date})
}

// CreateRecurringEvents expands a weekly recurrence definition into concrete
// occurrences sharing one series ID. repeat_weeks outside [1, 52] is
// rejected, never clamped.
func CreateRecurringEvents(c *gin.Context) {
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

	var req models.RecurringEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := validateEventFields(req.Date, req.Time, req.Type); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	anchor, err := tracker.ParseKey(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	dates, err := tracker.ExpandWeekly(anchor, req.RepeatWeeks)
	if err != nil {
		if errors.Is(err, tracker.ErrRepeatWeeksRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to expand recurrence", "details": err.Error()})
		return
	}

	seriesID := uuid.New()

	tx, err := db.Begin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction", "details": err.Error()})
		return
	}
	defer tx.Rollback(c.Request.Context())

	ids := make([]uuid.UUID, 0, len(dates))
	for _, date := range dates {
		id := uuid.New()
		_, err := tx.Exec(c.Request.Context(), `
			INSERT INTO events (id, user_id, date, time, title, type,
			                    is_recurring, series_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, true, $7, NOW(), NOW())
		`, id, userID, date, req.Time, req.Title, req.Type, seriesID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create series", "details": err.Error()})
			return
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create series", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"series_id":   seriesID,
		"event_ids":   ids,
		"occurrences": len(ids),
		"dates":       dates,
	})
}

// UpdateEvent edits one event occurrence. Editing a series member clears
// its series link permanently; a detached occurrence can never rejoin.
func UpdateEvent(c *gin.Context) {
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

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID format"})
		return
	}

	var req models.EventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.Date != nil && !tracker.ValidKey(*req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	if req.Type != nil && !models.ValidEventType(*req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event type", "types": models.EventTypes})
		return
	}

	// Detach is part of the same update: any edit to a series member clears
	// its recurrence link
	query := "UPDATE events SET updated_at = NOW(), is_recurring = false, series_id = NULL"
	params := []interface{}{}
	paramCount := 0

	addParam := func(column string, value interface{}) {
		paramCount++
		query += fmt.Sprintf(", %s = $%d", column, paramCount)
		params = append(params, value)
	}

	if req.Date != nil {
		addParam("date", *req.Date)
	}
	if req.Time != nil {
		addParam("time", *req.Time)
	}
	if req.Title != nil {
		addParam("title", *req.Title)
	}
	if req.Type != nil {
		addParam("type", *req.Type)
	}

	if paramCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	query += fmt.Sprintf(" WHERE id = $%d AND user_id = $%d", paramCount+1, paramCount+2)
	params = append(params, eventID, userID)

	result, err := db.Exec(c.Request.Context(), query, params...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event", "details": err.Error()})
		return
	}
	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": eventID, "updated": true, "detached": true})
}

// DeleteEvent removes one occurrence, or the whole series with ?series=true
func DeleteEvent(c *gin.Context) {
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

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID format"})
		return
	}

	if c.Query("series") == "true" {
		var seriesID *uuid.UUID
		err := db.QueryRow(c.Request.Context(),
			"SELECT series_id FROM events WHERE id = $1 AND user_id = $2",
			eventID, userID,
		).Scan(&seriesID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		if seriesID != nil {
			result, err := db.Exec(c.Request.Context(),
				"DELETE FROM events WHERE series_id = $1 AND user_id = $2",
				seriesID, userID,
			)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete series", "details": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"deleted": result.RowsAffected(), "series_id": seriesID})
			return
		}
		// Not part of a series: fall through to single deletion
	}

	result, err := db.Exec(c.Request.Context(),
		"DELETE FROM events WHERE id = $1 AND user_id = $2", eventID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event", "details": err.Error()})
		return
	}
	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": eventID, "deleted": int64(1)})
}

func validateEventFields(date, eventTime, eventType string) error {
	if !tracker.ValidKey(date) {
		return errors.New("invalid date format, use YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", eventTime); err != nil {
		return errors.New("invalid time format, use HH:mm")
	}
	if !models.ValidEventType(eventType) {
		return fmt.Errorf("unknown event type %q", eventType)
	}
	return nil
}

func queryEvents(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, startDate, endDate string) ([]models.CalendarEvent, error) {
	query := `
		SELECT id, user_id, date, time, title, type, is_recurring, series_id,
		       created_at, updated_at
		FROM events
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, time ASC
	`

	rows, err := db.Query(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.CalendarEvent{}
	for rows.Next() {
		var event models.CalendarEvent
		err := rows.Scan(
			&event.ID, &event.UserID, &event.Date, &event.Time, &event.Title,
			&event.Type, &event.IsRecurring, &event.SeriesID,
			&event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
