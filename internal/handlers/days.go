package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mataction/mataction-go/internal/middleware"
	"github.com/mataction/mataction-go/internal/models"
	"github.com/mataction/mataction-go/internal/tracker"
)

// GetDay returns the full day bucket for a date: prospecting contacts,
// calendar events, the win log, notes, and the day's KPI score. A date with
// no stored data returns an empty bucket, not a 404.
func GetDay(c *gin.Context) {
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

	date := c.Param("date")
	if !tracker.ValidKey(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	contacts, err := queryContacts(c.Request.Context(), db, userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query contacts", "details": err.Error()})
		return
	}

	events, err := queryEvents(c.Request.Context(), db, userID, date, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query events", "details": err.Error()})
		return
	}

	notes, wins, err := queryDayNotes(c.Request.Context(), db, userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query day notes", "details": err.Error()})
		return
	}

	codeSets := make([]tracker.CodeSet, 0, len(contacts))
	for _, contact := range contacts {
		codeSets = append(codeSets, contact.Prospecting)
	}

	c.JSON(http.StatusOK, models.DayBucket{
		Date:     date,
		UserID:   userID,
		Contacts: contacts,
		Events:   events,
		Wins:     wins,
		Notes:    notes,
		Score:    tracker.Score(codeSets),
	})
}

// GetDayScore returns just the KPI score for a day bucket
func GetDayScore(c *gin.Context) {
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

	date := c.Param("date")
	if !tracker.ValidKey(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	contacts, err := queryContacts(c.Request.Context(), db, userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query contacts", "details": err.Error()})
		return
	}

	codeSets := make([]tracker.CodeSet, 0, len(contacts))
	for _, contact := range contacts {
		codeSets = append(codeSets, contact.Prospecting)
	}

	var dailyGoal int
	err = db.QueryRow(c.Request.Context(),
		"SELECT daily_goal FROM users WHERE id = $1", userID,
	).Scan(&dailyGoal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query daily goal", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.DayScoreResponse{
		Date:      date,
		Score:     tracker.Score(codeSets),
		Contacts:  len(contacts),
		DailyGoal: dailyGoal,
	})
}

// UpdateDayNotes upserts the free-text fields of a day bucket
func UpdateDayNotes(c *gin.Context) {
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

	date := c.Param("date")
	if !tracker.ValidKey(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	var req models.DayNotesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	wins := req.Wins
	if wins == nil {
		wins = []string{}
	}
	winsJSON, err := json.Marshal(wins)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode wins"})
		return
	}

	query := `
		INSERT INTO day_notes (user_id, date, notes, wins, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, date)
		DO UPDATE SET notes = $3, wins = $4, updated_at = NOW()
	`
	_, err = db.Exec(c.Request.Context(), query, userID, date, req.Notes, winsJSON)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update day notes", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "updated": true})
}

// CreateContact logs a new prospecting contact on a day bucket
func CreateContact(c *gin.Context) {
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

	date := c.Param("date")
	if !tracker.ValidKey(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	var req models.ContactCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	prospecting := req.Prospecting
	if prospecting == nil {
		prospecting = tracker.CodeSet{}
	}
	for code := range prospecting {
		if _, known := tracker.CodePoints[code]; !known {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown prospecting code", "code": code})
			return
		}
	}
	prospectingJSON, err := json.Marshal(prospecting)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode prospecting codes"})
		return
	}

	newID := uuid.New()
	query := `
		INSERT INTO contacts (id, user_id, date, name, company, phone, email,
		                      interest_level, prospecting, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err = db.Exec(c.Request.Context(), query,
		newID, userID, date, req.Name, req.Company, req.Phone, req.Email,
		req.InterestLevel, prospectingJSON,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": newID, "date": date})
}

// ToggleContactCode sets or clears one prospecting code on a contact
func ToggleContactCode(c *gin.Context) {
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

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID format"})
		return
	}

	var req models.CodeToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if _, known := tracker.CodePoints[req.Code]; !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown prospecting code", "code": req.Code})
		return
	}

	// Read-modify-write on the prospecting map, scoped to the owning user
	var prospectingJSON []byte
	err = db.QueryRow(c.Request.Context(),
		"SELECT prospecting FROM contacts WHERE id = $1 AND user_id = $2",
		contactID, userID,
	).Scan(&prospectingJSON)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	codes := tracker.CodeSet{}
	if len(prospectingJSON) > 0 {
		if err := json.Unmarshal(prospectingJSON, &codes); err != nil {
			codes = tracker.CodeSet{}
		}
	}
	codes[req.Code] = req.Value

	updatedJSON, err := json.Marshal(codes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode prospecting codes"})
		return
	}

	_, err = db.Exec(c.Request.Context(),
		"UPDATE contacts SET prospecting = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3",
		updatedJSON, contactID, userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          contactID,
		"prospecting": codes,
		"score":       tracker.ScoreContact(codes),
	})
}

func queryContacts(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, date string) ([]models.Contact, error) {
	query := `
		SELECT id, user_id, date, name, company, phone, email,
		       interest_level, prospecting, created_at, updated_at
		FROM contacts
		WHERE user_id = $1 AND date = $2
		ORDER BY created_at ASC
	`

	rows, err := db.Query(ctx, query, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var contact models.Contact
		var prospectingJSON []byte

		err := rows.Scan(
			&contact.ID, &contact.UserID, &contact.Date, &contact.Name,
			&contact.Company, &contact.Phone, &contact.Email,
			&contact.InterestLevel, &prospectingJSON,
			&contact.CreatedAt, &contact.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		contact.Prospecting = tracker.CodeSet{}
		if len(prospectingJSON) > 0 {
			if err := json.Unmarshal(prospectingJSON, &contact.Prospecting); err != nil {
				contact.Prospecting = tracker.CodeSet{}
			}
		}

		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func queryDayNotes(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, date string) (*string, []string, error) {
	var notes *string
	var winsJSON []byte

	err := db.QueryRow(ctx,
		"SELECT notes, wins FROM day_notes WHERE user_id = $1 AND date = $2",
		userID, date,
	).Scan(&notes, &winsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Absence of a row is an empty bucket
			return nil, []string{}, nil
		}
		return nil, nil, err
	}

	wins := []string{}
	if len(winsJSON) > 0 {
		if err := json.Unmarshal(winsJSON, &wins); err != nil {
			wins = []string{}
		}
	}
	return notes, wins, nil
}

// appendWin adds a human-readable message to a day's win log, creating the
// day-notes row if needed.
func appendWin(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, date, message string) error {
	_, wins, err := queryDayNotes(ctx, db, userID, date)
	if err != nil {
		return err
	}
	wins = append(wins, message)

	winsJSON, err := json.Marshal(wins)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO day_notes (user_id, date, wins, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, date)
		DO UPDATE SET wins = $3, updated_at = NOW()
	`
	_, err = db.Exec(ctx, query, userID, date, winsJSON)
	return err
}
