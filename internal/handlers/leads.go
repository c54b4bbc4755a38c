package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mataction/mataction-go/internal/middleware"
	"github.com/mataction/mataction-go/internal/models"
	"github.com/mataction/mataction-go/internal/tracker"
)

// ListLeads returns the rep's hot leads, newest first
func ListLeads(c *gin.Context) {
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

	query := `
		SELECT id, user_id, name, company, phone, email, interest_level,
		       notes, date_added, appointment_date, completed_followups
		FROM leads
		WHERE user_id = $1
		ORDER BY date_added DESC
	`

	rows, err := db.Query(c.Request.Context(), query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query leads", "details": err.Error()})
		return
	}
	defer rows.Close()

	leads := []models.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse lead data", "details": err.Error()})
			return
		}
		leads = append(leads, lead)
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": leads,
		"count": len(leads),
	})
}

// CreateLead adds a hot lead, either promoted from prospecting or manually
func CreateLead(c *gin.Context) {
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

	var req models.LeadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.AppointmentDate != nil && !tracker.ValidKey(*req.AppointmentDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment_date format. Use YYYY-MM-DD"})
		return
	}

	newID := uuid.New()
	query := `
		INSERT INTO leads (id, user_id, name, company, phone, email,
		                   interest_level, notes, date_added, appointment_date,
		                   completed_followups)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), $9, '{}'::jsonb)
		RETURNING date_added
	`

	var dateAdded time.Time
	err := db.QueryRow(c.Request.Context(), query,
		newID, userID, req.Name, req.Company, req.Phone, req.Email,
		req.InterestLevel, req.Notes, req.AppointmentDate,
	).Scan(&dateAdded)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lead", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         newID,
		"name":       req.Name,
		"date_added": dateAdded.Format(time.RFC3339),
	})
}

// UpdateLead edits lead contact info or its appointment date
func UpdateLead(c *gin.Context) {
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

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead ID format"})
		return
	}

	var req models.LeadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.AppointmentDate != nil && *req.AppointmentDate != "" && !tracker.ValidKey(*req.AppointmentDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment_date format. Use YYYY-MM-DD"})
		return
	}

	// Build partial update
	query := "UPDATE leads SET "
	params := []interface{}{}
	paramCount := 0

	addParam := func(column string, value interface{}) {
		paramCount++
		if paramCount > 1 {
			query += ", "
		}
		query += fmt.Sprintf("%s = $%d", column, paramCount)
		params = append(params, value)
	}

	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lead name cannot be empty"})
			return
		}
		addParam("name", *req.Name)
	}
	if req.Company != nil {
		addParam("company", req.Company)
	}
	if req.Phone != nil {
		addParam("phone", req.Phone)
	}
	if req.Email != nil {
		addParam("email", req.Email)
	}
	if req.InterestLevel != nil {
		addParam("interest_level", *req.InterestLevel)
	}
	if req.Notes != nil {
		addParam("notes", req.Notes)
	}
	if req.AppointmentDate != nil {
		if *req.AppointmentDate == "" {
			addParam("appointment_date", nil)
		} else {
			addParam("appointment_date", *req.AppointmentDate)
		}
	}

	if paramCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	query += fmt.Sprintf(" WHERE id = $%d AND user_id = $%d", paramCount+1, paramCount+2)
	params = append(params, leadID, userID)

	result, err := db.Exec(c.Request.Context(), query, params...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead", "details": err.Error()})
		return
	}
	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": leadID, "updated": true})
}

// DeleteLead removes a hot lead
func DeleteLead(c *gin.Context) {
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

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead ID format"})
		return
	}

	result, err := db.Exec(c.Request.Context(),
		"DELETE FROM leads WHERE id = $1 AND user_id = $2", leadID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lead", "details": err.Error()})
		return
	}
	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": leadID, "deleted": true})
}

// GetDueFollowUps lists the follow-up actions due across all the rep's
// leads on a given day
func GetDueFollowUps(c *gin.Context) {
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

	// Managers may inspect another rep's due list
	if target := c.Query("user_id"); target != "" {
		isManager, _ := middleware.GetAuthIsManager(c)
		if !isManager {
			c.JSON(http.StatusForbidden, gin.H{"error": "Manager access required"})
			return
		}
		targetID, err := uuid.Parse(target)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
			return
		}
		userID = targetID
	}

	date := c.DefaultQuery("date", tracker.Key(time.Now()))
	onDate, err := tracker.ParseKey(date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	query := `
		SELECT id, user_id, name, company, phone, email, interest_level,
		       notes, date_added, appointment_date, completed_followups
		FROM leads
		WHERE user_id = $1 AND appointment_date IS NOT NULL
		ORDER BY date_added ASC
	`

	rows, err := db.Query(c.Request.Context(), query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query leads", "details": err.Error()})
		return
	}
	defer rows.Close()

	dueLeads := []models.DueLead{}
	total := 0
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse lead data", "details": err.Error()})
			return
		}

		due := tracker.DueFollowUps(lead.Schedule(), onDate)
		if len(due) == 0 {
			continue
		}
		dueLeads = append(dueLeads, models.DueLead{Lead: lead, FollowUps: due})
		total += len(due)
	}

	c.JSON(http.StatusOK, models.DueFollowUpsResponse{
		Date:  date,
		Leads: dueLeads,
		Total: total,
	})
}

// CompleteFollowUp marks a cadence day done for a lead. Re-completing an
// already-completed day is a no-op and does not append a second win.
func CompleteFollowUp(c *gin.Context) {
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

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead ID format"})
		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || tracker.ActionForDay(day) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown follow-up day"})
		return
	}

	date := c.DefaultQuery("date", tracker.Key(time.Now()))
	if !tracker.ValidKey(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	lead, err := getLead(c.Request.Context(), db, leadID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	completed := lead.CompletedFollowUps
	if completed == nil {
		completed = map[int]string{}
	}

	changed := tracker.CompleteFollowUp(completed, day, date)
	if changed {
		completedJSON, err := json.Marshal(completed)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode follow-up state"})
			return
		}

		_, err = db.Exec(c.Request.Context(),
			"UPDATE leads SET completed_followups = $1 WHERE id = $2 AND user_id = $3",
			completedJSON, leadID, userID,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead", "details": err.Error()})
			return
		}

		win := fmt.Sprintf("✅ Completed %s for %s", tracker.ActionForDay(day), lead.Name)
		if err := appendWin(c.Request.Context(), db, userID, date, win); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record win", "details": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                   leadID,
		"day":                  day,
		"action":               tracker.ActionForDay(day),
		"completed":            true,
		"changed":              changed,
		"completed_follow_ups": completed,
	})
}

// ConvertLead turns a hot lead into a client: logs the first transaction and
// removes the lead
func ConvertLead(c *gin.Context) {
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

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead ID format"})
		return
	}

	var req models.LeadConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	date := req.Date
	if date == "" {
		date = tracker.Key(time.Now())
	}
	if !tracker.ValidKey(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	lead, err := getLead(c.Request.Context(), db, leadID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	// Log the first transaction and drop the lead atomically
	tx, err := db.Begin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction", "details": err.Error()})
		return
	}
	defer tx.Rollback(c.Request.Context())

	txnID := uuid.New()
	_, err = tx.Exec(c.Request.Context(), `
		INSERT INTO transactions (id, user_id, date, client_name, product,
		                          amount_cents, is_recurring, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`, txnID, userID, date, lead.Name, req.Product, req.AmountCents, req.IsRecurring)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log transaction", "details": err.Error()})
		return
	}

	_, err = tx.Exec(c.Request.Context(),
		"DELETE FROM leads WHERE id = $1 AND user_id = $2", leadID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove lead", "details": err.Error()})
		return
	}

	if err := tx.Commit(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert lead", "details": err.Error()})
		return
	}

	win := fmt.Sprintf("🎉 Converted %s to a client", lead.Name)
	if err := appendWin(c.Request.Context(), db, userID, date, win); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record win", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lead_id":        leadID,
		"transaction_id": txnID,
		"client_name":    lead.Name,
		"converted":      true,
	})
}

func getLead(ctx context.Context, db *pgxpool.Pool, leadID, userID uuid.UUID) (*models.Lead, error) {
	row := db.QueryRow(ctx, `
		SELECT id, user_id, name, company, phone, email, interest_level,
		       notes, date_added, appointment_date, completed_followups
		FROM leads
		WHERE id = $1 AND user_id = $2
	`, leadID, userID)

	lead, err := scanLead(row)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func scanLead(row pgx.Row) (models.Lead, error) {
	var lead models.Lead
	var completedJSON []byte

	err := row.Scan(
		&lead.ID, &lead.UserID, &lead.Name, &lead.Company, &lead.Phone,
		&lead.Email, &lead.InterestLevel, &lead.Notes, &lead.DateAdded,
		&lead.AppointmentDate, &completedJSON,
	)
	if err != nil {
		return models.Lead{}, err
	}

	lead.CompletedFollowUps = map[int]string{}
	if len(completedJSON) > 0 {
		if err := json.Unmarshal(completedJSON, &lead.CompletedFollowUps); err != nil {
			lead.CompletedFollowUps = map[int]string{}
		}
	}
	return lead, nil
}
