package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mataction/mataction-go/internal/middleware"
	"github.com/mataction/mataction-go/internal/models"
	"github.com/mataction/mataction-go/internal/tracker"
)

// ListTransactions returns the rep's revenue log, with optional date-range
// filtering
func ListTransactions(c *gin.Context) {
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

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	query := `
		SELECT id, user_id, date, client_name, product, amount_cents,
		       is_recurring, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
	`

	params := []interface{}{userID}
	paramCount := 1

	if startDate != "" {
		if !tracker.ValidKey(startDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date format. Use YYYY-MM-DD"})
			return
		}
		paramCount++
		query += fmt.Sprintf(" AND date >= $%d", paramCount)
		params = append(params, startDate)
	}
	if endDate != "" {
		if !tracker.ValidKey(endDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date format. Use YYYY-MM-DD"})
			return
		}
		paramCount++
		query += fmt.Sprintf(" AND date <= $%d", paramCount)
		params = append(params, endDate)
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := db.Query(c.Request.Context(), query, params...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query transactions", "details": err.Error()})
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var txn models.Transaction
		err := rows.Scan(
			&txn.ID, &txn.UserID, &txn.Date, &txn.ClientName, &txn.Product,
			&txn.AmountCents, &txn.IsRecurring, &txn.CreatedAt, &txn.UpdatedAt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse transaction data", "details": err.Error()})
			return
		}
		transactions = append(transactions, txn)
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// CreateTransaction logs a sale
func CreateTransaction(c *gin.Context) {
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

	var req models.TransactionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !tracker.ValidKey(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	newID := uuid.New()
	query := `
		INSERT INTO transactions (id, user_id, date, client_name, product,
		                          amount_cents, is_recurring, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := db.Exec(c.Request.Context(), query,
		newID, userID, req.Date, req.ClientName, req.Product,
		req.AmountCents, req.IsRecurring,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": newID, "date": req.Date})
}

// UpdateTransaction edits a logged sale
func UpdateTransaction(c *gin.Context) {
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

	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID format"})
		return
	}

	var req models.TransactionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	query := "UPDATE transactions SET updated_at = NOW()"
	params := []interface{}{}
	paramCount := 0

	addParam := func(column string, value interface{}) {
		paramCount++
		query += fmt.Sprintf(", %s = $%d", column, paramCount)
		params = append(params, value)
	}

	if req.Date != nil {
		if !tracker.ValidKey(*req.Date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		addParam("date", *req.Date)
	}
	if req.ClientName != nil {
		addParam("client_name", *req.ClientName)
	}
	if req.Product != nil {
		addParam("product", *req.Product)
	}
	if req.AmountCents != nil {
		addParam("amount_cents", *req.AmountCents)
	}
	if req.IsRecurring != nil {
		addParam("is_recurring", *req.IsRecurring)
	}

	if paramCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	query += fmt.Sprintf(" WHERE id = $%d AND user_id = $%d", paramCount+1, paramCount+2)
	params = append(params, txnID, userID)

	result, err := db.Exec(c.Request.Context(), query, params...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction", "details": err.Error()})
		return
	}
	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": txnID, "updated": true})
}

// DeleteTransaction removes a logged sale
func DeleteTransaction(c *gin.Context) {
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

	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID format"})
		return
	}

	result, err := db.Exec(c.Request.Context(),
		"DELETE FROM transactions WHERE id = $1 AND user_id = $2", txnID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction", "details": err.Error()})
		return
	}
	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": txnID, "deleted": true})
}
