// Package dto defines the request and response payloads for the transaction endpoints.
package dto

import "time"

// AddTransactionReq is the JSON body for POST /transactions.
// Date is optional and defaults to the current time.
type AddTransactionReq struct {
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Category    string     `json:"category" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=income expense"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
}
