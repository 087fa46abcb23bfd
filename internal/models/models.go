// Package models holds the shared request/response and storage types.
package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PredictRequest is the inference request body. Message is the only field
// the core consumes.
type PredictRequest struct {
	Message string `json:"message"`
}

// Classification is the inference result returned to callers. Features are
// the 10 raw category scores in canonical order.
type Classification struct {
	Prediction    string    `json:"prediction"`
	Confidence    float64   `json:"confidence"`
	Features      []float64 `json:"features"`
	MessageLength int       `json:"message_length"`
}

// PredictionRecord is one stored /predict result.
type PredictionRecord struct {
	ID            string    `db:"id" json:"id"`
	Message       string    `db:"message" json:"message"`
	Prediction    string    `db:"prediction" json:"prediction"`
	Confidence    float64   `db:"confidence" json:"confidence"`
	MessageLength int       `db:"message_length" json:"message_length"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// PredictionStats summarizes the stored history.
type PredictionStats struct {
	Total         int     `json:"total"`
	Scam          int     `json:"scam"`
	Benign        int     `json:"benign"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// User is an operator account for the authenticated admin API.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Claims are the JWT claims carried by admin tokens.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
