// Package model defines the core domain types used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Direction indicates whether a message was received or sent by the device.
type Direction string

// Message direction constants.
const (
	DirectionReceived Direction = "RECEIVED"
	DirectionSent     Direction = "SENT"
)

// RawMessage is a single SMS as delivered by the ingestion boundary.
// Values are immutable once created.
type RawMessage struct {
	ReceivedAt time.Time
	Sender     string
	Body       string
	Direction  Direction
}

// Hash creates a stable key for duplicate detection, derived from the
// sender, body and arrival time.
func (m RawMessage) Hash() string {
	data := fmt.Sprintf("%s:%s:%d", m.Sender, m.Body, m.ReceivedAt.UnixNano())
	sum := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", sum)
}
