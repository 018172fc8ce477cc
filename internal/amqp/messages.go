package amqp

import (
	"encoding/json"
	"time"
)

// Collections named in change events
const (
	CollectionEntries = "entries"
	CollectionBudgets = "budgets"
)

// LedgerChangeMessage announces that a collection was saved. It carries no
// data: consumers reload the snapshot from the primary store.
type LedgerChangeMessage struct {
	Collection string    `json:"collection"`
	Count      int       `json:"count"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewLedgerChangeMessage(collection string, count int) *LedgerChangeMessage {
	return &LedgerChangeMessage{
		Collection: collection,
		Count:      count,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangeMessageFromJSON(data []byte) (*LedgerChangeMessage, error) {
	var msg LedgerChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
