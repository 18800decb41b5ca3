package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is the text-safe persisted form of an Event. Timestamps are
// RFC 3339 strings in UTC so the stored document survives any JSON-capable
// transport byte-for-byte.
type Record struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId"`
	Title       string   `json:"title"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
}

// timestampLayout preserves the full resolution time.Time carries, so
// Decode(Encode(events)) loses nothing.
const timestampLayout = time.RFC3339Nano

// Encode converts events to their persisted text form. Timestamps are
// normalized to UTC; all other fields pass through untouched.
func Encode(events []Event) []Record {
	records := make([]Record, len(events))
	for i, e := range events {
		records[i] = Record{
			ID:          e.ID,
			OwnerID:     e.OwnerID,
			Title:       e.Title,
			Start:       e.Start.UTC().Format(timestampLayout),
			End:         e.End.UTC().Format(timestampLayout),
			Description: e.Description,
			Location:    e.Location,
			Attendees:   e.Attendees,
		}
	}
	return records
}

// Decode is the exact inverse of Encode.
func Decode(records []Record) ([]Event, error) {
	events := make([]Event, len(records))
	for i, r := range records {
		start, err := time.Parse(timestampLayout, r.Start)
		if err != nil {
			return nil, fmt.Errorf("decode event %s: start: %w", r.ID, err)
		}
		end, err := time.Parse(timestampLayout, r.End)
		if err != nil {
			return nil, fmt.Errorf("decode event %s: end: %w", r.ID, err)
		}
		events[i] = Event{
			ID:          r.ID,
			OwnerID:     r.OwnerID,
			Title:       r.Title,
			Start:       start,
			End:         end,
			Description: r.Description,
			Location:    r.Location,
			Attendees:   r.Attendees,
		}
	}
	return events, nil
}

// Marshal serializes events to the JSON document written to durable storage.
func Marshal(events []Event) ([]byte, error) {
	data, err := json.Marshal(Encode(events))
	if err != nil {
		return nil, fmt.Errorf("marshal events: %w", err)
	}
	return data, nil
}

// Unmarshal parses a stored JSON document back into events. An empty
// document yields an empty collection.
func Unmarshal(data []byte) ([]Event, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal events: %w", err)
	}
	return Decode(records)
}
