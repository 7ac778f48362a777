package events

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	TypeDocumentActivated = "DOCUMENT_ACTIVATED"
	TypeArtifactGenerated = "ARTIFACT_GENERATED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_ACTIVATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// DocumentActivated is emitted once an upload has replaced the retrieval session.
func DocumentActivated(documentId, filename string, chunks int) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentActivated,
		Data: map[string]interface{}{
			"document_id": documentId,
			"filename":    filename,
			"chunks":      chunks,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// ArtifactGenerated is emitted after a newly generated artifact was persisted.
func ArtifactGenerated(documentId, kind string) BaseEvent {
	return BaseEvent{
		Type: TypeArtifactGenerated,
		Data: map[string]interface{}{
			"document_id": documentId,
			"kind":        kind,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// Encode serialises any Event into the wire envelope shared by the bus and NATS.
func Encode(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

func Decode(data []byte) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return BaseEvent{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if e.Type == "" {
		return BaseEvent{}, fmt.Errorf("event has no type")
	}
	return e, nil
}
