// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	conversationsDomain "github.com/agentvault/agentvault/internal/conversations/domain"
)

// EntryResponse represents a conversation entry in API responses.
type EntryResponse struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agent_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MapEntryToResponse converts a domain entry to an API response.
func MapEntryToResponse(entry *conversationsDomain.Entry) EntryResponse {
	return EntryResponse{
		ID:        entry.ID.String(),
		AgentID:   entry.AgentID.String(),
		Role:      string(entry.Role),
		Content:   entry.Content,
		CreatedAt: entry.CreatedAt,
	}
}

// ListEntriesResponse represents a paginated conversation log in API responses.
type ListEntriesResponse struct {
	Data []EntryResponse `json:"data"`
}

// MapEntriesToListResponse converts a slice of domain entries to a list API response.
func MapEntriesToListResponse(entries []*conversationsDomain.Entry) ListEntriesResponse {
	entryResponses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		entryResponses = append(entryResponses, MapEntryToResponse(entry))
	}
	return ListEntriesResponse{
		Data: entryResponses,
	}
}

// ClearEntriesResponse reports how many entries a clear operation removed.
type ClearEntriesResponse struct {
	RemovedEntries int64 `json:"removed_entries"`
}
