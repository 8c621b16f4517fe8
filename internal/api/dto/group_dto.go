package dto

import (
	"time"

	"github.com/spec-kit/wa-group-directory/internal/domain"
)

// CreateGroupRequest payload for new listings.
type CreateGroupRequest struct {
	Nama  string `json:"nama"`
	Link  string `json:"link"`
	Jenis string `json:"jenis"`
}

// UpdateGroupRequest payload for partial updates. Empty fields are treated
// as not provided.
type UpdateGroupRequest struct {
	Nama   string `json:"nama"`
	Link   string `json:"link"`
	Jenis  string `json:"jenis"`
	Status string `json:"status"`
}

// ChangeStatusRequest payload for status flips.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// GroupResponse is the wire shape of a listing.
type GroupResponse struct {
	ID        int64     `json:"id"`
	Nama      string    `json:"nama"`
	Link      string    `json:"link"`
	Jenis     string    `json:"jenis"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewGroupResponse maps a domain group onto the wire shape.
func NewGroupResponse(group *domain.Group) GroupResponse {
	return GroupResponse{
		ID:        group.ID,
		Nama:      group.Nama,
		Link:      group.Link,
		Jenis:     group.Jenis,
		Status:    string(group.Status),
		CreatedAt: group.CreatedAt,
	}
}

// NewGroupResponses maps a slice of domain groups, never returning nil so
// empty lists encode as [] rather than null.
func NewGroupResponses(groups []domain.Group) []GroupResponse {
	items := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		items = append(items, NewGroupResponse(&groups[i]))
	}
	return items
}

// ResolveResponse carries the extracted page title.
type ResolveResponse struct {
	Title string `json:"title"`
}
