package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/wa-group-directory/internal/domain"
	"github.com/spec-kit/wa-group-directory/internal/events"
	"github.com/spec-kit/wa-group-directory/internal/repository"
	apperrors "github.com/spec-kit/wa-group-directory/pkg/util"
)

// GroupService coordinates directory listing workflows.
type GroupService struct {
	groups     repository.GroupRepository
	dispatcher events.Dispatcher
}

// NewGroupService constructs the service.
func NewGroupService(groups repository.GroupRepository, dispatcher events.Dispatcher) *GroupService {
	return &GroupService{groups: groups, dispatcher: dispatcher}
}

// GroupCreateInput describes group creation payload.
type GroupCreateInput struct {
	Nama  string
	Link  string
	Jenis string
}

// GroupUpdateInput describes a partial update. An empty string means the
// field was not provided and is never written; there is no way to clear a
// field to the empty string through update.
type GroupUpdateInput struct {
	Nama   string
	Link   string
	Jenis  string
	Status string
}

// GroupListFilter describes public listing filters.
type GroupListFilter struct {
	Search string
	Jenis  string
	Status string
}

// List returns groups matching the filter, newest first. An invalid status
// value is simply not applied.
func (s *GroupService) List(ctx context.Context, filter GroupListFilter) ([]domain.Group, error) {
	repoFilter := repository.GroupFilter{}
	if filter.Search != "" {
		repoFilter.Search = &filter.Search
	}
	if filter.Jenis != "" {
		repoFilter.Jenis = &filter.Jenis
	}
	if domain.ValidGroupStatus(filter.Status) {
		status := domain.GroupStatus(filter.Status)
		repoFilter.Status = &status
	}

	groups, err := s.groups.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return groups, nil
}

// ListJenis returns the distinct category labels currently in use.
func (s *GroupService) ListJenis(ctx context.Context) ([]string, error) {
	jenis, err := s.groups.DistinctJenis(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return jenis, nil
}

// Create persists a new listing with status AKTIF. Duplicate nama or link
// values are permitted.
func (s *GroupService) Create(ctx context.Context, actor events.Actor, input GroupCreateInput) (*domain.Group, error) {
	if input.Nama == "" || input.Link == "" || input.Jenis == "" {
		return nil, apperrors.NewValidationError("Nama, link, jenis wajib diisi")
	}

	group := &domain.Group{
		Nama:   input.Nama,
		Link:   input.Link,
		Jenis:  input.Jenis,
		Status: domain.GroupStatusAktif,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventGroupCreated, group.ID, actor, events.GroupCreatedPayload{
		Nama:  group.Nama,
		Link:  group.Link,
		Jenis: group.Jenis,
	})
	return group, nil
}

// Update applies the provided fields to an existing listing. An invalid
// status value is dropped while the rest of the update proceeds.
func (s *GroupService) Update(ctx context.Context, actor events.Actor, id int64, input GroupUpdateInput) (*domain.Group, error) {
	update := repository.GroupUpdate{}
	applied := []string{}

	if input.Nama != "" {
		update.Nama = &input.Nama
		applied = append(applied, "nama")
	}
	if input.Link != "" {
		update.Link = &input.Link
		applied = append(applied, "link")
	}
	if input.Jenis != "" {
		update.Jenis = &input.Jenis
		applied = append(applied, "jenis")
	}
	if domain.ValidGroupStatus(input.Status) {
		status := domain.GroupStatus(input.Status)
		update.Status = &status
		applied = append(applied, "status")
	}

	group, err := s.groups.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Group tidak ditemukan")
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventGroupUpdated, group.ID, actor, events.GroupUpdatedPayload{Fields: applied})
	return group, nil
}

// Delete removes a listing. Deleting an unknown id fails, including the
// second delete of an already removed row.
func (s *GroupService) Delete(ctx context.Context, actor events.Actor, id int64) error {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Group tidak ditemukan")
		}
		return apperrors.MapError(err)
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Group tidak ditemukan")
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventGroupDeleted, id, actor, events.GroupDeletedPayload{Nama: group.Nama})
	return nil
}

// SetStatus flips a listing between AKTIF and NONAKTIF. Any other value is
// rejected outright.
func (s *GroupService) SetStatus(ctx context.Context, actor events.Actor, id int64, status string) (*domain.Group, error) {
	if !domain.ValidGroupStatus(status) {
		return nil, apperrors.NewValidationError("Status harus AKTIF atau NONAKTIF")
	}

	current, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Group tidak ditemukan")
		}
		return nil, apperrors.MapError(err)
	}

	group, err := s.groups.SetStatus(ctx, id, domain.GroupStatus(status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Group tidak ditemukan")
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventGroupStatusChanged, group.ID, actor, events.GroupStatusChangedPayload{
		OldStatus: current.Status,
		NewStatus: group.Status,
	})
	return group, nil
}

func (s *GroupService) publish(ctx context.Context, eventType events.EventType, groupID int64, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		GroupID:   groupID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
