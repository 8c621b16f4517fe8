package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/wa-group-directory/internal/domain"
)

// GroupFilter captures public listing parameters.
type GroupFilter struct {
	Search *string
	Jenis  *string
	Status *domain.GroupStatus
}

// GroupUpdate carries the fields of a partial update. A nil field is left
// untouched; callers decide what counts as "not provided".
type GroupUpdate struct {
	Nama   *string
	Link   *string
	Jenis  *string
	Status *domain.GroupStatus
}

// GroupRepository encapsulates group persistence.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	Update(ctx context.Context, id int64, update GroupUpdate) (*domain.Group, error)
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status domain.GroupStatus) (*domain.Group, error)
	ListWithFilter(ctx context.Context, filter GroupFilter) ([]domain.Group, error)
	DistinctJenis(ctx context.Context) ([]string, error)
}

type groupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository instantiates repository.
func NewGroupRepository(pool *pgxpool.Pool) GroupRepository {
	return &groupRepository{pool: pool}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	const query = `
        INSERT INTO groups (nama, link, jenis, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		group.Nama,
		group.Link,
		group.Jenis,
		group.Status,
	).Scan(&group.ID, &group.CreatedAt)
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	const query = `
        SELECT id, nama, link, jenis, status, created_at
        FROM groups WHERE id=$1`

	var group domain.Group
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Nama,
		&group.Link,
		&group.Jenis,
		&group.Status,
		&group.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &group, nil
}

// Update applies only the set fields. With no fields set it degenerates to a
// plain read so the caller still gets the current row back.
func (r *groupRepository) Update(ctx context.Context, id int64, update GroupUpdate) (*domain.Group, error) {
	sets := []string{}
	args := []any{}

	if update.Nama != nil {
		args = append(args, *update.Nama)
		sets = append(sets, fmt.Sprintf("nama=$%d", len(args)))
	}
	if update.Link != nil {
		args = append(args, *update.Link)
		sets = append(sets, fmt.Sprintf("link=$%d", len(args)))
	}
	if update.Jenis != nil {
		args = append(args, *update.Jenis)
		sets = append(sets, fmt.Sprintf("jenis=$%d", len(args)))
	}
	if update.Status != nil {
		args = append(args, *update.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
        UPDATE groups SET %s WHERE id=$%d
        RETURNING id, nama, link, jenis, status, created_at`,
		strings.Join(sets, ", "), len(args))

	var group domain.Group
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&group.ID,
		&group.Nama,
		&group.Link,
		&group.Jenis,
		&group.Status,
		&group.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM groups WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *groupRepository) SetStatus(ctx context.Context, id int64, status domain.GroupStatus) (*domain.Group, error) {
	const query = `
        UPDATE groups SET status=$1 WHERE id=$2
        RETURNING id, nama, link, jenis, status, created_at`

	var group domain.Group
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(
		&group.ID,
		&group.Nama,
		&group.Link,
		&group.Jenis,
		&group.Status,
		&group.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) ListWithFilter(ctx context.Context, filter GroupFilter) ([]domain.Group, error) {
	base := `SELECT id, nama, link, jenis, status, created_at FROM groups`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.TrimSpace(*filter.Search) + "%"
		args = append(args, search)
		clauses = append(clauses, fmt.Sprintf("nama ILIKE $%d", len(args)))
	}
	if filter.Jenis != nil {
		args = append(args, *filter.Jenis)
		clauses = append(clauses, fmt.Sprintf("jenis=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC`,
		base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGroups(rows)
}

// DistinctJenis returns the set of category labels currently in use. The
// category list has no table of its own; it is purely a read projection.
func (r *groupRepository) DistinctJenis(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT jenis FROM groups ORDER BY jenis`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var jenis string
		if err := rows.Scan(&jenis); err != nil {
			return nil, err
		}
		result = append(result, jenis)
	}
	return result, rows.Err()
}

func scanGroups(rows pgx.Rows) ([]domain.Group, error) {
	var result []domain.Group
	for rows.Next() {
		var group domain.Group
		if err := rows.Scan(
			&group.ID,
			&group.Nama,
			&group.Link,
			&group.Jenis,
			&group.Status,
			&group.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, group)
	}
	return result, rows.Err()
}
