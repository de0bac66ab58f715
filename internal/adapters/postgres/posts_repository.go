package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xoaadil/blogy/internal/platform/postgres"
	"github.com/xoaadil/blogy/internal/posts/domain"
	"github.com/xoaadil/blogy/internal/posts/ports"
)

// pgForeignKeyViolation is the PostgreSQL SQLSTATE for foreign key violations
const pgForeignKeyViolation = "23503"

// PostRepository implements the posts.PostRepository interface using PostgreSQL
type PostRepository struct {
	postgres.BaseRepository // Embed the base repository for common functionality
}

// NewPostRepository creates a new PostgreSQL posts repository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a new repository instance that uses the provided transaction
func (r *PostRepository) WithTx(tx pgx.Tx) ports.PostRepository {
	return &PostRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// Create inserts a new post into the database
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	query, args, err := r.SB.
		Insert("posts").
		Columns(
			"id", "title", "slug", "content", "image_url",
			"author_id", "created_at", "updated_at",
		).
		Values(
			pgtype.UUID{Bytes: post.ID, Valid: true},
			post.Title,
			post.Slug,
			post.Content,
			post.ImageURL,
			pgtype.UUID{Bytes: post.AuthorID, Valid: true},
			pgtype.Timestamptz{Time: post.CreatedAt, Valid: true},
			pgtype.Timestamptz{Time: post.UpdatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Create: build query: %w", err)
	}

	_, err = r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Create: %w", err)
	}

	return nil
}

// Update updates an existing post's editable fields
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	query, args, err := r.SB.
		Update("posts").
		Set("title", post.Title).
		Set("slug", post.Slug).
		Set("content", post.Content).
		Set("image_url", post.ImageURL).
		Set("updated_at", pgtype.Timestamptz{Time: post.UpdatedAt, Valid: true}).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: post.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Update: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrPostNotFound
	}

	return nil
}

// Delete removes a post from the database
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.SB.
		Delete("posts").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrPostNotFound
	}

	return nil
}

// FindByID retrieves a post by its ID, including its liked-by set
func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return r.findOne(ctx, sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}, "FindByID")
}

// FindBySlug retrieves a post by its URL slug, including its liked-by set
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return r.findOne(ctx, sq.Eq{"slug": slug}, "FindBySlug")
}

func (r *PostRepository) findOne(ctx context.Context, where sq.Eq, op string) (*domain.Post, error) {
	query, args, err := r.SB.
		Select(
			"id", "title", "slug", "content", "image_url",
			"author_id", "created_at", "updated_at",
		).
		From("posts").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.%s: build query: %w", op, err)
	}

	row := r.DB.QueryRow(ctx, query, args...)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("PostRepository.%s: %w", op, err)
	}

	likedBy, err := r.ListLikers(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("PostRepository.%s: %w", op, err)
	}
	post.LikedBy = likedBy

	return post, nil
}

// ListSummaries retrieves a list of post summaries based on the filter
func (r *PostRepository) ListSummaries(ctx context.Context, filter ports.ListFilter) ([]*ports.PostSummary, error) {
	qb := r.SB.Select(
		"p.id", "p.title", "p.slug", "p.image_url",
		"p.author_id", "u.name as author_name",
		"(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) as like_count",
		"p.created_at", "p.updated_at",
	).
		From("posts p").
		LeftJoin("users u ON p.author_id = u.id")

	qb = applyFilters(qb, filter)

	orderColumn := getOrderColumn(filter.OrderBy)
	if filter.OrderDesc {
		qb = qb.OrderBy(fmt.Sprintf("%s DESC", orderColumn))
	} else {
		qb = qb.OrderBy(fmt.Sprintf("%s ASC", orderColumn))
	}

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.ListSummaries: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("PostRepository.ListSummaries: %w", err)
	}
	defer rows.Close()

	var summaries []*ports.PostSummary
	for rows.Next() {
		summary, err := scanPostSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostRepository.ListSummaries: rows error: %w", err)
	}

	return summaries, nil
}

// Count returns the total number of posts matching the filter
func (r *PostRepository) Count(ctx context.Context, filter ports.ListFilter) (int, error) {
	qb := r.SB.Select("COUNT(*)").From("posts p")

	qb = applyFilters(qb, filter)

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("PostRepository.Count: build query: %w", err)
	}

	var count int
	err = r.DB.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("PostRepository.Count: %w", err)
	}

	return count, nil
}

// SlugExists checks if a slug already exists, optionally excluding a specific post ID
func (r *PostRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	subQuery := r.SB.Select("1").From("posts").Where(sq.Eq{"slug": slug})

	if excludeID != nil {
		subQuery = subQuery.Where(sq.NotEq{"id": pgtype.UUID{Bytes: *excludeID, Valid: true}})
	}

	subQuerySQL, subQueryArgs, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("PostRepository.SlugExists: build subquery: %w", err)
	}

	// Construct the EXISTS query manually since squirrel doesn't support it directly
	query := fmt.Sprintf("SELECT EXISTS(%s)", subQuerySQL)

	var exists bool
	err = r.DB.QueryRow(ctx, query, subQueryArgs...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("PostRepository.SlugExists: %w", err)
	}

	return exists, nil
}

// ToggleLike flips the user's membership in the post's liked-by set.
// The insert is conditional on the (post_id, user_id) primary key, so
// under concurrent toggles exactly one of two racing inserts wins and
// the loser observes the row and deletes it. No post row is read first.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	insert, args, err := r.SB.
		Insert("post_likes").
		Columns("post_id", "user_id").
		Values(
			pgtype.UUID{Bytes: postID, Valid: true},
			pgtype.UUID{Bytes: userID, Valid: true},
		).
		Suffix("ON CONFLICT (post_id, user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("PostRepository.ToggleLike: build insert: %w", err)
	}

	result, err := r.DB.Exec(ctx, insert, args...)
	if err != nil {
		// The post row can vanish between the caller's existence
		// check and this insert. The foreign key on post_id turns
		// that race into a not-found, not an internal error.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation &&
			strings.Contains(pgErr.ConstraintName, "post_id") {
			return false, ports.ErrPostNotFound
		}
		return false, fmt.Errorf("PostRepository.ToggleLike: %w", err)
	}

	if result.RowsAffected() > 0 {
		// Row inserted: the user now likes the post
		return true, nil
	}

	// Already liked: remove the membership
	del, args, err := r.SB.
		Delete("post_likes").
		Where(sq.Eq{
			"post_id": pgtype.UUID{Bytes: postID, Valid: true},
			"user_id": pgtype.UUID{Bytes: userID, Valid: true},
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("PostRepository.ToggleLike: build delete: %w", err)
	}

	if _, err := r.DB.Exec(ctx, del, args...); err != nil {
		return false, fmt.Errorf("PostRepository.ToggleLike: %w", err)
	}

	return false, nil
}

// ListLikers returns the ids of users currently liking the post
func (r *PostRepository) ListLikers(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	query, args, err := r.SB.
		Select("user_id").
		From("post_likes").
		Where(sq.Eq{"post_id": pgtype.UUID{Bytes: postID, Valid: true}}).
		OrderBy("liked_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.ListLikers: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("PostRepository.ListLikers: %w", err)
	}
	defer rows.Close()

	likers := []uuid.UUID{}
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("PostRepository.ListLikers: scan: %w", err)
		}
		likers = append(likers, uuid.UUID(id.Bytes))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostRepository.ListLikers: rows error: %w", err)
	}

	return likers, nil
}

// GetPostAuthor retrieves just the author ID for a post (for existence and ownership checks)
func (r *PostRepository) GetPostAuthor(ctx context.Context, postID uuid.UUID) (uuid.UUID, error) {
	query, args, err := r.SB.
		Select("author_id").
		From("posts").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: postID, Valid: true}}).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("PostRepository.GetPostAuthor: build query: %w", err)
	}

	var authorIDBytes pgtype.UUID
	err = r.DB.QueryRow(ctx, query, args...).Scan(&authorIDBytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ports.ErrPostNotFound
		}
		return uuid.Nil, fmt.Errorf("PostRepository.GetPostAuthor: %w", err)
	}

	return uuid.UUID(authorIDBytes.Bytes), nil
}

// Helper methods

// applyFilters applies common WHERE clauses to a query builder
func applyFilters(qb sq.SelectBuilder, filter ports.ListFilter) sq.SelectBuilder {
	if filter.AuthorID != nil {
		qb = qb.Where(sq.Eq{"p.author_id": pgtype.UUID{Bytes: *filter.AuthorID, Valid: true}})
	}

	if filter.SearchQuery != "" {
		qb = qb.Where(sq.Like{"p.title": "%" + filter.SearchQuery + "%"})
	}

	return qb
}

// getOrderColumn validates and returns the actual column name for ordering
func getOrderColumn(field ports.OrderField) string {
	switch field {
	case ports.OrderByCreatedAt:
		return "p.created_at"
	case ports.OrderByUpdatedAt:
		return "p.updated_at"
	case ports.OrderByTitle:
		return "p.title"
	default:
		return "p.created_at"
	}
}

// scanPost scans a single post from pgx.Row
func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	var idBytes, authorIDBytes pgtype.UUID
	var imageURL pgtype.Text

	err := row.Scan(
		&idBytes,
		&post.Title,
		&post.Slug,
		&post.Content,
		&imageURL,
		&authorIDBytes,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanPost: %w", err)
	}

	post.ID = uuid.UUID(idBytes.Bytes)
	post.AuthorID = uuid.UUID(authorIDBytes.Bytes)

	if imageURL.Valid {
		post.ImageURL = imageURL.String
	}

	return &post, nil
}

// scanPostSummary scans a post summary from pgx.Rows
func scanPostSummary(rows pgx.Rows) (*ports.PostSummary, error) {
	var summary ports.PostSummary
	var idBytes, authorIDBytes pgtype.UUID
	var imageURL, authorName pgtype.Text

	err := rows.Scan(
		&idBytes,
		&summary.Title,
		&summary.Slug,
		&imageURL,
		&authorIDBytes,
		&authorName,
		&summary.LikeCount,
		&summary.CreatedAt,
		&summary.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanPostSummary: %w", err)
	}

	summary.ID = uuid.UUID(idBytes.Bytes)
	summary.AuthorID = uuid.UUID(authorIDBytes.Bytes)

	if imageURL.Valid {
		summary.ImageURL = imageURL.String
	}
	if authorName.Valid {
		summary.AuthorName = authorName.String
	}

	return &summary, nil
}

// Compile-time check to ensure PostRepository implements ports.PostRepository
var _ ports.PostRepository = (*PostRepository)(nil)
