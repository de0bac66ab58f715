package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xoaadil/blogy/internal/comments/domain"
	"github.com/xoaadil/blogy/internal/comments/ports"
	"github.com/xoaadil/blogy/internal/platform/postgres"
)

// CommentRepository implements the comments.CommentRepository interface using PostgreSQL
type CommentRepository struct {
	postgres.BaseRepository
}

// NewCommentRepository creates a new PostgreSQL comments repository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// Create inserts a new comment into the database
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query, args, err := r.SB.
		Insert("comments").
		Columns("id", "content", "author_id", "post_id", "created_at", "updated_at").
		Values(
			pgtype.UUID{Bytes: comment.ID, Valid: true},
			comment.Content,
			pgtype.UUID{Bytes: comment.AuthorID, Valid: true},
			pgtype.UUID{Bytes: comment.PostID, Valid: true},
			pgtype.Timestamptz{Time: comment.CreatedAt, Valid: true},
			pgtype.Timestamptz{Time: comment.UpdatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("CommentRepository.Create: build query: %w", err)
	}

	_, err = r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("CommentRepository.Create: %w", err)
	}

	return nil
}

// FindByID retrieves a comment by its ID
func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query, args, err := r.SB.
		Select("id", "content", "author_id", "post_id", "created_at", "updated_at").
		From("comments").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.FindByID: build query: %w", err)
	}

	var comment domain.Comment
	var idBytes, authorIDBytes, postIDBytes pgtype.UUID

	err = r.DB.QueryRow(ctx, query, args...).Scan(
		&idBytes,
		&comment.Content,
		&authorIDBytes,
		&postIDBytes,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrCommentNotFound
		}
		return nil, fmt.Errorf("CommentRepository.FindByID: %w", err)
	}

	comment.ID = uuid.UUID(idBytes.Bytes)
	comment.AuthorID = uuid.UUID(authorIDBytes.Bytes)
	comment.PostID = uuid.UUID(postIDBytes.Bytes)

	return &comment, nil
}

// Update updates a comment's content
func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	query, args, err := r.SB.
		Update("comments").
		Set("content", comment.Content).
		Set("updated_at", pgtype.Timestamptz{Time: comment.UpdatedAt, Valid: true}).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: comment.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("CommentRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("CommentRepository.Update: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrCommentNotFound
	}

	return nil
}

// Delete removes a comment from the database
func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.SB.
		Delete("comments").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("CommentRepository.Delete: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("CommentRepository.Delete: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrCommentNotFound
	}

	return nil
}

// ListForPost retrieves all comments for a post, oldest first, with author details joined
func (r *CommentRepository) ListForPost(ctx context.Context, postID uuid.UUID) ([]*ports.CommentWithAuthor, error) {
	query, args, err := r.SB.
		Select(
			"c.id", "c.content", "c.author_id",
			"u.name as author_name", "u.avatar_url",
			"c.post_id", "c.created_at", "c.updated_at",
		).
		From("comments c").
		LeftJoin("users u ON c.author_id = u.id").
		Where(sq.Eq{"c.post_id": pgtype.UUID{Bytes: postID, Valid: true}}).
		OrderBy("c.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.ListForPost: build query: %w", err)
	}

	return r.queryCommentsWithAuthor(ctx, "ListForPost", query, args)
}

// ListByAuthor retrieves all comments written by a user, newest first
func (r *CommentRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*ports.CommentWithAuthor, error) {
	query, args, err := r.SB.
		Select(
			"c.id", "c.content", "c.author_id",
			"u.name as author_name", "u.avatar_url",
			"c.post_id", "c.created_at", "c.updated_at",
		).
		From("comments c").
		LeftJoin("users u ON c.author_id = u.id").
		Where(sq.Eq{"c.author_id": pgtype.UUID{Bytes: authorID, Valid: true}}).
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.ListByAuthor: build query: %w", err)
	}

	return r.queryCommentsWithAuthor(ctx, "ListByAuthor", query, args)
}

// DeleteByPost removes all comments attached to a post and reports how many were removed
func (r *CommentRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	query, args, err := r.SB.
		Delete("comments").
		Where(sq.Eq{"post_id": pgtype.UUID{Bytes: postID, Valid: true}}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("CommentRepository.DeleteByPost: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("CommentRepository.DeleteByPost: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *CommentRepository) queryCommentsWithAuthor(ctx context.Context, op, query string, args []interface{}) ([]*ports.CommentWithAuthor, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("CommentRepository.%s: %w", op, err)
	}
	defer rows.Close()

	var comments []*ports.CommentWithAuthor
	for rows.Next() {
		var comment ports.CommentWithAuthor
		var idBytes, authorIDBytes, postIDBytes pgtype.UUID
		var authorName, avatarURL pgtype.Text

		err := rows.Scan(
			&idBytes,
			&comment.Content,
			&authorIDBytes,
			&authorName,
			&avatarURL,
			&postIDBytes,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("CommentRepository.%s: scan: %w", op, err)
		}

		comment.ID = uuid.UUID(idBytes.Bytes)
		comment.AuthorID = uuid.UUID(authorIDBytes.Bytes)
		comment.PostID = uuid.UUID(postIDBytes.Bytes)

		if authorName.Valid {
			comment.AuthorName = authorName.String
		}
		if avatarURL.Valid {
			comment.AvatarURL = avatarURL.String
		}

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CommentRepository.%s: rows error: %w", op, err)
	}

	return comments, nil
}

// Compile-time check to ensure CommentRepository implements ports.CommentRepository
var _ ports.CommentRepository = (*CommentRepository)(nil)
