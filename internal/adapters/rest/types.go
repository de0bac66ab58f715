package rest

import (
	"time"

	"github.com/google/uuid"
	commentsdomain "github.com/xoaadil/blogy/internal/comments/domain"
	commentsports "github.com/xoaadil/blogy/internal/comments/ports"
	postsdomain "github.com/xoaadil/blogy/internal/posts/domain"
	postsports "github.com/xoaadil/blogy/internal/posts/ports"
	usersdomain "github.com/xoaadil/blogy/internal/users/domain"
)

// Request payloads

type SignupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AdminCode string `json:"admin_code,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

type UpdatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// Response payloads

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostResponse struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Slug      string      `json:"slug"`
	Content   string      `json:"content"`
	ImageURL  string      `json:"image_url,omitempty"`
	AuthorID  uuid.UUID   `json:"author_id"`
	LikeCount int         `json:"like_count"`
	LikedBy   []uuid.UUID `json:"liked_by"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type PostSummaryResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	ImageURL   string    `json:"image_url,omitempty"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	LikeCount  int       `json:"like_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PostListResponse struct {
	Posts []PostSummaryResponse `json:"posts"`
	Meta  PaginationMeta        `json:"meta"`
}

type PaginationMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type LikeResponse struct {
	Liked     bool        `json:"liked"`
	LikeCount int         `json:"like_count"`
	LikedBy   []uuid.UUID `json:"liked_by"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	PostID     uuid.UUID `json:"post_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Converters

func domainUserToResponse(user *usersdomain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func domainPostToResponse(post *postsdomain.Post) PostResponse {
	likedBy := post.LikedBy
	if likedBy == nil {
		likedBy = []uuid.UUID{}
	}

	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Slug:      post.Slug,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		AuthorID:  post.AuthorID,
		LikeCount: post.LikeCount(),
		LikedBy:   likedBy,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func postSummaryToResponse(summary *postsports.PostSummary) PostSummaryResponse {
	return PostSummaryResponse{
		ID:         summary.ID,
		Title:      summary.Title,
		Slug:       summary.Slug,
		ImageURL:   summary.ImageURL,
		AuthorID:   summary.AuthorID,
		AuthorName: summary.AuthorName,
		LikeCount:  summary.LikeCount,
		CreatedAt:  summary.CreatedAt,
		UpdatedAt:  summary.UpdatedAt,
	}
}

func domainCommentToResponse(comment *commentsdomain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		AuthorID:  comment.AuthorID,
		PostID:    comment.PostID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func commentWithAuthorToResponse(comment *commentsports.CommentWithAuthor) CommentResponse {
	return CommentResponse{
		ID:         comment.ID,
		Content:    comment.Content,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		AvatarURL:  comment.AvatarURL,
		PostID:     comment.PostID,
		CreatedAt:  comment.CreatedAt,
		UpdatedAt:  comment.UpdatedAt,
	}
}
