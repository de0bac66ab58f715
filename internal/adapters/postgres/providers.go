package postgres

import (
	"github.com/google/wire"
	commentsports "github.com/xoaadil/blogy/internal/comments/ports"
	"github.com/xoaadil/blogy/internal/platform/postgres"
	postsports "github.com/xoaadil/blogy/internal/posts/ports"
	usersports "github.com/xoaadil/blogy/internal/users/ports"
)

// ProviderSet is the wire provider set for postgres repositories
var ProviderSet = wire.NewSet(
	postgres.NewTransactionManager,
	NewUserRepository,
	wire.Bind(new(usersports.UserRepository), new(*UserRepository)),
	NewPostRepository,
	wire.Bind(new(postsports.PostRepository), new(*PostRepository)),
	NewCommentRepository,
	wire.Bind(new(commentsports.CommentRepository), new(*CommentRepository)),
)
