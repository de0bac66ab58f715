package application

import (
	"github.com/google/wire"
	"github.com/xoaadil/blogy/internal/comments/ports"
)

// ProviderSet is the wire provider set for the comments application layer
var ProviderSet = wire.NewSet(
	NewCommentsService,
	NewPostAdapter,
	wire.Bind(new(ports.PostProvider), new(*PostAdapter)),
)
