package middleware

import (
	"github.com/google/wire"
	"github.com/xoaadil/blogy/internal/auth"
)

// ProviderSet is the wire provider set for HTTP middleware
var ProviderSet = wire.NewSet(
	NewAuthenticator,
	wire.Bind(new(ActorResolver), new(*auth.Service)),
)
