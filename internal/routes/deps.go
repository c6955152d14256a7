package routes

import (
	"filmorate-server/internal/repos"
	"filmorate-server/pkg/cache"
)

// Deps holds the dependencies required by the route handlers.
type Deps struct {
	Repo  *repos.Repository
	Cache cache.Cache
}
