package deps

import (
	"time"

	"filmorate-server/internal/repos"
	pkgcache "filmorate-server/pkg/cache"
)

// ServerDeps holds the dependencies required by handlers and server.
type ServerDeps struct {
	Repo        *repos.Repository
	Cache       pkgcache.Cache
	CORSOrigins []string
	StartedAt   time.Time
}
