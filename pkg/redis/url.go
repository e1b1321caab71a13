package redis

import (
	"net"
	"net/url"
	"strconv"

	"github.com/knijam/jason/pkg/config"
)

// URL renders the connection URL described by the RedisMixin fields.
// The password is included only when REDIS_PASS is set; db selects a
// logical database when non-nil.
func URL(cfg *config.Config, db *int64) (string, error) {
	if err := cfg.Require(config.RedisMixin, "cache"); err != nil {
		return "", err
	}
	return Render(cfg, db), nil
}

// Render builds the URL without a capability check. Callers that already
// checked for config.RedisMixin with their own wording use it.
func Render(cfg *config.Config, db *int64) string {
	u := url.URL{
		Scheme: cfg.String(config.RedisDriver),
		Host:   net.JoinHostPort(cfg.String(config.RedisHost), strconv.FormatInt(cfg.Int(config.RedisPort), 10)),
	}
	if pass := cfg.StringPtr(config.RedisPass); pass != nil {
		u.User = url.UserPassword("", *pass)
	}
	if db != nil {
		u.Path = "/" + strconv.FormatInt(*db, 10)
	}
	return u.String()
}
