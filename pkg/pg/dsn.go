package pg

import (
	"net"
	"net/url"
	"strconv"

	"github.com/knijam/jason/pkg/config"
)

// DSN renders the connection URL described by the PostgresMixin fields.
// In testing mode TEST_DB_URL is returned unchanged. Credentials are
// included only when DB_USER is set; DB_PASS is optional.
func DSN(cfg *config.Config, testing bool) (string, error) {
	if err := cfg.Require(config.PostgresMixin, "database"); err != nil {
		return "", err
	}
	if testing {
		return cfg.String(config.TestDBURL), nil
	}

	u := url.URL{
		Scheme: cfg.String(config.DBDriver),
		Host:   net.JoinHostPort(cfg.String(config.DBHost), strconv.FormatInt(cfg.Int(config.DBPort), 10)),
	}
	if user := cfg.String(config.DBUser); user != "" {
		if pass := cfg.StringPtr(config.DBPass); pass != nil {
			u.User = url.UserPassword(user, *pass)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String(), nil
}
