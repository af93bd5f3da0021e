package sqldb

import "fmt"

// Conf is one entry of config/.sql-databases.json, keyed by database name
type Conf struct {
	Type string `json:"type"` // mysql, pgsql
	Host string `json:"host"`
	Port int    `json:"port"`
	User string `json:"user"`
	PW   string `json:"pw"`
	DB   string `json:"db"`
	TZ   string `json:"tz"`  // Connection Timezone
	DSN  string `json:"dsn"` // To Overwrite Default DSN
}

// String is safe to log: it never includes the password
func (c *Conf) String() string {
	if c.DSN != "" {
		return c.Type + " (custom dsn)"
	}
	return fmt.Sprintf("%s %s@%s:%d/%s", c.Type, c.User, c.Host, c.Port, c.DB)
}
