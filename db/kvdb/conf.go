package kvdb

import (
	"net"
	"strconv"
)

// Conf is the content of config/.kv-databases.json
type Conf struct {
	Type string `json:"type"` // redis
	Host string `json:"host"`
	Port int    `json:"port"`
	PW   string `json:"pw"`
	DB   int    `json:"db"` // optional db number e.g. redis
}

func (c *Conf) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
