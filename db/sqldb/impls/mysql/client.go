package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql" // side-effect
	"github.com/zeptools/invoicer/db/sqldb"
)

const DBType = "mysql"

func init() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

type Client struct {
	Handle // [Embedded] for Promoted Methods
	Conf   *sqldb.Conf
	dsn    string
}

// Ensure mysql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func (c *Client) Init() error {
	var err error
	if c.Conf.DSN != "" {
		c.dsn = c.Conf.DSN
	} else {
		c.dsn = fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=%s&sql_mode=ANSI_QUOTES",
			c.Conf.User,
			c.Conf.PW,
			c.Conf.Host,
			c.Conf.Port,
			c.Conf.DB,
			c.Conf.TZ,
		)
	}
	if c.DB, err = sql.Open("mysql", c.dsn); err != nil {
		return err
	}
	c.DB.SetConnMaxLifetime(time.Minute * 3)
	c.DB.SetMaxOpenConns(10)
	c.DB.SetMaxIdleConns(10)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = c.Ping(ctx); err != nil {
		return fmt.Errorf("mysql ping failed: %w", err)
	}
	log.Println("[INFO] mysql client initialized")
	return nil
}

func (c *Client) GetConf() *sqldb.Conf {
	return c.Conf
}

func (c *Client) GetDSN() string {
	return c.dsn
}

func (c *Client) DBType() string {
	return DBType
}

func (c *Client) Ping(ctx context.Context) error {
	if c.DB == nil {
		return fmt.Errorf("mysql client not initialized")
	}
	return c.DB.PingContext(ctx)
}

func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}
	log.Println("[INFO] closing mysql client")
	err := c.DB.Close()
	if err != nil {
		return err
	}
	log.Println("[INFO] mysql client closed")
	return nil
}
