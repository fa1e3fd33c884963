// Package iodb connects to the source Symbiota database.
// This is an impure I/O package that implements db.Operator
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// operator implements db.Operator for MySQL and PostgreSQL sources.
type operator struct {
	driver string
	pool   *pgxpool.Pool
	sqlDB  *sql.DB
	gormDB *gorm.DB
}

// NewOperator creates a new source operator (without connecting).
func NewOperator() db.Operator {
	return &operator{}
}

// Connect establishes a connection pool to the source database.
func (o *operator) Connect(
	ctx context.Context,
	cfg *config.SourceConfig,
) error {
	var err error
	switch cfg.Driver {
	case "postgres":
		err = o.connectPostgres(ctx, cfg)
	case "mysql":
		err = o.connectMySQL(cfg)
	default:
		return DriverError(cfg.Driver)
	}
	if err != nil {
		return err
	}

	o.gormDB, err = openGorm(cfg.Driver, o.sqlDB)
	if err != nil {
		o.Close()
		return ConnectionError(cfg, err)
	}

	if err = o.sqlDB.PingContext(ctx); err != nil {
		o.Close()
		return ConnectionError(cfg, err)
	}

	o.driver = cfg.Driver
	return nil
}

func (o *operator) connectPostgres(
	ctx context.Context,
	cfg *config.SourceConfig,
) error {
	poolConfig, err := pgxpool.ParseConfig(PostgresDSN(cfg))
	if err != nil {
		return ConnectionError(cfg, err)
	}

	// The pipeline is sequential, a small pool is enough.
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg, err)
	}

	o.pool = pool
	o.sqlDB = stdlib.OpenDBFromPool(pool)
	return nil
}

func (o *operator) connectMySQL(cfg *config.SourceConfig) error {
	connector, err := mysqldrv.NewConnector(MySQLConfig(cfg))
	if err != nil {
		return ConnectionError(cfg, err)
	}

	sqlDB := sql.OpenDB(connector)
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(1)
	o.sqlDB = sqlDB
	return nil
}

func openGorm(driver string, conn *sql.DB) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{Conn: conn})
	default:
		dialector = mysql.New(mysql.Config{Conn: conn})
	}
	return gorm.Open(dialector, gormCfg)
}

// Close releases all database connections.
func (o *operator) Close() error {
	var err error
	if o.sqlDB != nil {
		err = o.sqlDB.Close()
		o.sqlDB = nil
	}
	if o.pool != nil {
		o.pool.Close()
		o.pool = nil
	}
	o.gormDB = nil
	return err
}

// DB returns the gorm handle for building source queries.
func (o *operator) DB() *gorm.DB {
	return o.gormDB
}

func (o *operator) Driver() string {
	return o.driver
}

// PostgresDSN builds a connection URL for a PostgreSQL source.
func PostgresDSN(cfg *config.SourceConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		cfg.Database,
		cfg.SSLMode,
	)
}

// MySQLConfig builds driver settings for a MySQL source. Temporal columns
// are parsed into time.Time in UTC.
func MySQLConfig(cfg *config.SourceConfig) *mysqldrv.Config {
	res := mysqldrv.NewConfig()
	res.User = cfg.User
	res.Passwd = cfg.Password
	res.Net = "tcp"
	res.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	res.DBName = cfg.Database
	res.ParseTime = true
	res.Loc = time.UTC
	res.Params = map[string]string{"charset": "utf8mb4"}
	return res
}
