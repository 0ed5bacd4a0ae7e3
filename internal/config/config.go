package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	DBDriver string // mysql | postgres | sqlite

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresDSN string
	SQLitePath  string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	CustodyAddress string
	AuctionAddress string

	KeeperAddress  string
	KeeperSchedule string
	KeeperBatch    int

	KafkaBrokers  []string
	KafkaTopic    string
	RelaySchedule string

	LogLevel       string
	SandboxEnabled bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment, after applying a .env file when one exists.
// Variables already set in the environment win over the file.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		DBDriver:  getenv("DB_DRIVER", "mysql"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "lending"),
		MySQLUser: getenv("MYSQL_USER", "lending"),
		MySQLPass: getenv("MYSQL_PASS", "lending"),

		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		SQLitePath:  getenv("SQLITE_PATH", "lending.db"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		CustodyAddress: os.Getenv("CUSTODY_ADDRESS"),
		AuctionAddress: os.Getenv("AUCTION_ADDRESS"),

		KeeperAddress:  os.Getenv("KEEPER_ADDRESS"),
		KeeperSchedule: os.Getenv("KEEPER_SCHEDULE"),
		KeeperBatch:    getint("KEEPER_BATCH", 50),

		KafkaTopic:    getenv("KAFKA_TOPIC", "loan-events"),
		RelaySchedule: getenv("RELAY_SCHEDULE", "@every 5s"),

		LogLevel:       getenv("LOG_LEVEL", "info"),
		SandboxEnabled: getenv("SANDBOX_ENABLED", "false") == "true",
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				c.KafkaBrokers = append(c.KafkaBrokers, b)
			}
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if err := requireAddress("CUSTODY_ADDRESS", c.CustodyAddress); err != nil {
		return err
	}
	if err := requireAddress("AUCTION_ADDRESS", c.AuctionAddress); err != nil {
		return err
	}
	if c.Custody() == c.Auction() {
		return errors.New("CUSTODY_ADDRESS and AUCTION_ADDRESS must differ")
	}
	if c.KeeperSchedule != "" {
		if err := requireAddress("KEEPER_ADDRESS", c.KeeperAddress); err != nil {
			return err
		}
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("missing KAFKA_TOPIC")
	}
	return nil
}

func requireAddress(key, v string) error {
	if v == "" {
		return fmt.Errorf("missing %s", key)
	}
	if !common.IsHexAddress(v) {
		return fmt.Errorf("invalid %s %q: not a hex address", key, v)
	}
	if common.HexToAddress(v) == (common.Address{}) {
		return fmt.Errorf("invalid %s: zero address", key)
	}
	return nil
}

func (c *Config) Custody() common.Address { return common.HexToAddress(c.CustodyAddress) }
func (c *Config) Auction() common.Address { return common.HexToAddress(c.AuctionAddress) }
func (c *Config) Keeper() common.Address { return common.HexToAddress(c.KeeperAddress) }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN is the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return c.PostgresDSN
	case "sqlite":
		return c.SQLitePath
	default:
		return c.MySQLDSN()
	}
}
