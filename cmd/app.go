// Package cmd implements the CLI application to query historical balances.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	coinledger "github.com/coinledger/coinledger"
	"github.com/coinledger/coinledger/store"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&balancesCmd{}, "reports")
	c.Register(&networthCmd{}, "reports")
	c.Register(&amountsCmd{}, "reports")

	c.Register(&importCmd{}, "data")
	c.Register(&exportCmd{}, "data")
	c.Register(&ignoreCmd{}, "settings")
	c.Register(&currencyCmd{}, "settings")
}

// loadConfig reads cledger.yaml from the working directory or
// ~/.config/cledger, with COINLEDGER_* environment overrides.
func loadConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("cledger")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home + "/.config/cledger")
	}
	v.SetEnvPrefix("coinledger")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.dsn", "host=localhost user=cledger dbname=cledger sslmode=disable")
	v.SetDefault("db.max_open_conns", 8)
	v.SetDefault("db.max_idle_conns", 4)
	v.SetDefault("log.level", "warn")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	return v, nil
}

func newLogger(v *viper.Viper) *zap.Logger {
	level, err := zap.ParseAtomicLevel(v.GetString("log.level"))
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// openLedger assembles the store and the engine from the configuration.
// The caller must Close the returned store.
func openLedger() (*coinledger.Ledger, *store.Store, error) {
	v, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(v)

	s, err := store.Open(store.Config{
		DSN:             v.GetString("db.dsn"),
		MaxOpenConns:    v.GetInt("db.max_open_conns"),
		MaxIdleConns:    v.GetInt("db.max_idle_conns"),
		ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		ConnMaxIdleTime: v.GetDuration("db.conn_max_idle_time"),
	}, log)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, nil, err
	}

	ledger := coinledger.NewLedger(s, s, s, s, log)
	return ledger, s, nil
}

// parseTimestamp accepts a unix second count or a date like 2025-08-30 or
// 2025-08-30 15:04:05, interpreted as UTC.
func parseTimestamp(s string) (coinledger.Timestamp, error) {
	if s == "" || s == "now" {
		return coinledger.Now(), nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return coinledger.Timestamp(unix), nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return coinledger.Timestamp(t.Unix()), nil
		}
	}
	return 0, fmt.Errorf("cannot parse timestamp %q", s)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be built (e.g. a dumb terminal).
func printMarkdown(doc string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Println(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Println(doc)
		return
	}
	fmt.Print(out)
}
