// Command flowext invokes flows on a hosted workflow engine from the
// command line
package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/afawcett/flowextensions"
	"github.com/afawcett/flowextensions/internal/config"
	"github.com/afawcett/flowextensions/pkg/flow"
	"github.com/afawcett/flowextensions/pkg/log"
	"github.com/afawcett/flowextensions/pkg/store"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	_ "modernc.org/sqlite"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// app carries the configuration shared by the subcommands
type app struct {
	cfg *config.Config
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	var (
		engineURL string
		logLevel  string
		timeout   int64
		source    string
	)

	cmd := &cobra.Command{
		Use:          "flowext",
		Short:        "Invoke flows on a hosted workflow engine",
		Version:      flowextensions.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.NewDefaultConfig()
			if err := cfg.LoadFromEnv(); err != nil {
				return err
			}

			flags := cmd.Root().PersistentFlags()
			if flags.Changed("engine-url") {
				cfg.EngineURL = engineURL
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("timeout") {
				cfg.RequestTimeout = timeout
			}
			if flags.Changed("source") {
				cfg.RecordSource = source
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			setupLogging(cfg)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&engineURL, "engine-url", config.DefaultEngineURL,
		"base URL of the hosted engine")
	flags.StringVar(&logLevel, "log-level", config.DefaultLogLevel,
		"log level: debug, info, warn, or error")
	flags.Int64Var(&timeout, "timeout", config.DefaultRequestTimeout,
		"request timeout in milliseconds")
	flags.StringVar(&source, "source", config.DefaultRecordSource,
		"record source: engine, redis, or sqlite")

	cmd.AddCommand(newInvokeCommand(a))
	cmd.AddCommand(newResolveCommand(a))
	cmd.AddCommand(newRecordCommand(a))
	return cmd
}

func setupLogging(cfg *config.Config) {
	level, ok := logLevels[cfg.LogLevel]
	if !ok {
		level = slog.LevelInfo
	}
	logger := log.NewWithLevel(
		flowextensions.Name, "cli", flowextensions.Version, level,
	)
	slog.SetDefault(logger)
}

// newClient builds the engine client, routing record lookups to the
// configured source. The returned cleanup closes any local store
func (a *app) newClient() (*flow.Client, func(), error) {
	opts := []flow.Option{flow.WithTimeout(a.cfg.Timeout())}
	cleanup := func() {}

	switch a.cfg.RecordSource {
	case config.RecordSourceRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		cleanup = func() { _ = rdb.Close() }
		opts = append(opts, flow.WithStore(
			store.NewRedis(rdb, a.cfg.RedisPrefix)))

	case config.RecordSourceSQLite:
		db, err := sql.Open("sqlite", a.cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		st, err := store.NewSQLite(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		cleanup = func() { _ = db.Close() }
		opts = append(opts, flow.WithStore(st))
	}

	return flow.NewClient(a.cfg.EngineURL, opts...), cleanup, nil
}

// parseValue interprets a flag value as JSON when possible, so numbers,
// booleans, and structured values arrive typed. Anything else stays a
// string
func parseValue(s string) any {
	if gjson.Valid(s) {
		return gjson.Parse(s).Value()
	}
	return s
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
