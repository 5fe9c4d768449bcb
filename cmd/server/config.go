package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type config struct {
	bind            string
	port            int
	boardsFile      string
	storageType     string
	redisURL        string
	sessionDuration time.Duration
	verbose         bool
}

func (c *config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.storageType == "redis" && c.redisURL == "" {
		return errors.New("--redis-url is required when --storage is redis")
	}
	return nil
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("WORDSNPICS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "wordsnpics-server",
		Short:         "Serves the daily word-to-image puzzle API.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "", "address to bind to (env: WORDSNPICS_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: WORDSNPICS_PORT)")
	fs.StringVar(&cfg.boardsFile, "boards-file", "data/boards.json", "path to the boards seed file (env: WORDSNPICS_BOARDS_FILE)")
	fs.StringVar(&cfg.storageType, "storage", "memory", "storage backend, memory or redis (env: WORDSNPICS_STORAGE)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL (env: WORDSNPICS_REDIS_URL)")
	fs.DurationVar(&cfg.sessionDuration, "session-duration", 24*time.Hour, "lifetime of auth sessions (env: WORDSNPICS_SESSION_DURATION)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging (env: WORDSNPICS_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
