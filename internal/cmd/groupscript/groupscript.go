// Package groupscript runs a Lua script against one group of a stored world.
package groupscript

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	platformcmd "github.com/louisbranch/partybind/internal/platform/cmd"
	apperrors "github.com/louisbranch/partybind/internal/platform/errors"
	"github.com/louisbranch/partybind/internal/platform/otel"
	"github.com/louisbranch/partybind/internal/script/luascript"
	"github.com/louisbranch/partybind/internal/world"
	"github.com/louisbranch/partybind/internal/world/sqlite"
)

// Config holds groupscript command configuration.
type Config struct {
	Database string        `env:"PARTYBIND_DB"             envDefault:"data/world.db"`
	Script   string        `env:"PARTYBIND_SCRIPT"`
	Group    string        `env:"PARTYBIND_GROUP"`
	Player   string        `env:"PARTYBIND_PLAYER"`
	Persist  bool          `env:"PARTYBIND_PERSIST"`
	Verbose  bool          `env:"PARTYBIND_VERBOSE"`
	Timeout  time.Duration `env:"PARTYBIND_SCRIPT_TIMEOUT" envDefault:"10s"`
	OTel     otel.Config
}

// ParseConfig parses env defaults and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}

	fs.StringVar(&cfg.Database, "db", cfg.Database, "path to the world database")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "path to the lua script")
	fs.StringVar(&cfg.Group, "group", cfg.Group, "guid of the group exposed as 'group'")
	fs.StringVar(&cfg.Player, "player", cfg.Player, "name of the online player exposed as 'player'")
	fs.BoolVar(&cfg.Persist, "persist", cfg.Persist, "save the world after the script succeeds")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log every group method call")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "script timeout")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the groupscript command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Script == "" {
		return errors.New("script path is required")
	}

	store, err := sqlite.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	w, err := store.Load(ctx)
	if err != nil {
		return err
	}

	engine := luascript.New(luascript.Config{
		Registry: w,
		Logger:   log.New(errOut, "", 0),
		Verbose:  cfg.Verbose,
	})
	if cfg.Group != "" {
		guid, err := world.ParseObjectGuid(cfg.Group)
		if err != nil {
			return fmt.Errorf("parse group guid: %w", err)
		}
		g := w.FindGroup(guid)
		if g == nil {
			return apperrors.WithMetadata(apperrors.CodeNotFound, "group not found", map[string]string{
				"guid": guid.String(),
			})
		}
		engine.SetGroup("group", g)
	}
	if cfg.Player != "" {
		p := w.FindPlayerByName(cfg.Player)
		if p == nil {
			return apperrors.WithMetadata(apperrors.CodeNotFound, "player not found", map[string]string{
				"name": cfg.Player,
			})
		}
		engine.SetPlayer("player", p)
	}

	runCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if err := engine.RunFile(runCtx, cfg.Script); err != nil {
		return err
	}

	if cfg.Persist {
		if err := store.Save(ctx, w); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "%d players, %d groups\n", len(w.Players()), len(w.Groups()))
	return nil
}
