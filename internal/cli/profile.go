package cli

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"github.com/kolkov/elvas/internal/log"
)

var profileModes = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

type profileConfig struct {
	Mode string `default:""  enum:",${profileModes}" help:"Enable profiling." hidden:"" placeholder:"MODE"`
	Dir  string `default:"." help:"Profile output directory." hidden:"" type:"path"`
}

func (profileConfig) vars() kong.Vars {
	return kong.Vars{
		"profileModes": strings.Join(slices.Sorted(maps.Keys(profileModes)), ","),
	}
}

func (profileConfig) group() kong.Group {
	var group kong.Group

	group.Key = "profile"
	group.Title = "Profiling"

	return group
}

// start starts profiling if a mode is set and returns the function that
// stops it.
func (f profileConfig) start(ctx context.Context) (stop func()) {
	mode, ok := profileModes[f.Mode]
	if !ok {
		return func() {}
	}

	log.Debug("profile start",
		slog.String("mode", f.Mode),
		slog.String("dir", f.Dir),
	)

	p := profile.Start(mode, profile.ProfilePath(f.Dir), profile.Quiet, profile.NoShutdownHook)

	return func() {
		p.Stop()
		log.Debug("profile stop",
			slog.String("mode", f.Mode),
			slog.String("dir", f.Dir),
			slog.Bool("canceled", ctx.Err() != nil),
		)
	}
}
