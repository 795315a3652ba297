package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"soundcore/internal/asset"
	"soundcore/internal/audio"
	"soundcore/internal/catalog"
	"soundcore/internal/config"
	"soundcore/internal/log"
	"soundcore/internal/output"
	"soundcore/internal/prefs"
)

type playFlags struct {
	seed             uint64
	fast             bool
	localMultiplayer bool
}

var playOpts playFlags

var playCmd = &cobra.Command{
	Use:   "play <catalog> <script>",
	Short: "Run a scripted timeline of game events through the audio manager",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runPlay(ctx, cmd.OutOrStdout(), cfg, args[0], args[1], playOpts)
	},
}

func init() {
	playCmd.Flags().Uint64Var(&playOpts.seed, "seed", 0, "random seed for clip, volume and pitch picks (0 = time based)")
	playCmd.Flags().BoolVar(&playOpts.fast, "fast", false, "tick as fast as possible instead of in real time")
	playCmd.Flags().BoolVar(&playOpts.localMultiplayer, "local-multiplayer", false, "run as a local multiplayer session")
	rootCmd.AddCommand(playCmd)
}

// session answers the local multiplayer question from a flag.
type session bool

func (s session) LocalMultiplayer() bool { return bool(s) }

// fanout renders every tick to several sinks.
type fanout []audio.Sink

func (f fanout) Render(voices []audio.Voice) {
	for _, s := range f {
		s.Render(voices)
	}
}

func runPlay(ctx context.Context, out io.Writer, c *config.Config, catalogPath, scriptPath string, f playFlags) error {
	rate := c.Output.SampleRate
	bank := asset.NewBank(filepath.Dir(catalogPath), rate)
	cat, err := catalog.Load(catalogPath, bank)
	if err != nil {
		return err
	}
	tl, err := loadScript(scriptPath, cat, c.Audio.AmbienceFade)
	if err != nil {
		return err
	}

	opts, err := c.ManagerOptions()
	if err != nil {
		return err
	}
	opts.Catalog = cat
	opts.Seed = f.seed
	opts.Session = session(f.localMultiplayer)

	if c.Prefs.Path != "" {
		store, err := prefs.Open(c.Prefs.Path)
		if err != nil {
			return err
		}
		opts.Prefs = store
	} else {
		opts.Prefs = audio.MemoryPreferences{}
	}

	stats := &output.Null{}
	realtime := !f.fast
	switch c.Output.Backend {
	case config.BackendOto:
		graph := output.NewGraph(opts.Params, rate)
		dev, err := output.Open(graph)
		if err != nil {
			log.Warn(log.CatOutput, "Audio init failed (continuing without sound)", "err", err)
			opts.Bus = stats
			opts.Sink = stats
			break
		}
		defer dev.Close()
		opts.Bus = graph
		opts.Sink = fanout{graph, stats}
		opts.Listener = graph
	default:
		opts.Bus = stats
		opts.Sink = stats
		realtime = false
	}

	m := audio.NewManager(opts)
	var interval time.Duration
	if realtime {
		interval = c.TickInterval()
	}
	step := 1 / float64(max(c.Audio.TickRate, 1))

	log.Info(log.CatAudio, "Playing script", "script", scriptPath, "cues", len(tl.cues), "length", tl.end, "realtime", realtime)
	rs, err := tl.run(ctx, m, step, interval)
	fmt.Fprintf(out, "%d ticks, %d %s, %d pool steals, peak %d %s\n",
		rs.Ticks, rs.Cues, plural(rs.Cues, "event", "events"), m.Pool().Steals(),
		stats.Peak(), plural(int(stats.Peak()), "voice", "voices"))
	return err
}
