package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ginraidee/config"
	"ginraidee/logging"
	"ginraidee/spin-cli/internal/client"
	"ginraidee/spin-cli/internal/domain"
	"ginraidee/spin-cli/internal/spin"
)

type options struct {
	api         string
	categories  string
	minPrice    float64
	maxPrice    float64
	minDuration time.Duration
	tick        time.Duration
	timeout     time.Duration
	stateDir    string
	logLevel    string
}

func parseFlags(args []string, settings *config.Settings) (options, error) {
	def := spin.DefaultConfig()
	var o options
	fs := flag.NewFlagSet("spin-cli", flag.ContinueOnError)
	fs.StringVar(&o.api, "api", settings.PublicURL, "gateway base URL")
	fs.StringVar(&o.categories, "category", "", "comma separated categories (thai, japanese, korean, western, fastfood, dessert)")
	fs.Float64Var(&o.minPrice, "min-price", -1, "minimum price, negative for none")
	fs.Float64Var(&o.maxPrice, "max-price", -1, "maximum price, negative for none")
	fs.DurationVar(&o.minDuration, "min-duration", def.MinDuration, "shortest shuffle animation")
	fs.DurationVar(&o.tick, "tick", def.Tick, "shuffle frame interval")
	fs.DurationVar(&o.timeout, "timeout", def.Timeout, "pick request timeout")
	fs.StringVar(&o.stateDir, "state-dir", defaultStateDir(), "where the user id is kept")
	fs.StringVar(&o.logLevel, "log-level", "warn", "debug, info, warn or error")
	err := fs.Parse(args)
	return o, err
}

func (o options) filter() domain.Filter {
	var f domain.Filter
	for _, c := range strings.Split(strings.ToLower(o.categories), ",") {
		if c = strings.TrimSpace(c); c != "" && c != "all" {
			f.Categories = append(f.Categories, c)
		}
	}
	if o.minPrice >= 0 {
		v := o.minPrice
		f.MinPrice = &v
	}
	if o.maxPrice >= 0 {
		v := o.maxPrice
		f.MaxPrice = &v
	}
	return f
}

type app struct {
	api      *client.Client
	seq      *spin.Sequencer
	recorder *spin.Recorder
	view     *renderer
	userID   string

	// generation of the last result that received feedback
	ratedGeneration uint64
}

func newApp(o options, userID string, out io.Writer) *app {
	api := client.New(o.api, nil)
	exclude := spin.NewExclusionSet()
	seq := spin.NewSequencer(api, api, exclude, spin.Config{
		MinDuration: o.minDuration,
		Tick:        o.tick,
		Timeout:     o.timeout,
	})
	seq.SetFilter(o.filter())

	view := &renderer{out: out}
	seq.OnChange(view.draw)

	return &app{
		api:      api,
		seq:      seq,
		recorder: spin.NewRecorder(api, exclude, 5*time.Second),
		view:     view,
		userID:   userID,
	}
}

// prepare registers the user and loads the catalog the animation draws
// from. Both are optional for spinning.
func (a *app) prepare(ctx context.Context) {
	if id, err := a.api.InitUser(ctx, a.userID); err != nil {
		logging.Warn().Err(err).Msg("user init failed")
	} else if id != "" {
		a.userID = id
	}
	items, err := a.api.Catalog(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("catalog unavailable, shuffle will not animate")
		return
	}
	a.seq.SetCatalog(items)
}

// run reads one command per line until quit, EOF or ctx is done.
func (a *app) run(ctx context.Context, in io.Reader) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- strings.ToLower(strings.TrimSpace(scanner.Text()))
		}
	}()

	a.view.draw(a.seq.Snapshot())
	for {
		var cmd string
		select {
		case <-ctx.Done():
			a.seq.Cancel()
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			cmd = line
		}

		switch cmd {
		case "q", "quit":
			return
		case "", "s", "spin":
			done, err := a.seq.Spin(ctx, a.userID)
			if err != nil {
				continue
			}
			select {
			case <-done:
			case <-ctx.Done():
				a.seq.Cancel()
				return
			}
		case "l", "like", "d", "dislike":
			snap := a.seq.Snapshot()
			if snap.State != spin.StateResult || snap.Result == nil {
				a.view.draw(snap)
				continue
			}
			if snap.Generation == a.ratedGeneration {
				a.view.println("already rated, spin again")
				a.view.draw(spin.Snapshot{State: spin.StateIdle})
				continue
			}
			action := domain.ActionLike
			if cmd[0] == 'd' {
				action = domain.ActionDislike
			}
			a.ratedGeneration = snap.Generation
			a.recorder.Record(ctx, a.userID, snap.Result.ID, action)
			a.view.println("thanks!")
			a.view.draw(spin.Snapshot{State: spin.StateIdle})
		default:
			a.view.draw(a.seq.Snapshot())
		}
	}
}

func main() {
	settings := config.Load("")
	o, err := parseFlags(os.Args[1:], settings)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	logging.Init(logging.Config{Level: o.logLevel, Format: "console", Service: "spin-cli"})

	userID, err := loadUserID(o.stateDir)
	if err != nil {
		logging.Warn().Err(err).Msg("could not persist user id, continuing anonymously")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(o, userID, os.Stdout)
	prepareCtx, cancel := context.WithTimeout(ctx, o.timeout)
	a.prepare(prepareCtx)
	cancel()

	a.run(ctx, os.Stdin)
}
