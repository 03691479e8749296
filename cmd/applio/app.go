package main

import (
	"io"
	"os"

	"github.com/blockedby/applio/internal/cache"
	"github.com/blockedby/applio/internal/config"
	"github.com/blockedby/applio/internal/events"
	"github.com/blockedby/applio/internal/gateway"
	"github.com/blockedby/applio/internal/logger"
	"github.com/blockedby/applio/internal/models"
	"github.com/blockedby/applio/internal/pipeline"
	"github.com/blockedby/applio/internal/profile"
	"github.com/blockedby/applio/internal/session"
	"github.com/blockedby/applio/internal/status"
	"github.com/blockedby/applio/internal/store"
)

// app wires the core packages for one CLI invocation.
type app struct {
	cfg *config.Config
	log *logger.Logger
	out io.Writer

	session   *session.Provider
	client    *gateway.Client
	store     *store.Store
	publisher events.Publisher
	clipboard pipeline.Clipboard

	closers []func()
}

func newApp(cfg *config.Config, out io.Writer) *app {
	log := logger.Get().Component("cli")

	sess := session.New()
	sess.Start(cfg.Token, nil)

	client := gateway.New(cfg.APIBaseURL, sess,
		gateway.WithRateLimiter(gateway.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)),
		gateway.WithLogger(logger.Get().Component("gateway")),
	)

	a := &app{
		cfg:       cfg,
		log:       log,
		out:       out,
		session:   sess,
		client:    client,
		store:     store.New(client),
		publisher: events.Nop{},
		clipboard: pipeline.SystemClipboard{},
	}

	if cfg.NatsURL != "" {
		pub, closeFn, err := events.Connect(cfg.NatsURL)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to nats, publishing disabled")
		} else {
			a.publisher = pub
			a.closers = append(a.closers, closeFn)
		}
	}
	a.store.SetPublisher(a.publisher)

	return a
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) statusMachine() *status.Machine {
	m := status.New(a.client, a.store)
	m.SetPublisher(a.publisher)
	return m
}

func (a *app) coverLetter(rec *models.JobApplication) *pipeline.CoverLetter {
	cl := pipeline.NewCoverLetter(a.client, a.store, rec)
	cl.SetPublisher(a.publisher)
	cl.SetClipboard(a.clipboard)
	return cl
}

func (a *app) aiCv(rec *models.JobApplication, dir string) *pipeline.AiCv {
	if dir == "" {
		dir = a.cfg.DownloadDir
	}
	cv := pipeline.NewAiCv(a.client, a.store, pipeline.DirDownloader{Dir: dir}, rec)
	cv.SetPublisher(a.publisher)
	return cv
}

func (a *app) profile() *profile.Service {
	p := profile.New(a.client)
	p.SetPublisher(a.publisher)
	return p
}

func (a *app) cache() (*cache.DB, error) {
	db, err := cache.Open(a.cfg.CachePath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = db.Close() })
	return db, nil
}

func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
