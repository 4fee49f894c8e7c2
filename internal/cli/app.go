package cli

import (
	libclient "github.com/bisonvert/bv.libclient"
	"github.com/bisonvert/bv.libclient/internal/cliconfig"
	"github.com/bisonvert/bv.libclient/internal/logger"
	"github.com/bisonvert/bv.libclient/ratings"
	"github.com/bisonvert/bv.libclient/talks"
	"github.com/bisonvert/bv.libclient/trips"
	"github.com/bisonvert/bv.libclient/users"
)

// app bundles one configured client and its façades for a command run.
type app struct {
	cfg     cliconfig.Config
	client  *libclient.Client
	trips   *trips.Service
	users   *users.Service
	talks   *talks.Service
	ratings *ratings.Service
}

func loadApp(opts *rootOptions) (*app, error) {
	path := opts.profile
	if path == "" {
		var err error
		path, err = cliconfig.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := cliconfig.Load(path)
	if err != nil {
		return nil, err
	}

	client := libclient.New(libclient.Config{
		ServerURL:      cfg.ServerURL,
		APIBasePath:    cfg.APIBase,
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		TokenKey:       cfg.TokenKey,
		TokenSecret:    cfg.TokenSecret,
	})

	logger.L().Debug("app.configured",
		"server_url", cfg.ServerURL,
		"api_base", cfg.APIBase,
		"signed", client.Signed(),
	)

	return &app{
		cfg:     cfg,
		client:  client,
		trips:   trips.NewService(client),
		users:   users.NewService(client),
		talks:   talks.NewService(client),
		ratings: ratings.NewService(client),
	}, nil
}
