package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	appconfig "github.com/doeshing/textpolish/internal/application/config"
	"github.com/doeshing/textpolish/internal/application/controller"
	"github.com/doeshing/textpolish/internal/application/doctor"
	"github.com/doeshing/textpolish/internal/application/history"
	"github.com/doeshing/textpolish/internal/application/improve"
	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/infrastructure/ai"
	"github.com/doeshing/textpolish/internal/infrastructure/config"
	"github.com/doeshing/textpolish/internal/infrastructure/kv"
	"github.com/doeshing/textpolish/internal/pkg/filesystem"
	"github.com/doeshing/textpolish/internal/pkg/logger"
	"github.com/doeshing/textpolish/internal/ports"
)

// ErrMissingCredentials is returned when a tier model has no API key in the environment.
var ErrMissingCredentials = errors.New("missing API credentials")

// Options controls how the container is built.
type Options struct {
	ConfigPath string
	Verbose    bool
	// LogToFile sends log output to logging.file instead of stderr.
	LogToFile bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Store          ports.KeyValueStore
	HistoryStore   *history.Store
	Improver       *improve.Client
	Controller     *controller.Controller
	DoctorService  *doctor.Service

	closers []io.Closer
}

// BuildContainer constructs the dependency graph. Configuration and storage errors are fatal.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", cfgLoader.Path(), err)
	}

	c := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
	}

	log, err := c.buildLogger(cfg, opts)
	if err != nil {
		return nil, err
	}
	c.Logger = log

	store, err := kv.Open(cfg.Storage)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("open %s storage: %w", cfg.GetStorageBackend(), err)
	}
	c.Store = store
	c.closers = append(c.closers, store)

	c.HistoryStore = history.NewStore(store, cfg.GetStorageKey(), log)
	c.Improver = improve.NewClient(cfg, ai.NewFactory(), log)
	c.Controller = controller.New(c.Improver, c.HistoryStore, log, cfg)
	c.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		Store:          store,
		History:        c.HistoryStore,
		Credentials:    ai.ResolveCredential,
	}

	log.Debug("container ready", map[string]interface{}{
		"config":  cfgLoader.Path(),
		"backend": cfg.GetStorageBackend(),
		"key":     cfg.GetStorageKey(),
	})
	return c, nil
}

// RequireCredentials fails when a tier model needs an API key that is not set.
func (c *Container) RequireCredentials() error {
	missing := ai.MissingCredentials(c.Config.TierModels())
	if len(missing) == 0 {
		return nil
	}
	vars := make([]string, 0, len(missing))
	for _, model := range missing {
		name := model.AuthEnvVar
		if name == "" {
			name = ai.FallbackAuthEnvVar
		}
		vars = append(vars, fmt.Sprintf("%s (model %s)", name, model.Name))
	}
	return fmt.Errorf("%w: set %s", ErrMissingCredentials, strings.Join(vars, ", "))
}

// Close releases storage handles and log files.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *Container) buildLogger(cfg domain.Config, opts Options) (*logger.StdLogger, error) {
	if !opts.LogToFile {
		return logger.NewStd(opts.Verbose), nil
	}
	path := filesystem.ExpandHome(cfg.Logging.File)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.SecureFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	c.closers = append(c.closers, file)
	return logger.NewWriter(file, opts.Verbose), nil
}
