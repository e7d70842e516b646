package cmd

import (
	"fmt"

	"gorm.io/gorm"

	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/database"
	"github.com/axellelanca/shortlinks/internal/monitor"
	"github.com/axellelanca/shortlinks/internal/repository"
	"github.com/axellelanca/shortlinks/internal/services"
)

// App bundles the handles shared by the commands.
type App struct {
	DB          *gorm.DB
	LinkRepo    *repository.GormLinkRepository
	LinkService *services.LinkService
}

// OpenApp connects to the configured store, migrates it and builds the
// link service. Callers must Close the returned App.
func OpenApp() (*App, error) {
	if Cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	db, err := database.Open(database.OptionsFromConfig(Cfg))
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	linkRepo := repository.NewLinkRepository(db)
	checker := monitor.NewHTTPChecker(Cfg.ProbeTimeout(), Log)
	Log.Debug().Str("driver", Cfg.Database.Driver).Msg("store opened")

	return &App{
		DB:          db,
		LinkRepo:    linkRepo,
		LinkService: services.NewLinkService(linkRepo, checker, Log),
	}, nil
}

// Close releases the store connection.
func (a *App) Close() {
	if err := database.Close(a.DB); err != nil {
		Log.Warn().Err(err).Msg("failed to close database")
	}
}

// UserError renders err the way the HTTP boundary does, so CLI output never
// leaks store internals. The raw error is logged at debug level.
func UserError(err error) error {
	Log.Debug().Err(err).Msg("command failed")
	return customerrors.FromError(err)
}
