// Package postgresql provides the PostgreSQL persistence implementation for
// cards, decks, and user resources.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// PostgreSQL driver.
	_ "github.com/lib/pq"

	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence/sqlbase"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db        *sql.DB
	logger    *slog.Logger
	cards     *CardRepository
	decks     *DeckRepository
	resources *UserResourceRepository
}

// NewPersistence connects to PostgreSQL and runs pending migrations.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:        database,
		logger:    logger,
		cards:     NewCardRepository(database, logger),
		decks:     NewDeckRepository(database, logger),
		resources: NewUserResourceRepository(database, logger),
	}, nil
}

// Cards returns the card repository.
func (p *Persistence) Cards() persistence.CardRepository { return p.cards }

// Decks returns the deck repository.
func (p *Persistence) Decks() persistence.DeckRepository { return p.decks }

// UserResources returns the user resource repository.
func (p *Persistence) UserResources() persistence.UserResourceRepository { return p.resources }

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}
