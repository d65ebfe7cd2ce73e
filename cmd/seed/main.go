package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"

	"specialties/internal/auth"
	"specialties/internal/config"
	"specialties/internal/db"
	apperrors "specialties/internal/errors"
	"specialties/internal/logger"
	"specialties/internal/model"
	"specialties/internal/repository"
	"specialties/internal/service"
)

func main() {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.Parse(); err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	specialties, err := parseSpecialties(opts.Specialties)
	if err != nil {
		log.Fatal().Err(err).Msg("parse specialties")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if opts.Reset {
		for _, table := range []interface{}{&model.Specialty{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn().Err(err).Msg("drop table (may not exist)")
			}
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	// registration never touches the token store
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret), nil)

	user, err := ensureUser(ctx, userRepo, authService, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("seed provider")
	}

	// the store policy skips categories the provider already has
	scope := repository.NewOwnerScope(repository.NewSpecialtyRepository(gormDB), user.ID, repository.UniquenessStore)
	created, skipped, err := seedSpecialties(ctx, scope, specialties)
	if err != nil {
		log.Fatal().Err(err).Msg("seed specialties")
	}

	log.Info().
		Str("email", user.Email).
		Str("user_id", user.ID.String()).
		Int("created", created).
		Int("skipped", skipped).
		Msg("seed completed")
}

func ensureUser(ctx context.Context, repo repository.UserRepository, svc service.AuthService, opts *Options) (*model.User, error) {
	user, err := svc.Register(ctx, opts.Email, opts.Password, opts.Name)
	if errors.Is(err, service.ErrUserAlreadyExists) {
		return repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(opts.Email)))
	}
	return user, err
}

// specialtyStore is the part of the owner scope the seed writes through.
type specialtyStore interface {
	Owner() uuid.UUID
	Create(ctx context.Context, specialty *model.Specialty) error
}

func seedSpecialties(ctx context.Context, store specialtyStore, rows []seedSpecialty) (created, skipped int, err error) {
	for _, row := range rows {
		err := store.Create(ctx, &model.Specialty{
			UserID:          store.Owner(),
			Category:        row.Category,
			ExperienceYears: row.Years,
		})
		switch {
		case errors.Is(err, apperrors.ErrDuplicateCategory):
			skipped++
		case err != nil:
			return created, skipped, fmt.Errorf("create %s: %w", row.Category, err)
		default:
			created++
		}
	}
	return created, skipped, nil
}
