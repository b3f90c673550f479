package main

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"os"

	"medicore-be/internal/catalog"
	"medicore-be/internal/config"
	"medicore-be/internal/db"
	"medicore-be/internal/logger"
	"medicore-be/internal/user"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:embed medicines.json
var catalogData []byte

type medicineCreator interface {
	Create(ctx context.Context, input catalog.MedicineInput) (*catalog.Medicine, error)
}

type userCreator interface {
	Create(ctx context.Context, params user.CreateUserParams) (*user.User, error)
}

func main() {
	reset := flag.Bool("reset", false, "delete existing medicines before seeding")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	ctx := context.Background()

	if *reset {
		if err := resetCatalog(ctx, database); err != nil {
			log.Fatal("failed to reset catalog", zap.Error(err))
		}
	}

	items, err := loadCatalog(catalogData)
	if err != nil {
		log.Fatal("failed to load catalog", zap.Error(err))
	}

	n, err := seedMedicines(ctx, catalog.NewService(catalog.NewRepository(database)), items)
	if err != nil {
		log.Fatal("seeding stopped", zap.Int("inserted", n), zap.Error(err))
	}
	log.Info("medicines seeded", zap.Int("count", n))

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email != "" && password != "" {
		if err := seedAdmin(ctx, user.NewRepository(database), email, password); err != nil {
			log.Fatal("failed to seed admin", zap.Error(err))
		}
	}
}

func resetCatalog(ctx context.Context, database *sql.DB) error {
	_, err := database.ExecContext(ctx, `TRUNCATE TABLE medicines CASCADE`)
	return pkgerrors.Wrap(err, "truncate medicines")
}

func loadCatalog(data []byte) ([]catalog.MedicineInput, error) {
	var items []catalog.MedicineInput
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, pkgerrors.Wrap(err, "decode catalog")
	}
	return items, nil
}

func seedMedicines(ctx context.Context, svc medicineCreator, items []catalog.MedicineInput) (int, error) {
	inserted := 0
	for _, item := range items {
		if _, err := svc.Create(ctx, item); err != nil {
			return inserted, pkgerrors.Wrapf(err, "insert %q", item.Name)
		}
		inserted++
	}
	return inserted, nil
}

// seedAdmin creates the first administrator. An existing account is left untouched.
func seedAdmin(ctx context.Context, repo userCreator, email, password string) error {
	hashed, err := user.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, user.CreateUserParams{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hashed,
		Role:         user.RoleAdmin,
	})
	if errors.Is(err, user.ErrEmailExists) {
		logger.L().Info("admin already present", zap.String("email", email))
		return nil
	}
	return err
}
