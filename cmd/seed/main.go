package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"razzrel/internal/auth"
	"razzrel/internal/config"
	"razzrel/internal/db"
	apperrors "razzrel/internal/errors"
	"razzrel/internal/model"
	"razzrel/internal/repository"
	"razzrel/internal/service"
)

//go:embed packages.json
var defaultPackages []byte

// seedConfig holds the seed-only settings, read from SEED_* variables.
type seedConfig struct {
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@razzrel.local"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" required:"true"`
	AdminName     string `envconfig:"ADMIN_NAME" default:"Administrator"`
	// Packages is a file path or http(s) URL with a JSON array of packages.
	Packages string `envconfig:"PACKAGES"`
}

// packageSeed is one catalog entry of the seed file.
type packageSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	ImagePath   string `json:"imagePath"`
}

func main() {
	log.Info("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	var seedCfg seedConfig
	if err := envconfig.Process("SEED", &seedCfg); err != nil {
		log.Fatalf("seed config: %v", err)
	}

	ctx := context.Background()
	gormDB, err := db.NewMySQL(ctx, cfg.MySQLDSN, db.Options{
		ConnectRetries: cfg.DBConnectRetries,
		RetryBackoff:   cfg.DBRetryBackoff,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(gormDB, false); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL), auth.NewTokenStore(nil))
	productService := service.NewProductService(productRepo, nil)

	if err := seedAdmin(ctx, authService, seedCfg); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	raw, err := loadPackages(seedCfg.Packages)
	if err != nil {
		log.Fatalf("Failed to load packages: %v", err)
	}
	created, skipped, err := seedPackages(ctx, productRepo, productService, raw)
	if err != nil {
		log.Fatalf("Failed to seed packages: %v", err)
	}
	log.Infof("Seed completed: %d packages created, %d skipped", created, skipped)
}

func seedAdmin(ctx context.Context, authService service.AuthService, cfg seedConfig) error {
	_, err := authService.Register(ctx, service.RegisterInput{
		FullName:      cfg.AdminName,
		Email:         cfg.AdminEmail,
		Password:      cfg.AdminPassword,
		TermsAccepted: true,
		Role:          model.RoleAdmin,
	})
	if errors.Is(err, apperrors.ErrEmailExists) {
		log.Infof("Admin %s already exists, skipping", cfg.AdminEmail)
		return nil
	}
	if err != nil {
		return err
	}
	log.Infof("Admin %s created", cfg.AdminEmail)
	return nil
}

// loadPackages reads the package list from a URL, a file, or the built-in defaults.
func loadPackages(source string) ([]byte, error) {
	switch {
	case source == "":
		return defaultPackages, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		client := &http.Client{Timeout: 30 * time.Second}
		resp, err := client.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch packages: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("packages source returned status: %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	default:
		return os.ReadFile(source)
	}
}

func seedPackages(ctx context.Context, repo repository.ProductRepository, svc service.ProductService, raw []byte) (created, skipped int, err error) {
	var items []packageSeed
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, 0, fmt.Errorf("decode packages: %w", err)
	}

	for _, item := range items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			log.Warnf("Skipping package %q with invalid price: %s", item.Name, item.Price)
			skipped++
			continue
		}

		_, err = repo.FindByName(ctx, item.Name)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, fmt.Errorf("look up package %q: %w", item.Name, err)
		}

		if _, err := svc.Create(ctx, service.ProductInput{
			Name:        item.Name,
			Description: item.Description,
			Price:       price,
			Category:    item.Category,
			ImagePath:   item.ImagePath,
		}); err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}
