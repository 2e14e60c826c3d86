// checkenv verifies that the configured MongoDB, identity provider and
// Cloudinary account are reachable before the API is started.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/xyz-asif/foundit/internal/config"
	"github.com/xyz-asif/foundit/internal/database"
	"github.com/xyz-asif/foundit/internal/features/identity"
	"github.com/xyz-asif/foundit/internal/pkg/cloudinary"
)

type check struct {
	name string
	run  func(ctx context.Context, cfg *config.Config) (string, error)
}

var checks = []check{
	{"MongoDB", checkMongo},
	{"Identity provider", checkIdentity},
	{"Cloudinary", checkCloudinary},
}

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if failed := runChecks(ctx, cfg, checks); failed > 0 {
		color.Red("\n%d check(s) failed", failed)
		os.Exit(1)
	}
	color.Green("\nAll systems ready!")
}

func runChecks(ctx context.Context, cfg *config.Config, checks []check) int {
	failed := 0
	for _, c := range checks {
		fmt.Printf("Testing %s... ", c.name)
		detail, err := c.run(ctx, cfg)
		if err != nil {
			failed++
			color.Red("failed: %v", err)
			continue
		}
		color.Green("ok %s", detail)
	}
	return failed
}

func checkMongo(_ context.Context, cfg *config.Config) (string, error) {
	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return "", err
	}
	defer db.Disconnect(context.Background())
	return "(" + cfg.MongoDB + ")", nil
}

func checkIdentity(ctx context.Context, cfg *config.Config) (string, error) {
	if _, err := identity.NewVerifier(ctx, cfg); err != nil {
		return "", err
	}
	return "(" + cfg.AuthProvider + ")", nil
}

// checkCloudinary makes one authenticated Admin API call; a missing asset
// still proves the credentials work.
func checkCloudinary(ctx context.Context, cfg *config.Config) (string, error) {
	cld, err := cloudinary.NewService(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		cfg.CloudinaryUploadFolder,
	)
	if err != nil {
		return "", err
	}
	if _, err := cld.Exists(ctx, "reports/connectivity-check.jpg"); err != nil {
		return "", err
	}
	return fmt.Sprintf("(cloud %s, folder %s)", cfg.CloudinaryCloudName, cfg.CloudinaryUploadFolder), nil
}
