package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/xyz-asif/foundit/internal/config"
)

// NewVerifier builds the verifier selected by cfg.AuthProvider
func NewVerifier(ctx context.Context, cfg *config.Config) (Verifier, error) {
	switch cfg.AuthProvider {
	case "firebase":
		client, err := InitFirebase(ctx, cfg.FirebaseServiceAccountPath)
		if err != nil {
			return nil, err
		}
		return NewFirebaseVerifier(client), nil
	case "google":
		if cfg.GoogleClientID == "" {
			return nil, fmt.Errorf("GOOGLE_CLIENT_ID is required for the google auth provider")
		}
		return NewGoogleVerifier(cfg.GoogleClientID), nil
	case "jwt":
		return NewJWTVerifier(cfg.JWTSecret, time.Duration(cfg.JWTExpireHours)*time.Hour), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}
}
