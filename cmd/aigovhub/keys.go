package main

import (
	"crypto/rsa"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/config"
	infraauth "github.com/NarenDawar/ai-governance-hub/internal/infrastructure/auth"
)

// loadOrGenerateKey loads the RSA signing key from the configured PEM file.
// In dev mode a missing key falls back to a freshly generated one, which
// invalidates all tokens on restart.
func loadOrGenerateKey(cfg *config.Config, log zerolog.Logger) (*rsa.PrivateKey, error) {
	if cfg.JWT.PrivateKeyPath != "" {
		pemBytes, err := cfg.LoadJWTPrivateKey()
		if err != nil {
			return nil, err
		}
		return infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
	}
	if !cfg.Server.Dev {
		return nil, fmt.Errorf("JWT_PRIVATE_KEY_PATH is required outside dev mode")
	}
	log.Warn().Msg("no JWT key configured; generating an ephemeral dev key")
	return infraauth.GenerateDevKey()
}

// formatRate builds a ulule/limiter formatted rate such as "120-M" from the
// configured request count and window suffix.
func formatRate(requests int64, window string) string {
	suffix := strings.TrimSpace(window)
	if i := strings.LastIndex(suffix, "-"); i >= 0 {
		suffix = suffix[i+1:]
	}
	if suffix == "" {
		suffix = "M"
	}
	return fmt.Sprintf("%d-%s", requests, suffix)
}
