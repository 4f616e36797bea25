package cloudinary

import (
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Service resolves stored attachment references into Cloudinary delivery URLs.
type Service struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// New constructs a Cloudinary service instance.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &Service{
		client: cld,
		folder: strings.Trim(cfg.Folder, "/"),
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// URL returns a delivery URL for an attachment reference. Absolute URLs are returned as-is;
// anything else is treated as a public ID, prefixed with the configured folder when relative.
func (s *Service) URL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || isAbsoluteURL(ref) {
		return ref
	}

	publicID := buildPublicID(s.folder, ref)
	asset, err := s.client.Image(publicID)
	if err != nil {
		s.logger.Warn().Err(err).Str("public_id", publicID).Msg("failed to build attachment asset")
		return ""
	}

	url, err := asset.String()
	if err != nil {
		s.logger.Warn().Err(err).Str("public_id", publicID).Msg("failed to build attachment url")
		return ""
	}
	return url
}

func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func buildPublicID(folder, ref string) string {
	ref = strings.Trim(ref, "/")
	if folder == "" || strings.HasPrefix(ref, folder+"/") {
		return ref
	}
	return folder + "/" + ref
}
