package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/dealerops/rental-engine/internal/config"
)

var validate = validator.New()

// normalizePage clamps page and limit to the configured bounds.
func normalizePage(page, limit int, cfg *config.Config) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = cfg.Business.DefaultPageLimit
	}
	if limit > cfg.Business.MaxPageLimit {
		limit = cfg.Business.MaxPageLimit
	}
	return page, limit
}
