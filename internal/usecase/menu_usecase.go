package usecase

import (
	"context"
	"fmt"

	"canteen_service/internal/domain"

	"github.com/sirupsen/logrus"
)

var _ domain.MenuUseCase = (*menuUseCase)(nil)

type menuUseCase struct {
	menuRepo domain.MenuRepository
	log      *logrus.Logger
}

func NewMenuUseCase(repo domain.MenuRepository, logger *logrus.Logger) domain.MenuUseCase {
	return &menuUseCase{
		menuRepo: repo,
		log:      logger,
	}
}

func (uc *menuUseCase) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := uc.menuRepo.ListMenuItems(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to list menu items: %v", err)
		return nil, fmt.Errorf("could not retrieve menu: %w", err)
	}
	return items, nil
}
