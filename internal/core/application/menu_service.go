package application

import (
	"context"

	"github.com/bitcoin-tales/talesd/internal/core/domain"
	"github.com/bitcoin-tales/talesd/internal/core/ports"
)

// MenuService exposes the merchant menu with persisted price overrides
// applied on top of the built-in defaults.
type MenuService interface {
	GetMenu(ctx context.Context) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, itemID string) (*domain.MenuItem, error)
	SetPrice(ctx context.Context, itemID string, price uint64) error
}

type menuService struct {
	repoManager ports.RepoManager
}

// NewMenuService ...
func NewMenuService(repoManager ports.RepoManager) MenuService {
	return &menuService{repoManager: repoManager}
}

func (m *menuService) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	overrides, err := m.repoManager.LedgerRepository().GetMenuPrices(ctx)
	if err != nil {
		return nil, err
	}

	menu := make([]domain.MenuItem, 0, len(domain.DefaultMenu))
	for _, item := range domain.DefaultMenu {
		if price, ok := overrides[item.Id]; ok {
			item.Price = price
		}
		menu = append(menu, item)
	}
	return menu, nil
}

func (m *menuService) GetItem(
	ctx context.Context, itemID string,
) (*domain.MenuItem, error) {
	menu, err := m.GetMenu(ctx)
	if err != nil {
		return nil, err
	}

	for i := range menu {
		if menu[i].Id == itemID {
			return &menu[i], nil
		}
	}
	return nil, domain.ErrUnknownMenuItem
}

func (m *menuService) SetPrice(
	ctx context.Context, itemID string, price uint64,
) error {
	found := false
	for _, item := range domain.DefaultMenu {
		if item.Id == itemID {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrUnknownMenuItem
	}

	ledgerRepo := m.repoManager.LedgerRepository()
	overrides, err := ledgerRepo.GetMenuPrices(ctx)
	if err != nil {
		return err
	}
	if overrides == nil {
		overrides = map[string]uint64{}
	}
	overrides[itemID] = price
	return ledgerRepo.SetMenuPrices(ctx, overrides)
}
