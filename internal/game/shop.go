package game

import (
	"errors"

	"github.com/isdelr/mindmate-be/internal/models"
)

var (
	ErrInsufficientFunds = errors.New("you don't have enough MindCoins")
	ErrUnknownItem       = errors.New("no such shop item")
)

// FindItem looks up a catalog entry by its stable id.
func FindItem(id string) (models.ShopItem, error) {
	for _, item := range models.ShopCatalog {
		if item.ID == id {
			return item, nil
		}
	}
	return models.ShopItem{}, ErrUnknownItem
}

// Purchase spends the item's cost and applies its unlock. The state is left
// untouched when the balance is too low. Buying an unlock twice spends twice.
func Purchase(s *models.SessionState, item models.ShopItem) error {
	if s.MindCoins < item.Cost {
		return ErrInsufficientFunds
	}
	s.MindCoins -= item.Cost
	switch item.Unlock {
	case models.UnlockPlaylistGenerator:
		s.HasPlaylistGenerator = true
	case models.UnlockBookRecommendation:
		s.HasBookRecommendation = true
	}
	return nil
}
