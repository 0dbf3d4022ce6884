package models

// Unlock names a feature flag a shop item can switch on.
type Unlock string

const (
	UnlockNone               Unlock = ""
	UnlockPlaylistGenerator  Unlock = "playlist_generator"
	UnlockBookRecommendation Unlock = "book_recommendation"
)

// ShopItem is a static catalog entry.
type ShopItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Cost   int    `json:"cost"`
	Unlock Unlock `json:"unlock,omitempty"`
}

// ShopCatalog is the fixed list of items for sale.
var ShopCatalog = []ShopItem{
	{ID: "meditation_app", Label: "🧘‍♀️ Meditation App Subscription", Cost: 50},
	{ID: "playlist_generator", Label: "🎶 Playlist Generator", Cost: 30, Unlock: UnlockPlaylistGenerator},
	{ID: "book_recommendation", Label: "📖 Book Recommendation", Cost: 40, Unlock: UnlockBookRecommendation},
	{ID: "chocolate_bar", Label: "🍫 Chocolate Bar", Cost: 20},
}
