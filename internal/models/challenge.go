package models

// Challenge is one of the fixed wellbeing tasks.
type Challenge struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Challenges lists every challenge in display order.
var Challenges = []Challenge{
	{ID: "journal", Label: "📝 Write in your journal"},
	{ID: "listen_song", Label: "🎶 Listen to a song"},
	{ID: "compliment", Label: "🤝 Compliment someone"},
	{ID: "meditate", Label: "🧘 Meditate"},
	{ID: "walk", Label: "🚶 Walk 10 minutes"},
	{ID: "read", Label: "📖 Read 5 pages"},
}
