package models

// FAQ is a question and answer pair on the help page.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var FAQs = []FAQ{
	{
		Question: "What is MindMate AI?",
		Answer:   "MindMate AI is a gamified mental wellness app designed to enhance mental health and well-being through engaging and interactive experiences.",
	},
	{
		Question: "How do I earn XP?",
		Answer:   "Earn XP by completing daily challenges, maintaining streaks, leveling up, and participating in activities.",
	},
	{
		Question: "What are MindCoins?",
		Answer:   "MindCoins are in-app currency used for purchasing rewards in the shop.",
	},
}
