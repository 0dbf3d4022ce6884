// Package game holds the progression, shop and challenge rules. Every function
// works on a *models.SessionState and never touches I/O.
package game

import "github.com/isdelr/mindmate-be/internal/models"

// XPPerLevel is the slope of the linear level threshold.
const XPPerLevel = 100

// Reward is an XP and MindCoin grant.
type Reward struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

var (
	// ChallengeReward is granted for every completed challenge.
	ChallengeReward = Reward{XP: 20, Coins: 5}
	// AdviceReward is granted for a successful therapist or book answer.
	AdviceReward = Reward{XP: 10, Coins: 2}
)

// XPNeeded returns the XP required to leave the given level.
func XPNeeded(level int) int {
	return level * XPPerLevel
}

// CheckLevelUp advances at most one level. Overflow XP carries over, so the
// result may still be at or above the new threshold; the next call handles it.
// It reports whether a level was gained.
func CheckLevelUp(s *models.SessionState) bool {
	needed := XPNeeded(s.Level)
	if s.XPPoints < needed {
		return false
	}
	s.Level++
	s.XPPoints -= needed
	return true
}

// Award adds the reward and runs a single level-up check.
func Award(s *models.SessionState, r Reward) bool {
	s.XPPoints += r.XP
	s.MindCoins += r.Coins
	return CheckLevelUp(s)
}

// ProgressFraction is the share of the current level completed, capped at 1.
func ProgressFraction(s models.SessionState) float64 {
	needed := XPNeeded(s.Level)
	if needed <= 0 {
		return 0
	}
	f := float64(s.XPPoints) / float64(needed)
	if f > 1 {
		return 1
	}
	return f
}
