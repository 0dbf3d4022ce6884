package game

import (
	"errors"

	"github.com/isdelr/mindmate-be/internal/models"
)

var ErrUnknownChallenge = errors.New("no such challenge")

// FindChallenge looks up a challenge by its stable id.
func FindChallenge(id string) (models.Challenge, error) {
	for _, c := range models.Challenges {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Challenge{}, ErrUnknownChallenge
}

// CompleteChallenge grants the challenge reward, extends the streak and runs
// the level-up check. It reports whether a level was gained.
func CompleteChallenge(s *models.SessionState) bool {
	s.Streak++
	return Award(s, ChallengeReward)
}
