package badges

import (
	"errors"
	"fmt"

	"algopulse/internal/models"
)

// ErrUnknownBadge indicates a badge identifier outside the closed catalog.
// Unrecognized identifiers fail fast rather than being silently displayed.
var ErrUnknownBadge = errors.New("unknown badge")

// Badge holds display metadata for one catalog entry.
type Badge struct {
	ID          models.BadgeID `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
}

// catalog is the single shared badge table. The scoring engine and the
// display layer both key into it, so the two cannot drift apart.
var catalog = []Badge{
	{ID: models.BadgeFirstSolve, Name: "First Blood", Description: "Solved your first problem", Icon: "🎯"},
	{ID: models.BadgeStreak3, Name: "Hot Start", Description: "Maintained a 3-day streak", Icon: "🔥"},
	{ID: models.BadgeStreak7, Name: "Consistency King", Description: "Maintained a 7-day streak", Icon: "👑"},
	{ID: models.BadgeArrayMaster, Name: "Array Architect", Description: "Solved 10 array problems", Icon: "🧱"},
	{ID: models.BadgeHardHitter, Name: "Heavyweight", Description: "Solved your first Hard problem", Icon: "🥊"},
	{ID: models.BadgeDPWizard, Name: "DP Wizard", Description: "Solved 5 Dynamic Programming problems", Icon: "🧙"},
}

// All returns the full catalog in display order.
func All() []Badge {
	out := make([]Badge, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup resolves a badge identifier to its display metadata.
func Lookup(id models.BadgeID) (Badge, error) {
	for _, b := range catalog {
		if b.ID == id {
			return b, nil
		}
	}
	return Badge{}, fmt.Errorf("%w: %q", ErrUnknownBadge, id)
}
