package middleware

import (
	"os"
	"strings"

	"gorm.io/gorm"

	"Guardias/Repository"
)

// ResolveLeaders returns the authoritative leader set: the LEADER_LEGAJOS
// env list when configured, otherwise every distinct leader referenced in
// the personnel directory.
func ResolveLeaders(db *gorm.DB) ([]string, error) {
	if raw := os.Getenv("LEADER_LEGAJOS"); strings.TrimSpace(raw) != "" {
		var leaders []string
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				leaders = append(leaders, p)
			}
		}
		return leaders, nil
	}
	return Repository.NewPersonnelRepo(db).DistinctLeaderLegajos()
}
