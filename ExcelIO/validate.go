package ExcelIO

import (
	"fmt"
	"strings"

	"Guardias/Models"
)

// LeaderViolation is one referential failure of the import batch.
type LeaderViolation struct {
	Legajo string `json:"legajo"`
	Reason string `json:"reason"`
}

// ValidateLeaders checks every candidate's leader legajo: it must be
// non-empty and, when an allowlist is configured, a member of it. Any
// violation blocks the whole batch, so callers must not upsert when the
// returned list is non-empty.
func ValidateLeaders(people []Models.Person, allowlist []string) []LeaderViolation {
	var allowed map[string]bool
	if len(allowlist) > 0 {
		allowed = make(map[string]bool, len(allowlist))
		for _, l := range allowlist {
			allowed[strings.TrimSpace(l)] = true
		}
	}

	var violations []LeaderViolation
	for _, p := range people {
		leader := strings.TrimSpace(p.LeaderLegajo)
		if leader == "" {
			violations = append(violations, LeaderViolation{Legajo: p.Legajo, Reason: "leader_legajo vacío"})
			continue
		}
		if allowed != nil && !allowed[leader] {
			violations = append(violations, LeaderViolation{
				Legajo: p.Legajo,
				Reason: fmt.Sprintf("leader_legajo %s no pertenece a LEADER_LEGAJOS", leader),
			})
		}
	}
	return violations
}
