package scenario

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// ComputeVersion computes a deterministic version for a Scenario.
// Priority: user-provided Version, else SHA256(scenario JSON)[:8].
// Equal parameters always hash to the same version.
func ComputeVersion(s *Scenario) string {
	if s.Version != "" {
		return s.Version
	}

	data, err := json.Marshal(s)
	if err != nil {
		return "invalid"
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
