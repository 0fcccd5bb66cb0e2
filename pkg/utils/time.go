package utils

import (
	"log"
	"time"
)

var (
	SaoPauloLocation *time.Location
)

func init() {
	var err error
	SaoPauloLocation, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		log.Printf("Failed to load timezone America/Sao_Paulo: %v", err)
		// Fallback to a fixed -3 offset
		SaoPauloLocation = time.FixedZone("BRT", -3*60*60)
	}
}

// LoadAppLocation resolves the configured timezone, falling back to the
// default São Paulo location when the name cannot be loaded.
func LoadAppLocation(name string) *time.Location {
	if name == "" {
		return SaoPauloLocation
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Failed to load timezone %s, falling back to America/Sao_Paulo: %v", name, err)
		return SaoPauloLocation
	}

	return loc
}
