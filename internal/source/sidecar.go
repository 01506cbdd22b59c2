// SPDX-License-Identifier: MPL-2.0

package source

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type (
	// Sidecar records provenance for a cached catalog document. It lives
	// next to the cache file and is rewritten on every successful fetch.
	Sidecar struct {
		FetchedAt   time.Time `json:"fetched_at"`
		ContentHash string    `json:"content_hash"`
		URL         string    `json:"url"`
		Size        int       `json:"size"`
	}
)

// ContentHash returns the hex-encoded SHA-256 digest of data.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func writeSidecar(path string, sc Sidecar) error {
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog sidecar: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog sidecar: %w", err)
	}
	return nil
}

func readSidecar(path string) (Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sidecar{}, err
	}
	var sc Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return Sidecar{}, fmt.Errorf("decoding catalog sidecar: %w", err)
	}
	return sc, nil
}
