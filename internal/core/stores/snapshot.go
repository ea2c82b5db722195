package stores

import (
	"context"
	"log"
	"time"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

const snapshotTimeout = 5 * time.Second

// restore loads the snapshot under key into dst. A missing snapshot store or
// an unreadable payload leaves dst untouched.
func restore(snaps ports.SnapshotStore, key string, dst any) bool {
	if snaps == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	found, err := snaps.Load(ctx, key, dst)
	if err != nil {
		log.Printf("⚠️ Ignoring unreadable %s snapshot: %v", key, err)
		return false
	}
	return found
}

// persist writes v under key. Failures are logged; the in-memory state stays
// authoritative.
func persist(snaps ports.SnapshotStore, key string, v any) {
	if snaps == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	if err := snaps.Save(ctx, key, v); err != nil {
		log.Printf("❌ Failed to save %s snapshot: %v", key, err)
	}
}
