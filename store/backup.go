package store

import (
	"context"
	"fmt"
	"log"
)

// Copy writes every value of src into dst under the same key.
// Values are copied as stored, so sealed entries stay sealed.
func Copy(ctx context.Context, src, dst Backend) (int, error) {
	all, err := src.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("store: copy: %w", err)
	}
	n := 0
	for key, value := range all {
		if err = dst.Put(ctx, key, value); err != nil {
			return n, fmt.Errorf("store: copy %s: %w", key, err)
		}
		n++
	}
	return n, nil
}

// BackupTask returns a job task copying src into dst
func BackupTask(src, dst Backend) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		n, err := Copy(ctx, src, dst)
		if err != nil {
			log.Printf("[ERROR][STORE] backup stopped after %d values: %v", n, err)
			return err
		}
		log.Printf("[INFO][STORE] backup copied %d values", n)
		return nil
	}
}
