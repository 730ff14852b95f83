package cache

import (
	"context"
	"fmt"
	"time"
)

// Acquire marks a card as recently scanned. It returns false when the card
// was already marked inside the window, meaning the scan is a duplicate read
// of the same tap.
func (c *Cache) Acquire(ctx context.Context, cardUID string, window time.Duration) (bool, error) {
	key := scanDebouncePrefix + hashKey(cardUID)

	acquired, err := c.client.SetNX(ctx, key, 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set debounce marker: %w", err)
	}

	return acquired, nil
}
