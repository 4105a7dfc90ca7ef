package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/spoilme-vintage/store-api/pkg/global"
)

// ClaimShareBonus claims the social-share loyalty bonus for a user and
// product. SetNX makes the claim atomic: the first share inside the
// cooldown window wins, repeats get ErrAlreadyClaimed until the key
// expires. Cooldowns are per user per product, so sharing a different
// product is a fresh claim.
func ClaimShareBonus(ctx context.Context, userID, productCode string, cooldown time.Duration) error {
	client := RedisClient()
	defer client.Close()

	key := fmt.Sprintf("share:%s:%s", userID, productCode)
	ok, err := client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), cooldown).Result()
	if err != nil {
		return fmt.Errorf("failed to claim share bonus: %w", err)
	}
	if !ok {
		return global.ErrAlreadyClaimed
	}

	return nil
}

// ShareCooldownRemaining reports how long until the user can claim the
// share bonus for this product again. Zero means claimable now.
func ShareCooldownRemaining(ctx context.Context, userID, productCode string) (time.Duration, error) {
	client := RedisClient()
	defer client.Close()

	key := fmt.Sprintf("share:%s:%s", userID, productCode)
	ttl, err := client.TTL(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
