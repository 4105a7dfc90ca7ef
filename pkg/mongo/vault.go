package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/models"
)

func GetActiveVaultItems(ctx context.Context) ([]*models.VaultItem, error) {
	collection := GetCollection("vault_items")

	cursor, err := collection.Find(ctx, bson.D{{Key: "is_active", Value: true}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*models.VaultItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func GetVaultItemByID(ctx context.Context, id bson.ObjectID) (*models.VaultItem, error) {
	collection := GetCollection("vault_items")

	var item models.VaultItem
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: vault item %s", global.ErrNotFound, id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetVaultLedgerEntry returns the user's entry for the month, or an empty
// zero-count entry if the month has not been touched yet.
func GetVaultLedgerEntry(ctx context.Context, userID, monthKey string) (*models.VaultLedgerEntry, error) {
	collection := GetCollection("vault_ledger")

	var entry models.VaultLedgerEntry
	err := collection.FindOne(ctx, bson.D{
		{Key: "user_id", Value: userID},
		{Key: "month_key", Value: monthKey},
	}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.VaultLedgerEntry{UserID: userID, MonthKey: monthKey}, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RecordVaultPurchase appends a vault purchase to the user's current month
// entry as a single compare-and-set: the write only lands while the count
// is under the cap and this opKey has not been recorded. The unique
// (user_id, month_key) index makes the racing upsert collide instead of
// creating a second entry, so two simultaneous checkouts cannot both
// squeeze past the cap.
//
// opKey identifies one cart action; re-submitting the same action is a
// no-op. Buying the same item twice with distinct opKeys counts twice.
func RecordVaultPurchase(ctx context.Context, userID, monthKey, itemID, opKey string, monthlyCap int) error {
	if userID == "" || monthKey == "" || itemID == "" || opKey == "" {
		return fmt.Errorf("%w: user, month, item and op key are all required", global.ErrInvalidInput)
	}

	collection := GetCollection("vault_ledger")

	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "month_key", Value: monthKey},
		{Key: "count", Value: bson.D{{Key: "$lt", Value: monthlyCap}}},
		{Key: "op_keys", Value: bson.D{{Key: "$ne", Value: opKey}}},
	}
	update := bson.D{
		{Key: "$push", Value: bson.D{
			{Key: "item_ids", Value: itemID},
			{Key: "op_keys", Value: opKey},
		}},
		{Key: "$inc", Value: bson.D{{Key: "count", Value: 1}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "created_at", Value: time.Now()}}},
	}

	opts := options.UpdateOne().SetUpsert(true)
	result, err := collection.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// An entry exists but did not match the guard filter.
		return classifyVaultMiss(ctx, userID, monthKey, opKey, monthlyCap)
	}
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return classifyVaultMiss(ctx, userID, monthKey, opKey, monthlyCap)
	}
	return nil
}

func classifyVaultMiss(ctx context.Context, userID, monthKey, opKey string, monthlyCap int) error {
	entry, err := GetVaultLedgerEntry(ctx, userID, monthKey)
	if err != nil {
		return err
	}
	if entry.HasOpKey(opKey) {
		// Double submission of the same cart action: already recorded.
		return nil
	}
	if entry.Count >= monthlyCap {
		return fmt.Errorf("%w: monthly vault limit of %d reached", global.ErrLimitExceeded, monthlyCap)
	}
	return global.ErrConcurrencyConflict
}
