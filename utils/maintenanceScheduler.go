package utils

import (
	"context"
	"log"
	"time"

	"jubetech/database"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InitializeMaintenanceScheduler sets up the daily cleanup jobs: purge expired
// OTP tokens and deactivate promotions whose end date has passed.
func InitializeMaintenanceScheduler(db *mongo.Database) *cron.Cron {
	log.Println("[MAINTENANCE-SCHEDULER] Initializing maintenance scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[MAINTENANCE-SCHEDULER] Running daily maintenance...")
		PurgeExpiredTokens(db)
		DeactivateEndedPromotions(db)
	})

	c.Start()
	log.Println("[MAINTENANCE-SCHEDULER] Maintenance scheduler started - runs daily at 3 AM")
	return c
}

// PurgeExpiredTokens hard-deletes OTP tokens past their expiry.
func PurgeExpiredTokens(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := db.Collection(database.ColTokens).DeleteMany(ctx, bson.M{
		"expiredAt": bson.M{"$lt": time.Now()},
	})
	if err != nil {
		log.Printf("[MAINTENANCE-SCHEDULER] Error purging expired tokens: %v", err)
		return
	}
	log.Printf("[MAINTENANCE-SCHEDULER] Purged %d expired tokens", res.DeletedCount)
}

// DeactivateEndedPromotions flips status off for promotions past end_date.
func DeactivateEndedPromotions(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := db.Collection(database.ColPromotions).UpdateMany(ctx,
		bson.M{"status": true, "end_date": bson.M{"$lt": time.Now()}},
		bson.M{"$set": bson.M{"status": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Printf("[MAINTENANCE-SCHEDULER] Error deactivating promotions: %v", err)
		return
	}
	log.Printf("[MAINTENANCE-SCHEDULER] Deactivated %d ended promotions", res.ModifiedCount)
}
