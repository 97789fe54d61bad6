package repository

import (
	"context"
	"time"

	"assettrack/internal/tracker/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (r *MongoRepository) Record(ctx context.Context, entry *model.AuditEntry) error {
	entry.CreatedAt = time.Now()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	_, err := r.AuditLogs.InsertOne(ctx, entry)
	return err
}
