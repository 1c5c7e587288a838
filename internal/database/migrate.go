package database

import (
	"context"
	"fmt"

	"github.com/developia-II/candidate-tracker-backend/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MigrationResult struct {
	Candidates int // candidates whose embedded feedback was moved
	Feedback   int // feedback documents written
	Backfilled int // candidates that only had the legacy "date" field
	Referenced int // documents copied from the legacy feedbacks collection
}

const migrateBatchSize = 500

// MigrateLegacyFeedback runs every feedback migration: embedded entries first,
// then the legacy referenced collection.
func MigrateLegacyFeedback(ctx context.Context, db *mongo.Database, rating int, log logrus.FieldLogger) (MigrationResult, error) {
	result, err := MigrateEmbeddedFeedback(ctx, db, rating, log)
	if err != nil {
		return result, err
	}

	referenced, err := MigrateReferencedFeedback(ctx, db, rating, log)
	result.Referenced = referenced
	return result, err
}

type legacyCandidate struct {
	ID       primitive.ObjectID      `bson:"_id"`
	Feedback []models.LegacyFeedback `bson:"feedback"`
}

// MigrateEmbeddedFeedback moves candidates.feedback[] entries into the feedback
// collection with the given rating, then drops the embedded array. Entries keep
// their embedded _id, so a rerun after a partial failure does not duplicate them.
// Candidates that still carry the legacy "date" field get createdAt from it.
func MigrateEmbeddedFeedback(ctx context.Context, db *mongo.Database, rating int, log logrus.FieldLogger) (MigrationResult, error) {
	var result MigrationResult
	if rating < models.MinRating || rating > models.MaxRating {
		return result, fmt.Errorf("backfill rating %d outside %d..%d", rating, models.MinRating, models.MaxRating)
	}

	candidates := db.Collection(CandidatesCollection)
	feedback := db.Collection(FeedbackCollection)

	backfill, err := candidates.UpdateMany(ctx,
		bson.M{"createdAt": bson.M{"$exists": false}, "date": bson.M{"$exists": true}},
		mongo.Pipeline{
			{{Key: "$set", Value: bson.M{"createdAt": "$date"}}},
			{{Key: "$unset", Value: "date"}},
		},
	)
	if err != nil {
		return result, fmt.Errorf("backfill createdAt: %w", err)
	}
	result.Backfilled = int(backfill.ModifiedCount)

	opts := options.Find().SetProjection(bson.M{"feedback": 1})
	cursor, err := candidates.Find(ctx, bson.M{"feedback.0": bson.M{"$exists": true}}, opts)
	if err != nil {
		return result, fmt.Errorf("find legacy candidates: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var lc legacyCandidate
		if err := cursor.Decode(&lc); err != nil {
			return result, fmt.Errorf("decode candidate: %w", err)
		}

		docs := legacyToFeedback(lc, rating)
		if len(docs) > 0 {
			written, err := insertIgnoringDuplicates(ctx, feedback, docs)
			if err != nil {
				return result, fmt.Errorf("copy feedback of %s: %w", lc.ID.Hex(), err)
			}
			result.Feedback += written
		}

		if _, err := candidates.UpdateByID(ctx, lc.ID, bson.M{"$unset": bson.M{"feedback": ""}}); err != nil {
			return result, fmt.Errorf("unset feedback of %s: %w", lc.ID.Hex(), err)
		}
		result.Candidates++

		log.WithFields(logrus.Fields{
			"candidate": lc.ID.Hex(),
			"entries":   len(docs),
		}).Debug("migrated embedded feedback")
	}
	if err := cursor.Err(); err != nil {
		return result, fmt.Errorf("iterate candidates: %w", err)
	}

	return result, nil
}

func legacyToFeedback(lc legacyCandidate, rating int) []interface{} {
	docs := make([]interface{}, 0, len(lc.Feedback))
	for _, entry := range lc.Feedback {
		id := entry.ID
		if id.IsZero() {
			id = primitive.NewObjectID()
		}

		created := entry.Date
		if created.IsZero() {
			created = id.Timestamp()
		}

		docs = append(docs, models.Feedback{
			ID:          id,
			CandidateID: lc.ID,
			Comment:     entry.Comment,
			Rating:      rating,
			CreatedAt:   created,
		})
	}
	return docs
}

func insertIgnoringDuplicates(ctx context.Context, col *mongo.Collection, docs []interface{}) (int, error) {
	res, err := col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return len(res.InsertedIDs), nil
	}

	bwe, ok := err.(mongo.BulkWriteException)
	if !ok || bwe.WriteConcernError != nil {
		return 0, err
	}
	for _, we := range bwe.WriteErrors {
		if we.Code != 11000 {
			return 0, err
		}
	}
	return len(docs) - len(bwe.WriteErrors), nil
}

// MigrateReferencedFeedback copies the legacy "feedbacks" collection into the
// feedback collection, renaming candidate to candidateId and date to createdAt.
// Ratings outside 1..5 get the backfill rating. The source collection is left
// untouched and ids are kept, so reruns only add what is missing.
func MigrateReferencedFeedback(ctx context.Context, db *mongo.Database, rating int, log logrus.FieldLogger) (int, error) {
	if rating < models.MinRating || rating > models.MaxRating {
		return 0, fmt.Errorf("backfill rating %d outside %d..%d", rating, models.MinRating, models.MaxRating)
	}

	source := db.Collection(LegacyFeedbackCollection)
	target := db.Collection(FeedbackCollection)

	cursor, err := source.Find(ctx, bson.M{}, options.Find().SetBatchSize(migrateBatchSize))
	if err != nil {
		return 0, fmt.Errorf("find legacy feedback: %w", err)
	}
	defer cursor.Close(ctx)

	written := 0
	batch := make([]interface{}, 0, migrateBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := insertIgnoringDuplicates(ctx, target, batch)
		if err != nil {
			return fmt.Errorf("copy legacy feedback: %w", err)
		}
		written += n
		batch = batch[:0]
		return nil
	}

	for cursor.Next(ctx) {
		var legacy models.LegacyReferencedFeedback
		if err := cursor.Decode(&legacy); err != nil {
			return written, fmt.Errorf("decode legacy feedback: %w", err)
		}
		if legacy.Candidate.IsZero() {
			log.WithField("feedback", legacy.ID.Hex()).Warn("skipping legacy feedback without candidate")
			continue
		}

		batch = append(batch, referencedToFeedback(legacy, rating))
		if len(batch) == migrateBatchSize {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return written, fmt.Errorf("iterate legacy feedback: %w", err)
	}
	if err := flush(); err != nil {
		return written, err
	}

	log.WithField("copied", written).Debug("migrated referenced feedback")
	return written, nil
}

func referencedToFeedback(legacy models.LegacyReferencedFeedback, rating int) models.Feedback {
	if legacy.Rating >= models.MinRating && legacy.Rating <= models.MaxRating {
		rating = legacy.Rating
	}
	created := legacy.Date
	if created.IsZero() {
		created = legacy.ID.Timestamp()
	}
	return models.Feedback{
		ID:          legacy.ID,
		CandidateID: legacy.Candidate,
		Comment:     legacy.Comment,
		Rating:      rating,
		CreatedAt:   created,
	}
}
