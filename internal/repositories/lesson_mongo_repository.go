package repositories

import (
	"context"
	"math"
	"regexp"
	"time"

	"lessonshop/internal/models"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const lessonsCollection = "lessons"

type lessonDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Subject      string             `bson:"subject"`
	Location     string             `bson:"location"`
	Price        float64            `bson:"price"`
	Availability int                `bson:"availability"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d lessonDocument) model() models.Lesson {
	return models.Lesson{
		ID:           d.ID.Hex(),
		Subject:      d.Subject,
		Location:     d.Location,
		Price:        d.Price,
		Availability: d.Availability,
		CreatedAt:    d.CreatedAt,
	}
}

// MongoLessonRepository stores lessons in the "lessons" collection.
type MongoLessonRepository struct {
	coll *mongo.Collection
}

// NewMongoLessonRepository creates a new instance of MongoLessonRepository.
func NewMongoLessonRepository(db *mongo.Database) *MongoLessonRepository {
	return &MongoLessonRepository{
		coll: db.Collection(lessonsCollection),
	}
}

// GetAll retrieves all lessons in natural order.
func (r *MongoLessonRepository) GetAll(ctx context.Context) ([]models.Lesson, error) {
	return r.find(ctx, bson.M{}, "failed to get all lessons")
}

// GetByID retrieves a single lesson. Ids that are not valid ObjectIDs
// cannot exist and are reported as not found.
func (r *MongoLessonRepository) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, lessonNotFound(id)
	}
	var doc lessonDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, lessonNotFound(id)
		}
		return nil, errors.Wrapf(err, "failed to get lesson by ID %s", id)
	}
	lesson := doc.model()
	return &lesson, nil
}

// Create inserts a new lesson and fills in its generated ID.
func (r *MongoLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	oid := primitive.NewObjectID()
	if lesson.ID != "" {
		parsed, err := primitive.ObjectIDFromHex(lesson.ID)
		if err != nil {
			return errors.Wrapf(err, "lesson ID %s is not an ObjectID", lesson.ID)
		}
		oid = parsed
	}
	if lesson.CreatedAt.IsZero() {
		lesson.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	doc := lessonDocument{
		ID:           oid,
		Subject:      lesson.Subject,
		Location:     lesson.Location,
		Price:        lesson.Price,
		Availability: lesson.Availability,
		CreatedAt:    lesson.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to create lesson")
	}
	lesson.ID = oid.Hex()
	return nil
}

// AdjustAvailability runs one findOneAndUpdate with an aggregation pipeline,
// so the read-modify-write happens inside the server.
func (r *MongoLessonRepository) AdjustAvailability(ctx context.Context, id string, delta int) (*models.Lesson, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, lessonNotFound(id)
	}
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{{Key: "availability", Value: mongoAvailabilityExpr(delta)}}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc lessonDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, lessonNotFound(id)
		}
		return nil, errors.Wrapf(err, "failed to adjust availability of lesson %s", id)
	}
	lesson := doc.model()
	return &lesson, nil
}

// mongoAvailabilityExpr clamps at zero and saturates at math.MaxInt without
// letting $add overflow.
func mongoAvailabilityExpr(delta int) bson.D {
	sum := bson.D{{Key: "$add", Value: bson.A{"$availability", int64(delta)}}}
	if delta > 0 {
		return bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$gt", Value: bson.A{"$availability", int64(math.MaxInt - delta)}}},
			int64(math.MaxInt),
			sum,
		}}}
	}
	return bson.D{{Key: "$max", Value: bson.A{0, sum}}}
}

// Search matches query literally against subject or location, ignoring case.
func (r *MongoLessonRepository) Search(ctx context.Context, query string) ([]models.Lesson, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"subject": pattern},
		bson.M{"location": pattern},
	}}
	return r.find(ctx, filter, "failed to search lessons")
}

// Count returns the number of stored lessons.
func (r *MongoLessonRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "failed to count lessons")
	}
	return n, nil
}

func (r *MongoLessonRepository) find(ctx context.Context, filter any, failure string) ([]models.Lesson, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, failure)
	}
	var docs []lessonDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, failure)
	}
	lessons := make([]models.Lesson, 0, len(docs))
	for _, d := range docs {
		lessons = append(lessons, d.model())
	}
	return lessons, nil
}
