package repositories

import (
	"context"
	"time"

	"lessonshop/internal/models"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ordersCollection = "orders"

type orderLineDocument struct {
	LessonID string  `bson:"_id"`
	Subject  string  `bson:"subject"`
	Location string  `bson:"location"`
	Price    float64 `bson:"price"`
}

type orderDocument struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Name      string              `bson:"name"`
	Phone     string              `bson:"phone"`
	Lessons   []orderLineDocument `bson:"lessons"`
	Total     float64             `bson:"total"`
	CreatedAt time.Time           `bson:"createdAt"`
}

func (d orderDocument) model() models.Order {
	lines := make([]models.OrderLine, 0, len(d.Lessons))
	for _, l := range d.Lessons {
		lines = append(lines, models.OrderLine{
			LessonID: l.LessonID,
			Subject:  l.Subject,
			Location: l.Location,
			Price:    l.Price,
		})
	}
	return models.Order{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Phone:     d.Phone,
		Lessons:   lines,
		Total:     d.Total,
		CreatedAt: d.CreatedAt,
	}
}

// MongoOrderRepository stores orders in the "orders" collection.
type MongoOrderRepository struct {
	coll *mongo.Collection
}

// NewMongoOrderRepository creates a new instance of MongoOrderRepository.
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		coll: db.Collection(ordersCollection),
	}
}

// GetAll retrieves all orders, newest first.
func (r *MongoOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all orders")
	}
	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode orders")
	}
	orders := make([]models.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, d.model())
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID.
func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, orderNotFound(id)
	}
	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, orderNotFound(id)
		}
		return nil, errors.Wrapf(err, "failed to get order by ID %s", id)
	}
	order := doc.model()
	return &order, nil
}

// Create inserts a new order and fills in its generated ID.
func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	lines := make([]orderLineDocument, 0, len(order.Lessons))
	for _, l := range order.Lessons {
		lines = append(lines, orderLineDocument(l))
	}
	doc := orderDocument{
		ID:        primitive.NewObjectID(),
		Name:      order.Name,
		Phone:     order.Phone,
		Lessons:   lines,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to create order")
	}
	order.ID = doc.ID.Hex()
	return nil
}
