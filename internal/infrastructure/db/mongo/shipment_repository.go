package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
	"github.com/CapDevCostaRica/shipment-core/internal/core/ports"
)

const collectionShipments = "shipments"

type ShipmentRepository struct {
	col *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

// scopeFilter compiles the visibility predicate into the Mongo filter. The
// scope is part of the query itself; an out-of-scope document is never
// fetched, counted, or paged over.
func scopeFilter(scope ports.ShipmentScope) bson.M {
	switch {
	case scope.All:
		return bson.M{}
	case scope.CarrierID != "":
		return bson.M{"assigned_carrier": scope.CarrierID}
	case scope.Location != "":
		return bson.M{"$or": []bson.M{
			{"origin": scope.Location},
			{"destination": scope.Location},
		}}
	default:
		// Empty predicate matches nothing.
		return bson.M{"_id": nil}
	}
}

// Insert persists a new shipment document.
func (r *ShipmentRepository) Insert(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, s)
	return err
}

// GetByID retrieves a shipment by id within scope. An out-of-scope id is
// indistinguishable from an absent one.
func (r *ShipmentRepository) GetByID(ctx context.Context, id string, scope ports.ShipmentScope) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := scopeFilter(scope)
	filter["_id"] = id

	var s domain.Shipment
	if err := r.col.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// CompareAndSwapStatus applies the transition only if the document's status
// still equals expected. The status guard in the update filter is the
// per-shipment serialization point: of two concurrent transitions from the
// same state, exactly one matches.
func (r *ShipmentRepository) CompareAndSwapStatus(ctx context.Context, id string, expected domain.ShipmentStatus, change ports.StatusChange) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": change.Status}
	switch change.Status {
	case domain.StatusInTransit:
		set["in_transit_at"] = change.At.UTC()
		set["in_transit_by"] = change.Actor
	case domain.StatusDelivered:
		set["delivered_at"] = change.At.UTC()
		set["delivered_by"] = change.Actor
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": expected},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, id)
	}
	return nil
}

// UpdateLocation sets the location iff the shipment is still in_transit and
// assigned to carrierID, using the same guarded-filter pattern as the
// status transitions.
func (r *ShipmentRepository) UpdateLocation(ctx context.Context, id string, carrierID, location string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": domain.StatusInTransit, "assigned_carrier": carrierID},
		bson.M{"$set": bson.M{"location": location}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, id)
	}
	return nil
}

// missOrConflict distinguishes a vanished document from a lost guard race.
func (r *ShipmentRepository) missOrConflict(ctx context.Context, id string) error {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrShipmentNotFound
	}
	return domain.ErrStatusConflict
}

// List returns a page of shipments matching scope and filter plus the total
// count of the scoped match set, newest first.
func (r *ShipmentRepository) List(ctx context.Context, scope ports.ShipmentScope, f ports.ListShipmentsFilter) ([]*domain.Shipment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := scopeFilter(scope)
	if f.ShipmentID != "" {
		filter["_id"] = f.ShipmentID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.CarrierID != "" {
		filter["assigned_carrier"] = f.CarrierID
	}
	created := bson.M{}
	if !f.DateFrom.IsZero() {
		created["$gte"] = f.DateFrom.UTC()
	}
	if !f.DateTo.IsZero() {
		created["$lte"] = f.DateTo.UTC()
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []*domain.Shipment
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// EnsureIndexes creates the indexes the scoped queries rely on.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "origin", Value: 1}}},
		{Keys: bson.D{{Key: "destination", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_carrier", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
