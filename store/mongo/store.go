package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nik45114/upkeep/types"
)

const (
	tasksCollection     = "tasks"
	staffCollection     = "staff"
	equipmentCollection = "equipment"
)

// taskDoc wraps a task row with the rendered key as document ID.
type taskDoc struct {
	ID   string                `bson:"_id"`
	Task types.MaintenanceTask `bson:"task"`
}

// Store is a MongoDB implementation of the task store.
type Store struct {
	db *mongo.Database
}

var (
	_ types.TaskStore       = (*Store)(nil)
	_ types.StaffSource     = (*Store)(nil)
	_ types.EquipmentSource = (*Store)(nil)
	_ types.BulkSweeper     = (*Store)(nil)
)

// Connect dials the MongoDB deployment and returns a store over the named
// database. The connection is verified with a ping before the store is
// returned.
//
// Parameters:
//   - ctx: Context bounding the dial and ping
//   - uri: MongoDB connection string
//   - database: Database name holding the task collections
//
// Returns:
//   - *Store: Ready-to-use store
//   - error: Dial or ping failure
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, errors.New("mongodb uri is required")
	}

	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(20 * time.Second).
		SetServerSelectionTimeout(15 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Store{db: client.Database(database)}, nil
}

// NewWithDatabase wraps an already-connected database handle. Useful when the
// application shares one client across components.
func NewWithDatabase(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// Task returns the row for the key, or types.ErrTaskNotFound.
func (s *Store) Task(ctx context.Context, key types.TaskKey) (*types.MaintenanceTask, error) {
	var doc taskDoc
	err := s.db.Collection(tasksCollection).FindOne(ctx, bson.M{"_id": key.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, types.ErrTaskNotFound
		}

		return nil, fmt.Errorf("failed to read task %s: %w", key, err)
	}

	return &doc.Task, nil
}

// SaveTask upserts the row identified by task.Key.
func (s *Store) SaveTask(ctx context.Context, task *types.MaintenanceTask) error {
	doc := taskDoc{ID: task.Key.String(), Task: *task}
	_, err := s.db.Collection(tasksCollection).ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write task %s: %w", task.Key, err)
	}

	return nil
}

// PendingBefore returns pending rows with a due date strictly before the
// cutoff, in task key order for reproducibility.
func (s *Store) PendingBefore(ctx context.Context, cutoff time.Time) ([]*types.MaintenanceTask, error) {
	filter := bson.M{
		"task.status":   types.StatusPending,
		"task.due_date": bson.M{"$lt": cutoff},
	}

	return s.findTasks(ctx, filter, bson.D{{Key: "_id", Value: 1}})
}

// TasksForStaff returns the staff member's non-completed rows, due date ascending.
func (s *Store) TasksForStaff(ctx context.Context, staffID string) ([]*types.MaintenanceTask, error) {
	filter := bson.M{
		"task.staff_id": staffID,
		"task.status":   bson.M{"$ne": types.StatusCompleted},
	}

	return s.findTasks(ctx, filter, bson.D{{Key: "task.due_date", Value: 1}, {Key: "_id", Value: 1}})
}

// Complete marks the row completed with the evidence reference.
//
// The status guard in the filter makes completion idempotent: an
// already-completed row matches nothing and keeps its original evidence.
func (s *Store) Complete(ctx context.Context, key types.TaskKey, evidenceRef string, at time.Time) error {
	res, err := s.db.Collection(tasksCollection).UpdateOne(ctx,
		bson.M{
			"_id":         key.String(),
			"task.status": bson.M{"$ne": types.StatusCompleted},
		},
		bson.M{"$set": bson.M{
			"task.status":       types.StatusCompleted,
			"task.completed_at": at,
			"task.evidence_ref": evidenceRef,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to complete task %s: %w", key, err)
	}

	if res.MatchedCount == 0 {
		// Either the row does not exist or it is already completed.
		count, err := s.db.Collection(tasksCollection).CountDocuments(ctx, bson.M{"_id": key.String()})
		if err != nil {
			return fmt.Errorf("failed to check task %s: %w", key, err)
		}
		if count == 0 {
			return types.ErrTaskNotFound
		}
	}

	return nil
}

// SweepOverdue implements the types.BulkSweeper fast path as one UpdateMany.
func (s *Store) SweepOverdue(ctx context.Context, today time.Time) (int, error) {
	res, err := s.db.Collection(tasksCollection).UpdateMany(ctx,
		bson.M{
			"task.status":   types.StatusPending,
			"task.due_date": bson.M{"$lt": today},
		},
		bson.M{"$set": bson.M{"task.status": types.StatusOverdue}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep overdue tasks: %w", err)
	}

	return int(res.ModifiedCount), nil
}

// PutStaff upserts a roster member.
func (s *Store) PutStaff(ctx context.Context, member types.StaffMember) error {
	_, err := s.db.Collection(staffCollection).ReplaceOne(ctx,
		bson.M{"_id": member.ID},
		bson.M{"_id": member.ID, "member": member},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write staff %s: %w", member.ID, err)
	}

	return nil
}

// ListStaff returns the roster in ID order.
func (s *Store) ListStaff(ctx context.Context) ([]types.StaffMember, error) {
	cursor, err := s.db.Collection(staffCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer cursor.Close(ctx)

	var members []types.StaffMember
	for cursor.Next(ctx) {
		var doc struct {
			Member types.StaffMember `bson:"member"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode staff row: %w", err)
		}
		members = append(members, doc.Member)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate staff: %w", err)
	}

	return members, nil
}

// PutEquipment upserts an inventory unit.
func (s *Store) PutEquipment(ctx context.Context, unit types.EquipmentUnit) error {
	_, err := s.db.Collection(equipmentCollection).ReplaceOne(ctx,
		bson.M{"_id": unit.ID},
		bson.M{"_id": unit.ID, "unit": unit},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write equipment %s: %w", unit.ID, err)
	}

	return nil
}

// ListEquipment returns the inventory in ID order.
func (s *Store) ListEquipment(ctx context.Context) ([]types.EquipmentUnit, error) {
	cursor, err := s.db.Collection(equipmentCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer cursor.Close(ctx)

	var units []types.EquipmentUnit
	for cursor.Next(ctx) {
		var doc struct {
			Unit types.EquipmentUnit `bson:"unit"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode equipment row: %w", err)
		}
		units = append(units, doc.Unit)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate equipment: %w", err)
	}

	return units, nil
}

func (s *Store) findTasks(ctx context.Context, filter bson.M, sortOrder bson.D) ([]*types.MaintenanceTask, error) {
	cursor, err := s.db.Collection(tasksCollection).Find(ctx, filter,
		options.Find().SetSort(sortOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []*types.MaintenanceTask
	for cursor.Next(ctx) {
		var doc taskDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode task row: %w", err)
		}
		task := doc.Task
		rows = append(rows, &task)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return rows, nil
}
