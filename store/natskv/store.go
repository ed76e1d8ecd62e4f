package natskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/zeebo/xxh3"

	"github.com/nik45114/upkeep/internal/kvutil"
	"github.com/nik45114/upkeep/types"
)

// Config holds the bucket layout for the KV-backed store.
type Config struct {
	// TasksBucket is the bucket holding maintenance task rows.
	// Default: "upkeep-tasks".
	TasksBucket string

	// StaffBucket is the bucket holding the staff roster.
	// Default: "upkeep-staff".
	StaffBucket string

	// EquipmentBucket is the bucket holding the equipment inventory.
	// Default: "upkeep-equipment".
	EquipmentBucket string

	// Replicas is the JetStream replica count for each bucket.
	// Default: 1.
	Replicas int
}

// SetDefaults fills in zero-valued fields.
func (c *Config) SetDefaults() {
	if c.TasksBucket == "" {
		c.TasksBucket = "upkeep-tasks"
	}
	if c.StaffBucket == "" {
		c.StaffBucket = "upkeep-staff"
	}
	if c.EquipmentBucket == "" {
		c.EquipmentBucket = "upkeep-equipment"
	}
	if c.Replicas <= 0 {
		c.Replicas = 1
	}
}

// Store is a NATS JetStream KeyValue implementation of the task store.
type Store struct {
	tasks     jetstream.KeyValue
	staff     jetstream.KeyValue
	equipment jetstream.KeyValue
}

var (
	_ types.TaskStore       = (*Store)(nil)
	_ types.StaffSource     = (*Store)(nil)
	_ types.EquipmentSource = (*Store)(nil)
)

// New creates the store, creating or opening the configured buckets.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - nc: Established NATS connection
//   - cfg: Bucket layout; zero values take defaults
//
// Returns:
//   - *Store: Ready-to-use store
//   - error: Bucket creation or open failure
func New(ctx context.Context, nc *nats.Conn, cfg Config) (*Store, error) {
	cfg.SetDefaults()

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	buckets := make([]jetstream.KeyValue, 3)
	for i, name := range []string{cfg.TasksBucket, cfg.StaffBucket, cfg.EquipmentBucket} {
		kv, err := kvutil.EnsureKVBucketWithRetry(ctx, js, jetstream.KeyValueConfig{
			Bucket:   name,
			Replicas: cfg.Replicas,
		}, 3)
		if err != nil {
			return nil, err
		}
		buckets[i] = kv
	}

	return &Store{tasks: buckets[0], staff: buckets[1], equipment: buckets[2]}, nil
}

// Task returns the row for the key, or types.ErrTaskNotFound.
func (s *Store) Task(ctx context.Context, key types.TaskKey) (*types.MaintenanceTask, error) {
	entry, err := s.tasks.Get(ctx, taskKVKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, types.ErrTaskNotFound
		}

		return nil, fmt.Errorf("failed to read task %s: %w", key, err)
	}

	return decodeTask(entry.Value())
}

// SaveTask inserts or replaces the row identified by task.Key.
func (s *Store) SaveTask(ctx context.Context, task *types.MaintenanceTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task %s: %w", task.Key, err)
	}

	if _, err := s.tasks.Put(ctx, taskKVKey(task.Key), data); err != nil {
		return fmt.Errorf("failed to write task %s: %w", task.Key, err)
	}

	return nil
}

// PendingBefore returns pending rows with a due date strictly before the
// cutoff, in task key order for reproducibility.
func (s *Store) PendingBefore(ctx context.Context, cutoff time.Time) ([]*types.MaintenanceTask, error) {
	var rows []*types.MaintenanceTask
	err := s.eachTask(ctx, func(task *types.MaintenanceTask) {
		if task.Status == types.StatusPending && task.DueDate.Before(cutoff) {
			rows = append(rows, task)
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key.String() < rows[j].Key.String()
	})

	return rows, nil
}

// TasksForStaff returns the staff member's non-completed rows, due date ascending.
func (s *Store) TasksForStaff(ctx context.Context, staffID string) ([]*types.MaintenanceTask, error) {
	var rows []*types.MaintenanceTask
	err := s.eachTask(ctx, func(task *types.MaintenanceTask) {
		if task.StaffID == staffID && !task.Completed() {
			rows = append(rows, task)
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].DueDate.Equal(rows[j].DueDate) {
			return rows[i].DueDate.Before(rows[j].DueDate)
		}

		return rows[i].Key.String() < rows[j].Key.String()
	})

	return rows, nil
}

// Complete marks the row completed with the evidence reference.
//
// The write uses the bucket revision, so a concurrent update to the same row
// surfaces as an error instead of silently overwriting it. Completing an
// already-completed row is a no-op.
func (s *Store) Complete(ctx context.Context, key types.TaskKey, evidenceRef string, at time.Time) error {
	kvKey := taskKVKey(key)

	entry, err := s.tasks.Get(ctx, kvKey)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return types.ErrTaskNotFound
		}

		return fmt.Errorf("failed to read task %s: %w", key, err)
	}

	task, err := decodeTask(entry.Value())
	if err != nil {
		return err
	}
	if task.Completed() {
		return nil
	}

	task.Status = types.StatusCompleted
	task.CompletedAt = &at
	task.EvidenceRef = evidenceRef

	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task %s: %w", key, err)
	}

	if _, err := s.tasks.Update(ctx, kvKey, data, entry.Revision()); err != nil {
		return fmt.Errorf("failed to complete task %s: %w", key, err)
	}

	return nil
}

// PutStaff inserts or replaces a roster member.
func (s *Store) PutStaff(ctx context.Context, member types.StaffMember) error {
	data, err := json.Marshal(member)
	if err != nil {
		return fmt.Errorf("failed to encode staff %s: %w", member.ID, err)
	}

	if _, err := s.staff.Put(ctx, kvSegment(member.ID), data); err != nil {
		return fmt.Errorf("failed to write staff %s: %w", member.ID, err)
	}

	return nil
}

// ListStaff returns the roster in ID order.
func (s *Store) ListStaff(ctx context.Context) ([]types.StaffMember, error) {
	var members []types.StaffMember
	err := eachValue(ctx, s.staff, func(data []byte) error {
		var m types.StaffMember
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("failed to decode staff row: %w", err)
		}
		members = append(members, m)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	return members, nil
}

// PutEquipment inserts or replaces an inventory unit.
func (s *Store) PutEquipment(ctx context.Context, unit types.EquipmentUnit) error {
	data, err := json.Marshal(unit)
	if err != nil {
		return fmt.Errorf("failed to encode equipment %s: %w", unit.ID, err)
	}

	if _, err := s.equipment.Put(ctx, kvSegment(unit.ID), data); err != nil {
		return fmt.Errorf("failed to write equipment %s: %w", unit.ID, err)
	}

	return nil
}

// ListEquipment returns the inventory in ID order.
func (s *Store) ListEquipment(ctx context.Context) ([]types.EquipmentUnit, error) {
	var units []types.EquipmentUnit
	err := eachValue(ctx, s.equipment, func(data []byte) error {
		var u types.EquipmentUnit
		if err := json.Unmarshal(data, &u); err != nil {
			return fmt.Errorf("failed to decode equipment row: %w", err)
		}
		units = append(units, u)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })

	return units, nil
}

// eachTask decodes every task row in the bucket and passes it to fn.
func (s *Store) eachTask(ctx context.Context, fn func(*types.MaintenanceTask)) error {
	return eachValue(ctx, s.tasks, func(data []byte) error {
		task, err := decodeTask(data)
		if err != nil {
			return err
		}
		fn(task)

		return nil
	})
}

// eachValue reads every key in the bucket and passes its value to fn.
// Keys deleted between listing and reading are skipped.
func eachValue(ctx context.Context, kv jetstream.KeyValue, fn func([]byte) error) error {
	keys, err := kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("failed to list bucket keys: %w", err)
	}

	for _, key := range keys {
		entry, err := kv.Get(ctx, key)
		if err != nil {
			if errors.Is(err, jetstream.ErrKeyNotFound) {
				continue
			}

			return fmt.Errorf("failed to read key %s: %w", key, err)
		}

		if err := fn(entry.Value()); err != nil {
			return err
		}
	}

	return nil
}

func decodeTask(data []byte) (*types.MaintenanceTask, error) {
	var task types.MaintenanceTask
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to decode task row: %w", err)
	}

	return &task, nil
}

// taskKVKey derives the deterministic bucket key for a task row.
//
// The cycle key is already KV-safe ("YYYY-MM"); the task type and unit
// segments pass through only when every character is KV-safe, otherwise the
// segment is replaced by its xxh3 digest so free-form IDs cannot produce an
// invalid bucket key.
func taskKVKey(key types.TaskKey) string {
	return key.CycleKey + "." + kvSegment(key.TaskTypeID) + "." + kvSegment(key.UnitID)
}

func kvSegment(s string) string {
	if s != "" && kvSafe(s) {
		return s
	}

	return fmt.Sprintf("x%016x", xxh3.HashString(s))
}

func kvSafe(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}

	return true
}
