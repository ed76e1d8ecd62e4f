// Package store provides task store implementations over the application's
// shared storage.
//
// The package includes:
//
//   - Memory: In-process store for tests and single-node development
//   - natskv (subpackage): NATS JetStream KeyValue-backed store
//   - mongo (subpackage): MongoDB-backed store over the bot's shared database
//
// All implementations satisfy types.TaskStore plus the read-only
// types.StaffSource and types.EquipmentSource. The store is shared with the
// rest of the application: implementations never assume exclusive access,
// and every method is one narrow operation so reconciliation keeps its
// read-modify-write window small.
package store
