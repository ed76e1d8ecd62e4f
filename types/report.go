package types

import "fmt"

// PartitionID identifies one independent (site, equipment type) allocation
// partition. Partitions share no mutable state and may fail independently.
type PartitionID struct {
	Site      string        `json:"site"`
	Equipment EquipmentType `json:"equipment"`
}

// String returns "site/equipment" for logs and report rendering.
func (p PartitionID) String() string {
	return fmt.Sprintf("%s/%s", p.Site, p.Equipment)
}

// PartitionReport summarizes the allocation outcome for one partition.
type PartitionReport struct {
	Partition PartitionID `json:"partition"`

	// TotalUnits is the number of active units in the partition.
	TotalUnits int `json:"totalUnits"`

	// AssignedUnits is the number of units that ended the pass owning a
	// current-cycle task row.
	AssignedUnits int `json:"assignedUnits"`

	// UnassignedUnits is the number of units left without a task row
	// because no eligible staff existed.
	UnassignedUnits int `json:"unassignedUnits"`

	// Outcomes counts reconciliation outcomes per staff member.
	Outcomes map[string]OutcomeCounts `json:"outcomes,omitempty"`

	// FailedUnits lists unit IDs whose reconciliation failed with a
	// storage error. The run continued past them.
	FailedUnits []string `json:"failedUnits,omitempty"`

	// Err holds the partition-level failure, if any (e.g. the weight
	// source was unavailable). A partition with Err set was skipped.
	Err error `json:"-"`
}

// OutcomeCounts aggregates per-staff reconciliation outcomes.
type OutcomeCounts struct {
	Created    int `json:"created,omitempty"`
	Reassigned int `json:"reassigned,omitempty"`
	Unchanged  int `json:"unchanged,omitempty"`
	Skipped    int `json:"skipped,omitempty"`
}

// Add increments the counter matching the outcome tag.
func (c *OutcomeCounts) Add(o Outcome) {
	switch o {
	case OutcomeCreated:
		c.Created++
	case OutcomeReassigned:
		c.Reassigned++
	case OutcomeUnchanged:
		c.Unchanged++
	case OutcomeSkippedCompleted:
		c.Skipped++
	}
}

// AllocationReport is the full result of one allocation run.
//
// The report is always produced, even on partial failure, so operators can
// see exactly which partitions succeeded.
type AllocationReport struct {
	// Cycle is the cycle the run allocated for.
	Cycle Cycle `json:"cycle"`

	// Partitions holds one entry per processed (site, equipment type) pair,
	// in deterministic order (site asc, equipment asc).
	Partitions []PartitionReport `json:"partitions"`
}

// Totals sums outcome counters across all partitions.
func (r *AllocationReport) Totals() OutcomeCounts {
	var total OutcomeCounts
	for _, p := range r.Partitions {
		for _, c := range p.Outcomes {
			total.Created += c.Created
			total.Reassigned += c.Reassigned
			total.Unchanged += c.Unchanged
			total.Skipped += c.Skipped
		}
	}

	return total
}

// FailedPartitions returns the IDs of partitions that were skipped due to a
// partition-level error.
func (r *AllocationReport) FailedPartitions() []PartitionID {
	var failed []PartitionID
	for _, p := range r.Partitions {
		if p.Err != nil {
			failed = append(failed, p.Partition)
		}
	}

	return failed
}
