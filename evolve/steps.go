// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package evolve

// StepKind identifies one of the five ways a record schema can change
// between versions, per spec.md §4.E.
type StepKind byte

const (
	// StepInitialVersion opens the schema's history and declares how many
	// fields chunk 0 holds. Every schema has exactly one, first in its
	// step list.
	StepInitialVersion StepKind = iota
	// StepFieldAdded introduces a field in a new chunk.
	StepFieldAdded
	// StepFieldMadeOptional marks a previously required field optional,
	// without moving it to a new chunk.
	StepFieldMadeOptional
	// StepFieldRemoved retires a field; its chunk position becomes a
	// tombstone that later readers skip.
	StepFieldRemoved
	// StepFieldRenamed changes a field's current name without touching its
	// chunk assignment or wire representation.
	StepFieldRenamed
)

func (k StepKind) String() string {
	switch k {
	case StepInitialVersion:
		return "InitialVersion"
	case StepFieldAdded:
		return "FieldAdded"
	case StepFieldMadeOptional:
		return "FieldMadeOptional"
	case StepFieldRemoved:
		return "FieldRemoved"
	case StepFieldRenamed:
		return "FieldRenamed"
	default:
		return "Unknown"
	}
}

// Step is one entry in a schema's declared evolution history. Construct
// values with the constructor functions below rather than the struct
// literal directly.
type Step struct {
	Kind       StepKind
	FieldCount int
	Name       string
	OldName    string
	NewName    string
}

// InitialVersion declares chunk 0's field count. Every record schema's
// step list must start with exactly one of these.
func InitialVersion(fieldCount int) Step {
	return Step{Kind: StepInitialVersion, FieldCount: fieldCount}
}

// FieldAdded declares that name was introduced in a new chunk at this
// point in the schema's history.
func FieldAdded(name string) Step {
	return Step{Kind: StepFieldAdded, Name: name}
}

// FieldMadeOptional declares that the previously required field name
// became optional at this point, without relocating it.
func FieldMadeOptional(name string) Step {
	return Step{Kind: StepFieldMadeOptional, Name: name}
}

// FieldRemoved declares that name was retired at this point.
func FieldRemoved(name string) Step {
	return Step{Kind: StepFieldRemoved, Name: name}
}

// FieldRenamed declares that the field known as oldName is now called
// newName, with no change to its chunk or wire representation.
func FieldRenamed(oldName, newName string) Step {
	return Step{Kind: StepFieldRenamed, OldName: oldName, NewName: newName}
}
