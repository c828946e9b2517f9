// Package types defines the game-data entities edited by the patch maker,
// the PatchState aggregate that groups them, and the standard errors shared
// by the generator and the database reader.
//
// Entities carry the column names of the game database as their JSON and
// YAML keys so a PatchState document can be round-tripped through files
// without a translation layer.
package types
