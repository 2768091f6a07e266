// Package pkg holds the sectiongrid libraries.
//
// Sectiongrid lays out page sections ("blocks") on a 12-column grid of
// unbounded height. Blocks are placed in the first free position, and a block
// dropped onto others pushes them below it.
//
//   - [grid]: geometry, occupancy, placement, collision resolution and the
//     immutable [grid.Board]
//   - [drag]: the Idle/Dragging/Committing state machine for interactive moves
//   - [io]: the JSON board document
//   - [store]: memory, file, Redis and MongoDB persistence
//   - [editor]: load, mutate, save orchestration shared by CLI and API
//   - [render]: terminal rendering of a board
//   - [api]: the chi HTTP API
//   - [config], [errors], [observability], [buildinfo]: ambient support
//
// The engine itself ([grid], [drag]) is synchronous, allocation-light and has
// no I/O; everything that touches disks or networks sits in [store].
package pkg
