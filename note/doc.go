// Package note defines the note message that flows between note modules and
// the modulation payload it carries.
//
// A payload holds one ordered composition Chain per destination (pitch bend,
// mod wheel, pressure). Modules never mutate another module's signal; they
// append their own Contributor to the chain, and the consumer of the note
// sums the chain when it renders a block. Append order is the module
// processing order, so composition is deterministic.
package note
