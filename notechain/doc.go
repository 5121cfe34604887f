// Package notechain builds note-module graphs from patch files.
//
// A patch lists nodes, each with a module type, parameters and a "target"
// naming the node that receives its notes. Two reserved nodes, "_input" and
// "_output", mark where notes enter and leave the chain. Modules are built in
// topological order so their transport registrations, and therefore their
// per-block refills, follow the note flow.
//
// Patches are JSON or YAML:
//
//	nodes:
//	  - {id: _input, type: _input, target: drift}
//	  - {id: drift, type: unstablepitch, target: vib, params: {amount: 0.2, warble: 0.4}}
//	  - {id: vib, type: vibrato, target: _output, params: {depth: 0.1, interval: 8nt}}
//	  - {id: _output, type: _output}
package notechain
