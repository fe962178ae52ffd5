// Package core defines the shared vocabulary of the ragmesh workflow: the
// typed message envelope exchanged between stages, the payload variants per
// message type, chunk/passage types produced by ingestion and consumed by
// retrieval, and the sentinel errors of the failure taxonomy.
//
// Messages are immutable values. Every message produced in response to
// another carries the same trace id, so a whole request (including its
// retries) can be correlated end to end. Payloads form a closed set: one
// concrete struct per MessageType, discriminated on the wire by the "type"
// field of the envelope.
package core
