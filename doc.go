// Package photongo is the core of a client library for a proprietary
// binary TCP messaging protocol used by a realtime game-networking
// server product: a length-prefixed framing/connection state machine
// layered under a self-describing tagged-value codec.
//
// This core implements only the plain-TCP, unencrypted path. UDP
// transport, encryption, fragmentation, reliability sequencing, and any
// application-layer room/lobby/authentication semantics live above this
// library, in the server product and the embedding host.
//
// Host code builds a Client with NewClient, calls Connect once a target
// host:port is known, enqueues operations with OpCustom, and calls
// Service periodically (typically once per game loop tick) to drain
// incoming events and flush outgoing operations.
package photongo
