// SPDX-License-Identifier: GPL-3.0-or-later

// Package asynctcp is a completion-port-driven TCP transport: endpoints are
// entities composed of small state-bearing records (a connection record, a
// receive buffer record, a send buffer record, a listen record, marker
// records), and a single tick-driven pump dispatches kernel completions
// through them.
//
// # Entities and records
//
// [World] is the record store. Entities ([EntityID]) carry zero or more
// typed records, attached with [Add] and inspected with [Get]/[Has]. Most
// records are inert data; a few implement attach/remove hooks that arm or
// tear down I/O when the record is added to or removed from an entity:
//
//   - [ListenRecord]: creates a listening socket and arms its first accept.
//   - [ConnectionRecord]: owns a connected socket and its address strings.
//   - [ReceiveRecord]: arms an asynchronous receive.
//   - [SendRecord]: triggers a connect (socket not yet connected) or a send.
//
// State transitions are signaled by zero-byte marker records — [Connected],
// [ReceiveComplete], [SendComplete], [ResponseSent] — added by the producing
// step and removed by the first downstream step that reacts to them.
//
// # Engine and pump
//
// [NewEngine] creates a [World] wired to a [CompletionPort]. Each call to
// [Engine.Tick] drains up to [Config.EventLimit] completions via [Pump.Tick],
// dispatching each by its [OperationState], then advances the HTTP
// lifecycle for any entities with [ProcessHttp] or [Redirecting] attached.
//
// # Buffers
//
// [ByteBuffer] is the manually-managed buffer every kernel I/O call reads
// from or writes into. [Transfer] moves a buffer's backing region between
// records without copying; records never alias each other's buffers.
//
// # HTTP
//
// [ParseRequest]/[ParseResponse] and [SerializeResponse] implement the wire
// codec layered over [ByteBuffer]. [RouteEntity] and [MatchRoute] route a
// parsed [Request] by URL; [Redirecting] and [ClassifyRedirect] track a
// client's 301 redirect chain for cycle detection.
//
// # Errors and logging
//
// Kernel errors classify into pending/would-block (silently ignored),
// benign (neither logged nor surfaced), or entity-surfaced (appended to that
// entity's [Errors] record via [ErrClassifier]). [EventLogger] writes a
// dedicated column-aligned trace of pump events, independent of the general
// [SLogger] diagnostics.
package asynctcp
