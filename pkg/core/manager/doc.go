// Package manager keeps a set of live connections in step with an ordered
// list of connection records.
//
// The [Manager] owns an id-to-node registry. Records are bound to nodes by id
// when they are added; a record naming a node that does not exist yet is
// skipped without error and picked up again by the next [Manager.Update] or
// [Manager.Sync]. Removing a node tears down every connection touching it.
//
// # Hit testing
//
// [Manager.HitTest] asks a [Host] which primitive lies under a point. The
// built-in [GeometryHost] tests the manager's own connection geometry, last
// added on top. On a hit the connection's selection toggles and, when asked
// to, the manager raises an [EditRequest] to its single subscriber.
//
// A Manager is not safe for concurrent use.
package manager
