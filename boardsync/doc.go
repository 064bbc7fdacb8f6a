// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package boardsync is the board synchronization client: the in-memory
session store, the feed subscription, and the drag controller that
board views build on.

# Store

One Store per open session (never a singleton):

	store := boardsync.NewStore(sessionID)
	store.SetPins(pins)
	err := store.Subscribe(ctx, api.FeedURL(sessionID), "casey")
	defer store.Unsubscribe()

The store holds the pin list, connection status, and active-user set,
and applies authoritative feed events as they arrive. Each pin carries
a sync state:

	Settled → Dragging → PendingWrite → Settled
	                   ↘ Error

# Conflict Rule

A remote update for a pin that is locally Dragging or PendingWrite
settles it and the remote value wins. The usual case is the echo of
our own write - storage's committed value - so every client converges
on the last write storage accepted, never a stale local guess.

# Drag Controller

DragController runs one gesture at a time: Begin marks the pin
dragging, Move returns clamped positions for direct rendering without
store churn, End issues exactly one write through a PinWriter and
leaves the pin PendingWrite until the feed echo lands. A failed write
flags the pin Error; the user re-drags, nothing retries.

# API Client

APIClient wraps the HTTP routes (create board, resolve code, pin
list/add/move/remove) and satisfies PinWriter, so every participant
write passes through the server's validation and clamping.
*/
package boardsync
