// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package feed implements the change feed: a websocket hub that fans
row-level pin mutations and presence events out to every client
subscribed to a session.

# Hub

One Hub serves all sessions; clients are grouped into rooms keyed by
session ID:

	hub := feed.NewHub()
	go hub.Run()

Handlers publish after their database write commits:

	hub.PublishPinUpdate(sessionID, pin)

so clients observe events in storage commit order. The writer's own
client receives the echo too - that echo is what settles an in-flight
local drag on the subscriber side.

# Events

Server to client: subscribed (subscription ack), pin.insert,
pin.update, pin.delete, presence.sync (full active-user set, replaces
the receiver's list). Client to server: presence.track announces the
participant's display name; identities are ephemeral and live only as
long as the connection.

# Connection Lifecycle

Each connection runs a read pump and a write pump (gorilla/websocket,
ping/pong deadlines). A client that cannot keep up with the feed is
dropped rather than allowed to stall the fan-out.
*/
package feed
