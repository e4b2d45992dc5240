// meta/meta.go
package meta

import "time"

// TurnBudget is the wall-clock time a punter allows itself per move.
const TurnBudget = 900 * time.Millisecond

// LibertyDepth is the hop radius used when estimating a partition's growth potential.
const LibertyDepth = 2

// ChokepointThreshold is the path stretch above which a river counts as a chokepoint.
const ChokepointThreshold = 1.3

// Disconnected is the path length assumed when removing a river disconnects two anchors.
const Disconnected = 10000

// SplurgeFanout is how many top claims are extended into two-river splurges.
const SplurgeFanout = 4

// DefaultName is the name a punter announces in the handshake.
const DefaultName = "punter"
