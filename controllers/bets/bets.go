package bets

import (
	"sportsbet/bookingcode"
	"sportsbet/engine"
)

var (
	eng   *engine.Engine
	codes *bookingcode.Cache
)

// Init wires the controllers to their collaborators. Called once from
// main before routes are registered.
func Init(e *engine.Engine, c *bookingcode.Cache) {
	eng = e
	codes = c
}
