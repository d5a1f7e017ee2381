// meta/meta.go
package meta

import "time"

// DEFAULT_RADIUS is the board radius used when none is given.
const DEFAULT_RADIUS = 3

// MAX_TURNS caps a self-play game. Every action removes an edge, so no game
// on a board of radius 10 or less can reach it.
const MAX_TURNS = 400

// GAMES_PER_MATCHUP is the number of games played per experiment matchup.
const GAMES_PER_MATCHUP = 10

// ENV_PREFIX prefixes every environment override read by Load.
const ENV_PREFIX = "ISOLATION_"

// DEFAULT_MIN_THINKING is the shortest time a bot appears to think.
const DEFAULT_MIN_THINKING = 250 * time.Millisecond
