// Package storage is the raw fact store fed by the collector.
//
// Every collection run appends what it extracted (schedules, league tables,
// top scorers and game details) to a SQLite database without trying to
// merge anything; duplicate rows across runs are expected and removed later
// by the normalizer. Reads return the most recent collection of a league.
// The default location is ~/.local/share/wb-liga/seasons.db.
package storage
