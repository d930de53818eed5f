// Package normalize turns the raw fact store into a relational one.
//
// A run adds atomic columns (scores, date components, goals for/against,
// player name and birth year, street/postal code/city), derives the
// reference tables teams, players and venues by natural key, backfills the
// foreign keys of every fact row, removes duplicate fact rows and rebuilds
// indexes and statistics tables. All of it happens in one transaction that
// is preceded by a full snapshot of the database file; if anything fails the
// snapshot is put back in place. Running it twice yields the same state as
// running it once.
package normalize
