// Package league provides the domain records extracted from water polo league pages.
//
// The league package holds league overviews, game fixtures, standings, top-scorer
// rows and the full single-game detail with its event timeline. Records are
// recreated on every page fetch and carry no identity across calls; GenerateGameID
// derives a deterministic SHA1-based key from a fixture's natural fields so that
// repeated extractions of the same game can be recognised downstream.
//
// It also contains the locale date/time parser for the source's
// "DD.MM.YY, HH:MM Uhr" notation and helpers to interpret result strings.
package league
