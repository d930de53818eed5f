package scraper

// Layout is the table generation a row belongs to
type Layout int

const (
	// LayoutSkip marks a row with too few cells for either generation
	LayoutSkip Layout = iota
	// LayoutLegacy is the older compact table without spacer or logo columns
	LayoutLegacy
	// LayoutNew is the current table with interleaved spacer and logo columns
	LayoutNew
)

func (l Layout) String() string {
	switch l {
	case LayoutLegacy:
		return "legacy"
	case LayoutNew:
		return "new"
	default:
		return "skip"
	}
}

// Entity is the kind of row being classified
type Entity int

const (
	EntityGames Entity = iota
	EntityStandings
	EntityScorers
)

type cellThresholds struct {
	newMin    int
	legacyMin int
}

var layoutThresholds = map[Entity]cellThresholds{
	EntityGames:     {newMin: 8, legacyMin: 6},
	EntityStandings: {newMin: 10, legacyMin: 9},
	EntityScorers:   {newMin: 8, legacyMin: 5},
}

// ClassifyRow picks the layout of a single row from its cell count.
// Mixed generations can occur within one table, so every row is classified on its own.
func ClassifyRow(entity Entity, cells int) Layout {
	t, ok := layoutThresholds[entity]
	if !ok {
		return LayoutSkip
	}
	switch {
	case cells >= t.newMin:
		return LayoutNew
	case cells >= t.legacyMin:
		return LayoutLegacy
	default:
		return LayoutSkip
	}
}

type gameColumns struct {
	start, home, guest, venue, result int
}

var gameLayouts = map[Layout]gameColumns{
	LayoutNew:    {start: 1, home: 3, guest: 5, venue: 6, result: 7},
	LayoutLegacy: {start: 1, home: 2, guest: 3, venue: 4, result: 5},
}

type scorerColumns struct {
	rank, name, team, goals, games int
}

var scorerLayouts = map[Layout]scorerColumns{
	LayoutNew:    {rank: 0, name: 2, team: 4, goals: 6, games: 7},
	LayoutLegacy: {rank: 0, name: 1, team: 2, goals: 3, games: 4},
}

// logo is -1 where the layout has no logo column
type standingsColumns struct {
	rank, logo, team, games, wins, draws, losses, goals, diff, points, form int
}

var standingsLayouts = map[Layout]standingsColumns{
	LayoutNew: {
		rank: 0, logo: 1, team: 2, games: 3, wins: 4, draws: 5,
		losses: 6, goals: 7, diff: 8, points: 9, form: 10,
	},
	LayoutLegacy: {
		rank: 0, logo: -1, team: 1, games: 2, wins: 3, draws: 4,
		losses: 5, goals: 6, diff: 7, points: 8, form: 9,
	},
}
