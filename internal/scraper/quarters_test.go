package scraper

import (
	"testing"

	"github.com/wbliga/wb-liga/internal/league"
)

const segmentTable = `<table>
	<tr><th>Mannschaft</th><th>Viertel</th><th>Gesamt</th></tr>
	<tr><td>Team A</td><td>8-8-4-7</td><td>27</td></tr>
	<tr><td>Team B</td><td>1-0-0-4</td><td>5</td></tr>
</table>`

const scoreboardTable = `<table id="ContentSection_scoreboard">
	<tr><th>Mannschaft</th><th>1. Viertel</th><th>2. Viertel</th><th>3. Viertel</th><th>4. Viertel</th><th>Gesamt</th></tr>
	<tr><td>Team A</td><td>2</td><td>2</td><td>1</td><td>1</td><td>6</td></tr>
	<tr><td>Team B</td><td>0</td><td>1</td><td>x</td><td>3</td><td>4</td></tr>
</table>`

const breakdownScore = `<span id="ContentSection__scoringLabel">10:8 (3:2, 2:2, 3:1, 2:3)</span>`

func TestParseQuarterScores(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []league.QuarterScore
	}{
		{
			name: "segment table",
			html: segmentTable,
			want: []league.QuarterScore{{Quarter: 1, Home: 8, Guest: 1}, {Quarter: 2, Home: 8, Guest: 0}, {Quarter: 3, Home: 4, Guest: 0}, {Quarter: 4, Home: 7, Guest: 4}},
		},
		{
			name: "legacy scoreboard skips non-numeric quarters",
			html: scoreboardTable,
			want: []league.QuarterScore{{Quarter: 1, Home: 2, Guest: 0}, {Quarter: 2, Home: 2, Guest: 1}, {Quarter: 4, Home: 1, Guest: 3}},
		},
		{
			name: "final score breakdown",
			html: breakdownScore,
			want: []league.QuarterScore{{Quarter: 1, Home: 3, Guest: 2}, {Quarter: 2, Home: 2, Guest: 2}, {Quarter: 3, Home: 3, Guest: 1}, {Quarter: 4, Home: 2, Guest: 3}},
		},
		{
			name: "segment table wins over scoreboard and breakdown",
			html: breakdownScore + scoreboardTable + segmentTable,
			want: []league.QuarterScore{{Quarter: 1, Home: 8, Guest: 1}, {Quarter: 2, Home: 8, Guest: 0}, {Quarter: 3, Home: 4, Guest: 0}, {Quarter: 4, Home: 7, Guest: 4}},
		},
		{
			name: "scoreboard wins over breakdown",
			html: breakdownScore + scoreboardTable,
			want: []league.QuarterScore{{Quarter: 1, Home: 2, Guest: 0}, {Quarter: 2, Home: 2, Guest: 1}, {Quarter: 4, Home: 1, Guest: 3}},
		},
		{
			name: "final score without breakdown",
			html: `<span id="ContentSection__scoringLabel">10:8</span>`,
			want: []league.QuarterScore{},
		},
	}

	p := NewParser("", "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ParseQuarterScores(tt.html)
			if got == nil {
				t.Fatal("expected a non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("quarter %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSegmentValues(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"8-8-4-7", 4},
		{"8 - 8 - 4", 3},
		{"3-x-1", 1},
		{"12", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := segmentValues(tt.in); len(got) != tt.want {
			t.Errorf("segmentValues(%q) = %v, want %d values", tt.in, got, tt.want)
		}
	}
}
