package scraper

import (
	"testing"

	"github.com/wbliga/wb-liga/internal/dom"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name   string
		html   string
		wantID string
		found  bool
	}{
		{
			name:   "direct id",
			html:   `<div id="games"><table id="t"></table></div><span id="label"></span>`,
			wantID: "games",
			found:  true,
		},
		{
			name: "label through header block",
			html: `<div class="card">
				<div class="card-header"><h3><span id="label">Spielplan</span></h3></div>
				<div class="card-body"><div><table id="body-table"><tr><td>x</td></tr></table></div></div>
			</div>`,
			wantID: "body-table",
			found:  true,
		},
		{
			name:  "header block without sibling",
			html:  `<div class="card"><div class="card-header"><span id="label">x</span></div></div>`,
			found: false,
		},
		{
			name:  "sibling without table",
			html:  `<div class="card"><div class="card-header"><span id="label">x</span></div><div>leer</div></div>`,
			found: false,
		},
		{
			name:  "label outside header block",
			html:  `<div><span id="label">x</span></div><table id="other"></table>`,
			found: false,
		},
		{
			name:  "nothing",
			html:  `<p>leer</p>`,
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, ok := Locate(dom.Parse(tt.html), "games", "label")
			if ok != tt.found {
				t.Fatalf("Locate found = %v, want %v", ok, tt.found)
			}
			if !ok {
				return
			}
			if id, _ := el.Attr("id"); id != tt.wantID {
				t.Errorf("Locate returned element %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestLocate_NilDocument(t *testing.T) {
	if _, ok := Locate(nil, "games", "label"); ok {
		t.Error("expected nil document to yield no container")
	}
}
