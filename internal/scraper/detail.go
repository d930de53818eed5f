package scraper

import (
	"strings"

	"github.com/wbliga/wb-liga/internal/dom"
	"github.com/wbliga/wb-liga/internal/league"
)

const (
	idPrefix = "ContentSection__"

	homeSide  = "white"
	guestSide = "blue"
)

// detailFields reads the fixed ContentSection__ fields of a page
type detailFields struct {
	doc dom.Document
}

func (f detailFields) element(id string) (dom.Element, bool) {
	return f.doc.ByID(idPrefix + id)
}

// value returns the text of <name>Label. A "Label: value" prefix is dropped;
// a colon without a following space is data ("7:35").
func (f detailFields) value(name string) (string, bool) {
	el, ok := f.element(name + "Label")
	if !ok {
		return "", false
	}
	text := dom.TrimmedText(el)
	if _, after, found := strings.Cut(text, ": "); found {
		text = strings.TrimSpace(after)
	}
	return text, true
}

func (f detailFields) text(name string) string {
	v, _ := f.value(name)
	return v
}

func (f detailFields) optional(name string) *string {
	v, ok := f.value(name)
	if !ok {
		return nil
	}
	return &v
}

func (f detailFields) href(id string) *string {
	el, ok := f.element(id)
	if !ok {
		return nil
	}
	href, ok := el.Attr("href")
	if !ok {
		return nil
	}
	href = strings.TrimSpace(href)
	return &href
}

// ParseGameDetail decodes a single-game page. It never fails: absent fields
// stay zero or nil, absent blocks yield empty lists.
func (p Parser) ParseGameDetail(html string) *league.GameDetail {
	doc := p.Document(html)
	f := detailFields{doc: doc}

	d := &league.GameDetail{
		GameID:        f.text("gameid"),
		League:        f.text("league"),
		StartDate:     f.text("startdate"),
		PlayKind:      f.text("playkind"),
		Home:          teamDetail(f, homeSide),
		Guest:         teamDetail(f, guestSide),
		FinalScore:    f.text("scoring"),
		ScoringSystem: f.optional("scoringsystem"),
		Venue: league.Venue{
			PoolName: f.text("poolname"),
			City:     f.text("poolcity"),
		},
		Officials:    officials(f),
		Events:       make([]league.GameEvent, 0),
		Statistics:   statistics(doc),
		Notes:        f.optional("note"),
		VideoLink:    f.href("videolinkHyperLink"),
		ProtocolLink: f.href("protocolLinkButton"),
		EndTime:      f.optional("endgame"),
		Organizer:    f.optional("organizer"),
	}

	if dt, ok := league.ParseDateTime(d.StartDate); ok {
		d.StartAt = &dt
	}
	if maps := f.href("googleHyperLink"); maps != nil {
		d.Venue.MapsLink = *maps
	}

	d.Home.LogoURL, d.Guest.LogoURL = p.headerLogos(f)

	rosters := rosters(doc)
	d.Home.Players, d.Guest.Players = rosters[0], rosters[1]

	d.QuarterScores = quarterScoresFrom(doc, d.FinalScore)

	for ev := range EventSequence(DocumentFields(doc)) {
		d.Events = append(d.Events, ev)
	}

	return d
}

// ParseMapsLink returns the venue's maps link of a game page, or "" when absent
func (p Parser) ParseMapsLink(html string) string {
	f := detailFields{doc: p.Document(html)}
	if maps := f.href("googleHyperLink"); maps != nil {
		return *maps
	}
	return ""
}

func teamDetail(f detailFields, side string) league.TeamDetail {
	return league.TeamDetail{
		Name:       f.text(side),
		Coach:      f.optional(side + "coach"),
		Captain:    f.optional(side + "captain"),
		TeamLeader: f.optional(side + "leiter"),
		Assistant:  f.optional(side + "betreuer"),
		BestPlayer: f.optional(side + "best"),
	}
}

// headerLogos takes the first and second image of the page header as home and guest logo
func (p Parser) headerLogos(f detailFields) (home, guest string) {
	header, ok := f.element("headerLabel")
	if !ok {
		return "", ""
	}
	images := header.QueryAll("img")
	if len(images) >= 1 {
		src, _ := images[0].Attr("src")
		home = ResolveLogoURL(src, p.origin)
	}
	if len(images) >= 2 {
		src, _ := images[1].Attr("src")
		guest = ResolveLogoURL(src, p.origin)
	}
	return home, guest
}

func officials(f detailFields) league.Officials {
	return league.Officials{
		Referee1:    f.optional("schiedsrichter1"),
		Referee2:    f.optional("schiedsrichter2"),
		Timekeeper1: f.optional("zeitnehmer1"),
		Timekeeper2: f.optional("zeitnehmer2"),
		Secretary1:  f.optional("sekretaer1"),
		Secretary2:  f.optional("sekretaer2"),
		GoalJudge1:  f.optional("torrichter1"),
		GoalJudge2:  f.optional("torrichter2"),
		Observer1:   f.optional("observer1"),
		Observer2:   f.optional("observer2"),
	}
}

// statistics is only present when both side labels are
func statistics(doc dom.Document) *league.GameStatistics {
	homeLabel, okHome := doc.ByID(idPrefix + "stats_homeLabel")
	guestLabel, okGuest := doc.ByID(idPrefix + "stats_guestLabel")
	if !okHome || !okGuest {
		return nil
	}

	return &league.GameStatistics{
		Home: league.TeamStatistics{
			Label: dom.TrimmedText(homeLabel),
			Data:  keyValueTable(doc, "ContentSection_stats_home"),
		},
		Guest: league.TeamStatistics{
			Label: dom.TrimmedText(guestLabel),
			Data:  keyValueTable(doc, "ContentSection_stats_guest"),
		},
	}
}

func keyValueTable(doc dom.Document, id string) map[string]string {
	data := make(map[string]string)
	table, ok := doc.ByID(id)
	if !ok {
		return data
	}
	for _, row := range table.QueryAll("tr") {
		cells := row.QueryAll("th, td")
		if len(cells) < 2 {
			continue
		}
		key, value := dom.TrimmedText(cells[0]), dom.TrimmedText(cells[1])
		if key != "" && value != "" {
			data[key] = value
		}
	}
	return data
}
