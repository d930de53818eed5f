package scraper

// Inline page fixtures covering both table generations

const pngPayload = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// leaguePageNew uses the card-header layout: tables have no ids and are
// reached through their header labels. One legacy-width row is mixed in.
const leaguePageNew = `<html><body>
<h1><span id="ContentSection__headerLabel">Deutsche Wasserball-Liga Männer</span></h1>
<div class="card">
  <div class="card-header"><h3><span id="ContentSection__roundLabel">Spielplan</span></h3></div>
  <div class="card-body"><div class="table-responsive"><table class="table">
    <tr><th>Spiel</th><th>Beginn</th><th></th><th>Heim</th><th></th><th>Gast</th><th>Ort</th><th>Erg.</th></tr>
    <tr><td>101</td><td>04.10.25, 16:00 Uhr</td><td></td><td>Team A</td><td></td><td>Team B</td><td>Hallenbad Nord</td>
        <td><a href="https://dsvdaten.dsv.de/Modules/WB/Game.aspx?Season=2025&amp;GameID=101" target=_blank><nobr>10:8</nobr></a></td></tr>
    <tr><td>102</td><td>11.10.25, 18:00 Uhr</td><td></td><td>Team B</td><td></td><td>Team C</td><td>Stadtbad</td>
        <td><a href="Game.aspx?Season=2025&amp;GameID=102" target="_blank">mehr...</a></td></tr>
    <tr><td>103</td><td>tba</td><td>Team C</td><td>Team A</td><td>Halle Süd</td><td>7:7</td></tr>
    <tr><td colspan="8">Spielfrei: Team D</td></tr>
  </table></div></div>
</div>
<div class="card">
  <div class="card-header"><span id="ContentSection__tableLabel">Tabelle</span></div>
  <div class="card-body"><table>
    <tr><th>Pl.</th><th></th><th>Mannschaft</th><th>Sp.</th><th>S</th><th>U</th><th>N</th><th>Tore</th><th>Diff.</th><th>Pkt.</th><th>Form</th></tr>
    <tr><td>1.</td><td><img src="` + pngPayload + `"></td><td>Team A - (i)</td><td>2/10</td><td>2</td><td>0</td><td>0</td>
        <td>20:15</td><td>+5</td><td>6</td><td><img title="S"><img title="S"></td></tr>
    <tr><td>2.</td><td><img src="Logos/b.png"></td><td>Team B</td><td>2/10</td><td>1</td><td>0</td><td>1</td>
        <td>15:18</td><td>-3</td><td>3</td><td>N S</td></tr>
  </table></div>
</div>
<div class="card">
  <div class="card-header"><span id="ContentSection__scorerLabel">Torschützen</span></div>
  <div class="card-body"><table>
    <tr><th>Pl.</th><th></th><th>Name</th><th></th><th>Verein</th><th></th><th>Tore</th><th>Sp.</th></tr>
    <tr><td>1.</td><td></td><td>Max Muster</td><td></td><td>Team A</td><td></td><td>12</td><td>2</td></tr>
    <tr><td></td><td></td><td>Moritz Muster</td><td></td><td>Team B</td><td></td><td>12</td><td>2</td></tr>
    <tr><td>3.</td><td>Erik Kurz</td><td>Team C</td><td>9</td><td>2</td></tr>
    <tr><td>4.</td><td>zu kurz</td></tr>
  </table></div>
</div>
</body></html>`

// leaguePageLegacy addresses every table by id and uses the compact columns
const leaguePageLegacy = `<html><body>
<span id="ContentSection__headerLabel">Oberliga West</span>
<table id="games">
  <tr><th>Spiel</th><th>Beginn</th><th>Heim</th><th>Gast</th><th>Ort</th><th>Erg.</th></tr>
  <tr><td>1</td><td>01.02.2025, 19:00 Uhr</td><td>SV Nord</td><td>SC Süd</td><td>Nordbad</td><td>12:11</td></tr>
  <tr><td>2</td><td>08.02.2025, 19:00 Uhr</td><td>SC Süd</td><td>SV Nord</td><td>Südbad</td><td>mehr…</td></tr>
  <tr><td>3</td><td>kaputt</td></tr>
</table>
<table id="table">
  <tr><th>Pl.</th><th>Mannschaft</th><th>Sp.</th><th>S</th><th>U</th><th>N</th><th>Tore</th><th>Diff.</th><th>Pkt.</th></tr>
  <tr><td>1</td><td>SV Nord</td><td>1</td><td>1</td><td>0</td><td>0</td><td>12:11</td><td>+1</td><td>3</td></tr>
  <tr><td>2</td><td>SC Süd</td><td>1</td><td>0</td><td>0</td><td>1</td><td>11:12</td><td>-1</td><td>0</td></tr>
</table>
<table id="scorer">
  <tr><th>Pl.</th><th>Name</th><th>Verein</th><th>Tore</th><th>Sp.</th></tr>
  <tr><td>1</td><td>Paul Pfeil</td><td>SV Nord</td><td>5</td><td>1</td></tr>
  <tr><td>&nbsp;</td><td>Lars Lang</td><td>SC Süd</td><td>5</td><td>1</td></tr>
</table>
</body></html>`

const overviewPage = `<html><body>
<div class="tab-content">
<div id="active" class="tab-pane">
  <div class="card">
    <div class="card-header">Bundesliga</div>
    <div class="card-body"><div class="list">
      <div class="row"><div class="col"><a href="https://dsvdaten.dsv.de/Modules/WB/League.aspx?Season=2025&amp;LeagueID=1">DWL Männer</a></div><div class="col">m</div></div>
      <div class="row"><div class="col"><a href="League.aspx?Season=2025&amp;LeagueID=2">DWL Frauen</a></div><div class="col">w</div></div>
      <div class="row"><div class="col">ohne Link</div></div>
    </div></div>
  </div>
  <div class="card">
    <div class="card-header">Pokal</div>
    <div class="card-body"><div class="list">
      <div class="row"><div class="col"><a>keine aktuellen Spiele vorhanden</a></div><div class="col"></div></div>
    </div></div>
  </div>
</div>
</div>
</body></html>`

const gamePage = `<html><body>
<span id="ContentSection__headerLabel"><img src="https://img.example.org/a.png"/>Team A : <img src="Logos/b.png"/>Team B</span>
<span id="ContentSection__gameidLabel">Spiel-Nr.: 4711</span>
<span id="ContentSection__leagueLabel">DWL Männer</span>
<span id="ContentSection__startdateLabel">04.10.2025, 16:00 Uhr</span>
<span id="ContentSection__playkindLabel">Punktspiel</span>
<span id="ContentSection__whiteLabel">Team A</span>
<span id="ContentSection__whitecoachLabel">Trainer: Hans Coach</span>
<span id="ContentSection__blueLabel">Team B</span>
<span id="ContentSection__bluecaptainLabel"></span>
<span id="ContentSection__scoringLabel">10:8 (3:2, 2:2, 3:1, 2:3)</span>
<span id="ContentSection__scoringsystemLabel">4x8</span>
<span id="ContentSection__poolnameLabel">Hallenbad Nord</span>
<span id="ContentSection__poolcityLabel">Musterweg 1, 12345 Musterstadt</span>
<a id="ContentSection__googleHyperLink" href="https://maps.google.com/?q=Hallenbad+Nord">Karte</a>
<span id="ContentSection__schiedsrichter1Label">Erika Pfiff</span>
<span id="ContentSection__zeitnehmer2Label">Uwe Uhr</span>
<span id="ContentSection__endgameLabel">17:35</span>
<a id="ContentSection__videolinkHyperLink" href="https://video.example.org/4711">Video</a>
<table id="ContentSection_gameRepeater">
  <tr><td id="ContentSection__gameRepeater__timeLabel_0">7:35</td><td id="ContentSection__gameRepeater__periodLabel_0">1</td>
      <td id="ContentSection__gameRepeater__playerLabel_0">5</td><td id="ContentSection__gameRepeater__eventkeyLabel_0">T</td>
      <td id="ContentSection__gameRepeater__goalsLabel_0">1:0</td></tr>
  <tr><td id="ContentSection__gameRepeater__timeLabel_1">6:10</td><td id="ContentSection__gameRepeater__periodLabel_1">1</td>
      <td id="ContentSection__gameRepeater__playerLabel_1">7</td><td id="ContentSection__gameRepeater__eventkeyLabel_1">A</td>
      <td id="ContentSection__gameRepeater__goalsLabel_1"></td></tr>
  <tr><td id="ContentSection__gameRepeater__timeLabel_2">2:00</td><td id="ContentSection__gameRepeater__periodLabel_2">2</td>
      <td id="ContentSection__gameRepeater__playerLabel_2">5</td><td id="ContentSection__gameRepeater__eventkeyLabel_2">T</td>
      <td id="ContentSection__gameRepeater__goalsLabel_2">2:0</td></tr>
  <tr><td id="ContentSection__gameRepeater__timeLabel_4">1:00</td><td id="ContentSection__gameRepeater__periodLabel_4">4</td></tr>
</table>
<span id="ContentSection__stats_homeLabel">Team A</span>
<table id="ContentSection_stats_home">
  <tr><th>Ausschlüsse</th><td>4</td></tr>
  <tr><td>Strafwürfe</td><td></td></tr>
</table>
<span id="ContentSection__stats_guestLabel">Team B</span>
<table id="ContentSection_stats_guest">
  <tr><td>Ausschlüsse</td><td>6</td></tr>
</table>
<div id="players"><div class="container-fluid"><div class="row">
  <div class="col-12 col-md-6"><table>
    <tr><th colspan="8">Team A</th></tr>
    <tr><th>Nr</th><th>Name</th><th>Jg</th><th>Tore</th><th>Q1</th><th>Q2</th><th>Q3</th><th>Q4</th></tr>
    <tr><td>1</td><td>Tim Torwart</td><td>1999</td><td>&nbsp;</td><td></td><td></td><td></td><td></td></tr>
    <tr><td>5</td><td>Max Muster</td><td>2001</td><td>2</td><td>A</td><td></td><td>E</td><td></td></tr>
    <tr><td colspan="8">Trainer: Hans Coach</td></tr>
  </table></div>
  <div class="col-12 col-md-6"><table>
    <tr><th colspan="8">Team B</th></tr>
    <tr><th>Nr</th><th>Name</th><th>Jg</th><th>Tore</th><th>Q1</th><th>Q2</th><th>Q3</th><th>Q4</th></tr>
    <tr><td>7</td><td>Moritz Muster</td><td>2000</td><td></td><td></td><td>A</td><td></td><td></td></tr>
  </table></div>
</div></div></div>
</body></html>`
