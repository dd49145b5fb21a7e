package excel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/youthcup/internal/config"
	"github.com/derekprior/youthcup/internal/fixture"
	"github.com/derekprior/youthcup/internal/kickoff"
	"github.com/derekprior/youthcup/internal/schedule"
	"github.com/derekprior/youthcup/internal/validator"
)

const (
	MasterSheet     = "Master Schedule"
	ValidationSheet = "Validation"
)

// Master sheet columns. ReadFixtures locates them by header, so a user may
// reorder columns without breaking the round trip.
const (
	colMatch    = "Match"
	colDate     = "Date"
	colDay      = "Day"
	colTime     = "Time"
	colVenue    = "Venue"
	colGroup    = "Group"
	colHome     = "Home"
	colAway     = "Away"
	colReferees = "Referees"
	colID       = "ID"
)

var masterHeaders = []string{colMatch, colDate, colDay, colTime, colVenue, colGroup, colHome, colAway, colReferees, colID}

type styles struct {
	header int
	cell   int
	center int
	text   int
	// severity fills for the validation sheet
	severity map[validator.Severity]int
}

func newStyles(f *excelize.File) styles {
	s := styles{severity: make(map[validator.Severity]int)}
	s.header, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 14, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#2E7D32"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	s.cell, _ = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Family: "Arial"},
	})
	s.center, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 14, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	// Text format keeps Excel from converting dates and kickoff times.
	s.text, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 14, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		NumFmt:    49,
	})
	fills := map[validator.Severity]string{
		validator.SeverityError:   "#FFC7CE",
		validator.SeverityWarning: "#FFEB9C",
		validator.SeverityInfo:    "#DDEBF7",
	}
	for sev, color := range fills {
		s.severity[sev], _ = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Size: 14, Family: "Arial"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
	}
	return s
}

func (s styles) writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if s.header != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), s.header)
	}
}

func (s styles) styleRow(f *excelize.File, sheet string, row, cols, style int) {
	if style != 0 {
		f.SetCellStyle(sheet, cellRef(1, row), cellRef(cols, row), style)
	}
}

// Generate creates a workbook with the master schedule and per-team sheets.
func Generate(cfg *config.Config, result *schedule.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")
	st := newStyles(f)

	if err := writeMasterSheet(f, st, cfg, result.Fixtures); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}
	if err := writeTeamSheets(f, st, cfg, result.Fixtures); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// displayName is what the workbook shows for a competitor.
func displayName(c fixture.Competitor) string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

func sortFixtures(fixtures []fixture.Fixture) []fixture.Fixture {
	sorted := make([]fixture.Fixture, len(fixtures))
	copy(sorted, fixtures)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.Order < b.Order
	})
	return sorted
}

func writeMasterSheet(f *excelize.File, st styles, cfg *config.Config, fixtures []fixture.Fixture) error {
	sheet := MasterSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	st.writeHeader(f, sheet, masterHeaders)

	teams := fixture.Index(cfg.Competitors())
	venues := make(map[string]string)
	for _, v := range cfg.FixtureVenues() {
		venues[v.ID] = v.Name
	}
	name := func(id string) string {
		if c, ok := teams[id]; ok {
			return displayName(c)
		}
		return id
	}

	for i, fx := range sortFixtures(fixtures) {
		row := i + 2
		venue := fx.Venue
		if n, ok := venues[venue]; ok {
			venue = n
		}
		refs := make([]string, len(fx.Referees))
		for j, r := range fx.Referees {
			refs[j] = name(r)
		}
		values := []any{
			fx.Order,
			fx.Date.Format(fixture.DateLayout),
			fx.Date.Format("Mon"),
			fx.Time.String(),
			venue,
			fx.Group,
			name(fx.Home),
			name(fx.Away),
			strings.Join(refs, ", "),
			fx.ID,
		}
		for col, v := range values {
			f.SetCellValue(sheet, cellRef(col+1, row), v)
		}
		st.styleRow(f, sheet, row, len(values), st.cell)
		if st.center != 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(1, row), st.center)
		}
		if st.text != 0 {
			f.SetCellStyle(sheet, cellRef(2, row), cellRef(4, row), st.text)
		}
	}

	widths := []float64{8, 14, 8, 9, 22, 8, 26, 26, 40, 40}
	for i, w := range widths {
		col := colLetter(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

// teamSheetName converts a label into a legal, unique sheet name.
func teamSheetName(label string, taken map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, label)
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Team"
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	base := name
	for n := 2; taken[strings.ToLower(name)]; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		r := []rune(base)
		if len(r)+len(suffix) > 31 {
			r = r[:31-len(suffix)]
		}
		name = string(r) + suffix
	}
	taken[strings.ToLower(name)] = true
	return name
}

// teamSheetNames assigns each competitor its sheet, in roster order.
func teamSheetNames(competitors []fixture.Competitor) map[string]string {
	taken := map[string]bool{
		strings.ToLower(MasterSheet):     true,
		strings.ToLower(ValidationSheet): true,
	}
	names := make(map[string]string, len(competitors))
	for _, c := range competitors {
		names[c.ID] = teamSheetName(c.Label(), taken)
	}
	return names
}

func writeTeamSheets(f *excelize.File, st styles, cfg *config.Config, fixtures []fixture.Fixture) error {
	competitors := cfg.Competitors()
	teams := fixture.Index(competitors)
	sheets := teamSheetNames(competitors)
	venues := make(map[string]string)
	for _, v := range cfg.FixtureVenues() {
		venues[v.ID] = v.Name
	}
	name := func(id string) string {
		if c, ok := teams[id]; ok {
			return displayName(c)
		}
		return id
	}

	sorted := sortFixtures(fixtures)
	headers := []string{"Date", "Day", "Time", "Venue", "Role", "Opponent", "Match"}

	for _, c := range competitors {
		sheet := sheets[c.ID]
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet for %s: %w", c.ID, err)
		}
		st.writeHeader(f, sheet, headers)

		row := 2
		for _, fx := range sorted {
			var role, opponent string
			switch {
			case fx.Home == c.ID:
				role, opponent = "Home", name(fx.Away)
			case fx.Away == c.ID:
				role, opponent = "Away", name(fx.Home)
			case refereeing(fx, c.ID):
				role, opponent = "Referee", name(fx.Home)+" v "+name(fx.Away)
			default:
				continue
			}
			venue := fx.Venue
			if n, ok := venues[venue]; ok {
				venue = n
			}
			values := []any{
				fx.Date.Format(fixture.DateLayout),
				fx.Date.Format("Mon"),
				fx.Time.String(),
				venue,
				role,
				opponent,
				fx.Order,
			}
			for col, v := range values {
				f.SetCellValue(sheet, cellRef(col+1, row), v)
			}
			st.styleRow(f, sheet, row, len(headers), st.cell)
			row++
		}

		widths := map[string]float64{"A": 14, "B": 8, "C": 9, "D": 22, "E": 10, "F": 40, "G": 8}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}
	return nil
}

func refereeing(fx fixture.Fixture, id string) bool {
	for _, r := range fx.Referees {
		if r == id {
			return true
		}
	}
	return false
}

// lookup resolves workbook text back to ids. Matching ignores case and
// surrounding whitespace.
type lookup map[string]string

func (l lookup) add(key, id string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}
	if _, ok := l[key]; !ok {
		l[key] = id
	}
}

func (l lookup) get(key string) (string, bool) {
	id, ok := l[strings.ToLower(strings.TrimSpace(key))]
	return id, ok
}

// ReadFixtures parses the master sheet back into fixtures. Team cells may
// hold a name, short name or id. Slots are recomputed from the kickoff time,
// so a time earlier than the day's start fails with kickoff.ErrBeforeStart.
func ReadFixtures(f *excelize.File, cfg *config.Config) ([]fixture.Fixture, error) {
	rows, err := f.GetRows(MasterSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", MasterSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", MasterSheet)
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	for _, h := range []string{colDate, colTime, colHome, colAway} {
		if _, ok := index[h]; !ok {
			return nil, fmt.Errorf("%s is missing the %q column", MasterSheet, h)
		}
	}

	competitors := cfg.Competitors()
	teams := lookup{}
	for _, c := range competitors {
		teams.add(c.ID, c.ID)
		teams.add(c.Name, c.ID)
		teams.add(c.ShortName, c.ID)
	}
	venues := lookup{}
	for _, v := range cfg.FixtureVenues() {
		venues.add(v.ID, v.Name)
		venues.add(v.Name, v.Name)
	}
	settings := cfg.Settings()

	var fixtures []fixture.Fixture
	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(name string) string {
			col, ok := index[name]
			if !ok || col >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[col])
		}
		if cell(colHome) == "" && cell(colAway) == "" {
			continue
		}

		fx, err := parseRow(cell, teams, venues, settings)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if fx.Order == 0 {
			fx.Order = len(fixtures) + 1
		}
		if fx.ID == "" {
			fx.ID = fixture.StableID(fx)
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures, nil
}

func parseRow(cell func(string) string, teams, venues lookup, settings kickoff.Settings) (fixture.Fixture, error) {
	var fx fixture.Fixture

	date, err := parseDate(cell(colDate))
	if err != nil {
		return fx, err
	}
	fx.Date = date

	clock, err := parseKickoff(cell(colTime))
	if err != nil {
		return fx, err
	}
	fx.Time = clock
	if fx.Slot, err = settings.SlotOf(clock); err != nil {
		return fx, err
	}

	for _, side := range []struct {
		col string
		dst *string
	}{{colHome, &fx.Home}, {colAway, &fx.Away}} {
		id, ok := teams.get(cell(side.col))
		if !ok {
			return fx, fmt.Errorf("unknown team %q in %s column", cell(side.col), side.col)
		}
		*side.dst = id
	}

	if refs := cell(colReferees); refs != "" {
		for _, r := range strings.Split(refs, ",") {
			if strings.TrimSpace(r) == "" {
				continue
			}
			id, ok := teams.get(r)
			if !ok {
				return fx, fmt.Errorf("unknown referee %q", strings.TrimSpace(r))
			}
			fx.Referees = append(fx.Referees, id)
		}
	}

	// Unknown venues are kept verbatim so ad-hoc pitches still validate.
	fx.Venue = cell(colVenue)
	if name, ok := venues.get(fx.Venue); ok {
		fx.Venue = name
	}

	fx.Group = cell(colGroup)
	fx.ID = cell(colID)
	if m := cell(colMatch); m != "" {
		if fx.Order, err = strconv.Atoi(m); err != nil {
			return fx, fmt.Errorf("invalid match number %q", m)
		}
	}
	return fx, nil
}

// Layouts Excel produces when a user retypes a date or time into a cell that
// lost its text format.
var (
	dateLayouts = []string{fixture.DateLayout, "1/2/2006", "1/2/06"}
	timeLayouts = []string{"3:04 PM", "3:04PM", "3:04:05 PM", "15:04:05"}
)

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func parseKickoff(s string) (kickoff.Clock, error) {
	clock, err := kickoff.ParseClock(s)
	if err == nil {
		return clock, nil
	}
	for _, layout := range timeLayouts {
		if t, perr := time.Parse(layout, strings.ToUpper(s)); perr == nil {
			return kickoff.At(t.Hour(), t.Minute()), nil
		}
	}
	return 0, err
}

// WriteValidation replaces the validation sheet with one row per violation.
// Fixture references are shown as match numbers where known.
func WriteValidation(f *excelize.File, violations []validator.Violation, fixtures []fixture.Fixture, competitors []fixture.Competitor) error {
	sheet := ValidationSheet
	if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
		if err := f.DeleteSheet(sheet); err != nil {
			return err
		}
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	st := newStyles(f)
	headers := []string{"Severity", "Rule", "Label", "Description", "Matches", "Teams", "Date", "Slot"}
	st.writeHeader(f, sheet, headers)

	orders := make(map[string]int, len(fixtures))
	for _, fx := range fixtures {
		orders[fx.Ref()] = fx.Order
	}
	teams := fixture.Index(competitors)

	if len(violations) == 0 {
		f.SetCellValue(sheet, "A2", "ok")
		f.SetCellValue(sheet, "D2", "No violations found")
	}
	for i, v := range violations {
		row := i + 2
		matches := make([]string, len(v.FixtureIDs))
		for j, id := range v.FixtureIDs {
			if o, ok := orders[id]; ok {
				matches[j] = "#" + strconv.Itoa(o)
			} else {
				matches[j] = id
			}
		}
		names := make([]string, len(v.CompetitorIDs))
		for j, id := range v.CompetitorIDs {
			if c, ok := teams[id]; ok {
				names[j] = displayName(c)
			} else {
				names[j] = id
			}
		}
		slot := ""
		if v.Slot > 0 {
			slot = strconv.Itoa(v.Slot)
		}
		values := []any{
			string(v.Severity),
			string(v.Type),
			v.Label,
			v.Description,
			strings.Join(matches, ", "),
			strings.Join(names, ", "),
			v.Date,
			slot,
		}
		for col, val := range values {
			f.SetCellValue(sheet, cellRef(col+1, row), val)
		}
		st.styleRow(f, sheet, row, len(headers), st.severity[v.Severity])
	}

	widths := []float64{10, 24, 30, 70, 20, 40, 14, 6}
	for i, w := range widths {
		col := colLetter(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

// UpdateTeamSheets regenerates every team sheet from the given fixtures,
// typically the ones just read back from an edited master sheet.
func UpdateTeamSheets(f *excelize.File, cfg *config.Config, fixtures []fixture.Fixture) error {
	for _, sheet := range teamSheetNames(cfg.Competitors()) {
		if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
			if err := f.DeleteSheet(sheet); err != nil {
				return fmt.Errorf("removing sheet %s: %w", sheet, err)
			}
		}
	}
	return writeTeamSheets(f, newStyles(f), cfg, fixtures)
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
