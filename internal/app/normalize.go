package app

import (
	"math"
	"strconv"
	"strings"

	"ushuaia_experiences/internal/domain"
)

/********** field registry (single source of truth) **********/

// fieldSetters maps a sheet header to its permissive coercion into the
// record. Unknown headers are ignored; a row shorter than the header row
// yields nil cells for the trailing fields.
var fieldSetters = map[string]func(e *domain.Experience, v any){
	"id":    func(e *domain.Experience, v any) { e.ID = toStr(v) },
	"title": func(e *domain.Experience, v any) { e.Title = toStr(v) },

	"category":    func(e *domain.Experience, v any) { e.Category = toStr(v) },
	"season":      func(e *domain.Experience, v any) { e.Season = toStr(v) },
	"bookingType": func(e *domain.Experience, v any) { e.BookingType = toStr(v) },
	"difficulty":  func(e *domain.Experience, v any) { e.Difficulty = toStr(v) },

	"priceAdultARS": func(e *domain.Experience, v any) { e.PriceAdultARS = toNum(v) },
	"priceChildARS": func(e *domain.Experience, v any) { e.PriceChildARS = toNum(v) },
	"childAgeMin":   func(e *domain.Experience, v any) { e.ChildAgeMin = toNum(v) },
	"childAgeMax":   func(e *domain.Experience, v any) { e.ChildAgeMax = toNum(v) },
	"durationHours": func(e *domain.Experience, v any) { e.DurationHours = toNum(v) },
	"daysCount":     func(e *domain.Experience, v any) { e.DaysCount = toNum(v) },
	"minPax":        func(e *domain.Experience, v any) { e.MinPax = toNum(v) },
	"maxPax":        func(e *domain.Experience, v any) { e.MaxPax = toNum(v) },

	"isActive":   func(e *domain.Experience, v any) { e.IsActive = toBool(v) },
	"refundable": func(e *domain.Experience, v any) { e.Refundable = toBool(v) },

	"language":    func(e *domain.Experience, v any) { e.Language = splitList(v) },
	"includes":    func(e *domain.Experience, v any) { e.Includes = splitList(v) },
	"notIncludes": func(e *domain.Experience, v any) { e.NotIncludes = splitList(v) },
	"images":      func(e *domain.Experience, v any) { e.Images = splitList(v) },
	"highlights":  func(e *domain.Experience, v any) { e.Highlights = splitList(v) },

	"providerName":       func(e *domain.Experience, v any) { e.ProviderName = toStr(v) },
	"refCodeProvider":    func(e *domain.Experience, v any) { e.RefCodeProvider = toStr(v) },
	"startDate":          func(e *domain.Experience, v any) { e.StartDate = toStr(v) },
	"endDate":            func(e *domain.Experience, v any) { e.EndDate = toStr(v) },
	"meetingPoint":       func(e *domain.Experience, v any) { e.MeetingPoint = toStr(v) },
	"schedule":           func(e *domain.Experience, v any) { e.Schedule = toStr(v) },
	"cancellationPolicy": func(e *domain.Experience, v any) { e.CancellationPolicy = toStr(v) },
	"description":        func(e *domain.Experience, v any) { e.Description = toStr(v) },
	"videoUrl":           func(e *domain.Experience, v any) { e.VideoURL = toStr(v) },
	"mapUrl":             func(e *domain.Experience, v any) { e.MapURL = toStr(v) },
	"notesInternal":      func(e *domain.Experience, v any) { e.NotesInternal = toStr(v) },
	"checkoutUrl":        func(e *domain.Experience, v any) { e.CheckoutURL = toStr(v) },
}

/********** coercers (pure, never fail) **********/

// toStr renders a cell as a trimmed string. Numeric cells keep their
// shortest decimal form.
func toStr(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

var (
	truthy = map[string]struct{}{"true": {}, "1": {}, "yes": {}, "si": {}, "sí": {}}
	falsy  = map[string]struct{}{"false": {}, "0": {}, "no": {}}
)

// toBool is tri-state: nil means the cell carried no recognizable answer.
func toBool(v any) *bool {
	switch t := v.(type) {
	case bool:
		return &t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if _, ok := truthy[s]; ok {
			return boolPtr(true)
		}
		if _, ok := falsy[s]; ok {
			return boolPtr(false)
		}
	case float64:
		return boolPtr(t != 0)
	case int:
		return boolPtr(t != 0)
	}
	return nil
}

// toNum accepts numeric cells or numeric-looking strings (decimal comma
// tolerated). Blank, unparseable and non-finite input all degrade to nil.
func toNum(v any) *float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return &t
	case int:
		f := float64(t)
		return &f
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return &f
		}
	}
	return nil
}

// splitList splits a single delimited cell on ';' or '|'. Anything that is
// not a string yields an empty (non-nil) list.
func splitList(v any) []string {
	out := []string{}
	s, ok := v.(string)
	if !ok {
		return out
	}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' }) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

/********** normalization **********/

// Drop reasons reported by Audit.
const (
	DropMissingID    = "missing id"
	DropMissingTitle = "missing title"
	DropInactive     = "inactive"
)

func buildExperience(headers []string, row []any) domain.Experience {
	e := domain.Experience{
		Language:    []string{},
		Includes:    []string{},
		NotIncludes: []string{},
		Images:      []string{},
		Highlights:  []string{},
	}
	for i, h := range headers {
		set, ok := fieldSetters[strings.TrimSpace(h)]
		if !ok {
			continue
		}
		var v any
		if i < len(row) {
			v = row[i]
		}
		set(&e, v)
	}
	return e
}

// dropReason decides whether a record may be served; "" means keep.
func dropReason(e domain.Experience) string {
	switch {
	case e.ID == "":
		return DropMissingID
	case e.Title == "":
		return DropMissingTitle
	case e.IsActive != nil && !*e.IsActive:
		return DropInactive
	}
	return ""
}

// Normalize maps raw sheet rows into served Experience records, preserving
// row order. Rows failing the inclusion rule (empty id or title, or an
// explicit isActive=false) are dropped silently.
func Normalize(headers []string, rows [][]any) []domain.Experience {
	items := make([]domain.Experience, 0, len(rows))
	for _, row := range rows {
		e := buildExperience(headers, row)
		if dropReason(e) != "" {
			continue
		}
		items = append(items, e)
	}
	return items
}

// DroppedRow identifies an excluded sheet row. Index is 1-based over the
// data rows (header row not counted).
type DroppedRow struct {
	Index  int
	ID     string
	Title  string
	Reason string
}

// RowReport is Normalize plus the story of what was left out.
type RowReport struct {
	Kept    []domain.Experience
	Dropped []DroppedRow
}

// Audit runs the same normalization as Normalize but keeps drop reasons,
// for operator tooling.
func Audit(headers []string, rows [][]any) RowReport {
	rep := RowReport{Kept: make([]domain.Experience, 0, len(rows))}
	for i, row := range rows {
		e := buildExperience(headers, row)
		if reason := dropReason(e); reason != "" {
			rep.Dropped = append(rep.Dropped, DroppedRow{Index: i + 1, ID: e.ID, Title: e.Title, Reason: reason})
			continue
		}
		rep.Kept = append(rep.Kept, e)
	}
	return rep
}
