package entity

import "time"

// Period es un rango de fechas de calendario [Start, End], inclusivo en ambos extremos.
// Solo importa la parte de fecha; la hora del día se ignora.
type Period struct {
	Start time.Time
	End   time.Time
}

// CivilDate trunca t a su fecha de calendario (00:00 UTC del mismo día).
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Contains indica si la fecha de calendario de t cae dentro del período.
func (p Period) Contains(t time.Time) bool {
	day := CivilDate(t)
	return !day.Before(CivilDate(p.Start)) && !day.After(CivilDate(p.End))
}

// dateLayouts formatos aceptados para fechas en archivos y parámetros.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// ParseDate interpreta s con el primer formato que coincida. La zona, si no viene, es UTC.
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
