package service

import (
	"strings"
	"time"

	"epicontrol/internal/repository"
)

const (
	layoutISO = "2006-01-02"
	layoutBR  = "02/01/2006"
	// layoutCA accepts one or two digit day and month, as typed on forms.
	layoutCA = "2/1/2006"
)

// parseData accepts YYYY-MM-DD or DD/MM/YYYY.
func parseData(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{layoutISO, layoutBR} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParsePeriodo builds an inclusive whole-day range. When either bound is
// missing or unparsable it returns nil, which every query treats as
// "no filter". Bounds are converted to UTC to match stored timestamps.
func ParsePeriodo(inicio, fim string, loc *time.Location) *repository.Periodo {
	if loc == nil {
		loc = time.UTC
	}
	ini, ok := parseData(inicio, loc)
	if !ok {
		return nil
	}
	f, ok := parseData(fim, loc)
	if !ok {
		return nil
	}
	f = f.Add(24*time.Hour - time.Second)
	return &repository.Periodo{Inicio: ini.UTC(), Fim: f.UTC()}
}

// ParseValidadeCA parses a certificate expiry typed as DD/MM/YYYY.
func ParseValidadeCA(s string) (time.Time, bool) {
	t, err := time.Parse(layoutCA, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CAVencido reports whether the expiry is strictly before hoje, comparing
// calendar dates only. Unparsable values are never expired.
func CAVencido(validade string, hoje time.Time) bool {
	t, ok := ParseValidadeCA(validade)
	if !ok {
		return false
	}
	dia := time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, time.UTC)
	return t.Before(dia)
}

func formatarData(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
