package analytics

import (
	"time"

	"github.com/jhoicas/ventas-ledger/internal/domain"
)

const dateLayout = "2006-01-02"

// parsePeriod interpreta start/end (YYYY-MM-DD) como fechas calendario cerradas.
// Por defecto: primer día del mes en curso → hoy.
func parsePeriod(now time.Time, startStr, endStr string) (start, end time.Time, err error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if endStr == "" {
		end = today
	} else {
		end, err = time.ParseInLocation(dateLayout, endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, domain.Invalid("end_date")
		}
	}

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	} else {
		start, err = time.ParseInLocation(dateLayout, startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, domain.Invalid("start_date")
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, domain.Invalid("start_date")
	}
	return start, end, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return months[t.Month()-1] + " " + t.Format("2006")
}
