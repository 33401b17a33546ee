package clock

import (
	"fmt"
	"time"

	"taskgrid/internal/model"
)

// Clock supplies the current calendar day. Every "today" decision in the
// engine goes through a single Clock so that one fixed timezone decides
// where the day boundary falls.
type Clock interface {
	Today() model.Date
}

// Zone is a Clock pinned to a named timezone.
type Zone struct {
	loc *time.Location
}

// In loads a Clock for the given IANA timezone name.
func In(name string) (*Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return &Zone{loc: loc}, nil
}

func (z *Zone) Today() model.Date {
	return model.DateOf(time.Now().In(z.loc))
}

// Location exposes the zone for schedulers that need cron times in the
// same timezone as the day boundary.
func (z *Zone) Location() *time.Location {
	return z.loc
}

type fixed struct {
	day model.Date
}

// Fixed returns a Clock frozen on the given day, for tests.
func Fixed(day model.Date) Clock {
	return fixed{day: day}
}

func (f fixed) Today() model.Date { return f.day }
