package transport

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rpggio/smmdesk/internal/apierr"
	"github.com/rpggio/smmdesk/internal/domain/calendar"
	"github.com/rpggio/smmdesk/internal/domain/reminder"
)

const defaultUpcomingWindow = 30 * 24 * time.Hour

// listEvents serves /events. At most one of project_id, operator_id, day or
// from/to narrows the list.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	var (
		events []calendar.Event
		err    error
	)
	switch {
	case q.Get("project_id") != "":
		var id int64
		if id, err = queryInt64(r, "project_id"); err == nil {
			events, err = s.svc.Calendar.ListByProject(ctx, id)
		}
	case q.Get("operator_id") != "":
		var id int64
		if id, err = queryInt64(r, "operator_id"); err == nil {
			events, err = s.svc.Calendar.ListByOperator(ctx, id)
		}
	case q.Get("day") != "":
		var day time.Time
		day, err = time.ParseInLocation(time.DateOnly, q.Get("day"), s.svc.Calendar.Location())
		if err != nil {
			err = apierr.BadRequest(fmt.Sprintf("invalid day %q", q.Get("day")))
			break
		}
		events, err = s.svc.Calendar.ListByDay(ctx, day)
	case q.Get("from") != "" || q.Get("to") != "":
		var from, to time.Time
		if from, err = queryTime(r, "from"); err != nil {
			break
		}
		if to, err = queryTime(r, "to"); err != nil {
			break
		}
		events, err = s.svc.Calendar.ListInRange(ctx, from, to)
	default:
		events, err = s.svc.Calendar.List(ctx)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) upcomingEvents(w http.ResponseWriter, r *http.Request) {
	within := defaultUpcomingWindow
	if raw := r.URL.Query().Get("within"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			s.writeError(w, r, apierr.BadRequest(fmt.Sprintf("invalid within %q", raw)))
			return
		}
		within = d
	}
	limit, err := queryInt64(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	events, err := s.svc.Calendar.Upcoming(r.Context(), s.now(), within, int(limit))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req calendar.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := s.svc.Calendar.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := s.svc.Calendar.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var patch calendar.Patch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := s.svc.Calendar.Update(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Calendar.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listProjectEvents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	events, err := s.svc.Calendar.ListByProject(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) listOperatorEvents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	events, err := s.svc.Calendar.ListByOperator(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) getMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, _ := strconv.Atoi(vars["year"])
	month, _ := strconv.Atoi(vars["month"])

	grid, err := s.svc.Calendar.MonthGrid(r.Context(), year, time.Month(month))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

func (s *Server) syncDeadlines(w http.ResponseWriter, r *http.Request) {
	created, err := s.svc.Calendar.SyncProjectDeadlines(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// reminderView adds the relative due label to a reminder.
type reminderView struct {
	reminder.Reminder
	DueLabel string `json:"due_label"`
}

func viewReminder(rem reminder.Reminder, now time.Time) reminderView {
	return reminderView{Reminder: rem, DueLabel: reminder.DueLabel(rem, now)}
}

func (s *Server) listReminders(w http.ResponseWriter, r *http.Request) {
	active, err := queryBool(r, "active")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	list := s.svc.Reminders.List(r.Context())
	if active != nil && *active {
		list = s.svc.Reminders.Active(r.Context())
	}
	now := s.now()
	out := make([]reminderView, 0, len(list))
	for _, rem := range list {
		out = append(out, viewReminder(rem, now))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) addReminder(w http.ResponseWriter, r *http.Request) {
	var req reminder.AddRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	rem, err := s.svc.Reminders.Add(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewReminder(*rem, s.now()))
}

func (s *Server) markReminderRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Reminders.MarkRead(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) snoozeReminder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rem, err := s.svc.Reminders.Snooze(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewReminder(*rem, s.now()))
}

func (s *Server) removeReminder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Reminders.Remove(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryTime(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apierr.BadRequest(fmt.Sprintf("invalid %s %q, want RFC 3339", name, raw))
	}
	return t, nil
}
