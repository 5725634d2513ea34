package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/gravida/internal/models"
)

// MensesHistoryLookbackDays widens the history query so the cycle running into
// the window still anchors ovulation and fertility for its first days.
const MensesHistoryLookbackDays = 45

type CalendarService struct {
	subjects   SubjectReader
	events     CycleEventRepository
	unitOfWork UnitOfWork
	clock      Clock
	location   *time.Location
}

func NewCalendarService(subjects SubjectReader, events CycleEventRepository, unitOfWork UnitOfWork, clock Clock, location *time.Location) *CalendarService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &CalendarService{
		subjects:   subjects,
		events:     events,
		unitOfWork: unitOfWork,
		clock:      clock,
		location:   location,
	}
}

func ParseCalendarRange(fromRaw string, toRaw string) (time.Time, time.Time, error) {
	from, err := ParseISODate(fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := ParseISODate(toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return from, to, nil
}

// AssembleRange returns persisted and calculated events intersecting
// [from, to], each once, ordered by beginning.
func (service *CalendarService) AssembleRange(subjectID uint, teamID uint, fromRaw string, toRaw string) ([]CalendarEvent, error) {
	from, to, err := ParseCalendarRange(fromRaw, toRaw)
	if err != nil {
		return nil, err
	}
	user, err := loadSubjectForTeam(service.subjects, subjectID, teamID)
	if err != nil {
		return nil, err
	}

	persisted, err := service.events.QueryEvents(subjectID, "", &models.DateRange{From: &from, To: &to}, false)
	if err != nil {
		return nil, storeError("query calendar events", err)
	}
	history, err := service.mensesHistory(subjectID, from)
	if err != nil {
		return nil, err
	}

	merged := make([]CalendarEvent, 0, len(persisted)+8)
	seen := make(map[string]struct{}, len(persisted)+8)
	appendUnique := func(event CalendarEvent) {
		if _, ok := seen[event.Key]; ok {
			return
		}
		seen[event.Key] = struct{}{}
		merged = append(merged, event)
	}

	for _, event := range persisted {
		appendUnique(calendarEventFromModel(event))
	}
	for event := range ProjectRange(history, user.DurationPeriod, user.DurationMenstruation, from, to) {
		appendUnique(event)
	}

	sortCalendarEvents(merged)
	return merged, nil
}

func (service *CalendarService) mensesHistory(subjectID uint, from time.Time) ([]models.CycleEvent, error) {
	lookback := AddDays(from, -MensesHistoryLookbackDays)
	history, err := service.events.QueryEvents(subjectID, models.EventKindMenses, &models.DateRange{From: &lookback}, false)
	if err != nil {
		return nil, storeError("query menses history", err)
	}
	if len(history) > 0 {
		return history, nil
	}

	latest, found, err := service.events.LatestMenses(subjectID)
	if err != nil {
		return nil, storeError("load latest menses", err)
	}
	if !found {
		return nil, nil
	}
	return []models.CycleEvent{latest}, nil
}

func sortCalendarEvents(events []CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		left, right := events[i], events[j]
		if !left.Beginning.Equal(right.Beginning) {
			return left.Beginning.Before(right.Beginning)
		}
		if left.Kind.SortOrder() != right.Kind.SortOrder() {
			return left.Kind.SortOrder() < right.Kind.SortOrder()
		}
		return left.Key < right.Key
	})
}
