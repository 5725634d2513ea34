package services

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/terraincognita07/gravida/internal/models"
)

type memoryStoreStub struct {
	users       map[uint]models.User
	events      map[uint]models.CycleEvent
	nextEventID uint
	calls       int
	failOn      map[string]error
}

func newMemoryStoreStub() *memoryStoreStub {
	return &memoryStoreStub{
		users:       make(map[uint]models.User),
		events:      make(map[uint]models.CycleEvent),
		nextEventID: 1,
		failOn:      make(map[string]error),
	}
}

func (stub *memoryStoreStub) fail(operation string) error {
	stub.calls++
	return stub.failOn[operation]
}

func (stub *memoryStoreStub) addSubject(id uint, teamID uint) models.User {
	team := teamID
	user := models.User{
		ID:                   id,
		Email:                "subject@example.com",
		TeamID:               &team,
		DurationPeriod:       models.DefaultDurationPeriod,
		DurationMenstruation: models.DefaultDurationMenstruation,
	}
	stub.users[id] = user
	return user
}

func (stub *memoryStoreStub) addEvent(event models.CycleEvent) models.CycleEvent {
	event.ID = stub.nextEventID
	stub.nextEventID++
	stub.events[event.ID] = event
	return event
}

func (stub *memoryStoreStub) eventsOfKind(kind models.EventKind) []models.CycleEvent {
	matched := make([]models.CycleEvent, 0)
	for _, event := range stub.events {
		if event.Kind == kind {
			matched = append(matched, event)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched
}

func (stub *memoryStoreStub) FindByID(userID uint) (models.User, bool, error) {
	if err := stub.fail("FindByID"); err != nil {
		return models.User{}, false, err
	}
	user, ok := stub.users[userID]
	return user, ok, nil
}

func (stub *memoryStoreStub) UpdateCycleProfile(userID uint, dates models.PregnancyDates) error {
	if err := stub.fail("UpdateCycleProfile"); err != nil {
		return err
	}
	user, ok := stub.users[userID]
	if !ok {
		return errors.New("record not found")
	}
	user.OvulationDate = dates.OvulationDate
	user.Childbirthdate = dates.Childbirthdate
	stub.users[userID] = user
	return nil
}

func (stub *memoryStoreStub) UpdateCycleDurations(userID uint, durationPeriod int, durationMenstruation int) error {
	if err := stub.fail("UpdateCycleDurations"); err != nil {
		return err
	}
	user := stub.users[userID]
	user.DurationPeriod = durationPeriod
	user.DurationMenstruation = durationMenstruation
	stub.users[userID] = user
	return nil
}

func (stub *memoryStoreStub) QueryEvents(userID uint, kind models.EventKind, window *models.DateRange, includeDeleted bool) ([]models.CycleEvent, error) {
	if err := stub.fail("QueryEvents"); err != nil {
		return nil, err
	}
	matched := make([]models.CycleEvent, 0)
	for _, event := range stub.events {
		if event.UserID != userID || (kind != "" && event.Kind != kind) || (event.Deleted && !includeDeleted) {
			continue
		}
		if window != nil && window.To != nil && event.Beginning.After(*window.To) {
			continue
		}
		if window != nil && window.From != nil && event.EndOrBeginning().Before(*window.From) && !event.IsOpenPeriod() {
			continue
		}
		matched = append(matched, event)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Beginning.Equal(matched[j].Beginning) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].Beginning.After(matched[j].Beginning)
	})
	return matched, nil
}

func (stub *memoryStoreStub) LatestMenses(userID uint) (models.CycleEvent, bool, error) {
	if err := stub.fail("LatestMenses"); err != nil {
		return models.CycleEvent{}, false, err
	}
	events, _ := stub.QueryEvents(userID, models.EventKindMenses, nil, false)
	if len(events) == 0 {
		return models.CycleEvent{}, false, nil
	}
	return events[0], true, nil
}

func (stub *memoryStoreStub) FindOpenMenses(userID uint) (models.CycleEvent, bool, error) {
	if err := stub.fail("FindOpenMenses"); err != nil {
		return models.CycleEvent{}, false, err
	}
	for _, event := range stub.events {
		if event.UserID == userID && event.IsOpenPeriod() {
			return event, true, nil
		}
	}
	return models.CycleEvent{}, false, nil
}

func (stub *memoryStoreStub) FindActivePregnancy(userID uint) (models.CycleEvent, bool, error) {
	if err := stub.fail("FindActivePregnancy"); err != nil {
		return models.CycleEvent{}, false, err
	}
	for _, event := range stub.eventsOfKind(models.EventKindPregnancy) {
		if event.UserID == userID && !event.Deleted {
			return event, true, nil
		}
	}
	return models.CycleEvent{}, false, nil
}

func (stub *memoryStoreStub) FindByIDForUser(eventID uint, userID uint) (models.CycleEvent, bool, error) {
	if err := stub.fail("FindByIDForUser"); err != nil {
		return models.CycleEvent{}, false, err
	}
	event, ok := stub.events[eventID]
	if !ok || event.UserID != userID {
		return models.CycleEvent{}, false, nil
	}
	return event, true, nil
}

func (stub *memoryStoreStub) UpsertEvent(event *models.CycleEvent) error {
	if err := stub.fail("UpsertEvent"); err != nil {
		return err
	}
	if event.Kind.IsCalculated() {
		return errors.New("calculated events are not persisted")
	}
	if event.ID == 0 {
		event.ID = stub.nextEventID
		stub.nextEventID++
	}
	stub.events[event.ID] = *event
	return nil
}

func (stub *memoryStoreStub) SoftDeleteEvent(eventID uint) error {
	if err := stub.fail("SoftDeleteEvent"); err != nil {
		return err
	}
	event, ok := stub.events[eventID]
	if !ok {
		return errors.New("record not found")
	}
	event.Deleted = true
	stub.events[eventID] = event
	return nil
}

// unitOfWork restores a snapshot of the store when fn fails.
func (stub *memoryStoreStub) unitOfWork() UnitOfWork {
	return func(fn func(subjects SubjectRepository, events CycleEventRepository) error) error {
		users := make(map[uint]models.User, len(stub.users))
		for id, user := range stub.users {
			users[id] = user
		}
		events := make(map[uint]models.CycleEvent, len(stub.events))
		for id, event := range stub.events {
			events[id] = event
		}
		nextEventID := stub.nextEventID

		if err := fn(stub, stub); err != nil {
			stub.users = users
			stub.events = events
			stub.nextEventID = nextEventID
			return err
		}
		return nil
	}
}

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := ParseISODate(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return day
}

func menses(t *testing.T, beginning string, ending string) models.CycleEvent {
	t.Helper()
	event := models.CycleEvent{UserID: 1, Kind: models.EventKindMenses, Beginning: mustParseDay(t, beginning)}
	if ending != "" {
		event.Ending = datePtr(mustParseDay(t, ending))
	}
	return event
}

func fixedClockAt(t *testing.T, raw string) FixedClock {
	t.Helper()
	return FixedClock{At: mustParseDay(t, raw).Add(12 * time.Hour)}
}
