package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/gravida/internal/models"
)

func newPregnancyServiceForTest(t *testing.T, store *memoryStoreStub, today string) *PregnancyService {
	t.Helper()
	return NewPregnancyService(store, store, store.unitOfWork(), fixedClockAt(t, today), nil)
}

func TestPregnancySaveStartsPregnancy(t *testing.T) {
	store := newMemoryStoreStub()
	store.addSubject(1, 10)
	service := newPregnancyServiceForTest(t, store, "2024-02-01")

	status, err := service.Save(1, 10, "2024-10-06", "2024-01-15")
	if err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if FormatISODate(status.DueDate) != "2024-10-06" || FormatISODate(status.OvulationDate) != "2024-01-15" {
		t.Fatalf("unexpected status %+v", status)
	}

	user := store.users[1]
	if user.OvulationDate == nil || user.Childbirthdate == nil {
		t.Fatalf("expected both pregnancy fields set, got %+v", user.CycleProfile())
	}
	intervals := store.eventsOfKind(models.EventKindPregnancy)
	if len(intervals) != 1 {
		t.Fatalf("expected one pregnancy interval, got %d", len(intervals))
	}
	if FormatISODate(intervals[0].Beginning) != "2024-01-15" || FormatISODate(*intervals[0].Ending) != "2024-10-06" {
		t.Fatalf("unexpected interval %+v", intervals[0])
	}
}

func TestPregnancySaveRecalculatesInPlace(t *testing.T) {
	store := newMemoryStoreStub()
	store.addSubject(1, 10)
	service := newPregnancyServiceForTest(t, store, "2024-02-01")

	if _, err := service.Save(1, 10, "2024-10-06", "2024-01-15"); err != nil {
		t.Fatalf("first Save() unexpected error: %v", err)
	}
	firstID := store.eventsOfKind(models.EventKindPregnancy)[0].ID

	if _, err := service.Save(1, 10, "2024-10-10", "2024-01-19"); err != nil {
		t.Fatalf("second Save() unexpected error: %v", err)
	}
	intervals := store.eventsOfKind(models.EventKindPregnancy)
	if len(intervals) != 1 {
		t.Fatalf("expected interval updated in place, got %d intervals", len(intervals))
	}
	if intervals[0].ID != firstID {
		t.Fatalf("expected interval id %d, got %d", firstID, intervals[0].ID)
	}
	if FormatISODate(*intervals[0].Ending) != "2024-10-10" {
		t.Fatalf("expected updated due date, got %s", FormatISODate(*intervals[0].Ending))
	}
	if FormatISODate(*store.users[1].Childbirthdate) != "2024-10-10" {
		t.Fatalf("expected updated childbirth date, got %s", FormatISODate(*store.users[1].Childbirthdate))
	}
}

func TestPregnancySaveRollsBackOnStoreFailure(t *testing.T) {
	store := newMemoryStoreStub()
	store.addSubject(1, 10)
	service := newPregnancyServiceForTest(t, store, "2024-02-01")

	driverErr := errors.New("database is locked")
	store.failOn["UpsertEvent"] = driverErr

	_, err := service.Save(1, 10, "2024-10-06", "2024-01-15")
	if !errors.Is(err, ErrStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	if !errors.Is(err, driverErr) {
		t.Fatalf("expected driver error to stay reachable, got %v", err)
	}

	user := store.users[1]
	if user.OvulationDate != nil || user.Childbirthdate != nil {
		t.Fatalf("expected pregnancy fields untouched, got %+v", user.CycleProfile())
	}
	if intervals := store.eventsOfKind(models.EventKindPregnancy); len(intervals) != 0 {
		t.Fatalf("expected no pregnancy interval, got %d", len(intervals))
	}
}

func TestPregnancyRecalculateRollsBackOnProfileFailure(t *testing.T) {
	store := newMemoryStoreStub()
	store.addSubject(1, 10)
	service := newPregnancyServiceForTest(t, store, "2024-02-01")
	if _, err := service.Save(1, 10, "2024-10-06", "2024-01-15"); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	store.failOn["FindActivePregnancy"] = errors.New("connection reset")
	if _, err := service.Save(1, 10, "2024-11-01", "2024-02-09"); !errors.Is(err, ErrStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	if got := FormatISODate(*store.users[1].Childbirthdate); got != "2024-10-06" {
		t.Fatalf("expected childbirth date to stay 2024-10-06, got %s", got)
	}
}

func TestPregnancySaveRejectsInvalidInputBeforeMutation(t *testing.T) {
	store := newMemoryStoreStub()
	store.addSubject(1, 10)
	service := newPregnancyServiceForTest(t, store, "2024-02-01")

	tests := []struct {
		name      string
		due       string
		ovulation string
		wantErr   error
	}{
		{name: "missing due date", due: "", ovulation: "2024-01-15", wantErr: ErrDateRequired},
		{name: "malformed ovulation", due: "2024-10-06", ovulation: "15/01/2024", wantErr: ErrInvalidDate},
		{name: "due before ovulation", due: "2024-01-01", ovulation: "2024-01-15", wantErr: ErrChildbirthBeforeOvulation},
	}
	for _, tc := range tests {
		if _, err := service.Save(1, 10, tc.due, tc.ovulation); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
	if store.calls != 0 {
		t.Fatalf("expected no store access, got %d calls", store.calls)
	}
}

func TestPregnancySaveSubjectErrors(t *testing.T) {
	store := newMemoryStoreStub()
	store.addSubject(1, 10)
	service := newPregnancyServiceForTest(t, store, "2024-02-01")

	if _, err := service.Save(7, 10, "2024-10-06", "2024-01-15"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := service.Save(1, 99, "2024-10-06", "2024-01-15"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation class for missing team association, got %v", err)
	}
}

func TestPregnancyTerminateClosesInterval(t *testing.T) {
	store := newMemoryStoreStub()
	store.addSubject(1, 10)
	service := newPregnancyServiceForTest(t, store, "2024-06-01")
	if _, err := service.Save(1, 10, "2024-10-06", "2024-01-15"); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	if err := service.Terminate(1, 10, "2024-05-20"); err != nil {
		t.Fatalf("Terminate() unexpected error: %v", err)
	}

	user := store.users[1]
	if user.OvulationDate != nil || user.Childbirthdate != nil {
		t.Fatalf("expected pregnancy fields cleared, got %+v", user.CycleProfile())
	}
	intervals := store.eventsOfKind(models.EventKindPregnancy)
	if len(intervals) != 1 {
		t.Fatalf("expected interval kept for history, got %d", len(intervals))
	}
	if !intervals[0].Deleted {
		t.Fatal("expected interval marked deleted")
	}
	if FormatISODate(*intervals[0].Ending) != "2024-05-20" {
		t.Fatalf("expected ending 2024-05-20, got %s", FormatISODate(*intervals[0].Ending))
	}

	if _, err := service.Save(1, 10, "2025-06-01", "2024-09-09"); err != nil {
		t.Fatalf("Save() after terminate unexpected error: %v", err)
	}
	if intervals := store.eventsOfKind(models.EventKindPregnancy); len(intervals) != 2 {
		t.Fatalf("expected a new interval after terminate, got %d", len(intervals))
	}
}

func TestPregnancyTerminateWhenInactiveIsNoop(t *testing.T) {
	store := newMemoryStoreStub()
	store.addSubject(1, 10)
	service := newPregnancyServiceForTest(t, store, "2024-06-01")

	if err := service.Terminate(1, 10, "2024-05-20"); err != nil {
		t.Fatalf("Terminate() unexpected error: %v", err)
	}
	if intervals := store.eventsOfKind(models.EventKindPregnancy); len(intervals) != 0 {
		t.Fatalf("expected no intervals, got %d", len(intervals))
	}
}

func TestPregnancyTerminateRejectsEndBeforeOvulation(t *testing.T) {
	store := newMemoryStoreStub()
	store.addSubject(1, 10)
	service := newPregnancyServiceForTest(t, store, "2024-06-01")
	if _, err := service.Save(1, 10, "2024-10-06", "2024-01-15"); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	if err := service.Terminate(1, 10, "2024-01-01"); !errors.Is(err, ErrPregnancyEndedBeforeInterval) {
		t.Fatalf("expected ErrPregnancyEndedBeforeInterval, got %v", err)
	}
	if store.users[1].Childbirthdate == nil {
		t.Fatal("expected pregnancy to stay active")
	}
}

func TestPregnancyTerminateRollsBackOnStoreFailure(t *testing.T) {
	store := newMemoryStoreStub()
	store.addSubject(1, 10)
	service := newPregnancyServiceForTest(t, store, "2024-06-01")
	if _, err := service.Save(1, 10, "2024-10-06", "2024-01-15"); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	store.failOn["UpdateCycleProfile"] = errors.New("disk full")
	if err := service.Terminate(1, 10, "2024-05-20"); !errors.Is(err, ErrStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	intervals := store.eventsOfKind(models.EventKindPregnancy)
	if len(intervals) != 1 || intervals[0].Deleted {
		t.Fatalf("expected interval to remain live, got %+v", intervals)
	}
}

func TestPregnancyStatus(t *testing.T) {
	store := newMemoryStoreStub()
	store.addSubject(1, 10)
	store.addEvent(menses(t, "2023-12-01", "2023-12-05"))
	store.addEvent(menses(t, "2024-01-01", "2024-01-05"))
	service := newPregnancyServiceForTest(t, store, "2024-02-01")

	view, err := service.Status(1, 10)
	if err != nil {
		t.Fatalf("Status() unexpected error: %v", err)
	}
	if view.Active || view.GestationalWeek != nil {
		t.Fatalf("expected inactive status, got %+v", view)
	}
	if view.LastMensesDate == nil || FormatISODate(*view.LastMensesDate) != "2024-01-01" {
		t.Fatalf("expected last menses 2024-01-01, got %v", view.LastMensesDate)
	}
	if view.DurationPeriod != models.DefaultDurationPeriod {
		t.Fatalf("expected default duration period, got %d", view.DurationPeriod)
	}

	if _, err := service.Save(1, 10, "2024-10-06", "2024-01-15"); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	view, err = service.Status(1, 10)
	if err != nil {
		t.Fatalf("Status() unexpected error: %v", err)
	}
	if !view.Active || view.GestationalWeek == nil || *view.GestationalWeek != 3 {
		t.Fatalf("expected active status in week 3, got %+v", view)
	}
	if view.LastMensesDate == nil {
		t.Fatal("expected last menses date while active")
	}
}

func TestPregnancyStatusRejectsHalfSetProfile(t *testing.T) {
	store := newMemoryStoreStub()
	user := store.addSubject(1, 10)
	user.OvulationDate = datePtr(mustParseDay(t, "2024-01-15"))
	store.users[1] = user
	service := newPregnancyServiceForTest(t, store, "2024-02-01")

	if _, err := service.Status(1, 10); !errors.Is(err, ErrPregnancyStateInconsistent) {
		t.Fatalf("expected inconsistent state error, got %v", err)
	}
}

func TestPregnancyDatesForStatus(t *testing.T) {
	inactive := PregnancyDatesFor(PregnancyInactive{})
	if inactive.OvulationDate != nil || inactive.Childbirthdate != nil {
		t.Fatalf("expected cleared dates, got %+v", inactive)
	}

	active := PregnancyDatesFor(PregnancyActive{
		OvulationDate: mustParseDay(t, "2024-01-15"),
		DueDate:       mustParseDay(t, "2024-10-06"),
	})
	if active.OvulationDate == nil || active.Childbirthdate == nil {
		t.Fatalf("expected both dates set, got %+v", active)
	}

	status, err := PregnancyStatusFromProfile(models.CycleProfile{
		OvulationDate:  active.OvulationDate,
		Childbirthdate: active.Childbirthdate,
	})
	if err != nil {
		t.Fatalf("PregnancyStatusFromProfile() unexpected error: %v", err)
	}
	if _, ok := status.(PregnancyActive); !ok {
		t.Fatalf("expected active status, got %T", status)
	}
}
