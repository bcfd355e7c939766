package db

import (
	"errors"
	"testing"

	"github.com/AkshayMandhan17/flexiplan/internal/routine"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func testUser(t *testing.T, d *DB) int64 {
	t.Helper()
	id, err := d.CreateUser("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return id
}

// --- Users ---

func TestCreateAndGetUser(t *testing.T) {
	d := openTestDB(t)

	id := testUser(t, d)
	u, err := d.GetUser(id)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("expected username %q, got %q", "alice", u.Username)
	}

	byName, err := d.GetUserByName("alice")
	if err != nil {
		t.Fatalf("GetUserByName: %v", err)
	}
	if byName.ID != id {
		t.Errorf("expected ID %d, got %d", id, byName.ID)
	}
}

func TestGetUserNotFound(t *testing.T) {
	d := openTestDB(t)
	_, err := d.GetUser(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEnsureUserIdempotent(t *testing.T) {
	d := openTestDB(t)

	first, err := d.EnsureUser("me")
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	second, err := d.EnsureUser("me")
	if err != nil {
		t.Fatalf("EnsureUser again: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("EnsureUser created a second user: %d vs %d", first.ID, second.ID)
	}
}

// --- Tasks ---

func sampleTask() routine.TaskSpec {
	return routine.TaskSpec{
		Name:           "Office",
		Description:    "day job",
		TimeRequired:   "08:00:00",
		DaysAssociated: []string{"Monday", "Tuesday", "Wednesday"},
		Priority:       routine.PriorityHigh,
		IsFixedTime:    true,
		FixedTimeSlot:  "09:00:00",
	}
}

func TestCreateAndListTasks(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)

	id, err := d.CreateTask(uid, sampleTask())
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	tasks, err := d.ListTasks(uid)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].ID != id {
		t.Errorf("expected ID %d, got %d", id, tasks[0].ID)
	}
	if tasks[0].Name != "Office" {
		t.Errorf("expected name %q, got %q", "Office", tasks[0].Name)
	}
	if len(tasks[0].DaysAssociated) != 3 {
		t.Errorf("days round-trip lost data: %v", tasks[0].DaysAssociated)
	}
	if tasks[0].FixedTimeSlot != "09:00:00" {
		t.Errorf("expected slot %q, got %q", "09:00:00", tasks[0].FixedTimeSlot)
	}
}

func TestCreateTaskRejectsInvalidSpec(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)

	bad := sampleTask()
	bad.FixedTimeSlot = ""
	if _, err := d.CreateTask(uid, bad); err == nil {
		t.Error("expected validation error for fixed-time task without a slot")
	}
	tasks, _ := d.ListTasks(uid)
	if len(tasks) != 0 {
		t.Errorf("invalid task was stored: %+v", tasks)
	}
}

func TestUpdateTask(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)
	id, _ := d.CreateTask(uid, sampleTask())

	err := d.UpdateTask(id, map[string]any{
		"task_name":       "Remote Work",
		"days_associated": []string{"Thursday"},
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	got, err := d.GetTask(uid, id)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Name != "Remote Work" {
		t.Errorf("expected name %q, got %q", "Remote Work", got.Name)
	}
	if len(got.DaysAssociated) != 1 || got.DaysAssociated[0] != "Thursday" {
		t.Errorf("days = %v", got.DaysAssociated)
	}
	// Priority should be unchanged
	if got.Priority != routine.PriorityHigh {
		t.Errorf("priority changed unexpectedly: %q", got.Priority)
	}
}

func TestUpdateTaskDisallowedColumn(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)
	id, _ := d.CreateTask(uid, sampleTask())

	if err := d.UpdateTask(id, map[string]any{"user_id": 99}); err == nil {
		t.Error("expected error for disallowed column")
	}
}

func TestDeleteTask(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)
	id, _ := d.CreateTask(uid, sampleTask())

	if err := d.DeleteTask(uid, id); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := d.DeleteTask(uid, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

// --- Hobbies ---

func TestAddHobbyDeduplicates(t *testing.T) {
	d := openTestDB(t)

	first, err := d.AddHobby(routine.HobbySpec{Name: "Yoga", Category: "Fitness"})
	if err != nil {
		t.Fatalf("AddHobby: %v", err)
	}
	second, err := d.AddHobby(routine.HobbySpec{Name: "Yoga", Category: "Fitness"})
	if err != nil {
		t.Fatalf("AddHobby again: %v", err)
	}
	if first != second {
		t.Errorf("duplicate hobby created: %d vs %d", first, second)
	}

	other, _ := d.AddHobby(routine.HobbySpec{Name: "Yoga", Category: "Mindfulness"})
	if other == first {
		t.Error("different category should be a different hobby")
	}
}

func TestAttachAndListUserHobbies(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)

	hid, _ := d.AddHobby(routine.HobbySpec{Name: "Guitar", Category: "Music"})
	if err := d.AttachHobby(uid, hid); err != nil {
		t.Fatalf("AttachHobby: %v", err)
	}
	// attaching twice is a no-op
	if err := d.AttachHobby(uid, hid); err != nil {
		t.Fatalf("AttachHobby twice: %v", err)
	}

	hobbies, err := d.ListUserHobbies(uid)
	if err != nil {
		t.Fatalf("ListUserHobbies: %v", err)
	}
	if len(hobbies) != 1 {
		t.Fatalf("expected 1 hobby, got %d", len(hobbies))
	}
	if hobbies[0].Name != "Guitar" {
		t.Errorf("expected %q, got %q", "Guitar", hobbies[0].Name)
	}

	if err := d.DetachHobby(uid, hid); err != nil {
		t.Fatalf("DetachHobby: %v", err)
	}
	hobbies, _ = d.ListUserHobbies(uid)
	if len(hobbies) != 0 {
		t.Errorf("expected no hobbies after detach, got %+v", hobbies)
	}
}

// --- Settings ---

func TestGetSettingsDefaults(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)

	s, err := d.GetSettings(uid)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if s.DayStart != "07:00:00" || s.DayEnd != "21:00:00" {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.OffDayToggle {
		t.Error("off-day toggle should default off")
	}
	if !s.NotificationsEnabled {
		t.Error("notifications should default on")
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)

	in := Settings{DayStart: "06:00:00", DayEnd: "22:00:00", OffDayToggle: true, NotificationsEnabled: false}
	if err := d.SaveSettings(uid, in); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	out, err := d.GetSettings(uid)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if out != in {
		t.Errorf("settings round trip: got %+v, want %+v", out, in)
	}
}

func TestSaveSettingsRejectsInvertedWindow(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)

	bad := Settings{DayStart: "22:00:00", DayEnd: "06:00:00", NotificationsEnabled: true}
	if err := d.SaveSettings(uid, bad); err == nil {
		t.Error("expected error when the day ends before it starts")
	}
}

func TestSetOffDayToggleKeepsOtherSettings(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)

	d.SaveSettings(uid, Settings{DayStart: "06:00:00", DayEnd: "20:00:00", NotificationsEnabled: true})
	if err := d.SetOffDayToggle(uid, true); err != nil {
		t.Fatalf("SetOffDayToggle: %v", err)
	}
	s, _ := d.GetSettings(uid)
	if !s.OffDayToggle {
		t.Error("toggle not set")
	}
	if s.DayStart != "06:00:00" {
		t.Errorf("day start clobbered: %q", s.DayStart)
	}
}

// --- Routines ---

func sampleSchedule() routine.WeeklySchedule {
	return routine.WeeklySchedule{
		"Monday": {{Activity: "Yoga", Start: "07:00", End: "08:00", Kind: "hobby"}},
	}
}

func TestReplacePrimaryRoutine(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)

	first, err := d.ReplacePrimaryRoutine(uid, "2026-08-24", "2026-08-31", sampleSchedule())
	if err != nil {
		t.Fatalf("ReplacePrimaryRoutine: %v", err)
	}
	second, err := d.ReplacePrimaryRoutine(uid, "2026-08-31", "2026-09-07", sampleSchedule())
	if err != nil {
		t.Fatalf("ReplacePrimaryRoutine again: %v", err)
	}

	primary, err := d.GetPrimaryRoutine(uid)
	if err != nil {
		t.Fatalf("GetPrimaryRoutine: %v", err)
	}
	if primary.ID != second {
		t.Errorf("expected primary %d, got %d", second, primary.ID)
	}
	if primary.ID == first {
		t.Error("old routine still primary")
	}
	if len(primary.Schedule["Monday"]) != 1 {
		t.Errorf("schedule round trip lost data: %+v", primary.Schedule)
	}
}

func TestReplacePrimaryRoutineDeletesOldRoutine(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)

	first, err := d.ReplacePrimaryRoutine(uid, "2026-08-24", "2026-08-31", sampleSchedule())
	if err != nil {
		t.Fatalf("ReplacePrimaryRoutine: %v", err)
	}
	mark := Completion{Day: "Monday", Activity: "Yoga", Kind: "hobby", Completed: true}
	if err := d.UpsertCompletion(uid, first, mark); err != nil {
		t.Fatalf("UpsertCompletion: %v", err)
	}

	second, err := d.ReplacePrimaryRoutine(uid, "2026-08-31", "2026-09-07", sampleSchedule())
	if err != nil {
		t.Fatalf("ReplacePrimaryRoutine again: %v", err)
	}

	var n int
	if err := d.conn.QueryRow("SELECT COUNT(*) FROM routines WHERE id = ?", first).Scan(&n); err != nil {
		t.Fatalf("counting old routine rows: %v", err)
	}
	if n != 0 {
		t.Errorf("old routine row survived replacement")
	}
	if err := d.conn.QueryRow("SELECT COUNT(*) FROM user_routines WHERE routine_id = ?", first).Scan(&n); err != nil {
		t.Fatalf("counting old ownership links: %v", err)
	}
	if n != 0 {
		t.Errorf("old ownership link survived replacement")
	}
	marks, err := d.ListCompletions(uid, first)
	if err != nil {
		t.Fatalf("ListCompletions: %v", err)
	}
	if len(marks) != 0 {
		t.Errorf("stale completions survived replacement: %+v", marks)
	}

	primary, err := d.GetPrimaryRoutine(uid)
	if err != nil {
		t.Fatalf("GetPrimaryRoutine: %v", err)
	}
	if primary.ID != second {
		t.Errorf("expected primary %d, got %d", second, primary.ID)
	}
}

func TestGetPrimaryRoutineNone(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)

	_, err := d.GetPrimaryRoutine(uid)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindRoutineForDate(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)
	id, _ := d.ReplacePrimaryRoutine(uid, "2026-08-24", "2026-08-31", sampleSchedule())

	r, err := d.FindRoutineForDate(uid, "2026-08-28")
	if err != nil {
		t.Fatalf("FindRoutineForDate: %v", err)
	}
	if r.ID != id {
		t.Errorf("expected routine %d, got %d", id, r.ID)
	}

	if _, err := d.FindRoutineForDate(uid, "2026-09-15"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound outside window, got %v", err)
	}
}

func TestUpdateRoutineDayLeavesOtherDays(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)

	sched := sampleSchedule()
	sched["Tuesday"] = []routine.Entry{{Activity: "Gym", Start: "18:00", End: "19:00", Kind: "hobby"}}
	id, _ := d.ReplacePrimaryRoutine(uid, "2026-08-24", "2026-08-31", sched)

	fresh := []routine.Entry{{Activity: "Painting", Start: "10:00", End: "12:00", Kind: "hobby"}}
	if err := d.UpdateRoutineDay(id, "Monday", fresh); err != nil {
		t.Fatalf("UpdateRoutineDay: %v", err)
	}

	r, _ := d.GetPrimaryRoutine(uid)
	if len(r.Schedule["Monday"]) != 1 || r.Schedule["Monday"][0].Activity != "Painting" {
		t.Errorf("Monday not replaced: %+v", r.Schedule["Monday"])
	}
	if len(r.Schedule["Tuesday"]) != 1 || r.Schedule["Tuesday"][0].Activity != "Gym" {
		t.Errorf("Tuesday was disturbed: %+v", r.Schedule["Tuesday"])
	}
}

// --- Completions ---

func TestUpsertCompletionLatestWins(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)
	rid, _ := d.ReplacePrimaryRoutine(uid, "2026-08-24", "2026-08-31", sampleSchedule())

	mark := Completion{Day: "Monday", Activity: "Yoga", Kind: "hobby", Completed: true}
	if err := d.UpsertCompletion(uid, rid, mark); err != nil {
		t.Fatalf("UpsertCompletion: %v", err)
	}
	mark.Completed = false
	if err := d.UpsertCompletion(uid, rid, mark); err != nil {
		t.Fatalf("UpsertCompletion again: %v", err)
	}

	marks, err := d.ListCompletions(uid, rid)
	if err != nil {
		t.Fatalf("ListCompletions: %v", err)
	}
	if len(marks) != 1 {
		t.Fatalf("expected 1 completion row, got %d", len(marks))
	}
	if marks[0].Completed {
		t.Error("latest write did not win")
	}
}

func TestDeleteUserCascades(t *testing.T) {
	d := openTestDB(t)
	uid := testUser(t, d)
	d.CreateTask(uid, sampleTask())
	rid, _ := d.ReplacePrimaryRoutine(uid, "2026-08-24", "2026-08-31", sampleSchedule())
	d.UpsertCompletion(uid, rid, Completion{Day: "Monday", Activity: "Yoga", Kind: "hobby", Completed: true})

	if err := d.DeleteUser(uid); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	tasks, _ := d.ListTasks(uid)
	if len(tasks) != 0 {
		t.Errorf("tasks survived user deletion: %+v", tasks)
	}
	marks, _ := d.ListCompletions(uid, rid)
	if len(marks) != 0 {
		t.Errorf("completions survived user deletion: %+v", marks)
	}
}

// --- App state ---

func TestStateRoundTrip(t *testing.T) {
	d := openTestDB(t)

	if v, _ := d.GetState(StateDiscordUser); v != "" {
		t.Errorf("expected empty state, got %q", v)
	}
	if err := d.SetState(StateDiscordUser, "12345"); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	if err := d.SetState(StateDiscordUser, "67890"); err != nil {
		t.Fatalf("SetState again: %v", err)
	}
	v, err := d.GetState(StateDiscordUser)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if v != "67890" {
		t.Errorf("expected %q, got %q", "67890", v)
	}
}
