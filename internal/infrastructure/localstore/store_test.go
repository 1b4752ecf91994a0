package localstore_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	"github.com/oksasatya/inclusive-studai/internal/infrastructure/localstore"
	"github.com/oksasatya/inclusive-studai/internal/infrastructure/slot"
	"github.com/oksasatya/inclusive-studai/pkg/events"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func openFresh(t *testing.T) (*localstore.Store, *slot.Memory) {
	t.Helper()
	mem := slot.NewMemory()
	st, report := localstore.Open(context.Background(), mem, quietLogger())
	require.Equal(t, localstore.SourceSeedMissing, report.Source)
	return st, mem
}

func boolPtr(b bool) *bool                       { return &b }
func floatPtr(f float64) *float64                { return &f }
func fontPtr(f entity.FontSize) *entity.FontSize { return &f }

func TestGetUserByEmail(t *testing.T) {
	st, _ := openFresh(t)

	for _, email := range []string{"juan@estudiante.edu", "admin@edu.pe"} {
		u, ok := st.GetUserByEmail(email)
		require.True(t, ok, email)
		assert.Equal(t, email, u.Email)
	}

	for _, email := range []string{"nope@x.com", "JUAN@estudiante.edu", " juan@estudiante.edu", ""} {
		_, ok := st.GetUserByEmail(email)
		assert.False(t, ok, "expected no match for %q", email)
	}
}

func TestUpdateUserPreferences_PartialMerge(t *testing.T) {
	st, _ := openFresh(t)
	ctx := context.Background()
	patch := entity.PreferencesPatch{FontSize: fontPtr(entity.FontSizeLarge)}

	u, ok := st.UpdateUserPreferences(ctx, "u1", patch)
	require.True(t, ok)
	assert.Equal(t, entity.Preferences{HighContrast: false, FontSize: entity.FontSizeLarge, VoiceSpeed: 1.0}, u.Preferences)

	again, ok := st.UpdateUserPreferences(ctx, "u1", patch)
	require.True(t, ok)
	assert.Equal(t, u, again)

	// other users untouched
	admin, _ := st.GetUserByID("a1")
	assert.Equal(t, entity.FontSizeNormal, admin.Preferences.FontSize)
}

func TestUpdateUserPreferences_UnknownUserDoesNotWrite(t *testing.T) {
	st, mem := openFresh(t)

	_, ok := st.UpdateUserPreferences(context.Background(), "ghost", entity.PreferencesPatch{HighContrast: boolPtr(true)})
	assert.False(t, ok)

	_, written, err := mem.Get(context.Background(), localstore.DefaultStorageKey)
	require.NoError(t, err)
	assert.False(t, written)
}

func TestUpdateUserConsents_PartialMerge(t *testing.T) {
	st, _ := openFresh(t)

	u, ok := st.UpdateUserConsents(context.Background(), "u1", entity.ConsentsPatch{VoiceRecording: boolPtr(true)})
	require.True(t, ok)
	assert.Equal(t, entity.Consents{DataCollection: true, VoiceRecording: true}, u.Consents)

	_, ok = st.UpdateUserConsents(context.Background(), "ghost", entity.ConsentsPatch{})
	assert.False(t, ok)
}

func TestUpdatesNeverChangeRole(t *testing.T) {
	st, _ := openFresh(t)
	ctx := context.Background()

	st.UpdateUserPreferences(ctx, "u1", entity.PreferencesPatch{HighContrast: boolPtr(true), VoiceSpeed: floatPtr(2)})
	st.UpdateUserConsents(ctx, "u1", entity.ConsentsPatch{DataCollection: boolPtr(false)})

	u, _ := st.GetUserByID("u1")
	assert.Equal(t, entity.RoleStudent, u.Role)
}

func TestAddAppointment_AppendsWithoutDedup(t *testing.T) {
	st, _ := openFresh(t)
	ctx := context.Background()
	before := len(st.GetAppointments("u1"))

	a := entity.Appointment{ID: "x", Title: "Consejería", Date: "2025-06-01 09:00", Status: entity.StatusPending, Type: entity.AppointmentOther}
	st.AddAppointment(ctx, a)
	assert.Len(t, st.GetAppointments("u1"), before+1)

	st.AddAppointment(ctx, a)
	all := st.GetAppointments("u1")
	require.Len(t, all, before+2)
	assert.Equal(t, a, all[len(all)-1])
	assert.Equal(t, a, all[len(all)-2])
}

func TestReadsIgnoreUserID(t *testing.T) {
	st, _ := openFresh(t)

	assert.Equal(t, st.GetAppointments("u1"), st.GetAppointments("a1"))
	assert.Equal(t, st.GetAppointments("u1"), st.GetAppointments("does-not-exist"))
	assert.Equal(t, st.GetCourses("u1"), st.GetCourses(""))
	assert.Len(t, st.GetCourses("whoever"), 2)
}

func TestReadsReturnCopies(t *testing.T) {
	st, _ := openFresh(t)

	courses := st.GetCourses("u1")
	courses[0].Materials[0].Title = "changed"
	appts := st.GetAppointments("u1")
	appts[0].Status = entity.StatusCancelled

	assert.Equal(t, "Introducción a la IA.pdf", st.GetCourses("u1")[0].Materials[0].Title)
	assert.Equal(t, entity.StatusConfirmed, st.GetAppointments("u1")[0].Status)
}

func TestMutationsPersistFullState(t *testing.T) {
	st, mem := openFresh(t)
	ctx := context.Background()

	st.UpdateUserPreferences(ctx, "u1", entity.PreferencesPatch{HighContrast: boolPtr(true)})
	st.AddAppointment(ctx, entity.Appointment{ID: "3", Title: "Taller", Date: "2025-07-01 08:00", Status: entity.StatusPending, Type: entity.AppointmentAcademic})

	raw, ok, err := mem.Get(ctx, localstore.DefaultStorageKey)
	require.NoError(t, err)
	require.True(t, ok)

	snap, err := localstore.DecodeSnapshot(raw)
	require.NoError(t, err)
	assert.Equal(t, st.Snapshot(), snap)

	reopened, report := localstore.Open(ctx, mem, quietLogger())
	assert.Equal(t, localstore.SourceSnapshot, report.Source)
	u, _ := reopened.GetUserByID("u1")
	assert.True(t, u.Preferences.HighContrast)
	assert.Len(t, reopened.GetAppointments("u1"), 3)
}

func TestSnapshotRoundTrip(t *testing.T) {
	want := localstore.DefaultSnapshot()

	raw, err := localstore.EncodeSnapshot(want)
	require.NoError(t, err)
	got, err := localstore.DecodeSnapshot(raw)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestOpen_FallsBackOnUnusableSnapshot(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"invalid json", "{not json"},
		{"wrong shape", `{"users": "nope"}`},
		{"missing collection", `{"users": [], "appointments": [], "courses": []}`},
		{"null collection", `{"users": null, "appointments": [], "courses": [], "metrics": []}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			mem := slot.NewMemory()
			require.NoError(t, mem.Set(ctx, localstore.DefaultStorageKey, tc.raw))

			bus := events.NewBus()
			var seeded []events.Event
			bus.Subscribe(func(_ context.Context, e events.Event) { seeded = append(seeded, e) })

			st, report := localstore.Open(ctx, mem, quietLogger(), localstore.WithBus(bus))

			assert.Equal(t, localstore.SourceSeedCorrupt, report.Source)
			assert.Error(t, report.Err)
			assert.Equal(t, localstore.DefaultSnapshot(), st.Snapshot())
			require.Len(t, seeded, 1)
			assert.Equal(t, events.StoreSeeded, seeded[0].Type)
			assert.Equal(t, "seed-corrupt", seeded[0].Data["source"])
		})
	}
}

type brokenSlot struct{ err error }

func (b brokenSlot) Get(context.Context, string) (string, bool, error) { return "", false, b.err }
func (b brokenSlot) Set(context.Context, string, string) error         { return b.err }

func TestOpen_UnreadableSlotUsesSeed(t *testing.T) {
	boom := errors.New("storage offline")
	st, report := localstore.Open(context.Background(), brokenSlot{err: boom}, quietLogger())

	assert.Equal(t, localstore.SourceSeedUnreadable, report.Source)
	assert.ErrorIs(t, report.Err, boom)
	assert.Equal(t, localstore.DefaultSnapshot(), st.Snapshot())
}

func TestWriteFailureKeepsInMemoryChange(t *testing.T) {
	st, mem := openFresh(t)
	ctx := context.Background()
	mem.FailWrites(errors.New("quota exceeded"))

	u, ok := st.UpdateUserPreferences(ctx, "u1", entity.PreferencesPatch{VoiceSpeed: floatPtr(1.5)})
	require.True(t, ok)
	assert.Equal(t, 1.5, u.Preferences.VoiceSpeed)

	st.AddAppointment(ctx, entity.Appointment{ID: "9", Title: "t", Status: entity.StatusPending, Type: entity.AppointmentOther})
	assert.Len(t, st.GetAppointments("u1"), 3)

	assert.Error(t, st.Flush(ctx))

	mem.FailWrites(nil)
	require.NoError(t, st.Flush(ctx))
	raw, _, _ := mem.Get(ctx, localstore.DefaultStorageKey)
	snap, err := localstore.DecodeSnapshot(raw)
	require.NoError(t, err)
	assert.Len(t, snap.Appointments, 3)
}

func TestWithStorageKey(t *testing.T) {
	ctx := context.Background()
	mem := slot.NewMemory()
	st, _ := localstore.Open(ctx, mem, quietLogger(), localstore.WithStorageKey("custom"))
	require.NoError(t, st.Flush(ctx))

	_, ok, _ := mem.Get(ctx, "custom")
	assert.True(t, ok)
	_, ok, _ = mem.Get(ctx, localstore.DefaultStorageKey)
	assert.False(t, ok)
}

func TestDefaultSnapshotIsFreshCopy(t *testing.T) {
	a := localstore.DefaultSnapshot()
	a.Users[0].Name = "mutated"
	a.Courses[0].Materials[0].ID = "mutated"

	b := localstore.DefaultSnapshot()
	assert.Equal(t, "Juan Pérez", b.Users[0].Name)
	assert.Equal(t, "m1", b.Courses[0].Materials[0].ID)
}

// flakyReadSlot fails its first Get and behaves like mem afterwards.
type flakyReadSlot struct {
	*slot.Memory
	failed bool
}

func (f *flakyReadSlot) Get(ctx context.Context, key string) (string, bool, error) {
	if !f.failed {
		f.failed = true
		return "", false, errors.New("connection reset")
	}
	return f.Memory.Get(ctx, key)
}

func TestClose_UnmutatedStoreKeepsUnreadableSnapshot(t *testing.T) {
	ctx := context.Background()
	mem := slot.NewMemory()
	saved := localstore.DefaultSnapshot()
	saved.Users[0].Preferences.FontSize = entity.FontSizeXL
	raw, err := localstore.EncodeSnapshot(saved)
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, localstore.DefaultStorageKey, raw))

	st, report := localstore.Open(ctx, &flakyReadSlot{Memory: mem}, quietLogger())
	require.Equal(t, localstore.SourceSeedUnreadable, report.Source)
	assert.False(t, st.Dirty())

	require.NoError(t, st.Close(ctx))

	after, _, err := mem.Get(ctx, localstore.DefaultStorageKey)
	require.NoError(t, err)
	assert.Equal(t, raw, after)
}

func TestClose_RetriesFailedWrite(t *testing.T) {
	st, mem := openFresh(t)
	ctx := context.Background()
	mem.FailWrites(errors.New("disk full"))

	st.UpdateUserConsents(ctx, "u1", entity.ConsentsPatch{VoiceRecording: boolPtr(true)})
	assert.True(t, st.Dirty())

	mem.FailWrites(nil)
	require.NoError(t, st.Close(ctx))
	assert.False(t, st.Dirty())

	raw, ok, _ := mem.Get(ctx, localstore.DefaultStorageKey)
	require.True(t, ok)
	snap, err := localstore.DecodeSnapshot(raw)
	require.NoError(t, err)
	assert.True(t, snap.Users[0].Consents.VoiceRecording)
}

// ctxSlot refuses writes whose context is already done, like the network
// backends do.
type ctxSlot struct{ *slot.Memory }

func (c ctxSlot) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.Memory.Set(ctx, key, value)
}

func TestMutationSurvivesCancelledRequest(t *testing.T) {
	mem := slot.NewMemory()
	st, _ := localstore.Open(context.Background(), ctxSlot{mem}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	u, ok := st.UpdateUserPreferences(ctx, "u1", entity.PreferencesPatch{HighContrast: boolPtr(true)})
	require.True(t, ok)
	assert.True(t, u.Preferences.HighContrast)
	assert.False(t, st.Dirty())

	reopened, report := localstore.Open(context.Background(), mem, quietLogger())
	require.Equal(t, localstore.SourceSnapshot, report.Source)
	got, _ := reopened.GetUserByID("u1")
	assert.True(t, got.Preferences.HighContrast)
}
