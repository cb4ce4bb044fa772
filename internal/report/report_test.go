package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/leavebot/internal"
)

var today = internal.NewDate(2024, time.March, 4)

type listCall struct {
	calendar string
	from, to time.Time
}

type fakeSource struct {
	events map[string][]*internal.Event
	errs   map[string]error
	calls  []listCall
}

func (s *fakeSource) ListEvents(_ context.Context, cal internal.Calendar, from, to time.Time) ([]*internal.Event, error) {
	s.calls = append(s.calls, listCall{calendar: cal.ID, from: from, to: to})
	if err := s.errs[cal.ID]; err != nil {
		return nil, err
	}
	return s.events[cal.ID], nil
}

func newTestBuilder(src *fakeSource, secondary *internal.Calendar) *Builder {
	team := internal.NewCalendars([]string{"ana@example.com", "ben@example.com"})
	return NewBuilder(zerolog.Nop(), src, team, internal.Calendar{ID: "me@work.com"}, secondary)
}

func TestRenderTeamLeave(t *testing.T) {
	assert.Equal(t, "🌴 Team leave today:\nNo team members on leave today.", RenderTeamLeave(nil))

	got := RenderTeamLeave([]internal.LeaveRecord{
		{PersonName: "John", Type: "ANNUAL LEAVE", Date: today},
		{PersonName: "ana", Type: "PTO", Date: today},
	})
	assert.Equal(t, "🌴 Team leave today:\n• John (ANNUAL LEAVE)\n• ana (PTO)", got)
}

func TestRenderUpcomingLeave(t *testing.T) {
	assert.Equal(t, "🗓️ Upcoming team leave (next 10 days):\nNo upcoming team leave in the next 10 days.", RenderUpcomingLeave(nil))

	recs := []internal.LeaveRecord{
		{PersonName: "Ana", Type: "VACATION", Date: today.AddDate(0, 0, 2)},
		{PersonName: "Ben", Type: "PTO", Date: today.AddDate(0, 0, 1)},
		{PersonName: "Cleo", Type: "RDO", Date: today.AddDate(0, 0, 2)},
	}
	got := RenderUpcomingLeave(recs)
	assert.Equal(t, "🗓️ Upcoming team leave (next 10 days):\n"+
		"• 5 March: Ben (PTO)\n"+
		"• 6 March: Ana (VACATION)\n"+
		"• 6 March: Cleo (RDO)", got)

	// input is left untouched
	assert.Equal(t, "Ana", recs[0].PersonName)
}

func TestBuild_TeamLeave(t *testing.T) {
	src := &fakeSource{events: map[string][]*internal.Event{
		"ana@example.com": {
			{Title: "Standup", StartsAt: today.Time.Add(9 * time.Hour)},
			{Title: "Vacation", StartsAt: today.Time, AllDay: true},
		},
		"ben@example.com": {
			{Title: "Ben - PTO", StartsAt: today.Time, AllDay: true},
		},
	}}
	b := newTestBuilder(src, nil)

	got, err := b.Build(context.Background(), TeamLeave, today)
	require.NoError(t, err)
	assert.Equal(t, "🌴 Team leave today:\n• ana (VACATION)\n• Ben (PTO)", got)

	require.Len(t, src.calls, 2)
	for _, c := range src.calls {
		assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), c.from)
		assert.Equal(t, time.Date(2024, time.March, 4, 23, 59, 59, 0, time.UTC), c.to)
	}
}

func TestBuild_TeamLeaveEmpty(t *testing.T) {
	b := newTestBuilder(&fakeSource{}, nil)

	got, err := b.Build(context.Background(), TeamLeave, today)
	require.NoError(t, err)
	assert.Equal(t, "🌴 Team leave today:\nNo team members on leave today.", got)
}

func TestBuild_UpcomingLeave(t *testing.T) {
	src := &fakeSource{events: map[string][]*internal.Event{
		"ana@example.com": {
			{Title: "Ana - Vacation", StartsAt: today.AddDate(0, 0, 2).Time, AllDay: true},
		},
		"ben@example.com": {
			{Title: "Ben - PTO", StartsAt: today.AddDate(0, 0, 1).Time, AllDay: true},
		},
	}}
	b := newTestBuilder(src, nil)

	got, err := b.Build(context.Background(), UpcomingLeave, today)
	require.NoError(t, err)
	assert.Equal(t, "🗓️ Upcoming team leave (next 10 days):\n"+
		"• 5 March: Ben (PTO)\n"+
		"• 6 March: Ana (VACATION)", got)

	require.Len(t, src.calls, 2)
	assert.Equal(t, time.Date(2024, time.March, 14, 23, 59, 59, 0, time.UTC), src.calls[0].to)
}

func TestBuild_Meetings(t *testing.T) {
	tomorrow := today.AddDate(0, 0, 1)
	src := &fakeSource{events: map[string][]*internal.Event{
		"me@work.com": {
			{Title: "Standup", StartsAt: tomorrow.Time.Add(9 * time.Hour), Organizer: "lead@work.com"},
		},
		"me@gmail.com": {
			{Title: "Dentist", StartsAt: tomorrow.Time.Add(8 * time.Hour), Organizer: "me@gmail.com"},
		},
	}}
	b := newTestBuilder(src, &internal.Calendar{ID: "me@gmail.com"})

	got, err := b.Build(context.Background(), EveningMeetings, today)
	require.NoError(t, err)
	assert.Equal(t, "📅 Tomorrow's meetings:\n08:00 [Personal] - Dentist\n09:00 [Work] - Standup", got)

	require.Len(t, src.calls, 2)
	assert.Equal(t, "me@work.com", src.calls[0].calendar)
	assert.Equal(t, "me@gmail.com", src.calls[1].calendar)
	assert.Equal(t, tomorrow.Time, src.calls[0].from)
}

func TestBuild_MeetingsWithoutSecondary(t *testing.T) {
	src := &fakeSource{}
	b := newTestBuilder(src, nil)

	got, err := b.Build(context.Background(), MorningMeetings, today)
	require.NoError(t, err)
	assert.Equal(t, "📅 Today's meetings:\nNo meetings scheduled", got)
	assert.Len(t, src.calls, 1)
}

func TestBuild_SourceErrorAbortsReport(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{
		events: map[string][]*internal.Event{
			"ana@example.com": {{Title: "Vacation", StartsAt: today.Time, AllDay: true}},
		},
		errs: map[string]error{"ben@example.com": boom},
	}
	b := newTestBuilder(src, nil)

	got, err := b.Build(context.Background(), TeamLeave, today)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, got)
}

func TestBuild_Deterministic(t *testing.T) {
	src := &fakeSource{events: map[string][]*internal.Event{
		"ana@example.com": {
			{Title: "Ana - Holiday", StartsAt: today.AddDate(0, 0, 3).Time, AllDay: true},
			{Title: "OOO", StartsAt: today.AddDate(0, 0, 1).Time, AllDay: true},
		},
		"ben@example.com": {
			{Title: "Ben - AL", StartsAt: today.AddDate(0, 0, 1).Time, AllDay: true},
		},
	}}
	b := newTestBuilder(src, nil)

	first, err := b.Build(context.Background(), UpcomingLeave, today)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := b.Build(context.Background(), UpcomingLeave, today)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestByName(t *testing.T) {
	for _, r := range All {
		got, ok := ByName(r.Name)
		require.True(t, ok)
		assert.Equal(t, r.Name, got.Name)
	}
	_, ok := ByName("weekly-digest")
	assert.False(t, ok)
}

func TestBuild_LeaveEndedYesterdayIsNotReported(t *testing.T) {
	src := &fakeSource{events: map[string][]*internal.Event{
		"ana@example.com": {
			{Title: "Ana - PTO", StartsAt: today.AddDate(0, 0, -1).Time, EndsAt: today.Time, AllDay: true},
		},
	}}
	b := newTestBuilder(src, nil)

	got, err := b.Build(context.Background(), TeamLeave, today)
	require.NoError(t, err)
	assert.Equal(t, "🌴 Team leave today:\nNo team members on leave today.", got)

	got, err = b.Build(context.Background(), UpcomingLeave, today)
	require.NoError(t, err)
	assert.Equal(t, "🗓️ Upcoming team leave (next 10 days):\nNo upcoming team leave in the next 10 days.", got)
}

func TestBuild_MeetingsSkipEventsEndedBeforeDay(t *testing.T) {
	src := &fakeSource{events: map[string][]*internal.Event{
		"me@work.com": {
			{Title: "Conference", StartsAt: today.AddDate(0, 0, -1).Time, EndsAt: today.Time, AllDay: true},
			{Title: "Release night", StartsAt: today.Time.Add(-2 * time.Hour), EndsAt: today.Time},
			{Title: "On call", StartsAt: today.Time.Add(-2 * time.Hour), EndsAt: today.Time.Add(time.Hour)},
			{Title: "Standup", StartsAt: today.Time.Add(9 * time.Hour), EndsAt: today.Time.Add(9*time.Hour + 15*time.Minute)},
		},
	}}
	b := newTestBuilder(src, nil)

	got, err := b.Build(context.Background(), MorningMeetings, today)
	require.NoError(t, err)
	assert.Equal(t, "📅 Today's meetings:\n22:00 [Work] - On call\n09:00 [Work] - Standup", got)
}
