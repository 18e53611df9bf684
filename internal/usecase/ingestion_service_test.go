package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/minicrushers/minitracker/internal/domain/report"
	"github.com/minicrushers/minitracker/internal/infrastructure/repository/memory"
	"github.com/minicrushers/minitracker/internal/platform/logging"
)

type stubProvider struct {
	capture RawCapture
	err     error
}

func (s *stubProvider) FetchLeaderboard(context.Context) (RawCapture, error) {
	return s.capture, s.err
}

type recordingNotifier struct {
	messages []report.Message
	err      error
}

func (n *recordingNotifier) Send(_ context.Context, msg report.Message) error {
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, msg)
	return nil
}

func mondayCapture() RawCapture {
	return RawCapture{
		Year:  "2024",
		Month: "June",
		Day:   "3,",
		Entries: []RawEntry{
			{DisplayName: "alice", RawTime: "1:30"},
			{DisplayName: "bob (you)", RawTime: "1:15"},
			{DisplayName: "carol", RawTime: "--"},
		},
	}
}

func TestIngestionService_IngestLatest(t *testing.T) {
	t.Parallel()

	resultRepo := memory.NewResultRepository()
	notifier := &recordingNotifier{}
	service := NewIngestionService(&stubProvider{capture: mondayCapture()}, resultRepo, notifier, logging.NewNop())

	if err := service.IngestLatest(context.Background()); err != nil {
		t.Fatalf("IngestLatest error: %v", err)
	}

	day, found, err := resultRepo.GetByDate(context.Background(), mustDate(t, "2024-06-03"))
	if err != nil || !found {
		t.Fatalf("daily result not stored: found=%t err=%v", found, err)
	}
	if len(day.Entries) != 2 || day.Entries["alice"] != 90 || day.Entries["bob"] != 75 {
		t.Fatalf("unexpected entries: %v", day.Entries)
	}

	// Two completion announcements plus the current standing.
	if len(notifier.messages) != 3 {
		t.Fatalf("unexpected message count: got=%d want=3", len(notifier.messages))
	}
	completions := map[string]bool{}
	for _, msg := range notifier.messages[:2] {
		completions[msg.Content] = true
	}
	if !completions["alice completed the Mini in 01:30"] || !completions["bob completed the Mini in 01:15"] {
		t.Fatalf("unexpected completion messages: %v", completions)
	}
	last := notifier.messages[2]
	if len(last.Embeds) != 1 || last.Embeds[0].Title != "Current Monday Standing" {
		t.Fatalf("unexpected standing message: %+v", last)
	}
	if !strings.Contains(last.Embeds[0].Description, "1. bob - 01:15") {
		t.Fatalf("unexpected standing order: %q", last.Embeds[0].Description)
	}
}

func TestIngestionService_IngestLatest_UnchangedIsQuiet(t *testing.T) {
	t.Parallel()

	resultRepo := memory.NewResultRepository()
	notifier := &recordingNotifier{}
	service := NewIngestionService(&stubProvider{capture: mondayCapture()}, resultRepo, notifier, logging.NewNop())

	if err := service.IngestLatest(context.Background()); err != nil {
		t.Fatalf("first IngestLatest error: %v", err)
	}
	first := len(notifier.messages)

	if err := service.IngestLatest(context.Background()); err != nil {
		t.Fatalf("second IngestLatest error: %v", err)
	}
	if len(notifier.messages) != first {
		t.Fatalf("unchanged leaderboard still announced: got=%d want=%d", len(notifier.messages), first)
	}
}

func TestIngestionService_IngestLatest_OnlyNewTimesAnnounced(t *testing.T) {
	t.Parallel()

	resultRepo := memory.NewResultRepository()
	notifier := &recordingNotifier{}
	provider := &stubProvider{capture: mondayCapture()}
	service := NewIngestionService(provider, resultRepo, notifier, logging.NewNop())

	if err := service.IngestLatest(context.Background()); err != nil {
		t.Fatalf("first IngestLatest error: %v", err)
	}
	notifier.messages = nil

	// carol finishes and alice improves: only carol is news.
	capture := mondayCapture()
	capture.Entries[0].RawTime = "1:10"
	capture.Entries[2].RawTime = "2:05"
	provider.capture = capture

	if err := service.IngestLatest(context.Background()); err != nil {
		t.Fatalf("second IngestLatest error: %v", err)
	}

	if len(notifier.messages) != 2 {
		t.Fatalf("unexpected message count: got=%d want=2", len(notifier.messages))
	}
	if notifier.messages[0].Content != "carol completed the Mini in 02:05" {
		t.Fatalf("unexpected completion: %q", notifier.messages[0].Content)
	}
}

func TestIngestionService_IngestLatest_EmptyLeaderboard(t *testing.T) {
	t.Parallel()

	capture := mondayCapture()
	capture.Entries = []RawEntry{{DisplayName: "carol", RawTime: "--"}}

	resultRepo := memory.NewResultRepository()
	notifier := &recordingNotifier{}
	service := NewIngestionService(&stubProvider{capture: capture}, resultRepo, notifier, logging.NewNop())

	if err := service.IngestLatest(context.Background()); err != nil {
		t.Fatalf("IngestLatest error: %v", err)
	}

	if _, found, _ := resultRepo.GetByDate(context.Background(), mustDate(t, "2024-06-03")); found {
		t.Fatal("empty leaderboard should not be stored")
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("empty leaderboard should not announce, got %d messages", len(notifier.messages))
	}
}

func TestIngestionService_IngestLatest_MissingProvider(t *testing.T) {
	t.Parallel()

	service := NewIngestionService(nil, memory.NewResultRepository(), nil, logging.NewNop())

	err := service.IngestLatest(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

var _ LeaderboardProvider = (*stubProvider)(nil)
var _ Notifier = (*recordingNotifier)(nil)
