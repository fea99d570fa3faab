package app

import (
	"testing"
	"time"

	"github.com/r-maier/finetune-prep-tui/internal/models"
	"github.com/r-maier/finetune-prep-tui/internal/services"
)

func TestNewState(t *testing.T) {
	s := NewState()

	if s.GetAnalysis() != nil {
		t.Error("new state should have no analysis")
	}
	if !s.IsLoading() {
		t.Error("new state should be loading")
	}
	if len(s.GetNotifications()) != 0 {
		t.Error("new state should have no notifications")
	}
}

func TestState_SetAnalysis(t *testing.T) {
	s := NewState()

	analysis := &services.Analysis{
		Report: &models.Report{NumExamples: 5},
	}
	s.SetAnalysis(analysis)

	if s.IsLoading() {
		t.Error("loading should be cleared after SetAnalysis")
	}
	got := s.GetAnalysis()
	if got == nil || got.Report.NumExamples != 5 {
		t.Error("analysis should be stored")
	}
	if s.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should be set")
	}
	if s.TimeSinceUpdate() < 0 {
		t.Error("TimeSinceUpdate should be non-negative")
	}
}

func TestState_SelectedIssueIndex(t *testing.T) {
	s := NewState()

	if s.GetSelectedIssueIndex() != 0 {
		t.Error("initial selected index should be 0")
	}
	s.SetSelectedIssueIndex(3)
	if s.GetSelectedIssueIndex() != 3 {
		t.Error("SetSelectedIssueIndex should update the index")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "hello", 0)
	if id == "" {
		t.Fatal("AddNotification should return an ID")
	}

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifs))
	}
	if notifs[0].Message != "hello" {
		t.Errorf("message = %q, want %q", notifs[0].Message, "hello")
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("notification should be removed")
	}
}

func TestState_Notifications_Cap(t *testing.T) {
	s := NewState()

	for i := 0; i < 15; i++ {
		s.AddNotification(NotificationInfo, "n", 0)
	}

	if got := len(s.GetNotifications()); got > 10 {
		t.Errorf("notifications should be capped at 10, got %d", got)
	}
}

func TestState_Notifications_Expiry(t *testing.T) {
	s := NewState()

	s.AddNotification(NotificationInfo, "short-lived", time.Nanosecond)
	time.Sleep(time.Millisecond)

	if len(s.GetNotifications()) != 0 {
		t.Error("expired notification should not be returned")
	}

	s.ClearExpiredNotifications()
	s.AddNotification(NotificationInfo, "persistent", 0)
	if len(s.GetNotifications()) != 1 {
		t.Error("zero-duration notification should never expire")
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("Loading...")
	notifs := s.GetNotifications()
	if len(notifs) != 1 || notifs[0].ID != LoadingNotificationID {
		t.Fatal("loading notification should be present")
	}

	// Updating replaces the message, not adds a second entry
	s.SetLoadingNotification("Still loading...")
	notifs = s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifs))
	}
	if notifs[0].Message != "Still loading..." {
		t.Errorf("message = %q, want updated text", notifs[0].Message)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
}

func TestState_ClearAllNotifications(t *testing.T) {
	s := NewState()

	s.AddNotification(NotificationError, "a", 0)
	s.AddNotification(NotificationSuccess, "b", 0)
	s.ClearAllNotifications()

	if len(s.GetNotifications()) != 0 {
		t.Error("all notifications should be cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		typ  NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationInfo, "info"},
		{NotificationLoading, "loading"},
		{NotificationType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("NotificationType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
