// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestMe(t *testing.T) {
	_, session := newTestSession(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assertAuth(t, request, "test-token")
		if request.URL.Path != "/api/v1/me" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		writeJSON(writer, User{
			ID:   "u-alice",
			Name: "Alice Wonderland",
			Friends: []Friend{
				{UserID: "u-bob", FullName: "Bob Smith"},
			},
		})
	}))

	user, err := session.Me(context.Background())
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if user.ID != "u-alice" {
		t.Errorf("unexpected user ID: %s", user.ID)
	}
	if user.Name != "Alice Wonderland" {
		t.Errorf("unexpected name: %s", user.Name)
	}
	if len(user.Friends) != 1 || user.Friends[0].FullName != "Bob Smith" {
		t.Errorf("unexpected friends: %+v", user.Friends)
	}
}

func TestMe_StaleToken(t *testing.T) {
	_, session := newTestSession(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writeAPIError(writer, http.StatusUnauthorized, ErrCodeUnknownToken, "Unknown access token")
	}))

	_, err := session.Me(context.Background())
	if err == nil {
		t.Fatal("expected error for stale token")
	}
	if !IsAPIError(err, ErrCodeUnknownToken) {
		t.Errorf("expected ERR_UNKNOWN_TOKEN, got: %v", err)
	}
}

func TestThreadList(t *testing.T) {
	_, session := newTestSession(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assertAuth(t, request, "test-token")
		if request.URL.Path != "/api/v1/threads" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}

		query := request.URL.Query()
		if query.Get("limit") != "20" {
			t.Errorf("unexpected limit: %s", query.Get("limit"))
		}
		if query.Get("cursor") != "c1" {
			t.Errorf("unexpected cursor: %s", query.Get("cursor"))
		}
		if folders := query["folder"]; len(folders) != 2 || folders[0] != "inbox" || folders[1] != "archive" {
			t.Errorf("unexpected folders: %v", folders)
		}

		writeJSON(writer, ThreadListResponse{
			Threads: []Thread{
				{ThreadID: "t1", Name: "Road Trip", LastActivityTS: 200, UnreadCount: 3},
				{ThreadID: "t2", LastActivityTS: 100},
			},
			NextCursor: "c2",
		})
	}))

	response, err := session.ThreadList(context.Background(), 20, "c1", []string{"inbox", "archive"})
	if err != nil {
		t.Fatalf("ThreadList failed: %v", err)
	}
	if len(response.Threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(response.Threads))
	}
	if response.Threads[0].Name != "Road Trip" {
		t.Errorf("unexpected first thread name: %s", response.Threads[0].Name)
	}
	if response.Threads[1].Name != "" {
		t.Errorf("expected nameless second thread, got %q", response.Threads[1].Name)
	}
	if response.NextCursor != "c2" {
		t.Errorf("unexpected next cursor: %s", response.NextCursor)
	}
}

func TestThreadInfo(t *testing.T) {
	t.Run("existing thread", func(t *testing.T) {
		_, session := newTestSession(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assertAuth(t, request, "test-token")
			if request.URL.Path != "/api/v1/threads/t1" {
				t.Errorf("unexpected path: %s", request.URL.Path)
			}
			writeJSON(writer, Thread{ThreadID: "t1", Name: "Road Trip", Color: "#0084ff"})
		}))

		thread, err := session.ThreadInfo(context.Background(), "t1")
		if err != nil {
			t.Fatalf("ThreadInfo failed: %v", err)
		}
		if thread.Color != "#0084ff" {
			t.Errorf("unexpected color: %s", thread.Color)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, session := newTestSession(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writeAPIError(writer, http.StatusNotFound, ErrCodeNotFound, "Thread not found")
		}))

		_, err := session.ThreadInfo(context.Background(), "missing")
		if err == nil {
			t.Fatal("expected error for missing thread")
		}
		if !IsAPIError(err, ErrCodeNotFound) {
			t.Errorf("expected ERR_NOT_FOUND, got: %v", err)
		}
	})
}

func TestThreadHistory(t *testing.T) {
	_, session := newTestSession(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assertAuth(t, request, "test-token")
		if request.URL.Path != "/api/v1/threads/t1/messages" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		if request.URL.Query().Get("limit") != "5" {
			t.Errorf("unexpected limit: %s", request.URL.Query().Get("limit"))
		}
		writeJSON(writer, MessagesResponse{
			Messages: []Message{
				{MessageID: "m1", ThreadID: "t1", SenderName: "Bob", Body: "hey", Timestamp: 100},
				{MessageID: "m2", ThreadID: "t1", SenderName: "Alice", Body: "hi", Timestamp: 200},
			},
		})
	}))

	messages, err := session.ThreadHistory(context.Background(), "t1", 5)
	if err != nil {
		t.Fatalf("ThreadHistory failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Body != "hey" {
		t.Errorf("unexpected first message body: %s", messages[0].Body)
	}
}

func TestSendMessage(t *testing.T) {
	_, session := newTestSession(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assertAuth(t, request, "test-token")
		if request.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", request.Method)
		}
		if !strings.HasPrefix(request.URL.Path, "/api/v1/threads/t1/messages/") {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}

		var body SendMessageRequest
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode send request: %v", err)
		}
		if body.Body != "hello world" {
			t.Errorf("unexpected body: %s", body.Body)
		}

		writeJSON(writer, SendMessageResponse{MessageID: "m9"})
	}))

	messageID, err := session.SendMessage(context.Background(), "t1", "hello world")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if messageID != "m9" {
		t.Errorf("unexpected message ID: %s", messageID)
	}
}

func TestSendMessage_TransactionIDUniqueness(t *testing.T) {
	// Verify that consecutive sends produce different transaction IDs.
	transactionIDs := make(map[string]bool)

	_, session := newTestSession(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		parts := strings.Split(request.URL.Path, "/")
		transactionID := parts[len(parts)-1]
		if transactionIDs[transactionID] {
			t.Errorf("duplicate transaction ID: %s", transactionID)
		}
		transactionIDs[transactionID] = true
		writeJSON(writer, SendMessageResponse{MessageID: "m"})
	}))

	for range 5 {
		if _, err := session.SendMessage(context.Background(), "t1", "msg"); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
	}
	if len(transactionIDs) != 5 {
		t.Errorf("expected 5 unique transaction IDs, got %d", len(transactionIDs))
	}
}

func TestSetThreadColor(t *testing.T) {
	_, session := newTestSession(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assertAuth(t, request, "test-token")
		if request.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", request.Method)
		}
		if request.URL.Path != "/api/v1/threads/t1/color" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}

		var body SetColorRequest
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode color request: %v", err)
		}
		if body.Color != "#ff0000" {
			t.Errorf("unexpected color: %s", body.Color)
		}
		writeJSON(writer, map[string]any{})
	}))

	if err := session.SetThreadColor(context.Background(), "t1", "#ff0000"); err != nil {
		t.Fatalf("SetThreadColor failed: %v", err)
	}
}

func TestMarkRead(t *testing.T) {
	_, session := newTestSession(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assertAuth(t, request, "test-token")
		if request.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", request.Method)
		}
		if request.URL.Path != "/api/v1/threads/t1/read" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		writeJSON(writer, map[string]any{})
	}))

	if err := session.MarkRead(context.Background(), "t1"); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
}

func TestLogout(t *testing.T) {
	_, session := newTestSession(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assertAuth(t, request, "test-token")
		if request.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", request.Method)
		}
		if request.URL.Path != "/api/v1/logout" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		writeJSON(writer, map[string]any{})
	}))

	if err := session.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
}
