// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/behavior-chart/server/models"
	"github.com/behavior-chart/server/testutil"
)

func TestCreateBoard(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewBoardHandler(conn, cfg)

	token := testutil.IssueTestToken(cfg, "user-1", "casey@example.com")
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	tests := []struct {
		name           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CreateBoardResponse)
	}{
		{
			name:           "valid board with defaults",
			body:           models.CreateBoardRequest{Title: "Friday"},
			headers:        authHeader,
			expectedStatus: 200,
			checkResponse: func(t *testing.T, resp *models.CreateBoardResponse) {
				if resp.Board.Title != "Friday" {
					t.Errorf("Expected board title 'Friday', got %q", resp.Board.Title)
				}
				if resp.Board.CreatorID != "user-1" {
					t.Errorf("Expected creator 'user-1', got %q", resp.Board.CreatorID)
				}
				if len(resp.Board.Categories) != 4 {
					t.Fatalf("Expected 4 default categories, got %d", len(resp.Board.Categories))
				}
				if resp.Board.Categories[0].Name != "GOOD BOYY" || resp.Board.Categories[0].Color != "#87CEEB" {
					t.Errorf("Unexpected first category: %+v", resp.Board.Categories[0])
				}
				if resp.Board.Categories[3].Name != "IN THE FIRE" {
					t.Errorf("Unexpected last category: %+v", resp.Board.Categories[3])
				}

				// Session name falls back to the board title
				if resp.Session.SessionName != "Friday" {
					t.Errorf("Expected session name 'Friday', got %q", resp.Session.SessionName)
				}
				if !resp.Session.IsActive {
					t.Error("Expected new session to be active")
				}
				if resp.Session.BoardID != resp.Board.ID {
					t.Error("Session is not linked to the created board")
				}
				if resp.Session.ShareableCode == "" {
					t.Fatal("Expected non-empty shareable code")
				}
				if !strings.HasSuffix(resp.ShareURL, "/session/"+resp.Session.ShareableCode) {
					t.Errorf("Share URL %q does not end in /session/%s", resp.ShareURL, resp.Session.ShareableCode)
				}
			},
		},
		{
			name: "explicit session name and categories",
			body: models.CreateBoardRequest{
				Title:       "Sprint Retro",
				SessionName: "Week 12",
				Categories: []models.Category{
					{Name: "Keep", Color: "#90EE90", Position: 0},
					{Name: "Stop", Color: "#FFA07A", Position: 1},
				},
			},
			headers:        authHeader,
			expectedStatus: 200,
			checkResponse: func(t *testing.T, resp *models.CreateBoardResponse) {
				if resp.Session.SessionName != "Week 12" {
					t.Errorf("Expected session name 'Week 12', got %q", resp.Session.SessionName)
				}
				if len(resp.Board.Categories) != 2 {
					t.Errorf("Expected 2 categories, got %d", len(resp.Board.Categories))
				}
			},
		},
		{
			name:           "missing title",
			body:           models.CreateBoardRequest{SessionName: "No Board"},
			headers:        authHeader,
			expectedStatus: 400,
		},
		{
			name:           "missing authorization",
			body:           models.CreateBoardRequest{Title: "Friday"},
			headers:        nil,
			expectedStatus: 401,
		},
		{
			name:           "malformed token",
			body:           models.CreateBoardRequest{Title: "Friday"},
			headers:        map[string]string{"Authorization": "Bearer not-a-token"},
			expectedStatus: 401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boardsBefore := testutil.CountRows(t, conn, "boards")
			sessionsBefore := testutil.CountRows(t, conn, "board_sessions")

			req := testutil.MakeRequest("POST", "/api/boards", tt.body, tt.headers)
			w := httptest.NewRecorder()
			handler.CreateBoard(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == 200 {
				var resp models.CreateBoardResponse
				testutil.AssertJSON(t, w, &resp)
				if tt.checkResponse != nil {
					tt.checkResponse(t, &resp)
				}
				if testutil.CountRows(t, conn, "boards") != boardsBefore+1 {
					t.Error("Expected exactly one board row to be created")
				}
				if testutil.CountRows(t, conn, "board_sessions") != sessionsBefore+1 {
					t.Error("Expected exactly one session row to be created")
				}
			} else {
				// A rejected request must not leave partial rows behind
				if testutil.CountRows(t, conn, "boards") != boardsBefore {
					t.Error("Rejected request created a board row")
				}
				if testutil.CountRows(t, conn, "board_sessions") != sessionsBefore {
					t.Error("Rejected request created a session row")
				}
			}
		})
	}
}

func TestCreateBoard_ShareCodeResolves(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	boards := NewBoardHandler(conn, cfg)
	sessions := NewSessionHandler(conn, cfg)

	token := testutil.IssueTestToken(cfg, "user-1", "casey@example.com")
	req := testutil.MakeRequest("POST", "/api/boards",
		models.CreateBoardRequest{Title: "Friday"},
		map[string]string{"Authorization": "Bearer " + token})
	w := httptest.NewRecorder()
	boards.CreateBoard(w, req)
	testutil.AssertStatus(t, w, 200)

	var created models.CreateBoardResponse
	testutil.AssertJSON(t, w, &created)

	// The code in the share URL must resolve back to the same board
	req = testutil.MakeRequest("GET", "/api/sessions/"+created.Session.ShareableCode, nil, nil)
	req.SetPathValue("code", created.Session.ShareableCode)
	w = httptest.NewRecorder()
	sessions.ResolveSession(w, req)
	testutil.AssertStatus(t, w, 200)

	var resolved models.ResolveSessionResponse
	testutil.AssertJSON(t, w, &resolved)
	if resolved.Board.Title != "Friday" {
		t.Errorf("Expected resolved board title 'Friday', got %q", resolved.Board.Title)
	}
	if resolved.Session.ID != created.Session.ID {
		t.Error("Resolved session does not match the created session")
	}
}

func TestListBoards(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewBoardHandler(conn, cfg)

	testutil.CreateTestBoard(t, conn, "user-1", "Mine A")
	testutil.CreateTestBoard(t, conn, "user-1", "Mine B")
	testutil.CreateTestBoard(t, conn, "user-2", "Someone Else's")

	token := testutil.IssueTestToken(cfg, "user-1", "casey@example.com")
	req := testutil.MakeRequest("GET", "/api/get-boards", nil,
		map[string]string{"Authorization": "Bearer " + token})
	w := httptest.NewRecorder()
	handler.ListBoards(w, req)

	testutil.AssertStatus(t, w, 200)

	var resp models.ListBoardsResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.Success {
		t.Error("Expected success to be true")
	}
	if len(resp.Data) != 2 {
		t.Fatalf("Expected 2 boards for user-1, got %d", len(resp.Data))
	}
	for _, b := range resp.Data {
		if b.CreatorID != "user-1" {
			t.Errorf("Board %q belongs to %q, not the caller", b.Title, b.CreatorID)
		}
	}
	if resp.User.ID != "user-1" || resp.User.Email != "casey@example.com" {
		t.Errorf("Unexpected user summary: %+v", resp.User)
	}
}

func TestListBoards_Unauthorized(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewBoardHandler(conn, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/api/get-boards", nil, nil)
	w := httptest.NewRecorder()
	handler.ListBoards(w, req)

	testutil.AssertStatus(t, w, 401)
}

func TestCreateSimpleBoard(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewBoardHandler(conn, cfg)

	token := testutil.IssueTestToken(cfg, "user-1", "casey@example.com")
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	tests := []struct {
		name           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CreateSimpleBoardResponse)
	}{
		{
			name:           "name only",
			body:           models.CreateSimpleBoardRequest{Name: "Homework"},
			headers:        authHeader,
			expectedStatus: 200,
			checkResponse: func(t *testing.T, resp *models.CreateSimpleBoardResponse) {
				if resp.Data.Title != "Homework" {
					t.Errorf("Expected title 'Homework', got %q", resp.Data.Title)
				}
				if resp.Data.Description != nil {
					t.Errorf("Expected nil description, got %q", *resp.Data.Description)
				}
				if len(resp.Data.Categories) != 4 {
					t.Errorf("Expected default categories, got %d", len(resp.Data.Categories))
				}
			},
		},
		{
			name:           "name and description",
			body:           models.CreateSimpleBoardRequest{Name: "Chores", Description: "weekly chart"},
			headers:        authHeader,
			expectedStatus: 200,
			checkResponse: func(t *testing.T, resp *models.CreateSimpleBoardResponse) {
				if resp.Data.Description == nil || *resp.Data.Description != "weekly chart" {
					t.Errorf("Expected description 'weekly chart', got %v", resp.Data.Description)
				}
			},
		},
		{
			name:           "missing name",
			body:           models.CreateSimpleBoardRequest{Description: "no name"},
			headers:        authHeader,
			expectedStatus: 400,
		},
		{
			name:           "missing authorization",
			body:           models.CreateSimpleBoardRequest{Name: "Homework"},
			headers:        nil,
			expectedStatus: 401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/get-boards", tt.body, tt.headers)
			w := httptest.NewRecorder()
			handler.CreateSimpleBoard(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.checkResponse != nil && w.Code == 200 {
				var resp models.CreateSimpleBoardResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}
