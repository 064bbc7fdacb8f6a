package models

import "time"

// Session activity constants
const (
	SessionActive   = true
	SessionInactive = false
)

// Request types

type CreateBoardRequest struct {
	Title       string     `json:"title"`
	SessionName string     `json:"sessionName,omitempty"`
	Categories  []Category `json:"categories,omitempty"`
}

type CreateSimpleBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreatePinRequest struct {
	PersonName string `json:"personName"`
	PlacedBy   string `json:"placedBy,omitempty"`
}

type MovePinRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Response types

type CreateBoardResponse struct {
	Board    Board   `json:"board"`
	Session  Session `json:"session"`
	ShareURL string  `json:"shareUrl"`
}

type ListBoardsResponse struct {
	Success bool        `json:"success"`
	Data    []Board     `json:"data"`
	User    UserSummary `json:"user"`
}

type CreateSimpleBoardResponse struct {
	Success bool  `json:"success"`
	Data    Board `json:"data"`
}

type ResolveSessionResponse struct {
	Session Session `json:"session"`
	Board   Board   `json:"board"`
}

type ListPinsResponse struct {
	Pins []Pin `json:"pins"`
}

type DeletePinResponse struct {
	Success bool `json:"success"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Domain types

// Category is one labeled band of a board. Categories are fixed at
// board creation time; position is the zero-based band index from the
// top of the board.
type Category struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"position"`
}

type Board struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	CreatorID   string     `json:"creator_id"`
	Categories  []Category `json:"categories"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Session is the addressable, shareable instance of a board that
// participants join via its shareable code.
type Session struct {
	ID            string    `json:"id"`
	BoardID       string    `json:"board_id"`
	SessionName   string    `json:"session_name"`
	ShareableCode string    `json:"shareable_code"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// Pin is a named marker at a normalized position on a session's board.
// Category membership is derived from BoardYPercentage, never stored.
// PlacedBy is a display identity: the authenticated user ID on owner
// routes, a free-form participant name on share-link routes.
type Pin struct {
	ID               string    `json:"id"`
	SessionID        string    `json:"session_id"`
	PersonName       string    `json:"person_name"`
	BoardXPercentage float64   `json:"board_x_percentage"`
	BoardYPercentage float64   `json:"board_y_percentage"`
	PlacedBy         string    `json:"placed_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DefaultCategories returns the four-band category set applied when a
// board is created without an explicit list.
func DefaultCategories() []Category {
	return []Category{
		{Name: "GOOD BOYY", Color: "#87CEEB", Position: 0},
		{Name: "HELL YEAH", Color: "#90EE90", Position: 1},
		{Name: "FUCKIN'", Color: "#FFA07A", Position: 2},
		{Name: "IN THE FIRE", Color: "#1a1a1a", Position: 3},
	}
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
