// Package ui provides the Bubble Tea terminal interface for Greenhouse.
//
// The interface lists plants in two sections. Sidebar rows are drawn plain;
// Grouped rows sit inside an inset box. Opening a row's actions (left or s)
// shows a Favorite and a Delete button at the row's trailing edge, the
// terminal stand-in for a trailing swipe.
//
// # Rendering
//
// The board is the render surface handed to the dispatcher. It caches the
// drawn content of every row, so a reconfigure redraws exactly the rows it
// names while an apply draws inserted rows and drops removed ones. The
// cursor follows its item across applies.
//
// Views render from the board's cache, never from the store directly, which
// keeps what is on screen equal to the last snapshot the dispatcher handed
// over.
//
// # Modals
//
// A delete opens a confirm modal that owns the dispatcher's prompt and
// resolves it exactly once. Quitting with the modal open cancels the
// prompt. The add modal inserts a plant into the section under the cursor.
package ui
