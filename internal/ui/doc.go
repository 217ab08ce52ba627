// Package ui contains the Bubble Tea program that powers the quick-launch
// overlay. The Model owns every piece of interaction state (query text,
// result set, selection) and mutates it only from Update.
//
// Message flow:
//   - Key presses go through a priority-ordered route table (router.go)
//     before the query input sees them. Navigation, launch and dismiss keys
//     are consumed; printable keys refocus the input and fall through.
//   - Every query edit notifies the Debouncer. Only the tick carrying the
//     newest tag triggers a search, and it reads the input at that moment.
//   - The SearchDispatcher stamps each request with a sequence number.
//     Responses are applied only when they carry the latest number, so an
//     out-of-order reply can never overwrite newer results.
//   - Applying results resets the selection, re-renders the display list and
//     asks the window to resize. Resize failures are logged and ignored.
//   - Launches run through the command bus. Success dismisses the overlay;
//     failure leaves it exactly as it was.
//
// Backend interactions:
//   - A backend.Watcher crawls the catalog off the UI loop. Update waits for
//     its events and hands them to the data dispatcher, which replaces the
//     catalog store; an active query is then searched again.
package ui
