package gesture

// Package gesture interprets a pointer or touch drag on the frontmost card:
// it tracks displacement from the drag origin, derives rotation and overlay
// intensity, and decides at release whether the swipe commits or snaps back.
