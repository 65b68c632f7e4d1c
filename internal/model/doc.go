package model

// Package model defines domain data structures used across the app: swipe
// candidates, swipe directions, and deck state enums. Structures are designed
// for direct rendering in the UI and explicit state transitions.
