package tui

import "datepick/internal/tui/messages"

// Re-export types from messages package for convenience
type ViewType = messages.ViewType

const (
	ViewSingle = messages.ViewSingle
	ViewRange  = messages.ViewRange
)

type SwitchViewMsg = messages.SwitchViewMsg
type DateChangedMsg = messages.DateChangedMsg
type DatesChangedMsg = messages.DatesChangedMsg
type FocusChangedMsg = messages.FocusChangedMsg
type ClosedMsg = messages.ClosedMsg

var SwitchView = messages.SwitchView
