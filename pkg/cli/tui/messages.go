package tui

// MenuNavigationMsg asks the root model to close the active flow and show the menu.
type MenuNavigationMsg struct{}
