package ui

import "github.com/lepinkainen/pngsqueeze/batch"

// TUI message types wrapping the batch mailbox

// mailboxMsg carries one batch message received from the mailbox
type mailboxMsg struct {
	msg batch.Msg
}

// mailboxClosedMsg is returned once the mailbox stops delivering
type mailboxClosedMsg struct {
	err error
}
