package setting

import "errors"

var (
	ErrSettingsNotFound = errors.New("settings not found")
	ErrAlreadyLinked    = errors.New("telegram is already linked")
	ErrNotLinked        = errors.New("telegram is not linked")
	ErrChatAlreadyBound = errors.New("telegram chat is linked to another user")
)
