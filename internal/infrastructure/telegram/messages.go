package telegram

import "html"

// EscapeHTML escapes HTML special characters for safe Telegram message formatting
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// Messages sent by the bot after link state changes (HTML format)
const (
	// MsgLinkSuccess is sent to the chat right after a successful link
	MsgLinkSuccess = "✅ <b>Linked</b>\n\n" +
		"🔔 You will now receive helpdesk ticket notifications here.\n\n" +
		"You can unlink at any time from the website settings page."

	// MsgUnlinkNotice is sent when the user unlinks from the website
	MsgUnlinkNotice = "✅ <b>Unlinked</b>\n\n" +
		"🔕 You will no longer receive ticket notifications.\n\n" +
		"Relink from the website settings page whenever you like."
)
