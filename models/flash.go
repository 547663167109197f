package models

// Flash channels supported by the flash notice cookie. Each channel carries
// at most one pending notice.
const (
	FlashChannelMessage = "message"
	FlashChannelLogout  = "logoutMessage"
)

// Flash notice types rendered by the client.
const (
	FlashTypeSuccess = "success"
	FlashTypeMessage = "message"
)

// FlashNotice is a one-time user-facing message carried across a redirect
// boundary. It is written once and consumed at most once by the next request
// that reads its channel.
type FlashNotice struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}
