// Package share decides how an ad can be shared from a given client.
package share

import (
	"github.com/avct/uasurfer"
)

// Method is how the client should hand out a share link.
type Method string

const (
	// MethodShare uses the platform share sheet.
	MethodShare Method = "share"
	// MethodClipboard copies the link to the clipboard.
	MethodClipboard Method = "clipboard"
	// MethodNone means the client can do neither.
	MethodNone Method = "none"
)

// Plan selects the share method for the client identified by userAgent.
// Phones and tablets get the share sheet, desktops fall back to the
// clipboard, and crawlers get nothing.
func Plan(userAgent string) Method {
	if userAgent == "" {
		return MethodClipboard
	}
	u := uasurfer.Parse(userAgent)
	if u.IsBot() {
		return MethodNone
	}
	switch u.DeviceType {
	case uasurfer.DevicePhone, uasurfer.DeviceTablet:
		return MethodShare
	default:
		return MethodClipboard
	}
}

// Payload is what the client shares.
type Payload struct {
	Method Method `json:"method"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	URL    string `json:"url"`
}
