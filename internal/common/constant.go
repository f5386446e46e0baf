// Package common contains shared constants and sentinel errors used across
// the file manager components.
package common

import "time"

// TokenHeaderName is the HTTP header carrying the session token on
// authenticated requests.
const TokenHeaderName = "X-Token"

// SessionKeyPrefix namespaces session keys in the session store.
const SessionKeyPrefix = "auth_"

// SessionTTL is the fixed lifetime of a session created by login.
const SessionTTL = 86400 * time.Second

// RootParentID is the parent id of top-level nodes.
const RootParentID = "0"

// PageSize is the number of nodes returned per listing page.
const PageSize = 20

// Queue topics.
const (
	TopicFiles = "files"
	TopicUsers = "users"
)

// ThumbnailWidths lists the widths the worker derives for image uploads.
var ThumbnailWidths = []int{500, 250, 100}

// SessionKey returns the session store key for token.
func SessionKey(token string) string {
	return SessionKeyPrefix + token
}
