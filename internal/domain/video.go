package domain

import (
	"regexp"
	"strings"
)

// youtubeURLRegex matches the link shapes coaches paste: youtu.be/ID,
// /v/ID, /u/x/ID, /embed/ID, watch?v=ID and &v=ID.
var youtubeURLRegex = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

const youtubeIDLength = 11

// UploadedVideoPrefix marks a video reference that points at an object in
// the session video bucket instead of an external link.
const UploadedVideoPrefix = "s3:"

// ExtractYouTubeID returns the 11 character video ID in url, or "" when the
// link does not have a recognizable shape.
func ExtractYouTubeID(url string) string {
	matches := youtubeURLRegex.FindStringSubmatch(url)
	if len(matches) < 3 || len(matches[2]) != youtubeIDLength {
		return ""
	}
	return matches[2]
}

// YouTubeEmbedURL returns the player URL for a video ID.
func YouTubeEmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

// IsUploadedVideo reports whether ref names an uploaded object.
func IsUploadedVideo(ref string) bool {
	return strings.HasPrefix(ref, UploadedVideoPrefix)
}

// UploadedVideoKey returns the object key of an uploaded video reference.
func UploadedVideoKey(ref string) string {
	return strings.TrimPrefix(ref, UploadedVideoPrefix)
}

// UploadedVideoRef builds the reference stored on a session for objectKey.
func UploadedVideoRef(objectKey string) string {
	return UploadedVideoPrefix + objectKey
}

// SessionVideoPrefix is the key prefix of every object uploaded for sessionID.
func SessionVideoPrefix(sessionID string) string {
	return "sessions/" + sessionID + "/"
}

// OwnsUploadedVideo reports whether ref names an object uploaded for
// sessionID. Non-upload references never match.
func OwnsUploadedVideo(sessionID, ref string) bool {
	if !IsUploadedVideo(ref) {
		return false
	}
	key := UploadedVideoKey(ref)
	prefix := SessionVideoPrefix(sessionID)
	return strings.HasPrefix(key, prefix) && len(key) > len(prefix)
}
