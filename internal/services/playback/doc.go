// Package playback fetches playback history from a media server's activity
// API. The client pages through history items and converts them into store
// events; network failures surface as transient errors so sync jobs can
// retry on the next run.
package playback
