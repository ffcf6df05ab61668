// Command reelcheck scores media library files for client compatibility,
// associates external subtitles, and reconciles playback history against
// the library.
package main
