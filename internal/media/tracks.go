package media

import (
	"encoding/json"
	"strings"
)

// DecodeAudioTracks parses a stored audio track list. Empty or malformed
// input yields an empty list; stored track data is advisory and must never
// fail a batch.
func DecodeAudioTracks(data string) []AudioTrack {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil
	}
	var tracks []AudioTrack
	if err := json.Unmarshal([]byte(data), &tracks); err != nil {
		return nil
	}
	return tracks
}

// DecodeSubtitleTracks parses a stored subtitle track list with the same
// recovery behavior as DecodeAudioTracks.
func DecodeSubtitleTracks(data string) []SubtitleTrack {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil
	}
	var tracks []SubtitleTrack
	if err := json.Unmarshal([]byte(data), &tracks); err != nil {
		return nil
	}
	return tracks
}

// EncodeAudioTracks serializes an audio track list for storage.
func EncodeAudioTracks(tracks []AudioTrack) (string, error) {
	if len(tracks) == 0 {
		return "", nil
	}
	payload, err := json.Marshal(tracks)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// EncodeSubtitleTracks serializes a subtitle track list for storage.
func EncodeSubtitleTracks(tracks []SubtitleTrack) (string, error) {
	if len(tracks) == 0 {
		return "", nil
	}
	payload, err := json.Marshal(tracks)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// DecodeRecord parses a full metadata record produced by the extraction
// step. Unlike track lists, a malformed record is a real error: the caller
// reports it as a per-item failure.
func DecodeRecord(data []byte) (Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// EncodeRecord serializes a metadata record.
func EncodeRecord(record Record) ([]byte, error) {
	return json.Marshal(record)
}
