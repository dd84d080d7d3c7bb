package dto

// SystemStats represents history-wide statistics
type SystemStats struct {
	TotalTranscripts  int            `json:"totalTranscripts"`
	FailedTranscripts int            `json:"failedTranscripts"`
	TotalAudioSeconds float64        `json:"totalAudioSeconds"`
	ByProvider        map[string]int `json:"byProvider"`
}
