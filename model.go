package main

// LatestRecord is the backend's most recent location/audio snapshot for a
// device. It is replaced wholesale on every successful poll, never merged.
type LatestRecord struct {
	Device    string   `json:"device"`
	Lat       *float64 `json:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty"`
	Timestamp *string  `json:"timestamp,omitempty"`
	Status    string   `json:"status,omitempty"`
	AudioURL  *string  `json:"audio_url,omitempty"`
	AudioTS   *string  `json:"audio_ts,omitempty"`
}

// ResolveTokenResponse is the one-time exchange of a share token for a device
// identity, with an optional initial snapshot.
type ResolveTokenResponse struct {
	OK     bool          `json:"ok"`
	Device string        `json:"device"`
	Latest *LatestRecord `json:"latest,omitempty"`
}

type MarkSafeResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

// ViewState is the frame pushed to the status page after every state change.
// Audio carries the fully resolved audio source URL so the page never needs
// to know the backend base.
type ViewState struct {
	Status string        `json:"status"`
	Device string        `json:"device,omitempty"`
	Latest *LatestRecord `json:"latest,omitempty"`
	Audio  string        `json:"audio,omitempty"`
	Error  *ViewError    `json:"error,omitempty"`
}

type ViewError struct {
	Message    string `json:"message"`
	HTTPStatus int    `json:"httpStatus,omitempty"`
}
