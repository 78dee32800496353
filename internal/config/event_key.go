package config

// EventChannel names the Redis pub/sub channels used for live admin streams.
type EventChannelStruct struct {
	// SubmissionEvents carries submission created / status changed events
	// consumed by the admin WebSocket stream.
	SubmissionEvents string
}

var EventChannel = &EventChannelStruct{
	SubmissionEvents: "events:submissions",
}
