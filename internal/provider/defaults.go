package provider

// Fallback values used when a unified request leaves a field out. Every
// default lives here.
var Defaults = struct {
	ModelProvider      string
	ModelName          string
	S2SModel           string
	VoiceProvider      string
	VapiVoiceID        string
	RetellVoiceID      string
	Temperature        float64
	Greeting           string
	Language           string
	ResponseEngineType string
}{
	ModelProvider:      "google",
	ModelName:          "gemini-1.5-pro",
	S2SModel:           "gpt-4o-realtime",
	VoiceProvider:      "11labs",
	VapiVoiceID:        "21m00Tcm4TlvDq8ikWAM",
	RetellVoiceID:      "11labs-michael",
	Temperature:        0.7,
	Greeting:           "Hi, how can I help you?",
	Language:           "en-US",
	ResponseEngineType: "retell-llm",
}
