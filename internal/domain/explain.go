package domain

import "time"

type ExplainState string

const (
	ExplainIdle         ExplainState = "idle"
	ExplainTranslating  ExplainState = "translating"
	ExplainSynthesizing ExplainState = "synthesizing"
	ExplainReady        ExplainState = "ready"
	ExplainFailed       ExplainState = "failed"
)

func (s ExplainState) Terminal() bool {
	return s == ExplainReady || s == ExplainFailed
}

const (
	TranslationFailedMessage = "ترجمہ میں خرابی ہو گئی۔"
	SpeechFailedMessage      = "Text-to-speech conversion failed"
)

type SpeechRequest struct {
	VoiceID      string
	Text         string
	OutputFormat string
}

type Speech struct {
	Audio    []byte
	MIMEType string
	Duration time.Duration
}

type TranslationRequest struct {
	Instruction string
	Text        string
}
