package speech

import (
	"bytes"
	"fmt"
)

const (
	BackendGTTS   = "gtts"
	BackendOpenAI = "openai"
)

// IsMP3 reports whether b starts with an ID3 tag or an MPEG audio frame sync.
func IsMP3(b []byte) bool {
	if len(b) >= 3 && bytes.Equal(b[:3], []byte("ID3")) {
		return true
	}
	return len(b) >= 2 && b[0] == 0xFF && b[1]&0xE0 == 0xE0
}

func checkMP3(backend string, audio []byte) error {
	if len(audio) == 0 {
		return fmt.Errorf("%s: empty audio", backend)
	}
	if !IsMP3(audio) {
		return fmt.Errorf("%s: response is not mp3 audio", backend)
	}
	return nil
}
