package media

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachingSpeaker memoizes synthesized audio by option text, so repeated
// taps on the same option within a session don't re-call the TTS service.
type CachingSpeaker struct {
	inner Speaker
	cache *gocache.Cache
}

// NewCachingSpeaker wraps a Speaker with a per-session audio cache.
func NewCachingSpeaker(inner Speaker) *CachingSpeaker {
	return &CachingSpeaker{
		inner: inner,
		cache: gocache.New(15*time.Minute, 30*time.Minute),
	}
}

func (s *CachingSpeaker) Speak(ctx context.Context, text string) ([]byte, error) {
	if cached, ok := s.cache.Get(text); ok {
		return cached.([]byte), nil
	}

	audio, err := s.inner.Speak(ctx, text)
	if err != nil {
		return nil, err
	}

	s.cache.Set(text, audio, gocache.DefaultExpiration)
	return audio, nil
}
