package agent

import (
	"fmt"

	"golf/geometry"
	"golf/searcher"
)

// session is the context of one game: the course prepared for fast queries
// and the candidates of the last turn.
type session struct {
	turn   int
	course *geometry.Index
	cache  searcher.CandidateCache
}

func newSession(vertices []geometry.Point, strict bool) (*session, error) {
	course, err := geometry.Prepare(vertices)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCourse, err)
	}
	return &session{course: course, cache: searcher.CandidateCache{Strict: strict}}, nil
}
