// Package upload stages at most one candidate file for submission and
// enforces the media-type allow-list.
package upload

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrTooManyFiles is returned when a candidate is already staged.
	ErrTooManyFiles = errors.New("too many files")
	// ErrUnsupportedType is returned for media types outside the allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Candidate is the single file staged for submission.
type Candidate struct {
	ID        string
	Name      string
	MediaType string
	Content   io.Reader
}

// Notifier receives the user-visible staging notifications. Satisfied by
// output.UI.
type Notifier interface {
	Info(format string, a ...any)
	Error(format string, a ...any)
}

// Gate holds the staged candidate. One gate per session; not safe for
// concurrent use, all staging happens on the interaction path.
type Gate struct {
	notify    Notifier
	candidate *Candidate
}

// NewGate creates a gate that reports staging outcomes to n.
func NewGate(n Notifier) *Gate {
	return &Gate{notify: n}
}

// Allowed reports whether a declared media type passes the allow-list:
// zip archives, generic octet-stream, and any text/* or application/* type.
// The list is deliberately broad; it screens out obvious non-source uploads
// (images, audio) and nothing more.
func Allowed(mediaType string) bool {
	switch mediaType {
	case "application/zip", "application/octet-stream":
		return true
	}
	return strings.HasPrefix(mediaType, "text/") || strings.HasPrefix(mediaType, "application/")
}

// Stage validates a file and stores it as the sole staged candidate.
// It fails with ErrTooManyFiles when a candidate is already staged (the
// existing candidate is kept) and with ErrUnsupportedType when the declared
// media type is outside the allow-list.
func (g *Gate) Stage(name, mediaType string, content io.Reader) (*Candidate, error) {
	if g.candidate != nil {
		g.notify.Error("cannot stage %s: a file is already staged", name)
		return nil, ErrTooManyFiles
	}
	if !Allowed(mediaType) {
		g.notify.Error("cannot stage %s: unsupported type %s", name, mediaType)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}

	c := &Candidate{
		ID:        newID(),
		Name:      name,
		MediaType: mediaType,
		Content:   content,
	}
	g.candidate = c
	g.notify.Info("staged %s (%s)", name, mediaType)
	return c, nil
}

// Remove clears the staged candidate unconditionally. Removing when nothing
// is staged is a no-op.
func (g *Gate) Remove(id string) {
	if g.candidate != nil {
		g.notify.Info("removed %s", g.candidate.Name)
	}
	g.candidate = nil
}

// Candidate returns the staged candidate, or nil when nothing is staged.
func (g *Gate) Candidate() *Candidate {
	return g.candidate
}

// newID generates a new ULID string.
func newID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(entropy, 0)).String()
}
