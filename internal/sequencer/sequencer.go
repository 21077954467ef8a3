// Package sequencer orchestrates the submission chain: upload, then the two
// independent fetches (report document and review payload) for the issued
// identifier.
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/joescharf/revu/internal/report"
	"github.com/joescharf/revu/internal/review"
	"github.com/joescharf/revu/internal/upload"
)

// State is the submission lifecycle state.
type State string

const (
	StateIdle         State = "idle"
	StateUploading    State = "uploading"
	StateUploaded     State = "uploaded"
	StateFetching     State = "fetching"
	StateReady        State = "ready"
	StateUploadFailed State = "upload_failed"
	StateFetchFailed  State = "fetch_failed"
)

// ResourceState tracks one fetched resource independently of the other, so
// the caller can show a ready document while the review is still loading and
// vice versa.
type ResourceState string

const (
	ResourceAbsent  ResourceState = "absent"
	ResourceLoading ResourceState = "loading"
	ResourceReady   ResourceState = "ready"
	ResourceFailed  ResourceState = "failed"
)

// ErrDocumentNotReady is returned by SaveReport before the PDF has arrived.
var ErrDocumentNotReady = errors.New("report document is not ready")

// Backend is the slice of the API client the sequencer drives.
type Backend interface {
	Upload(ctx context.Context, filename, mediaType string, content io.Reader) (string, error)
	GetReport(ctx context.Context, id string) ([]byte, error)
	GetReview(ctx context.Context, id string) (review.Payload, error)
}

// Snapshot is a point-in-time copy of the sequencer's presentation state.
type Snapshot struct {
	ID    string
	State State

	Document  report.Document
	DocState  ResourceState
	DocErr    error
	Grouped   []review.CategoryGroup
	Stats     review.Stats
	Unmatched int
	RevState  ResourceState
	RevErr    error
}

// Sequencer owns the identifier, the fetched document, and the grouped review
// for one session. Every dispatched fetch is tagged with the identifier that
// was current at dispatch; a result arriving after the identifier has been
// superseded is discarded, so a stale response can never overwrite newer
// state. There is no true cancellation.
type Sequencer struct {
	backend Backend

	mu         sync.Mutex
	wg         sync.WaitGroup
	id         string
	uploadName string
	state      State

	doc      report.Document
	docState ResourceState
	docErr   error

	grouped   []review.CategoryGroup
	stats     review.Stats
	unmatched int
	revState  ResourceState
	revErr    error
}

// New creates an idle sequencer over the given backend.
func New(b Backend) *Sequencer {
	return &Sequencer{
		backend:  b,
		state:    StateIdle,
		docState: ResourceAbsent,
		revState: ResourceAbsent,
	}
}

// Submit uploads the staged candidate and, on success, dispatches both
// fetches for the issued identifier. Submitting a nil candidate is a no-op.
// On upload failure no identifier is assigned and the caller retries by
// resubmitting.
func (s *Sequencer) Submit(ctx context.Context, cand *upload.Candidate) error {
	if cand == nil {
		return nil
	}

	s.mu.Lock()
	s.state = StateUploading
	s.mu.Unlock()

	id, err := s.backend.Upload(ctx, cand.Name, cand.MediaType, cand.Content)
	if err != nil {
		s.mu.Lock()
		s.state = StateUploadFailed
		s.mu.Unlock()
		return fmt.Errorf("upload %s: %w", cand.Name, err)
	}

	s.mu.Lock()
	s.id = id
	s.uploadName = cand.Name
	s.state = StateUploaded
	s.mu.Unlock()

	s.beginFetch(ctx, id)
	return nil
}

// Open adopts an identifier directly (deep link to an existing report),
// resets all derived state, and dispatches both fetches. Any fetch still in
// flight for a previous identifier is superseded.
func (s *Sequencer) Open(ctx context.Context, id string) {
	s.mu.Lock()
	s.id = id
	s.uploadName = ""
	s.mu.Unlock()

	s.beginFetch(ctx, id)
}

// ID returns the current report identifier, empty until an upload succeeds
// or Open is called.
func (s *Sequencer) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Wait blocks until all dispatched fetches have resolved.
func (s *Sequencer) Wait() {
	s.wg.Wait()
}

// Snapshot returns a copy of the current presentation state.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.id,
		State:     s.state,
		Document:  s.doc,
		DocState:  s.docState,
		DocErr:    s.docErr,
		Grouped:   s.grouped,
		Stats:     s.stats,
		Unmatched: s.unmatched,
		RevState:  s.revState,
		RevErr:    s.revErr,
	}
}

// SaveReport writes the fetched PDF into dir under a name derived from the
// uploaded file (extension replaced with .pdf; the identifier for deep
// links). It returns the written path.
func (s *Sequencer) SaveReport(dir string) (string, error) {
	s.mu.Lock()
	doc, state := s.doc, s.docState
	name, id := s.uploadName, s.id
	s.mu.Unlock()

	if state != ResourceReady {
		return "", ErrDocumentNotReady
	}

	path := filepath.Join(dir, report.Filename(name, id))
	if err := report.Save(doc, path); err != nil {
		return "", err
	}
	return path, nil
}

// beginFetch resets the derived state for id and dispatches both fetches.
func (s *Sequencer) beginFetch(ctx context.Context, id string) {
	s.mu.Lock()
	s.state = StateFetching
	s.doc = report.Document{}
	s.docState = ResourceLoading
	s.docErr = nil
	s.grouped = nil
	s.stats = review.Stats{}
	s.unmatched = 0
	s.revState = ResourceLoading
	s.revErr = nil
	s.mu.Unlock()

	s.wg.Add(2)
	go s.fetchDocument(ctx, id)
	go s.fetchReview(ctx, id)
}

func (s *Sequencer) fetchDocument(ctx context.Context, id string) {
	defer s.wg.Done()

	data, err := s.backend.GetReport(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.id {
		return // superseded while in flight; discard
	}
	if err != nil {
		s.docState = ResourceFailed
		s.docErr = err
	} else {
		s.doc = report.New(data)
		s.docState = ResourceReady
	}
	s.refreshState()
}

func (s *Sequencer) fetchReview(ctx context.Context, id string) {
	defer s.wg.Done()

	payload, err := s.backend.GetReview(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.id {
		return // superseded while in flight; discard
	}
	if err != nil {
		s.revState = ResourceFailed
		s.revErr = err
	} else {
		// The grouping is recomputed from scratch for every new payload.
		s.grouped = review.Group(payload)
		s.stats = review.Summarize(s.grouped)
		s.unmatched = review.Unmatched(payload)
		s.revState = ResourceReady
	}
	s.refreshState()
}

// refreshState recomputes the aggregate state from the two resource states.
// Callers hold s.mu.
func (s *Sequencer) refreshState() {
	switch {
	case s.docState == ResourceReady && s.revState == ResourceReady:
		s.state = StateReady
	case s.docState == ResourceFailed || s.revState == ResourceFailed:
		s.state = StateFetchFailed
	default:
		s.state = StateFetching
	}
}
