package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Phase is where a capture session currently stands.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAcquiring
	PhaseCompressing
	PhasePreviewing
	PhaseUploading
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAcquiring:
		return "acquiring"
	case PhaseCompressing:
		return "compressing"
	case PhasePreviewing:
		return "previewing"
	case PhaseUploading:
		return "uploading"
	}
	return "unknown"
}

var (
	// ErrNotPreviewing is returned when confirm or reject is called without a
	// frame under review.
	ErrNotPreviewing = errors.New("no frame is being previewed")

	// ErrUploadInFlight is returned when a confirm lands while another upload
	// is still running.
	ErrUploadInFlight = errors.New("an upload is already in flight")

	// ErrBusy is returned when a capture starts while the session is not idle.
	ErrBusy = errors.New("capture session is busy")
)

// Uploader pushes a confirmed frame to the backend. Saving the order's edited
// fields happens first so the receipt never lands on stale numbers.
type Uploader interface {
	SaveOrder(ctx context.Context) error
	UploadReceipt(ctx context.Context, category string, frame *Frame) error
}

// Preview holds a frame under review, spooled to disk so the UI can show it.
// Release is safe to call more than once; the spool file is removed exactly
// once.
type Preview struct {
	frame *Frame
	path  string
	once  sync.Once
}

// Frame returns the spooled frame.
func (p *Preview) Frame() *Frame { return p.frame }

// Path returns the spool file location.
func (p *Preview) Path() string { return p.path }

// Release removes the spool file. Only the first call does anything.
func (p *Preview) Release() {
	p.once.Do(func() {
		if p.path != "" {
			_ = os.Remove(p.path)
		}
	})
}

// Session runs one receipt through acquire, shrink, preview, and upload.
// All methods are safe for concurrent use.
type Session struct {
	uploader Uploader
	spoolDir string

	mu      sync.Mutex
	phase   Phase
	preview *Preview
}

// NewSession creates an idle session. spoolDir is where previews land; the
// empty string means the system temp directory.
func NewSession(uploader Uploader, spoolDir string) *Session {
	return &Session{uploader: uploader, spoolDir: spoolDir, phase: PhaseIdle}
}

// Phase reports the session's current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Preview returns the frame under review, or nil outside the preview phase.
func (s *Session) Preview() *Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// Capture acquires a frame from the source, shrinks it, and parks it for
// review. Any failure puts the session back to idle with nothing spooled.
func (s *Session) Capture(ctx context.Context, source Source) (*Preview, error) {
	s.mu.Lock()
	if s.phase != PhaseIdle {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.phase = PhaseAcquiring
	s.mu.Unlock()

	frame, err := source.Acquire(ctx)
	if err != nil {
		s.toIdle()
		return nil, err
	}

	// Small frames go straight to preview without a compressing phase.
	if needsShrink(frame) {
		s.setPhase(PhaseCompressing)
		frame = Shrink(frame, source)
	}

	preview, err := s.spool(frame)
	if err != nil {
		s.toIdle()
		return nil, err
	}

	s.mu.Lock()
	s.phase = PhasePreviewing
	s.preview = preview
	s.mu.Unlock()
	return preview, nil
}

// Reject discards the frame under review and returns the session to idle.
func (s *Session) Reject() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePreviewing {
		return ErrNotPreviewing
	}
	s.preview.Release()
	s.preview = nil
	s.phase = PhaseIdle
	return nil
}

// Confirm saves the order's fields and uploads the previewed frame under the
// given category. The session ends up idle either way: on failure the error
// surfaces, the preview is released, and the captain captures again. At most
// one upload runs at a time.
func (s *Session) Confirm(ctx context.Context, category string) error {
	s.mu.Lock()
	if s.phase == PhaseUploading {
		s.mu.Unlock()
		return ErrUploadInFlight
	}
	if s.phase != PhasePreviewing {
		s.mu.Unlock()
		return ErrNotPreviewing
	}
	preview := s.preview
	s.phase = PhaseUploading
	s.mu.Unlock()

	err := s.uploader.SaveOrder(ctx)
	if err == nil {
		err = s.uploader.UploadReceipt(ctx, category, preview.Frame())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	preview.Release()
	s.preview = nil
	s.phase = PhaseIdle
	return err
}

// Close releases any held preview and idles the session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.preview != nil {
		s.preview.Release()
		s.preview = nil
	}
	s.phase = PhaseIdle
}

func (s *Session) spool(frame *Frame) (*Preview, error) {
	f, err := os.CreateTemp(s.spoolDir, "receipt-preview-*.img")
	if err != nil {
		return nil, fmt.Errorf("spool preview: %w", err)
	}
	if _, err := f.Write(frame.Data); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("spool preview: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("spool preview: %w", err)
	}
	return &Preview{frame: frame, path: f.Name()}, nil
}

func (s *Session) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

func (s *Session) toIdle() {
	s.setPhase(PhaseIdle)
}

// Manager keeps at most one capture session alive. Starting a new session
// tears down the previous one, preview included.
type Manager struct {
	mu     sync.Mutex
	active *Session
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Begin closes any active session and starts a fresh one.
func (m *Manager) Begin(uploader Uploader, spoolDir string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.Close()
	}
	m.active = NewSession(uploader, spoolDir)
	return m.active
}

// Active returns the current session, or nil.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// End closes the given session if it is the active one.
func (m *Manager) End(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == s && s != nil {
		s.Close()
		m.active = nil
	}
}
