package orchestrator

import (
	"context"
	"errors"
	"io"
	"sync"

	"worksheet-gateway/internal/models"
)

// Engine is the slice of the worksheet engine API the orchestrator drives.
// The HTTP client satisfies it; tests substitute spies.
type Engine interface {
	Generate(ctx context.Context, cfg models.GenerationConfig) ([]models.Problem, error)
	Upload(ctx context.Context, filename string, file io.Reader) ([]models.Problem, error)
	Assemble(ctx context.Context, payload models.AssemblePayload) ([]models.Problem, error)
	Evaluate(ctx context.Context, problems []models.Problem) (*models.Evaluation, error)
	Export(ctx context.Context, cfg models.GenerationConfig, kind string) ([]byte, error)
}

// Precondition failures, raised locally before any network call.
var (
	ErrBusy     = errors.New("another worksheet operation is in progress")
	ErrNoPool   = errors.New("no pool loaded: upload a question bank first")
	ErrEmptySet = errors.New("no worksheet loaded")
	ErrBadKind  = errors.New("export kind must be questions or answers")
)

// DownloadNone means no export is in flight; otherwise the gate holds the
// export kind currently being produced.
const DownloadNone = ""

// AssembleRequest carries the user-chosen assembly parameters; the pool
// itself comes from session state.
type AssembleRequest struct {
	Count     int    `json:"count"`
	MCQCount  int    `json:"mcq_count"`
	WordCount int    `json:"word_count"`
	Mode      string `json:"mode"`
}

// ExportResult is a rendered PDF plus the fixed filename the browser saves
// it under.
type ExportResult struct {
	Filename string
	Data     []byte
}

// Session owns one user's orchestration state. All fields are mutated only
// through the named operations below, so an observer never sees a problem
// set paired with an evaluation computed for a different set.
type Session struct {
	engine Engine

	mu             sync.Mutex
	problems       []models.Problem
	evaluation     *models.Evaluation
	pool           []models.Problem
	poolEvaluation *models.Evaluation
	lastConfig     *models.GenerationConfig
	busy           bool
	downloading    string
}

func NewSession(engine Engine) *Session {
	return &Session{engine: engine}
}

// Snapshot is a read-only copy of the session state for rendering.
type Snapshot struct {
	Problems       []models.Problem   `json:"problems"`
	Evaluation     *models.Evaluation `json:"evaluation,omitempty"`
	Pool           []models.Problem   `json:"pool"`
	PoolEvaluation *models.Evaluation `json:"pool_evaluation,omitempty"`
	Busy           bool               `json:"busy"`
	Downloading    string             `json:"downloading,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Problems:       append([]models.Problem(nil), s.problems...),
		Evaluation:     s.evaluation,
		Pool:           append([]models.Problem(nil), s.pool...),
		PoolEvaluation: s.poolEvaluation,
		Busy:           s.busy,
		Downloading:    s.downloading,
	}
}

// acquireBusy takes the shared generate/upload/assemble gate.
func (s *Session) acquireBusy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *Session) releaseBusy() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Generate validates the config, fetches a fresh problem set and its
// evaluation. The set is committed as soon as the primary call succeeds; if
// the evaluate call then fails the set stays visible with a nil evaluation
// and the error is returned. The returned snapshot is taken after the busy
// gate is back down.
func (s *Session) Generate(ctx context.Context, cfg models.GenerationConfig) (Snapshot, error) {
	if verr := cfg.Validate(); verr != nil {
		return Snapshot{}, verr
	}
	if err := s.acquireBusy(); err != nil {
		return Snapshot{}, err
	}
	err := s.runGenerate(ctx, cfg)
	return s.Snapshot(), err
}

func (s *Session) runGenerate(ctx context.Context, cfg models.GenerationConfig) error {
	defer s.releaseBusy()

	problems, err := s.engine.Generate(ctx, cfg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.problems = problems
	s.evaluation = nil
	s.lastConfig = &cfg
	s.mu.Unlock()

	eval, err := s.engine.Evaluate(ctx, problems)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.evaluation = eval
	s.mu.Unlock()
	return nil
}

// Upload sends one question bank file to the engine and replaces the pool
// with the parsed problems, then evaluates the new pool. Same commit policy
// as Generate.
func (s *Session) Upload(ctx context.Context, filename string, file io.Reader) (Snapshot, error) {
	if err := s.acquireBusy(); err != nil {
		return Snapshot{}, err
	}
	err := s.runUpload(ctx, filename, file)
	return s.Snapshot(), err
}

func (s *Session) runUpload(ctx context.Context, filename string, file io.Reader) error {
	defer s.releaseBusy()

	pool, err := s.engine.Upload(ctx, filename, file)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.pool = pool
	s.poolEvaluation = nil
	s.mu.Unlock()

	eval, err := s.engine.Evaluate(ctx, pool)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.poolEvaluation = eval
	s.mu.Unlock()
	return nil
}

// Assemble builds a new worksheet out of the loaded pool. An empty pool is a
// local precondition failure; the engine is never called.
func (s *Session) Assemble(ctx context.Context, req AssembleRequest) (Snapshot, error) {
	s.mu.Lock()
	pool := append([]models.Problem(nil), s.pool...)
	s.mu.Unlock()
	if len(pool) == 0 {
		return Snapshot{}, ErrNoPool
	}

	payload := models.AssemblePayload{
		Problems:  pool,
		Count:     req.Count,
		MCQCount:  req.MCQCount,
		WordCount: req.WordCount,
		Mode:      req.Mode,
	}
	if verr := payload.Validate(); verr != nil {
		return Snapshot{}, verr
	}
	if err := s.acquireBusy(); err != nil {
		return Snapshot{}, err
	}
	err := s.runAssemble(ctx, payload)
	return s.Snapshot(), err
}

func (s *Session) runAssemble(ctx context.Context, payload models.AssemblePayload) error {
	defer s.releaseBusy()

	problems, err := s.engine.Assemble(ctx, payload)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.problems = problems
	s.evaluation = nil
	s.mu.Unlock()

	eval, err := s.engine.Evaluate(ctx, problems)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.evaluation = eval
	s.mu.Unlock()
	return nil
}

// Evaluate is the standalone half of the two-phase operations: it passes a
// problem sequence to the engine and returns the summary without touching
// session state.
func (s *Session) Evaluate(ctx context.Context, problems []models.Problem) (*models.Evaluation, error) {
	return s.engine.Evaluate(ctx, problems)
}

// Export renders a PDF of the given kind. Exports of both kinds share one
// gate: while a download is in flight a second request is a silent no-op
// (nil result, nil error) and reaches no transport. The gate is released on
// every exit path.
func (s *Session) Export(ctx context.Context, cfg models.GenerationConfig, kind string) (*ExportResult, error) {
	if !models.ValidExportKind(kind) {
		return nil, ErrBadKind
	}
	if verr := cfg.Validate(); verr != nil {
		return nil, verr
	}

	s.mu.Lock()
	if s.downloading != DownloadNone {
		s.mu.Unlock()
		return nil, nil
	}
	s.downloading = kind
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.downloading = DownloadNone
		s.mu.Unlock()
	}()

	data, err := s.engine.Export(ctx, cfg, kind)
	if err != nil {
		return nil, err
	}
	return &ExportResult{Filename: models.ExportFilename(kind), Data: data}, nil
}

// Current returns the committed problem set with its evaluation and the
// config that produced it, for saving into the library.
func (s *Session) Current() ([]models.Problem, *models.Evaluation, *models.GenerationConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.problems) == 0 {
		return nil, nil, nil, ErrEmptySet
	}
	return append([]models.Problem(nil), s.problems...), s.evaluation, s.lastConfig, nil
}
