package git

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"
)

// ReloadCallback is called when schemas need reloading.
// It receives the full path to the schema directory and should load and
// validate all schemas from that path. If loading fails, it should return
// an error so the previous schemas stay active.
type ReloadCallback func(schemaDir string) error

// Poller monitors a Git repository for changes and triggers schema
// reloads. It periodically pulls and reloads only when schema files
// (.yaml, .yml) changed between commits.
//
// The poller debounces rapid successive commits and keeps the
// last-known-good schemas active when a reload fails.
type Poller struct {
	repo          *Repository
	interval      time.Duration
	stopCh        chan struct{}
	reloadFn      ReloadCallback
	lastCommitSHA string
	mu            sync.RWMutex
	running       bool
	debounceTimer *time.Timer
	debounceMu    sync.Mutex
	logger        *slog.Logger
}

// NewPoller creates a change poller for the given repository.
// It pulls at the specified interval and calls reloadFn when schema
// files change.
func NewPoller(repo *Repository, interval time.Duration, reloadFn ReloadCallback) *Poller {
	return &Poller{
		repo:     repo,
		interval: interval,
		reloadFn: reloadFn,
		stopCh:   make(chan struct{}),
		logger:   slog.Default(),
	}
}

// SetLogger sets a custom logger for the poller.
func (p *Poller) SetLogger(logger *slog.Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger = logger
}

// Start begins polling for changes in the repository.
// The context is used for cancellation. Returns an error if the poller is
// already running or the initial commit cannot be read.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("poller already running")
	}

	commit, err := p.repo.GetCurrentCommit()
	if err != nil {
		p.mu.Unlock()
		return fmt.Errorf("failed to get initial commit: %w", err)
	}
	p.lastCommitSHA = commit.SHA
	p.running = true
	p.mu.Unlock()

	p.logger.Info("schema poller started",
		"poll_interval", p.interval,
		"initial_commit", shortSHA(p.lastCommitSHA))

	go p.pollLoop(ctx)

	return nil
}

// Stop gracefully stops the poller.
// Returns an error if the poller is not running.
func (p *Poller) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return fmt.Errorf("poller not running")
	}

	p.logger.Info("stopping schema poller")
	close(p.stopCh)
	p.running = false

	p.debounceMu.Lock()
	if p.debounceTimer != nil {
		p.debounceTimer.Stop()
	}
	p.debounceMu.Unlock()

	return nil
}

// IsRunning returns true if the poller is currently running.
func (p *Poller) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

func (p *Poller) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("schema poller stopped by context cancellation")
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			if err := p.checkForChanges(ctx); err != nil {
				p.logger.Error("error checking for schema changes",
					"error", err)
			}
		}
	}
}

// checkForChanges pulls and schedules a reload when schema files changed.
func (p *Poller) checkForChanges(ctx context.Context) error {
	result, err := p.repo.Pull(ctx)
	if err != nil {
		return fmt.Errorf("failed to pull: %w", err)
	}

	if !result.HadChanges {
		return nil
	}

	p.logger.Info("detected repository changes",
		"from_sha", shortSHA(result.FromSHA),
		"to_sha", shortSHA(result.ToSHA),
		"changed_files", len(result.ChangedFiles))

	if !hasSchemaFileChanges(result.ChangedFiles) {
		p.logger.Info("non-schema files changed, skipping reload",
			"changed_files", result.ChangedFiles)
		// Advance the SHA so the same commit is not re-checked.
		p.mu.Lock()
		p.lastCommitSHA = result.ToSHA
		p.mu.Unlock()
		return nil
	}

	p.debounceReload(result.ToSHA)

	return nil
}

func hasSchemaFileChanges(files []string) bool {
	for _, file := range files {
		ext := filepath.Ext(file)
		if ext == ".yaml" || ext == ".yml" {
			return true
		}
	}
	return false
}

// debounceReload collapses rapid successive changes into one reload.
func (p *Poller) debounceReload(newSHA string) {
	p.debounceMu.Lock()
	defer p.debounceMu.Unlock()

	if p.debounceTimer != nil {
		p.debounceTimer.Stop()
	}

	p.debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
		if err := p.performReload(newSHA); err != nil {
			p.logger.Error("schema reload failed, keeping previous schemas",
				"error", err)
		}
	})
}

func (p *Poller) performReload(newSHA string) error {
	start := time.Now()

	if err := p.reloadFn(p.repo.SchemaDir()); err != nil {
		return fmt.Errorf("reload callback failed: %w", err)
	}

	p.mu.Lock()
	p.lastCommitSHA = newSHA
	p.mu.Unlock()

	p.logger.Info("schemas reloaded",
		"commit", shortSHA(newSHA),
		"duration", time.Since(start))

	return nil
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
