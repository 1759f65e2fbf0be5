package usecase

import (
	"context"
	"log/slog"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/ports"
)

const (
	// MockModeMarker tags the processing label of degraded results.
	MockModeMarker = "デモモード"

	mockProcessingLabel = "0.00 秒 (" + MockModeMarker + ")"
)

// Mode tells whether the user asserted a specific backend.
type Mode int

const (
	// ModeDefault uses the configured default backend, if any, and degrades on failure.
	ModeDefault Mode = iota
	// ModeExplicit uses the interactively connected backend and surfaces failures.
	ModeExplicit
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Decision is what happens to a failed conversion attempt.
type Decision int

const (
	DecisionSurface Decision = iota
	DecisionDegrade
)

// Decide maps a conversion failure to a degraded result or a surfaced error.
func Decide(mode Mode, err *domain.Error) Decision {
	switch err.Kind {
	case domain.KindValidation:
		return DecisionSurface
	case domain.KindConnectivity, domain.KindTunnelWarning, domain.KindUpstream:
		switch mode {
		case ModeExplicit:
			return DecisionSurface
		case ModeDefault:
			return DecisionDegrade
		default:
			return DecisionSurface
		}
	default:
		return DecisionSurface
	}
}

// OrchestratorConfig is the explicit configuration of the orchestrator.
type OrchestratorConfig struct {
	// DefaultBaseURL is used without an interactive connection. Empty forces degraded mode.
	DefaultBaseURL string
}

// Orchestrator issues conversion requests and applies the fallback policy.
// It keeps no state between calls.
type Orchestrator struct {
	backend    ports.Backend
	generator  ports.DialogueGenerator
	defaultURL string
	logger     *slog.Logger
}

// NewOrchestrator wires the backend client and the fallback generator.
func NewOrchestrator(cfg OrchestratorConfig, backend ports.Backend, generator ports.DialogueGenerator, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		backend:    backend,
		generator:  generator,
		defaultURL: NormalizeURL(cfg.DefaultBaseURL),
		logger:     orDiscard(logger),
	}
}

// DefaultURL returns the configured default backend, possibly empty.
func (o *Orchestrator) DefaultURL() string {
	return o.defaultURL
}

// ModeFor derives the operating mode from a connection snapshot.
func ModeFor(conn domain.ConnectionState) Mode {
	if conn.Status == domain.StatusConnected && conn.URL != "" {
		return ModeExplicit
	}
	return ModeDefault
}

// Convert runs one conversion. In default mode recoverable failures come back as a
// degraded result; in explicit mode they come back as *domain.Error.
func (o *Orchestrator) Convert(ctx context.Context, req domain.ConversionRequest, conn domain.ConnectionState) (domain.ConversionResult, error) {
	if err := req.Validate(); err != nil {
		return domain.ConversionResult{}, err
	}

	mode := ModeFor(conn)
	baseURL := o.defaultURL
	if mode == ModeExplicit {
		baseURL = conn.URL
	}

	result, err := o.attempt(ctx, baseURL, req)
	return o.resolve(mode, req, result, err)
}

func (o *Orchestrator) attempt(ctx context.Context, baseURL string, req domain.ConversionRequest) (domain.ConversionResult, error) {
	if baseURL == "" || o.backend == nil {
		return domain.ConversionResult{}, domain.NewConnectivityError("no backend configured", 0, nil)
	}
	return o.backend.Convert(ctx, baseURL, req)
}

func (o *Orchestrator) resolve(mode Mode, req domain.ConversionRequest, result domain.ConversionResult, err error) (domain.ConversionResult, error) {
	if err == nil {
		result.Degraded = false
		if result.Turns == nil {
			result.Turns = []domain.Turn{}
		}
		return result, nil
	}

	de := asDomainError(err, "conversion failed")
	switch Decide(mode, de) {
	case DecisionDegrade:
		o.logger.Warn("backend unavailable, using demo dialogue", "kind", de.Kind, "mode", mode, "error", err)
		return o.degraded(req), nil
	case DecisionSurface:
		o.logger.Warn("conversion failed", "kind", de.Kind, "mode", mode, "error", err)
		return domain.ConversionResult{}, de
	default:
		return domain.ConversionResult{}, de
	}
}

func (o *Orchestrator) degraded(req domain.ConversionRequest) domain.ConversionResult {
	d := o.generator.Generate(req.MockKey())
	return domain.ConversionResult{
		Summary:             d.Summary,
		Turns:               d.Turns,
		ProcessingTimeLabel: mockProcessingLabel,
		Degraded:            true,
	}
}
