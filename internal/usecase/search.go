package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

// DefaultFallbackLimit bounds the bulk fetch of the client-side fallback
// tier.
const DefaultFallbackLimit = 200

// searchProfile is the per-kind search configuration. The 2.0 and 3.0 path
// families disagree on whether /search takes a bare condition array or a
// wrapped {"criteria": [...]} object, and a few kinds reject both shapes
// intermittently; which tiers a kind gets is static configuration, not a
// runtime decision.
type searchProfile struct {
	// wrap sends {"criteria": conditions} on the first (and for stable kinds
	// only) attempt instead of the bare array.
	wrap bool
	// cascade enables the wrapped retry and the client-side fallback tiers.
	cascade bool
}

var searchProfiles = map[domain.Kind]searchProfile{
	// Stable bare-array contracts.
	domain.KindContact:          {},
	domain.KindAccount:          {},
	domain.KindCalendarYear:     {},
	domain.KindClientService:    {},
	domain.KindBusinessActivity: {},
	// Stable wrapped contracts.
	domain.KindOrder:   {wrap: true},
	domain.KindProject: {wrap: true},
	domain.KindItem:    {wrap: true},
	// Historically inconsistent schemas: run the full cascade.
	domain.KindInvoice:   {cascade: true},
	domain.KindQuote:     {cascade: true},
	domain.KindTimesheet: {cascade: true},
}

// searchTier is a state of the fallback machine.
type searchTier int

const (
	tierBare searchTier = iota
	tierWrapped
	tierFallback
	tierDone
)

// tierResult is the outcome of one tier attempt. Success with zero matches is
// still success; an empty result never triggers the next tier.
type tierResult struct {
	records []domain.Record
	err     error
}

func (r tierResult) ok() bool { return r.err == nil }

// SearchResolver runs search operations against the remote API, degrading
// through payload shapes and finally to client-side filtering for kinds whose
// native search contract cannot be trusted.
type SearchResolver struct {
	client        SearchClient
	fallbackLimit int
	logger        *slog.Logger
}

// NewSearchResolver creates a resolver. fallbackLimit <= 0 selects
// DefaultFallbackLimit.
func NewSearchResolver(client SearchClient, fallbackLimit int, logger *slog.Logger) *SearchResolver {
	if fallbackLimit <= 0 {
		fallbackLimit = DefaultFallbackLimit
	}
	return &SearchResolver{
		client:        client,
		fallbackLimit: fallbackLimit,
		logger:        logger.With("component", "search_resolver"),
	}
}

// Search returns the records matching the conditions. The first tier to
// succeed is authoritative; tiers are never mixed. Record order is whatever
// the data source returned.
func (r *SearchResolver) Search(ctx context.Context, kind domain.Kind, conditions []domain.Condition) ([]domain.Record, error) {
	profile := searchProfiles[kind]
	log := r.logger.With(slog.String("kind", string(kind)))

	if !profile.cascade {
		res := r.attempt(ctx, kind, conditions, profile.wrap)
		if !res.ok() {
			return nil, res.err
		}
		return res.records, nil
	}

	state := tierBare
	var last tierResult
	for state != tierDone {
		switch state {
		case tierBare:
			last = r.attempt(ctx, kind, conditions, false)
			if last.ok() {
				return last.records, nil
			}
			if !remoteRejected(last.err) {
				return nil, last.err
			}
			log.Debug("Bare search rejected, retrying with wrapped criteria", slog.Any("error", last.err))
			state = tierWrapped
		case tierWrapped:
			last = r.attempt(ctx, kind, conditions, true)
			if last.ok() {
				return last.records, nil
			}
			if !remoteRejected(last.err) {
				return nil, last.err
			}
			log.Debug("Wrapped search rejected, falling back to client-side filtering", slog.Any("error", last.err))
			state = tierFallback
		case tierFallback:
			batch, err := r.client.ListPage(ctx, kind, r.fallbackLimit)
			if err != nil {
				log.Warn("Client-side fallback failed", slog.Any("error", err))
				return nil, err
			}
			matched := domain.Filter(batch, conditions)
			log.Debug("Client-side fallback applied",
				slog.Int("fetched", len(batch)),
				slog.Int("matched", len(matched)))
			return matched, nil
		}
	}
	return nil, last.err
}

// attempt runs one native search tier with the given payload shape.
func (r *SearchResolver) attempt(ctx context.Context, kind domain.Kind, conditions []domain.Condition, wrap bool) tierResult {
	var body any = conditions
	if wrap {
		body = map[string]any{"criteria": conditions}
	}
	records, err := r.client.NativeSearch(ctx, kind, body)
	return tierResult{records: records, err: err}
}

// remoteRejected reports whether the error came back from the API itself
// (wrong payload shape, validation quirk) rather than from the network. Only
// remote rejections advance the cascade: a network fault or timeout would
// fail every tier the same way and propagates as fatal.
func remoteRejected(err error) bool {
	var remote *domain.RemoteError
	return errors.As(err, &remote)
}
