package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

// Defaults are the static values the completion engine inserts for required
// fields the caller omitted. They are overridable from the config file so a
// tenant whose default user is not id 1 does not have to pass user_id on
// every call.
type Defaults struct {
	UserID         int
	OwnerID        int
	ContactTypeID  int
	CurrencyID     int
	ProjectStateID int
	ProjectTypeID  int
	ArticleTypeID  int
}

// StandardDefaults returns the stock Bexio defaults: user 1, owner 1, contact
// type 2 (person), currency 1 (CHF), and the first state/type entries for
// projects and articles.
func StandardDefaults() Defaults {
	return Defaults{
		UserID:         1,
		OwnerID:        1,
		ContactTypeID:  2,
		CurrencyID:     1,
		ProjectStateID: 1,
		ProjectTypeID:  1,
		ArticleTypeID:  1,
	}
}

// Apply overlays non-nil overrides from the config file onto the defaults.
func (d *Defaults) Apply(userID, ownerID, contactTypeID, currencyID *int) {
	if userID != nil {
		d.UserID = *userID
	}
	if ownerID != nil {
		d.OwnerID = *ownerID
	}
	if contactTypeID != nil {
		d.ContactTypeID = *contactTypeID
	}
	if currencyID != nil {
		d.CurrencyID = *currencyID
	}
}

// fillStrategy says how a missing required field gets its value.
type fillStrategy int

const (
	// fillNone marks pure user input; absence is the caller's error.
	fillNone fillStrategy = iota
	// fillStatic inserts a literal default.
	fillStatic
	// fillDerived copies a sibling field (alias rename, e.g. email -> mail).
	fillDerived
	// fillLookupTax resolves a valid tax id from the active system taxes.
	fillLookupTax
)

// FieldRule binds one payload field to its fill strategy.
type FieldRule struct {
	Field    string
	Required bool
	Strategy fillStrategy
	Default  any    // fillStatic
	From     string // fillDerived: source field, consumed after the copy
}

// ruleSet is everything the engine knows about one (kind, action) pair.
// Rules are ordered required-first so error reporting is deterministic.
type ruleSet struct {
	fields []FieldRule
	// positions rules are applied independently to each element of the
	// "positions" array, preserving element order.
	positions []FieldRule
	// requirePositions rejects a create without at least one position.
	requirePositions bool
	// preserve lists the required fields an update copies from the existing
	// record when the caller did not supply them.
	preserve []string
}

// CompletionEngine fills in missing-but-required fields before a create or
// update is sent. It works on a copy of the caller's payload; caller-supplied
// values always win, including falsy ones.
type CompletionEngine struct {
	reader RecordReader
	rules  map[domain.Kind]map[domain.Action]ruleSet
	logger *slog.Logger
}

// NewCompletionEngine builds the engine with its full rule table.
func NewCompletionEngine(reader RecordReader, d Defaults, logger *slog.Logger) *CompletionEngine {
	positionRules := []FieldRule{
		{Field: "text", Required: true, Strategy: fillNone},
		{Field: "type", Strategy: fillStatic, Default: "KbPositionCustom"},
		{Field: "amount", Strategy: fillStatic, Default: 1},
		{Field: "unit_price", Strategy: fillStatic, Default: 0.0},
		{Field: "tax_id", Strategy: fillLookupTax},
	}

	rules := map[domain.Kind]map[domain.Action]ruleSet{
		domain.KindContact: {
			domain.ActionCreate: {
				fields: []FieldRule{
					{Field: "name_1", Required: true, Strategy: fillNone},
					{Field: "mail", Strategy: fillDerived, From: "email"},
					{Field: "contact_type_id", Strategy: fillStatic, Default: d.ContactTypeID},
					{Field: "user_id", Strategy: fillStatic, Default: d.UserID},
					{Field: "owner_id", Strategy: fillStatic, Default: d.OwnerID},
				},
			},
			domain.ActionUpdate: {
				fields:   []FieldRule{{Field: "mail", Strategy: fillDerived, From: "email"}},
				preserve: []string{"name_1", "contact_type_id", "user_id", "owner_id", "nr"},
			},
		},
		domain.KindInvoice: {
			domain.ActionCreate: {
				fields: []FieldRule{
					{Field: "contact_id", Required: true, Strategy: fillNone},
					{Field: "user_id", Strategy: fillStatic, Default: d.UserID},
				},
				positions:        positionRules,
				requirePositions: true,
			},
			domain.ActionUpdate: {
				positions: positionRules,
				preserve:  []string{"contact_id", "user_id"},
			},
		},
		domain.KindQuote: {
			domain.ActionCreate: {
				fields: []FieldRule{
					{Field: "contact_id", Required: true, Strategy: fillNone},
					{Field: "user_id", Strategy: fillStatic, Default: d.UserID},
				},
				positions: positionRules,
			},
			domain.ActionUpdate: {
				positions: positionRules,
				preserve:  []string{"contact_id", "user_id"},
			},
		},
		domain.KindProject: {
			domain.ActionCreate: {
				fields: []FieldRule{
					{Field: "name", Required: true, Strategy: fillNone},
					{Field: "contact_id", Required: true, Strategy: fillNone},
					{Field: "user_id", Strategy: fillStatic, Default: d.UserID},
					{Field: "pr_state_id", Strategy: fillStatic, Default: d.ProjectStateID},
					{Field: "pr_project_type_id", Strategy: fillStatic, Default: d.ProjectTypeID},
				},
			},
			domain.ActionUpdate: {
				preserve: []string{"name", "contact_id", "user_id", "pr_state_id", "pr_project_type_id"},
			},
		},
		domain.KindItem: {
			domain.ActionCreate: {
				fields: []FieldRule{
					{Field: "intern_name", Required: true, Strategy: fillNone},
					{Field: "user_id", Strategy: fillStatic, Default: d.UserID},
					{Field: "article_type_id", Strategy: fillStatic, Default: d.ArticleTypeID},
					{Field: "currency_id", Strategy: fillStatic, Default: d.CurrencyID},
					{Field: "is_stock", Strategy: fillStatic, Default: false},
					{Field: "delivery_price", Strategy: fillStatic, Default: 0},
				},
			},
		},
		domain.KindTimesheet: {
			domain.ActionUpdate: {
				preserve: []string{"user_id", "client_service_id", "date", "duration"},
			},
		},
	}

	return &CompletionEngine{
		reader: reader,
		rules:  rules,
		logger: logger.With("component", "completion_engine"),
	}
}

// Complete returns a payload with all required fields present. The caller's
// payload is never mutated. Kinds and actions without rules pass through
// unchanged (their validation is entirely the remote API's job). The only
// error it produces itself is MissingFieldError; lookup and existing-record
// failures degrade gracefully and let the remote surface the real cause.
func (e *CompletionEngine) Complete(ctx context.Context, op domain.Operation) (domain.Payload, error) {
	payload := op.Payload.Clone()

	rs, ok := e.rules[op.Kind][op.Action]
	if !ok {
		return payload, nil
	}

	switch op.Action {
	case domain.ActionCreate:
		if rs.requirePositions && !hasElements(payload, "positions") {
			return domain.Payload{}, &MissingFieldError{Kind: op.Kind, Field: "positions"}
		}
		if err := e.applyRules(ctx, op.Kind, payload, rs.fields); err != nil {
			return domain.Payload{}, err
		}
	case domain.ActionUpdate:
		if err := e.applyRules(ctx, op.Kind, payload, derivedOnly(rs.fields)); err != nil {
			return domain.Payload{}, err
		}
		e.preserveExisting(ctx, op, payload, rs.preserve)
	}

	if len(rs.positions) > 0 && payload.Has("positions") {
		if err := e.completePositions(ctx, op.Kind, payload, rs.positions); err != nil {
			return domain.Payload{}, err
		}
	}

	return payload, nil
}

// applyRules fills each absent field per its strategy. Present fields are
// left alone even when their value is zero, false or empty.
func (e *CompletionEngine) applyRules(ctx context.Context, kind domain.Kind, payload domain.Payload, rules []FieldRule) error {
	for _, rule := range rules {
		if payload.Has(rule.Field) {
			continue
		}
		switch rule.Strategy {
		case fillNone:
			if rule.Required {
				return &MissingFieldError{Kind: kind, Field: rule.Field}
			}
		case fillStatic:
			payload.Set(rule.Field, rule.Default)
		case fillDerived:
			if v, ok := payload.Get(rule.From); ok {
				payload.Set(rule.Field, v)
				payload.Delete(rule.From)
			} else if rule.Required {
				return &MissingFieldError{Kind: kind, Field: rule.Field}
			}
		case fillLookupTax:
			if id, ok := e.lookupTaxID(ctx); ok {
				payload.Set(rule.Field, id)
			}
			// On lookup failure the field stays absent so the remote
			// validation reports the real cause; never fabricate an id.
		}
	}
	return nil
}

// completePositions runs the position rule set over every element of the
// positions array independently. Element order is billing order and is
// preserved. A position missing its text is a hard failure.
func (e *CompletionEngine) completePositions(ctx context.Context, kind domain.Kind, payload domain.Payload, rules []FieldRule) error {
	raw, _ := payload.Get("positions")
	positions, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("positions must be an array, got %T", raw)
	}
	for i, elem := range positions {
		pos, ok := elem.(map[string]any)
		if !ok {
			return fmt.Errorf("positions[%d] must be an object, got %T", i, elem)
		}
		if err := e.applyRules(ctx, kind, domain.NewPayload(pos), rules); err != nil {
			var missing *MissingFieldError
			if errors.As(err, &missing) {
				missing.Field = fmt.Sprintf("positions[%d].%s", i, missing.Field)
			}
			return err
		}
	}
	return nil
}

// preserveExisting fetches the record being updated and copies the current
// value of every required field the caller omitted. If the fetch fails the
// update goes out with caller fields only and the remote gets the last word.
func (e *CompletionEngine) preserveExisting(ctx context.Context, op domain.Operation, payload domain.Payload, preserve []string) {
	if len(preserve) == 0 {
		return
	}
	existing, err := e.reader.Fetch(ctx, op.Kind, op.ID)
	if err != nil {
		e.logger.Warn("Existing-record fetch failed, submitting caller fields only",
			slog.String("kind", string(op.Kind)),
			slog.Int("id", op.ID),
			slog.Any("error", err))
		return
	}
	for _, field := range preserve {
		if payload.Has(field) {
			continue
		}
		if v, ok := existing[field]; ok {
			payload.Set(field, v)
		}
	}
}

// lookupTaxID resolves a usable tax id from the active system taxes. When
// several are active the first entry in API order wins (Bexio returns taxes
// id-ascending, so this is the lowest active id).
func (e *CompletionEngine) lookupTaxID(ctx context.Context) (any, bool) {
	taxes, err := e.reader.ListActiveTaxes(ctx)
	if err != nil {
		e.logger.Warn("Tax lookup failed, leaving tax_id unset", slog.Any("error", err))
		return nil, false
	}
	for _, tax := range taxes {
		if id, ok := tax["id"]; ok {
			return id, true
		}
	}
	e.logger.Warn("No active taxes found, leaving tax_id unset")
	return nil, false
}

// derivedOnly filters a rule list down to alias rules; updates never apply
// static defaults (the existing record supplies those values).
func derivedOnly(rules []FieldRule) []FieldRule {
	out := make([]FieldRule, 0, len(rules))
	for _, r := range rules {
		if r.Strategy == fillDerived {
			out = append(out, r)
		}
	}
	return out
}

func hasElements(payload domain.Payload, field string) bool {
	raw, ok := payload.Get(field)
	if !ok {
		return false
	}
	arr, ok := raw.([]any)
	return ok && len(arr) > 0
}
