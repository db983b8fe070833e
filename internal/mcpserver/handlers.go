package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/logger"
	"github.com/icyhq/icy/internal/store"
	"github.com/icyhq/icy/internal/wizard"
	"github.com/mark3labs/mcp-go/mcp"
)

// status is the JSON document returned by every session tool.
type status struct {
	Session  string                        `json:"session"`
	Key      string                        `json:"key"`
	Step     int                           `json:"step"`
	Title    string                        `json:"title"`
	Progress float64                       `json:"progress"`
	Values   brand.Profile                 `json:"values"`
	Errors   []wizard.FieldValidationError `json:"errors,omitempty"`
}

func (s *Server) statusText(id string, sess *session) *mcp.CallToolResult {
	st := status{
		Session:  id,
		Key:      sess.key,
		Step:     sess.ctrl.Step(),
		Title:    wizard.Step(sess.ctrl.Step()).Title,
		Progress: sess.ctrl.Progress(),
		Values:   sess.ctrl.Values(),
		Errors:   sess.ctrl.Errors(),
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: failed to encode status: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// validationText lists every failing field, one per line.
func validationText(prefix string, errs wizard.ValidationErrors) *mcp.CallToolResult {
	var b strings.Builder
	b.WriteString(prefix)
	for _, e := range errs {
		fmt.Fprintf(&b, "\n- %s: %s", e.Field, e.Message)
	}
	return mcp.NewToolResultText(b.String())
}

// lookup resolves the session argument. The returned result is non-nil when
// the request should be answered with it directly.
func (s *Server) lookup(request mcp.CallToolRequest) (string, *session, *mcp.CallToolResult) {
	args := request.GetArguments()
	if args == nil {
		return "", nil, mcp.NewToolResultText("error: no arguments provided")
	}
	id, ok := args["session"].(string)
	if !ok || id == "" {
		return "", nil, mcp.NewToolResultText("error: missing 'session' parameter")
	}
	sess, ok := s.sessions[id]
	if ok && s.now().Sub(sess.lastUsed) > s.sessionTTL {
		logger.Info("mcp: dropping idle wizard session %s", id)
		delete(s.sessions, id)
		ok = false
	}
	if !ok {
		return "", nil, mcp.NewToolResultText(fmt.Sprintf("error: unknown session %q (start one with brand-start)", id))
	}
	sess.lastUsed = s.now()
	return id, sess, nil
}

// handleStart opens a wizard session.
func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := s.defaultKey
	if args := request.GetArguments(); args != nil {
		if k, ok := args["key"].(string); ok && strings.TrimSpace(k) != "" {
			key = k
		}
	}
	norm, err := store.NormalizeKey(key)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	existing, found, err := s.store.Load(ctx, norm)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: failed to load profile: %v", err)), nil
	}
	var initial *brand.Profile
	if found {
		initial = &existing
	}

	id := uuid.New().String()
	sess := &session{key: norm, ctrl: wizard.New(initial, nil)}

	s.mu.Lock()
	s.pruneSessions()
	sess.lastUsed = s.now()
	s.sessions[id] = sess
	s.mu.Unlock()

	logger.Debug("mcp: started wizard session %s for key %s (existing=%v)", id, norm, found)
	return s.statusText(id, sess), nil
}

// handleStatus reports a session's state.
func (s *Server) handleStatus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, sess, res := s.lookup(request)
	if res != nil {
		return res, nil
	}
	return s.statusText(id, sess), nil
}

// handleSetField stores one field value.
func (s *Server) handleSetField(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, sess, res := s.lookup(request)
	if res != nil {
		return res, nil
	}
	args := request.GetArguments()

	name, _ := args["field"].(string)
	f, ok := wizard.ParseField(name)
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("error: unknown field %q", name)), nil
	}

	if raw, ok := args["values"]; ok && raw != nil {
		if !f.Multi() {
			return mcp.NewToolResultText(fmt.Sprintf("error: field %s takes a single 'value'", f)), nil
		}
		arr, ok := raw.([]any)
		if !ok {
			return mcp.NewToolResultText("error: 'values' is not an array"), nil
		}
		values := make([]string, 0, len(arr))
		for i, v := range arr {
			str, ok := v.(string)
			if !ok {
				return mcp.NewToolResultText(fmt.Sprintf("error: values[%d] is not a string", i)), nil
			}
			values = append(values, str)
		}
		sess.ctrl.SetSelection(f, values)
		return s.statusText(id, sess), nil
	}

	value, ok := args["value"].(string)
	if !ok {
		return mcp.NewToolResultText("error: missing 'value' parameter"), nil
	}
	sess.ctrl.SetField(f, value)
	return s.statusText(id, sess), nil
}

// handleNext advances a session one step.
func (s *Server) handleNext(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, sess, res := s.lookup(request)
	if res != nil {
		return res, nil
	}

	var verrs wizard.ValidationErrors
	if err := sess.ctrl.GoNext(); errors.As(err, &verrs) {
		return validationText(fmt.Sprintf("Step %d is not complete:", sess.ctrl.Step()), verrs), nil
	} else if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	return s.statusText(id, sess), nil
}

// handlePrevious moves a session back one step.
func (s *Server) handlePrevious(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, sess, res := s.lookup(request)
	if res != nil {
		return res, nil
	}
	sess.ctrl.GoPrevious()
	return s.statusText(id, sess), nil
}

// handleSubmit finalizes a session, saves the profile and drops the session.
// A failed save keeps the session and its profile so submitting again retries.
func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, sess, res := s.lookup(request)
	if res != nil {
		return res, nil
	}

	if sess.pending != nil {
		return s.save(ctx, id, sess, *sess.pending), nil
	}

	p, err := sess.ctrl.Submit()
	var verrs wizard.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return validationText("Cannot submit, fix these fields first:", verrs), nil
	case errors.Is(err, wizard.ErrNotFinalStep):
		return mcp.NewToolResultText(fmt.Sprintf("error: %v (currently on step %d of %d)", err, sess.ctrl.Step(), wizard.TotalSteps)), nil
	case err != nil:
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}

	return s.save(ctx, id, sess, p), nil
}

func (s *Server) save(ctx context.Context, id string, sess *session, p brand.Profile) *mcp.CallToolResult {
	if err := s.store.Save(ctx, sess.key, p); err != nil {
		logger.Error("mcp: saving profile for session %s: %v", id, err)
		sess.pending = &p
		return mcp.NewToolResultText(fmt.Sprintf("error: profile is complete but could not be saved: %v (call brand-submit again to retry)", err))
	}
	delete(s.sessions, id)

	logger.Info("mcp: saved brand profile %q under %s", p.ProductName, sess.key)
	return mcp.NewToolResultText(fmt.Sprintf("Saved brand profile %q under key %s", p.ProductName, sess.key))
}
