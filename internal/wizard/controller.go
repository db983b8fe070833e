// Package wizard drives the four-step brand setup form: it owns the
// in-progress values, validates them eagerly, gates forward navigation on
// step validity and emits the finalized brand.Profile.
package wizard

import (
	"slices"

	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/logger"
)

// Controller holds the state of one wizard run. It is not safe for
// concurrent use; hosts feed it one input event at a time.
type Controller struct {
	step       int
	values     brand.Profile
	errs       map[Field]string
	finalized  bool
	onComplete func(brand.Profile)
}

// New creates a controller on step 1. initial may be nil or partially
// filled to resume a session; onComplete may be nil.
func New(initial *brand.Profile, onComplete func(brand.Profile)) *Controller {
	c := &Controller{
		step:       1,
		values:     brand.Profile{}.Clone(),
		errs:       make(map[Field]string, len(Fields)),
		onComplete: onComplete,
	}
	if initial != nil {
		c.values = initial.Clone()
		for _, f := range Fields {
			if f.Multi() {
				*selection(&c.values, f) = dedupe(*selection(&c.values, f))
			}
		}
	}
	c.revalidate()
	return c
}

// Resume recreates a run from saved values and walks forward toward step,
// stopping at the first step that no longer validates.
func Resume(values brand.Profile, step int, onComplete func(brand.Profile)) *Controller {
	c := New(&values, onComplete)
	for c.step < clampStep(step) {
		if c.GoNext() != nil {
			break
		}
	}
	return c
}

// SetField stores value for f. Multi-select fields toggle value instead.
// Invalid values are kept and show up as validation errors.
func (c *Controller) SetField(f Field, value string) {
	if c.finalized {
		return
	}
	if f.Multi() {
		c.Toggle(f, value)
		return
	}
	if _, ok := rules[f]; !ok {
		logger.Debug("wizard: ignoring unknown field %q", f)
		return
	}
	setText(&c.values, f, value)
	c.revalidateField(f)
}

// Toggle removes value from a multi-select field if present, appends it otherwise.
func (c *Controller) Toggle(f Field, value string) {
	if c.finalized || !f.Multi() {
		return
	}
	sel := selection(&c.values, f)
	if i := slices.Index(*sel, value); i >= 0 {
		*sel = slices.Delete(*sel, i, i+1)
	} else {
		*sel = append(*sel, value)
	}
	c.revalidateField(f)
}

// SetSelection replaces a multi-select field, dropping duplicates.
func (c *Controller) SetSelection(f Field, values []string) {
	if c.finalized || !f.Multi() {
		return
	}
	*selection(&c.values, f) = dedupe(values)
	c.revalidateField(f)
}

// GoNext advances one step if every field of the current step is valid.
// On the last step it is a no-op. A failing step returns ValidationErrors.
func (c *Controller) GoNext() error {
	if c.finalized {
		return ErrFinalized
	}
	if errs := c.StepErrors(c.step); len(errs) > 0 {
		logger.Debug("wizard: step %d blocked by %d invalid field(s)", c.step, len(errs))
		return errs
	}
	if c.step < TotalSteps {
		c.step++
		logger.Debug("wizard: advanced to step %d", c.step)
	}
	return nil
}

// GoPrevious moves back one step, stopping at step 1. It never validates.
func (c *Controller) GoPrevious() {
	if c.finalized || c.step <= 1 {
		return
	}
	c.step--
	logger.Debug("wizard: back to step %d", c.step)
}

// Submit finalizes the wizard from the last step. It succeeds only when all
// fields are valid, in which case the completion callback runs exactly once
// and the controller stops accepting input.
func (c *Controller) Submit() (brand.Profile, error) {
	if c.finalized {
		return brand.Profile{}, ErrFinalized
	}
	if c.step != TotalSteps {
		return brand.Profile{}, ErrNotFinalStep
	}
	if errs := c.Errors(); len(errs) > 0 {
		return brand.Profile{}, errs
	}

	c.finalized = true
	out := c.values.Clone()
	logger.Info("wizard: brand setup complete: product=%q platforms=%v budget=%s",
		out.ProductName, out.Platforms, out.BudgetLevel)
	if c.onComplete != nil {
		c.onComplete(out.Clone())
	}
	return out, nil
}

// Step returns the current step number (1..TotalSteps).
func (c *Controller) Step() int {
	return c.step
}

// Progress returns the completion percentage derived from the current step.
func (c *Controller) Progress() float64 {
	return float64(c.step) / float64(TotalSteps) * 100
}

// Finalized reports whether Submit has succeeded.
func (c *Controller) Finalized() bool {
	return c.finalized
}

// Values returns a copy of the in-progress values.
func (c *Controller) Values() brand.Profile {
	return c.values.Clone()
}

// Text returns the current value of a scalar field.
func (c *Controller) Text(f Field) string {
	return text(&c.values, f)
}

// Selection returns a copy of a multi-select field's values.
func (c *Controller) Selection(f Field) []string {
	if !f.Multi() {
		return nil
	}
	return slices.Clone(*selection(&c.values, f))
}

// Selected reports whether value is currently chosen for f.
func (c *Controller) Selected(f Field, value string) bool {
	if f.Multi() {
		return slices.Contains(*selection(&c.values, f), value)
	}
	return text(&c.values, f) == value
}

// FieldError returns the live validation message for f, or "".
func (c *Controller) FieldError(f Field) string {
	return c.errs[f]
}

// StepErrors returns the failing fields of step n.
func (c *Controller) StepErrors(n int) ValidationErrors {
	var errs ValidationErrors
	for _, f := range Step(n).Fields {
		if msg := c.errs[f]; msg != "" {
			errs = append(errs, FieldValidationError{Field: f, Message: msg})
		}
	}
	return errs
}

// StepValid reports whether every field of step n passes validation.
func (c *Controller) StepValid(n int) bool {
	return len(c.StepErrors(n)) == 0
}

// Errors returns every failing field across all steps.
func (c *Controller) Errors() ValidationErrors {
	var errs ValidationErrors
	for _, f := range Fields {
		if msg := c.errs[f]; msg != "" {
			errs = append(errs, FieldValidationError{Field: f, Message: msg})
		}
	}
	return errs
}

// Valid reports whether the whole profile passes validation.
func (c *Controller) Valid() bool {
	return len(c.errs) == 0
}

func (c *Controller) revalidate() {
	for _, f := range Fields {
		c.revalidateField(f)
	}
}

func (c *Controller) revalidateField(f Field) {
	if msg := check(&c.values, f); msg != "" {
		c.errs[f] = msg
	} else {
		delete(c.errs, f)
	}
}

// dedupe keeps the first occurrence of each value.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
