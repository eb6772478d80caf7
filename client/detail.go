package client

import (
	"context"
	"log"

	"github.com/unistay-app/unistay/backend/models"
)

// LoadState is the tri-state result of the detail fetch.
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadLoading
	LoadReady
	LoadFailed
)

// Mode is the edit-cycle state of the detail screen.
type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
	ModeSaving
)

// DetailView drives the property detail screen: it fetches the canonical
// document, expands it into an editable form, and compresses the form back
// into an update payload on save. Methods are meant to be called from a
// single goroutine; a generation counter drops responses belonging to a
// superseded Open so a slow fetch cannot overwrite a later navigation.
type DetailView struct {
	api *Client

	generation int

	ID       string
	Load     LoadState
	Err      error
	Property *models.Property
	Form     models.PropertyForm
	Mode     Mode
}

func NewDetailView(api *Client) *DetailView {
	return &DetailView{api: api}
}

// Open navigates to a property: fetches it and rebuilds the form state.
// Any in-flight edits are discarded.
func (v *DetailView) Open(ctx context.Context, id string) error {
	v.generation++
	gen := v.generation

	v.ID = id
	v.Load = LoadLoading
	v.Err = nil
	v.Property = nil
	v.Mode = ModeViewing

	property, err := v.api.Property(ctx, id)
	if gen != v.generation {
		// A later Open superseded this fetch; drop the result.
		return nil
	}
	if err != nil {
		log.Printf("Error fetching property %s: %v", id, err)
		v.Load = LoadFailed
		v.Err = err
		return err
	}

	v.Property = property
	v.Form = models.Expand(property)
	v.Load = LoadReady
	return nil
}

// Edit switches to the edit form, rebuilt from the current canonical
// document so earlier abandoned drafts do not leak in.
func (v *DetailView) Edit() bool {
	if v.Load != LoadReady || v.Mode != ModeViewing {
		return false
	}
	v.Form = models.Expand(v.Property)
	v.Mode = ModeEditing
	return true
}

// Cancel discards the draft and returns to the read view without re-fetching.
func (v *DetailView) Cancel() {
	if v.Mode != ModeEditing {
		return
	}
	v.Form = models.Expand(v.Property)
	v.Mode = ModeViewing
}

// Save compresses the draft, PUTs it, then re-fetches the canonical document.
// On failure the draft is kept and the view stays in edit mode.
func (v *DetailView) Save(ctx context.Context) error {
	if v.Mode != ModeEditing {
		return nil
	}
	v.Mode = ModeSaving
	gen := v.generation

	payload := models.Compress(v.Form)
	if _, err := v.api.UpdateProperty(ctx, v.ID, payload); err != nil {
		log.Printf("Error saving property %s: %v", v.ID, err)
		if gen == v.generation {
			v.Mode = ModeEditing
		}
		return err
	}

	property, err := v.api.Property(ctx, v.ID)
	if gen != v.generation {
		return nil
	}
	if err != nil {
		log.Printf("Error re-fetching property %s after save: %v", v.ID, err)
		v.Load = LoadFailed
		v.Err = err
		v.Mode = ModeViewing
		return err
	}

	v.Property = property
	v.Form = models.Expand(property)
	v.Load = LoadReady
	v.Mode = ModeViewing
	return nil
}
