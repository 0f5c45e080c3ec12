package project

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrMediaRequired = errors.New("a gif must be selected")
)

// FormState is everything the admin form holds between interactions. It is
// owned by the caller: every transition takes a state and returns the next.
type FormState struct {
	EditMode    bool   `json:"edit_mode"`
	EditID      string `json:"edit_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Stack       string `json:"stack"`
	Challenge   string `json:"challenge"`
	Repo        string `json:"repo"`
	Live        string `json:"live"`
	SelectedGIF string `json:"selected_gif"`
}

// Reset is the empty form shown after a submit or cancel.
func Reset() FormState {
	return FormState{}
}

// BeginEdit loads r into a fresh form in edit mode.
func BeginEdit(r Record) FormState {
	return FormState{
		EditMode:    true,
		EditID:      r.Key,
		Title:       r.Title,
		Description: r.Description,
		Stack:       strings.Join(r.Stack, ","),
		Challenge:   r.Challenge,
		Repo:        r.Links.Repository,
		Live:        r.Links.LiveDemo,
		SelectedGIF: r.Media.Filename,
	}
}

// Apply overwrites the editable fields with the ones from input, keeping
// the edit target of s.
func (s FormState) Apply(input FormState) FormState {
	input.EditMode = s.EditMode
	input.EditID = s.EditID
	return input
}

func (s FormState) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(s.SelectedGIF) == "" {
		return ErrMediaRequired
	}
	return nil
}

// Record builds the record the form describes.
func (s FormState) Record(duration time.Duration, now time.Time) Record {
	return Record{
		Key:         s.EditID,
		Title:       s.Title,
		Description: s.Description,
		Stack:       SplitStack(s.Stack),
		Challenge:   s.Challenge,
		Links:       Links{Repository: s.Repo, LiveDemo: s.Live},
		Media:       Media{Kind: MediaKindGIF, Filename: s.SelectedGIF},
		Duration:    duration,
		CreatedAt:   now,
	}
}

// SplitStack turns comma separated text into a trimmed list without
// empty entries.
func SplitStack(text string) []string {
	stack := []string{}
	for _, s := range strings.Split(text, ",") {
		if s = strings.TrimSpace(s); s != "" {
			stack = append(stack, s)
		}
	}
	return stack
}
