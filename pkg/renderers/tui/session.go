package tui

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/goliatone/go-projectform/pkg/form"
	"github.com/goliatone/go-projectform/pkg/model"
	"github.com/goliatone/go-projectform/pkg/project"
)

// Submitter accepts one set of raw answers. *form.Controller satisfies it.
type Submitter interface {
	Submit(ctx context.Context, values map[string]string) (project.Draft, error)
}

var _ Submitter = (*form.Controller)(nil)

// Session repeatedly collects answers for fm and hands them to submitter
// until the user declines to add another project. A rejected submission
// prints FailureMessage and asks again with the previous answers as
// defaults. Accepted drafts are returned even when the session ends in an
// error.
func (r *Renderer) Session(ctx context.Context, fm model.FormModel, submitter Submitter) ([]project.Draft, error) {
	if submitter == nil {
		return nil, ErrNoSubmitter
	}

	var (
		drafts  []project.Draft
		prefill map[string]string
	)
	for {
		values, err := r.Collect(ctx, fm, prefill)
		if err != nil {
			return drafts, err
		}
		values, err = r.transform(values)
		if err != nil {
			return drafts, err
		}

		draft, err := submitter.Submit(ctx, values)
		if errors.Is(err, form.ErrValidation) {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+FailureMessage); err != nil {
				return drafts, err
			}
			prefill = values
			continue
		}
		if err != nil {
			return drafts, err
		}

		prefill = nil
		drafts = append(drafts, draft)
		r.logger.WithFields(log.Fields{"title": draft.Title, "people": draft.People}).Info("project added")
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+draft.Title+" ("+draft.Assigned()+")"); err != nil {
			return drafts, err
		}

		more, err := r.driver.Confirm(ctx, "Add another?", true)
		if err != nil {
			return drafts, err
		}
		if !more {
			return drafts, nil
		}
	}
}
