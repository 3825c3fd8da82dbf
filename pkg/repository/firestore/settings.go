package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/studyhall-lab/studyhall/pkg/domain/model"
	"github.com/studyhall-lab/studyhall/pkg/repository"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	settingsCollection = "settings"
	settingsDocID      = "settings"
)

type settingsRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSettingsRepository(client *firestore.Client) *settingsRepository {
	return &settingsRepository{client: client}
}

func (r *settingsRepository) docRef() *firestore.DocumentRef {
	return r.client.Collection(r.collectionPrefix + settingsCollection).Doc(settingsDocID)
}

func (r *settingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	doc, err := r.docRef().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(repository.ErrNotFound, "settings not saved yet")
		}
		return nil, goerr.Wrap(err, "failed to get settings from firestore")
	}

	var settings model.Settings
	if err := doc.DataTo(&settings); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal settings")
	}

	return &settings, nil
}

func (r *settingsRepository) Put(ctx context.Context, settings *model.Settings) error {
	if err := settings.Validate(); err != nil {
		return goerr.Wrap(err, "invalid settings")
	}

	if _, err := r.docRef().Set(ctx, settings); err != nil {
		return goerr.Wrap(err, "failed to put settings to firestore")
	}

	return nil
}
