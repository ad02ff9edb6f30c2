package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/kilowatch/kilowatch/pkg/log"
	"github.com/kilowatch/kilowatch/pkg/types"
	"github.com/levenlabs/go-lflag"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreProvider implements the Database interface using Google Cloud
// Firestore. Documents hold a single JSON string field for portability.
type FirestoreProvider struct {
	client    *firestore.Client
	projectID string
	database  string
	credsFile string
}

const (
	catalogueCollection = "catalogue"
	catalogueDoc        = "plans"
	tduRatesDoc         = "tdu_rates"
)

// configuredFirestore sets up the Firestore provider.
// It registers flags for configuration.
func configuredFirestore() *FirestoreProvider {
	projectID := lflag.String("firestore-project-id", "", "Google Cloud Project ID for Firestore")
	database := lflag.String("firestore-database", "", "Google Cloud Firestore Database")
	emulator := lflag.String("firestore-emulator", "", "Use Firestore emulator")
	credsFile := lflag.String("firestore-credentials-file", "", "Path to a service account key file (default application credentials if empty)")

	f := &FirestoreProvider{}

	lflag.Do(func() {
		f.projectID = *projectID
		f.database = *database
		f.credsFile = *credsFile

		// set this because that's how firestore client expects it
		if *emulator != "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", *emulator)
		}
	})

	return f
}

// Validate checks if the provider is properly configured.
func (f *FirestoreProvider) Validate() error {
	// Project ID verification could be here, but we allow empty if inferred.
	return nil
}

// Init initializes the Firestore client.
// This must be called before using the provider methods.
func (f *FirestoreProvider) Init(ctx context.Context) error {
	projectID := f.projectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	database := f.database
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	var opts []option.ClientOption
	if f.credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(f.credsFile))
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database, opts...)
	if err != nil {
		return fmt.Errorf("failed to create firestore client (project=%s, database=%s): %w", projectID, database, err)
	}
	f.client = client
	return nil
}

// Close closes the Firestore client connection.
func (f *FirestoreProvider) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// GetCatalogue retrieves the plan catalogue from the "catalogue/plans"
// document.
func (f *FirestoreProvider) GetCatalogue(ctx context.Context) (Catalogue, error) {
	doc, err := f.client.Collection(catalogueCollection).Doc(catalogueDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Catalogue{}, fmt.Errorf("%w: catalogue", ErrNotFound)
		}
		return Catalogue{}, fmt.Errorf("failed to fetch catalogue doc: %w", err)
	}

	jsonStr, err := docJSON(ctx, doc)
	if err != nil {
		return Catalogue{}, err
	}

	var c Catalogue
	if err := json.Unmarshal([]byte(jsonStr), &c.Plans); err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to unmarshal catalogue json", slog.Any("err", err))
		return Catalogue{}, fmt.Errorf("failed to unmarshal catalogue json: %w", err)
	}
	if v, err := doc.DataAt("fetchedAt"); err == nil {
		if ts, ok := v.(time.Time); ok {
			c.FetchedAt = ts
		}
	}
	return c, nil
}

// SetCatalogue saves the plan catalogue to the "catalogue/plans" document.
// It stores the plans as a JSON string for portability.
func (f *FirestoreProvider) SetCatalogue(ctx context.Context, c Catalogue) error {
	jsonBytes, err := json.Marshal(c.Plans)
	if err != nil {
		return fmt.Errorf("failed to marshal catalogue: %w", err)
	}

	_, err = f.client.Collection(catalogueCollection).Doc(catalogueDoc).Set(ctx, map[string]interface{}{
		"json":      string(jsonBytes),
		"fetchedAt": c.FetchedAt,
		"count":     len(c.Plans),
	})
	if err != nil {
		return fmt.Errorf("failed to save catalogue: %w", err)
	}
	return nil
}

// GetTDURates retrieves the TDU rate table from the "catalogue/tdu_rates"
// document.
func (f *FirestoreProvider) GetTDURates(ctx context.Context) (map[string]types.TDURates, error) {
	doc, err := f.client.Collection(catalogueCollection).Doc(tduRatesDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: tdu rates", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch tdu rates doc: %w", err)
	}

	jsonStr, err := docJSON(ctx, doc)
	if err != nil {
		return nil, err
	}

	var rates map[string]types.TDURates
	if err := json.Unmarshal([]byte(jsonStr), &rates); err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to unmarshal tdu rates json", slog.Any("err", err))
		return nil, fmt.Errorf("failed to unmarshal tdu rates json: %w", err)
	}
	return rates, nil
}

// SetTDURates saves the TDU rate table to the "catalogue/tdu_rates" document.
func (f *FirestoreProvider) SetTDURates(ctx context.Context, rates map[string]types.TDURates) error {
	jsonBytes, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("failed to marshal tdu rates: %w", err)
	}

	_, err = f.client.Collection(catalogueCollection).Doc(tduRatesDoc).Set(ctx, map[string]interface{}{
		"json": string(jsonBytes),
	})
	if err != nil {
		return fmt.Errorf("failed to save tdu rates: %w", err)
	}
	return nil
}

func docJSON(ctx context.Context, doc *firestore.DocumentSnapshot) (string, error) {
	val, err := doc.DataAt("json")
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "doc missing json", slog.String("docID", doc.Ref.ID), slog.Any("err", err))
		return "", fmt.Errorf("document %s missing 'json' field: %w", doc.Ref.ID, err)
	}
	jsonStr, ok := val.(string)
	if !ok {
		log.Ctx(ctx).WarnContext(ctx, "doc json not string", slog.String("docID", doc.Ref.ID))
		return "", fmt.Errorf("document %s 'json' field is not a string", doc.Ref.ID)
	}
	return jsonStr, nil
}
