package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/osalazar/pobot/internal/domain"
)

// Store is a Firestore-backed SessionStore. Sessions are documents keyed by
// user id, so lookups never need a query. This backend lets a redeploy pick
// up dialogues mid-form; it is best-effort, the dialogue layer never relies
// on it.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store for the given project
// (POBOT_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) sessionDoc(user domain.UserID) *firestore.DocumentRef {
	return s.client.Collection("po_sessions").Doc(string(user))
}

type sessionDoc struct {
	Step            int       `firestore:"step"`
	ItemDescription string    `firestore:"item_description"`
	QuantityAmount  string    `firestore:"quantity_amount"`
	SupplierVendor  string    `firestore:"supplier_vendor"`
	Justification   string    `firestore:"justification"`
	RequesterName   string    `firestore:"requester_name"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

func (s *Store) Get(ctx context.Context, user domain.UserID) (*domain.Session, error) {
	snap, err := s.sessionDoc(user).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("firestore Get: %w", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore Get decode: %w", err)
	}

	return &domain.Session{
		UserID: user,
		Step:   domain.Step(doc.Step),
		Record: domain.Record{
			ItemDescription: doc.ItemDescription,
			QuantityAmount:  doc.QuantityAmount,
			SupplierVendor:  doc.SupplierVendor,
			Justification:   doc.Justification,
			RequesterName:   doc.RequesterName,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *Store) Put(ctx context.Context, session *domain.Session) error {
	doc := sessionDoc{
		Step:            int(session.Step),
		ItemDescription: session.Record.ItemDescription,
		QuantityAmount:  session.Record.QuantityAmount,
		SupplierVendor:  session.Record.SupplierVendor,
		Justification:   session.Record.Justification,
		RequesterName:   session.Record.RequesterName,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}

	if _, err := s.sessionDoc(session.UserID).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore Put: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, user domain.UserID) error {
	// Firestore Delete on a missing document is already a no-op, which is
	// exactly the contract.
	if _, err := s.sessionDoc(user).Delete(ctx); err != nil {
		return fmt.Errorf("firestore Delete: %w", err)
	}
	return nil
}
