package router

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dwelli/backend/internal/models"
	"github.com/dwelli/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uint]models.User{}}
}

func (f *fakeUsers) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.byID[user.ID] = *user
	return nil
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) UpdateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.byID[user.ID] = *user
	return nil
}

type fakeListings struct {
	mu       sync.Mutex
	listings []models.Listing
}

func (f *fakeListings) FindListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Listing{}
	for _, l := range f.listings {
		if filter.Matches(l) {
			out = append(out, l)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *fakeListings) GetListingByID(ctx context.Context, id uint) (*models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.listings {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeListings) CreateListing(ctx context.Context, listing *models.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	listing.ID = uint(len(f.listings) + 1)
	f.listings = append(f.listings, *listing)
	return nil
}

func sortNewestFirst(ls []models.Listing) {
	sort.Slice(ls, func(i, j int) bool {
		if !ls[i].CreatedAt.Equal(ls[j].CreatedAt) {
			return ls[i].CreatedAt.After(ls[j].CreatedAt)
		}
		return ls[i].ID > ls[j].ID
	})
}

type savedKey struct{ user, listing uint }

type fakeSaved struct {
	mu       sync.Mutex
	listings *fakeListings
	rows     map[savedKey]bool
}

func (f *fakeSaved) Toggle(ctx context.Context, userID, listingID uint) (bool, error) {
	if _, err := f.listings.GetListingByID(ctx, listingID); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	k := savedKey{userID, listingID}
	if f.rows[k] {
		delete(f.rows, k)
		return false, nil
	}
	f.rows[k] = true
	return true, nil
}

func (f *fakeSaved) IsSaved(ctx context.Context, userID, listingID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[savedKey{userID, listingID}], nil
}

func (f *fakeSaved) GetSavedListings(ctx context.Context, userID uint) ([]models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Listing{}
	for k := range f.rows {
		if k.user != userID {
			continue
		}
		l, err := f.listings.GetListingByID(ctx, k.listing)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	sortNewestFirst(out)
	return out, nil
}

type fakeDocuments struct {
	mu     sync.Mutex
	nextID uint
	docs   []models.Document
}

func (f *fakeDocuments) CreateDocument(ctx context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	doc.ID = f.nextID
	doc.UploadedAt = time.Now()
	f.docs = append(f.docs, *doc)
	return nil
}

func (f *fakeDocuments) GetDocumentsByUser(ctx context.Context, userID uint) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Document{}
	for _, d := range f.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocuments) GetUserDocument(ctx context.Context, userID, docID uint) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.docs {
		if d.ID == docID && d.UserID == userID {
			return &d, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeDocuments) DeleteUserDocument(ctx context.Context, userID, docID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, d := range f.docs {
		if d.ID == docID && d.UserID == userID {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memBlobs) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = buf.Bytes()
	return nil
}

func (m *memBlobs) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memBlobs) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type fakeSearches struct {
	mu    sync.Mutex
	prefs []models.SearchPreference
}

func (f *fakeSearches) CreateSearchPreference(ctx context.Context, pref *models.SearchPreference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	pref.ID = primitive.NewObjectID()
	pref.CreatedAt = time.Now()
	f.prefs = append(f.prefs, *pref)
	return nil
}

func (f *fakeSearches) GetSearchPreferencesByUser(ctx context.Context, userID uint) ([]models.SearchPreference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.SearchPreference{}
	for _, p := range f.prefs {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSearches) DeleteSearchPreference(ctx context.Context, userID uint, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.prefs {
		if p.ID.Hex() == id && p.UserID == userID {
			f.prefs = append(f.prefs[:i], f.prefs[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}
