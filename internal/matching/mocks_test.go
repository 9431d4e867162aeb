package matching_test

import (
	"sync"

	"lovegogo/backend/internal/models"
	"lovegogo/backend/internal/storage"
)

// fakeStore is an in-memory stand-in for *storage.Service covering the
// matching.Store surface. It hands out copies, the way a real database read
// would, so service code cannot accidentally share state through pointers.
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]*models.User
	order     []string
	banned    map[string]bool
	pairSaves int

	// userErrs injects read failures per user id.
	userErrs map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[string]*models.User),
		banned: make(map[string]bool),
	}
}

func cloneUser(u *models.User) *models.User {
	copied := *u
	copied.Photos = append([]string(nil), u.Photos...)
	copied.Interests = append([]string(nil), u.Interests...)
	copied.Likes = append([]string(nil), u.Likes...)
	copied.Matches = append([]string(nil), u.Matches...)
	return &copied
}

func (f *fakeStore) addUser(u *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = cloneUser(u)
	f.order = append(f.order, u.ID)
}

func (f *fakeStore) GetUserByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.userErrs[id]; ok {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (f *fakeStore) UpdateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeStore) SaveUserPair(u1, u2 *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u1.ID] = cloneUser(u1)
	f.users[u2.ID] = cloneUser(u2)
	f.pairSaves++
	return nil
}

func (f *fakeStore) ListUsers() ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]models.User, 0, len(f.order))
	for _, id := range f.order {
		users = append(users, *cloneUser(f.users[id]))
	}
	return users, nil
}

func (f *fakeStore) IsUserBanned(userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banned[userID], nil
}

// countingNotifier records how many times a match notification fired.
type countingNotifier struct {
	mu    sync.Mutex
	calls int
	pairs [][2]string
}

func (n *countingNotifier) MatchFound(liker, likee *models.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	n.pairs = append(n.pairs, [2]string{liker.ID, likee.ID})
}
