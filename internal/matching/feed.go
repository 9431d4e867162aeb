package matching

import (
	"errors"
	"log"

	"lovegogo/backend/internal/models"
	"lovegogo/backend/internal/storage"
)

// ErrViewerNotFound повертається, коли глядач стрічки не існує в каталозі.
var ErrViewerNotFound = errors.New("viewer not found")

// Filters — необов'язкові фільтри стрічки кандидатів.
// Нульова вікова межа означає, що ця межа неактивна; порожній Interests — без фільтра інтересів.
type Filters struct {
	AgeMin    int
	AgeMax    int
	Interests []string
}

// FeedService будує стрічку кандидатів для глядача.
type FeedService struct {
	Storage Store
}

// NewFeedService створює новий FeedService.
func NewFeedService(s Store) *FeedService {
	return &FeedService{Storage: s}
}

// GetCandidates повертає впорядкований список кандидатів для глядача.
// Фільтри застосовуються у фіксованому порядку:
//  1. виключити самого глядача;
//  2. виключити вже лайкнутих;
//  3. виключити вже метчнутих;
//  4. виключити користувачів тієї ж статі (спрощена політика "протилежна стать");
//  5. віковий діапазон, включно з обома межами;
//  6. перетин інтересів (хоча б один спільний тег).
//
// Порядок результату — стабільний порядок каталогу. Порожній результат означає,
// що стрічка вичерпана; жодного повторного добору тут не відбувається.
func (f *FeedService) GetCandidates(viewerID string, filters Filters) ([]models.User, error) {
	viewer, err := f.Storage.GetUserByID(viewerID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, ErrViewerNotFound
	}
	if err != nil {
		return nil, err
	}

	all, err := f.Storage.ListUsers()
	if err != nil {
		return nil, err
	}

	candidates := make([]models.User, 0, len(all))
	for _, u := range all {
		// Забанені користувачі не потрапляють у стрічку взагалі.
		if banned, err := f.Storage.IsUserBanned(u.ID); err != nil {
			log.Printf("ERROR: Failed to check ban status for %s: %v", u.ID, err)
			return nil, err
		} else if banned {
			continue
		}

		if u.ID == viewer.ID {
			continue
		}
		if viewer.HasLiked(u.ID) {
			continue
		}
		if viewer.HasMatched(u.ID) {
			continue
		}
		if u.Gender == viewer.Gender {
			continue
		}
		if filters.AgeMin > 0 && u.Age < filters.AgeMin {
			continue
		}
		if filters.AgeMax > 0 && u.Age > filters.AgeMax {
			continue
		}
		if len(filters.Interests) > 0 && !sharesInterest(u.Interests, filters.Interests) {
			continue
		}

		candidates = append(candidates, u)
	}

	return candidates, nil
}

// sharesInterest перевіряє, чи має кандидат хоча б один інтерес із фільтра.
func sharesInterest(candidate []string, wanted []string) bool {
	for _, c := range candidate {
		for _, w := range wanted {
			if c == w {
				return true
			}
		}
	}
	return false
}
