package matching

import (
	"errors"
	"log"
	"sync"

	"lovegogo/backend/internal/models"
)

// ErrSelfLike повертається при спробі лайкнути самого себе.
var ErrSelfLike = errors.New("cannot like yourself")

// Store — це частина сховища, потрібна для стрічки та резолвера метчів.
// Реалізується *storage.Service.
type Store interface {
	GetUserByID(id string) (*models.User, error)
	UpdateUser(user *models.User) error
	SaveUserPair(u1, u2 *models.User) error
	ListUsers() ([]models.User, error)
	IsUserBanned(userID string) (bool, error)
}

// MatchNotifier отримує сповіщення про новий метч.
// Викликається лише один раз на пару — при переході у стан "Matched".
type MatchNotifier interface {
	MatchFound(liker, likee *models.User)
}

// ResolverService фіксує лайки та перетворює взаємні лайки на метчі.
type ResolverService struct {
	Storage  Store
	Notifier MatchNotifier // nil, якщо сповіщення не налаштовані

	// pairLocks серіалізує обробку лайків по канонічній парі користувачів.
	// Два одночасні recordLike для однієї пари не можуть обидва пропустити
	// крок створення метчу або двічі дописати у matches.
	mu        sync.Mutex
	pairLocks map[string]*sync.Mutex
}

// NewResolverService створює новий ResolverService.
func NewResolverService(s Store) *ResolverService {
	return &ResolverService{
		Storage:   s,
		pairLocks: make(map[string]*sync.Mutex),
	}
}

// lockForPair повертає м'ютекс для канонічної (відсортованої) пари ID.
func (r *ResolverService) lockForPair(a, b string) *sync.Mutex {
	x, y := models.CanonicalPair(a, b)
	key := x + ":" + y

	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.pairLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.pairLocks[key] = lock
	}
	return lock
}

// RecordLike фіксує лайк від likerID до likeeID та повертає, чи утворився метч.
//
// Повторний лайк тієї самої пари — no-op: повертається раніше обчислений статус
// метчу, без повторного сповіщення. Перевірка взаємності та запис обох наборів
// matches виконуються як одна атомарна одиниця відносно інших лайків цієї пари.
func (r *ResolverService) RecordLike(likerID, likeeID string) (bool, error) {
	// Спочатку перевірка існування обох ID, потім перевірка на self-like.
	if _, err := r.Storage.GetUserByID(likerID); err != nil {
		return false, err
	}
	if _, err := r.Storage.GetUserByID(likeeID); err != nil {
		return false, err
	}
	if likerID == likeeID {
		return false, ErrSelfLike
	}

	lock := r.lockForPair(likerID, likeeID)
	lock.Lock()
	defer lock.Unlock()

	// Перечитуємо обох користувачів вже під локом пари, щоб бачити свіжий стан.
	liker, err := r.Storage.GetUserByID(likerID)
	if err != nil {
		return false, err
	}
	likee, err := r.Storage.GetUserByID(likeeID)
	if err != nil {
		return false, err
	}

	// Ідемпотентність: лайк уже записано раніше.
	if liker.HasLiked(likeeID) {
		return liker.HasMatched(likeeID), nil
	}

	liker.AddLike(likeeID)

	// Взаємність: інша сторона вже лайкнула цього користувача.
	if likee.HasLiked(likerID) {
		liker.AddMatch(likeeID)
		likee.AddMatch(likerID)

		if err := r.Storage.SaveUserPair(liker, likee); err != nil {
			return false, err
		}

		log.Printf("Match found: %s and %s", likerID, likeeID)
		if r.Notifier != nil {
			r.Notifier.MatchFound(liker, likee)
		}
		return true, nil
	}

	if err := r.Storage.UpdateUser(liker); err != nil {
		return false, err
	}
	return false, nil
}

// RecordPass фіксує "пас". Стан у каталозі не змінюється: виключення кандидата
// після пасу живе лише в межах поточного проходу стрічки. Свідоме спрощення,
// перенесене з первісної поведінки; див. DESIGN.md.
func (r *ResolverService) RecordPass(viewerID, passedID string) error {
	if _, err := r.Storage.GetUserByID(viewerID); err != nil {
		return err
	}
	if _, err := r.Storage.GetUserByID(passedID); err != nil {
		return err
	}
	return nil
}
