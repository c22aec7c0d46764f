package service

import (
	"UserPrefs/internal/model"
	"UserPrefs/internal/repo"
	"UserPrefs/internal/session"
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidInput: регистрация с пустым логином или слишком длинным паролем.
var ErrInvalidInput = errors.New("invalid username or password")

// UserService открывает UserStore поверх репозитория. Каждый запрос получает свежий store.
type UserService struct {
	repo repo.UserRepository
	cost int
}

// NewUserService создаёт сервис; cost, стоимость bcrypt, вне допустимого диапазона берётся DefaultCost.
func NewUserService(r repo.UserRepository, cost int) *UserService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserService{repo: r, cost: cost}
}

// Open загружает хранилище целиком и возвращает рабочую копию.
// Отсутствующее хранилище создаётся пустым; повреждённое даёт ошибку repo.ErrStorage.
func (s *UserService) Open(ctx context.Context) (*UserStore, error) {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("open user store: %w", err)
	}
	return &UserStore{repo: s.repo, users: users, cost: s.cost}, nil
}

// UserStore: загруженное в память отображение пользователей.
// Не безопасен для конкурентного использования: один store на один запрос.
type UserStore struct {
	repo  repo.UserRepository
	users *model.Users
	cost  int
}

// Register добавляет пользователя и сохраняет хранилище.
// Занятое имя даёт (false, nil) без изменений. Ошибка возвращается только для
// некорректного ввода (ErrInvalidInput) и сбоя хранилища.
func (s *UserStore) Register(ctx context.Context, username, password string, settings model.Settings) (bool, error) {
	if username == "" {
		return false, ErrInvalidInput
	}
	if s.users.Has(username) {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return false, fmt.Errorf("hash password: %w", err)
	}

	s.users.Insert(username, model.UserRecord{Password: string(hash), Settings: settings})
	if err := s.repo.Save(ctx, s.users); err != nil {
		// в памяти не оставляем то, чего нет на диске
		s.users.Delete(username)
		return false, fmt.Errorf("save user store: %w", err)
	}
	return true, nil
}

// Login проверяет пароль и при успехе записывает имя в сессию.
// При неудаче сессия не меняется. Хранилище не перезаписывается.
func (s *UserStore) Login(sess *session.Session, username, password string) bool {
	rec, ok := s.users.Get(username)
	if !ok {
		return false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(password)); err != nil {
		return false
	}
	sess.SetUsername(username)
	return true
}

// Logout очищает сессию независимо от её состояния.
func (s *UserStore) Logout(sess *session.Session) {
	sess.Unset()
}

// CurrentUser возвращает пользователя сессии, если он есть в хранилище.
func (s *UserStore) CurrentUser(sess *session.Session) (model.CurrentUser, bool) {
	username, ok := sess.Username()
	if !ok {
		return model.CurrentUser{}, false
	}
	rec, ok := s.users.Get(username)
	if !ok {
		return model.CurrentUser{}, false
	}
	return model.CurrentUser{Username: username, Settings: rec.Settings}, true
}

// Len возвращает число зарегистрированных пользователей.
func (s *UserStore) Len() int {
	return s.users.Len()
}
