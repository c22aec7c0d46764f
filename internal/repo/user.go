package repo

import (
	"UserPrefs/internal/model"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// UserRepository определяет контракт хранилища пользователей: загрузка и полная перезапись отображения.
type UserRepository interface {
	// Load читает всех пользователей. Если хранилища ещё нет, создаёт пустое.
	Load(ctx context.Context) (*model.Users, error)

	// Save перезаписывает хранилище содержимым users.
	Save(ctx context.Context, users *model.Users) error
}

// FileUserRepository хранит пользователей в одном JSON-файле.
type FileUserRepository struct {
	path string
}

// NewFileUserRepository создаёт файловый репозиторий по указанному пути.
func NewFileUserRepository(path string) *FileUserRepository {
	return &FileUserRepository{path: path}
}

// Path возвращает путь к файлу хранилища.
func (r *FileUserRepository) Path() string {
	return r.path
}

func (r *FileUserRepository) Load(ctx context.Context) (*model.Users, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(r.path); errors.Is(err, fs.ErrNotExist) {
		if err := r.write(model.NewUsers()); err != nil {
			return nil, storageErr("init", r.path, err)
		}
	} else if err != nil {
		return nil, storageErr("load", r.path, err)
	}

	b, err := os.ReadFile(r.path)
	if err != nil {
		return nil, storageErr("load", r.path, err)
	}

	users := model.NewUsers()
	if err := json.Unmarshal(b, users); err != nil {
		return nil, storageErr("load", r.path, err)
	}
	return users, nil
}

func (r *FileUserRepository) Save(ctx context.Context, users *model.Users) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.write(users); err != nil {
		return storageErr("save", r.path, err)
	}
	return nil
}

// write пишет во временный файл рядом с целевым и атомарно переименовывает его.
func (r *FileUserRepository) write(users *model.Users) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	// после успешного Rename удалять уже нечего
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(users); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}
