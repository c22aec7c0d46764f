package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Users: отображение username -> UserRecord с сохранением порядка вставки.
// Нулевое значение готово к использованию.
type Users struct {
	order   []string
	records map[string]UserRecord
}

// NewUsers создаёт пустое отображение.
func NewUsers() *Users {
	return &Users{records: map[string]UserRecord{}}
}

// Len возвращает число пользователей.
func (u *Users) Len() int {
	return len(u.order)
}

// Get возвращает запись пользователя по имени.
func (u *Users) Get(username string) (UserRecord, bool) {
	rec, ok := u.records[username]
	return rec, ok
}

// Has сообщает, есть ли пользователь с таким именем.
func (u *Users) Has(username string) bool {
	_, ok := u.records[username]
	return ok
}

// Insert добавляет запись, если имени ещё нет. Возвращает false для существующего имени.
func (u *Users) Insert(username string, rec UserRecord) bool {
	if u.records == nil {
		u.records = map[string]UserRecord{}
	}
	if _, ok := u.records[username]; ok {
		return false
	}
	u.records[username] = rec
	u.order = append(u.order, username)
	return true
}

// Delete удаляет пользователя; для отсутствующего имени ничего не делает.
func (u *Users) Delete(username string) {
	if _, ok := u.records[username]; !ok {
		return
	}
	delete(u.records, username)
	for i, name := range u.order {
		if name == username {
			u.order = append(u.order[:i], u.order[i+1:]...)
			break
		}
	}
}

// Names возвращает копию списка имён в порядке вставки.
func (u *Users) Names() []string {
	out := make([]string, len(u.order))
	copy(out, u.order)
	return out
}

// MarshalJSON пишет объект с ключами в порядке вставки, без экранирования HTML.
func (u *Users) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, name := range u.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, enc, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, enc, u.records[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON читает объект пользователей и проверяет каждую запись.
// Пустой массив `[]` тоже принимается как пустое хранилище.
func (u *Users) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	fresh := NewUsers()

	switch tok {
	case json.Delim('['):
		end, err := dec.Token()
		if err != nil {
			return err
		}
		if end != json.Delim(']') {
			return errors.New("users: expected object, got non-empty array")
		}
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			name, ok := keyTok.(string)
			if !ok {
				return fmt.Errorf("users: unexpected key %v", keyTok)
			}
			var rec UserRecord
			if err := dec.Decode(&rec); err != nil {
				return fmt.Errorf("users: record %q: %w", name, err)
			}
			if err := validateRecord(name, rec); err != nil {
				return err
			}
			if !fresh.Insert(name, rec) {
				return fmt.Errorf("users: duplicate username %q", name)
			}
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("users: expected object, got %v", tok)
	}

	if _, err := dec.Token(); err != io.EOF {
		return errors.New("users: trailing data after object")
	}

	*u = *fresh
	return nil
}

// encodeValue пишет значение без завершающего перевода строки, который добавляет Encoder.
func encodeValue(buf *bytes.Buffer, enc *json.Encoder, v any) error {
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

func validateRecord(name string, rec UserRecord) error {
	if name == "" {
		return errors.New("users: empty username")
	}
	if rec.Password == "" {
		return fmt.Errorf("users: record %q has no password hash", name)
	}
	return nil
}
