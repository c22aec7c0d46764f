package model

import (
	"bytes"
	"encoding/json"
)

// Settings: пользовательские настройки отображения страницы.
type Settings struct {
	BgColor   string `json:"bg_color"`
	FontColor string `json:"font_color"`
}

// UnmarshalJSON принимает и пустой массив `[]`: так PHP-версия кодировала пустые настройки.
func (s *Settings) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("[]")) {
		*s = Settings{}
		return nil
	}
	type plain Settings
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Settings(p)
	return nil
}

// UserRecord хранит bcrypt-хеш пароля и настройки пользователя.
type UserRecord struct {
	Password string   `json:"password"`
	Settings Settings `json:"settings"`
}

// CurrentUser: то, что видит страница об авторизованном пользователе. Хеш пароля сюда не попадает.
type CurrentUser struct {
	Username string
	Settings Settings
}

// User: строка таблицы users для SQL-хранилища.
type User struct {
	Username  string `gorm:"primaryKey"`
	Password  string `gorm:"not null"`
	BgColor   string `gorm:"not null"`
	FontColor string `gorm:"not null"`
	Position  int64  `gorm:"not null;index"` // порядок вставки
}
