// Package session описывает слот сессии браузера: имя текущего авторизованного пользователя.
package session

// Session хранит не более одного значения, имя авторизованного пользователя.
// Владелец сессии (middleware) по флагу Changed решает, нужно ли переписать cookie.
type Session struct {
	username string
	changed  bool
}

// New создаёт сессию; пустое имя означает анонимную сессию.
func New(username string) *Session {
	return &Session{username: username}
}

// Username возвращает имя пользователя и признак того, что оно задано.
func (s *Session) Username() (string, bool) {
	if s == nil || s.username == "" {
		return "", false
	}
	return s.username, true
}

// SetUsername запоминает авторизованного пользователя.
func (s *Session) SetUsername(username string) {
	if s.username == username {
		return
	}
	s.username = username
	s.changed = true
}

// Unset забывает пользователя. Повторный вызов ничего не меняет.
func (s *Session) Unset() {
	if s.username == "" {
		return
	}
	s.username = ""
	s.changed = true
}

// Changed сообщает, менялось ли значение с момента создания.
func (s *Session) Changed() bool {
	return s != nil && s.changed
}
